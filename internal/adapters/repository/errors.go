package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrPageNotFound   = errors.New("page not found")
	ErrInvalidCatalog = errors.New("invalid hero catalog")
)
