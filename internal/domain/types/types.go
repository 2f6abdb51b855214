// Package types contains common types used across the application
package types

import "github.com/okian/boruto/internal/domain/model"

// Response is the envelope returned by the hero endpoints.
// PrevPage and NextPage are omitted from JSON when nil.
type Response struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message"`
	PrevPage *int         `json:"prevPage,omitempty"`
	NextPage *int         `json:"nextPage,omitempty"`
	Heroes   []model.Hero `json:"heroes"`
}

// CatalogStats describes the shape of the hero catalog.
type CatalogStats struct {
	Heroes   int `json:"heroes"`
	Pages    int `json:"pages"`
	PageSize int `json:"pageSize"`
}

// Outcome is the terminal state of a hero query.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeBadRequest
	OutcomeNotFound
)

// String returns the metrics label for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeBadRequest:
		return "bad_request"
	case OutcomeNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Result pairs a query outcome with the envelope to send.
type Result struct {
	Outcome  Outcome
	Response Response
}
