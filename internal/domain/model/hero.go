// Package model contains domain models passed between layers.
package model

// Hero is a single catalog record. Only ID and Name are interpreted by the
// query layer; the remaining attributes are passed through unchanged.
type Hero struct {
	ID          int      `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Image       string   `json:"image" yaml:"image"`
	About       string   `json:"about" yaml:"about"`
	Rating      float64  `json:"rating" yaml:"rating"`
	Power       int      `json:"power" yaml:"power"`
	Month       string   `json:"month" yaml:"month"`
	Day         string   `json:"day" yaml:"day"`
	Family      []string `json:"family" yaml:"family"`
	Abilities   []string `json:"abilities" yaml:"abilities"`
	NatureTypes []string `json:"natureTypes" yaml:"natureTypes"`
}

// Page is one fixed partition of the catalog.
type Page struct {
	Number  int
	Heroes  []Hero
	HasPrev bool
	HasNext bool
}
