// Package repository holds the static hero catalog and its lookups.
package repository

// Default catalog shape.
const (
	DefaultPageSize  = 5
	DefaultPageCount = 5
)

// Option applies a configuration option to the Catalog.
type Option func(*Catalog)

// WithPageSize sets the number of heroes per page.
func WithPageSize(size int) Option {
	return func(c *Catalog) {
		if size > 0 {
			c.pageSize = size
		}
	}
}

// WithPageCount sets the number of pages the dataset must fill exactly.
func WithPageCount(count int) Option {
	return func(c *Catalog) {
		if count > 0 {
			c.pageCount = count
		}
	}
}
