// Package shop provides the Shop catalog: retail points of sale that
// receive bottled product allocations.
package shop

import (
	"context"

	"essentia/internal/core/entity"
)

// Shop represents a retail point of sale.
type Shop struct {
	entity.Catalog

	// Address is the street address shown in back-office listings
	Address *string `db:"address" json:"address,omitempty"`

	// Active shops receive allocations from bottling runs
	Active bool `db:"active" json:"active"`
}

// NewShop creates a new Shop with required fields.
func NewShop(code, name string) *Shop {
	return &Shop{
		Catalog: entity.NewCatalog(code, name),
		Active:  true,
	}
}

// Validate implements entity.Validatable interface.
func (s *Shop) Validate(ctx context.Context) error {
	return s.Catalog.Validate(ctx)
}
