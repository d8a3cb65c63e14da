// Package bottlesize provides the ComponentStock catalog: empty bottles
// with their labels and packaging, tracked per size.
package bottlesize

import (
	"context"

	"essentia/internal/core/apperror"
	"essentia/internal/core/entity"
	"essentia/internal/core/types"
)

// ComponentStock represents the component set (bottle, label, packaging)
// for one bottle size.
type ComponentStock struct {
	entity.Catalog

	// SizeML is the bottle capacity in milliliters
	SizeML types.Volume `db:"size_ml" json:"sizeMl"`

	// AvailableCount is the number of complete component sets on hand
	AvailableCount int `db:"available_count" json:"availableCount"`

	// UnitCost is the combined cost of one set (bottle + label + packaging)
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`
}

// NewComponentStock creates a new ComponentStock with required fields.
func NewComponentStock(code, name string, sizeML types.Volume, count int, unitCost types.Money) *ComponentStock {
	return &ComponentStock{
		Catalog:        entity.NewCatalog(code, name),
		SizeML:         sizeML,
		AvailableCount: count,
		UnitCost:       unitCost,
	}
}

// Validate implements entity.Validatable interface.
func (c *ComponentStock) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !c.SizeML.IsPositive() {
		return apperror.NewValidation("size must be positive").
			WithDetail("field", "sizeMl")
	}

	if c.AvailableCount < 0 {
		return apperror.NewValidation("available count cannot be negative").
			WithDetail("field", "availableCount")
	}

	if c.UnitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "unitCost")
	}

	return nil
}

// Debit removes component sets from stock.
// Returns an insufficient-stock error when count exceeds availability.
func (c *ComponentStock) Debit(count int) error {
	if count > c.AvailableCount {
		return apperror.NewInsufficientStock(c.ID.String(), count, c.AvailableCount).
			WithDetail("size_ml", c.SizeML.ML())
	}
	c.AvailableCount -= count
	return nil
}

// Credit returns component sets to stock (reconciliation path).
func (c *ComponentStock) Credit(count int) {
	c.AvailableCount += count
}
