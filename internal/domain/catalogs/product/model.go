// Package product provides the RetailProduct catalog: sellable bottled
// perfume items produced by bottling runs.
package product

import (
	"context"
	"fmt"
	"strings"

	"essentia/internal/core/apperror"
	"essentia/internal/core/entity"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
)

// RetailProduct represents one sellable bottled item.
// Identity is the SKU: one product per (lot name, bottle size) pair.
type RetailProduct struct {
	entity.Catalog

	// SKU is the deterministic stock keeping unit, unique among products
	SKU string `db:"sku" json:"sku"`

	// SizeML is the bottle size this product was filled at
	SizeML types.Volume `db:"size_ml" json:"sizeMl"`

	// LotID references the originating bulk lot.
	// Nullable: products created before lineage tracking have no link
	// and fall back to name matching during reconciliation.
	LotID *id.ID `db:"lot_id" json:"lotId,omitempty"`

	// UnitCost is the production cost of one unit (volume + component)
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// SellingPrice is the retail price per unit
	SellingPrice types.Money `db:"selling_price" json:"sellingPrice"`

	// StockCount is the global on-hand quantity across all shops
	StockCount int `db:"stock_count" json:"stockCount"`

	// Active products are visible to the retail front
	Active bool `db:"active" json:"active"`
}

// Validate implements entity.Validatable interface.
func (p *RetailProduct) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if p.SKU == "" {
		return apperror.NewValidation("sku is required").
			WithDetail("field", "sku")
	}

	if !p.SizeML.IsPositive() {
		return apperror.NewValidation("size must be positive").
			WithDetail("field", "sizeMl")
	}

	if p.StockCount < 0 {
		return apperror.NewValidation("stock count cannot be negative").
			WithDetail("field", "stockCount")
	}

	if p.UnitCost.IsNegative() || p.SellingPrice.IsNegative() {
		return apperror.NewValidation("cost and price cannot be negative")
	}

	return nil
}

// AddStock increments the global stock count.
func (p *RetailProduct) AddStock(units int) {
	p.StockCount += units
}

// RemoveStock decrements the global stock count, floored at zero.
func (p *RetailProduct) RemoveStock(units int) {
	p.StockCount -= units
	if p.StockCount < 0 {
		p.StockCount = 0
	}
}

// MakeSKU derives the deterministic SKU for a lot name and bottle size.
// The lot name is lowercased, stripped to alphanumerics and capped at
// prefixLen, then suffixed with the size: "rosegarden-50ml".
func MakeSKU(lotName string, sizeML types.Volume, prefixLen int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(lotName) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
		if prefixLen > 0 && b.Len() >= prefixLen {
			break
		}
	}
	return fmt.Sprintf("%s-%dml", b.String(), sizeML.ML())
}

// MakeDisplayName derives the retail display name: "Rose Garden 50ml".
func MakeDisplayName(lotName string, sizeML types.Volume) string {
	return fmt.Sprintf("%s %s", lotName, sizeML)
}
