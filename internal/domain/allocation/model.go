// Package allocation manages shop inventory: how many units of each
// retail product sit in each shop.
package allocation

import (
	"context"
	"time"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
)

// ShopAllocation is one (shop, product) inventory row.
// Rows are zeroed rather than deleted when inventory is returned, so the
// shop's assortment history stays visible.
type ShopAllocation struct {
	ID id.ID `db:"id" json:"id"`

	ShopID    id.ID `db:"shop_id" json:"shopId"`
	ProductID id.ID `db:"product_id" json:"productId"`

	// Quantity is the unit count currently allocated to the shop
	Quantity int `db:"quantity" json:"quantity"`

	// MinLevel/MaxLevel drive replenishment hints in the back office
	MinLevel int `db:"min_level" json:"minLevel"`
	MaxLevel int `db:"max_level" json:"maxLevel"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewShopAllocation creates an allocation row for a shop/product pair.
func NewShopAllocation(shopID, productID id.ID, quantity, minLevel, maxLevel int) *ShopAllocation {
	now := time.Now().UTC()
	return &ShopAllocation{
		ID:        id.New(),
		ShopID:    shopID,
		ProductID: productID,
		Quantity:  quantity,
		MinLevel:  minLevel,
		MaxLevel:  maxLevel,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements entity.Validatable interface.
func (a *ShopAllocation) Validate(ctx context.Context) error {
	if id.IsNil(a.ShopID) {
		return apperror.NewValidation("shop id is required").
			WithDetail("field", "shopId")
	}
	if id.IsNil(a.ProductID) {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if a.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	if a.MinLevel < 0 || a.MaxLevel < 0 {
		return apperror.NewValidation("levels cannot be negative")
	}
	return nil
}
