package allocation

import (
	"context"

	"essentia/internal/core/id"
)

// Repository defines the interface for ShopAllocation persistence.
type Repository interface {
	// Get retrieves the allocation row for a shop/product pair.
	Get(ctx context.Context, shopID, productID id.ID) (*ShopAllocation, error)

	// AddQuantity inserts the row or adds to an existing quantity
	// (INSERT ... ON CONFLICT). Returns the resulting row.
	AddQuantity(ctx context.Context, alloc *ShopAllocation) (*ShopAllocation, error)

	// SetQuantity overwrites the quantity of an existing row.
	SetQuantity(ctx context.Context, allocID id.ID, quantity int) error

	// Zero sets the quantity of an existing row to zero.
	Zero(ctx context.Context, allocID id.ID) error

	// BulkInsert inserts many new rows at once.
	BulkInsert(ctx context.Context, allocs []*ShopAllocation) error

	// ListByShop retrieves all rows for a shop.
	ListByShop(ctx context.Context, shopID id.ID) ([]*ShopAllocation, error)

	// ListNonZero retrieves every row with quantity > 0, across all shops.
	ListNonZero(ctx context.Context) ([]*ShopAllocation, error)

	// SumByProduct returns the total quantity allocated across shops.
	SumByProduct(ctx context.Context, productID id.ID) (int, error)

	// DeleteByShop removes all rows for a shop, returning the count.
	DeleteByShop(ctx context.Context, shopID id.ID) (int64, error)
}
