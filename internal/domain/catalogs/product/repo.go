package product

import (
	"context"

	"essentia/internal/core/id"
	"essentia/internal/domain"
)

// Repository defines the interface for RetailProduct persistence.
type Repository interface {
	domain.CatalogRepository[*RetailProduct]

	// FindBySKU retrieves a product by SKU.
	FindBySKU(ctx context.Context, sku string) (*RetailProduct, error)

	// FindBySKUForUpdate retrieves a product by SKU with a row lock.
	// Must be called inside a transaction.
	FindBySKUForUpdate(ctx context.Context, sku string) (*RetailProduct, error)

	// ListActive retrieves all active, undeleted products.
	ListActive(ctx context.Context) ([]*RetailProduct, error)

	// ListByLot retrieves products linked to the given lot.
	ListByLot(ctx context.Context, lotID id.ID) ([]*RetailProduct, error)
}
