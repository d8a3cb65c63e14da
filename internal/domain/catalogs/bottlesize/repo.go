package bottlesize

import (
	"context"

	"essentia/internal/core/types"
	"essentia/internal/domain"
)

// Repository defines the interface for ComponentStock persistence.
type Repository interface {
	domain.CatalogRepository[*ComponentStock]

	// GetBySize retrieves the component stock row for a bottle size.
	GetBySize(ctx context.Context, sizeML types.Volume) (*ComponentStock, error)

	// GetBySizeForUpdate retrieves the row for a bottle size with a row
	// lock. Must be called inside a transaction.
	GetBySizeForUpdate(ctx context.Context, sizeML types.Volume) (*ComponentStock, error)
}
