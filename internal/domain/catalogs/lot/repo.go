package lot

import (
	"context"

	"essentia/internal/core/types"
	"essentia/internal/domain"
)

// Repository defines the interface for BulkLot persistence.
type Repository interface {
	domain.CatalogRepository[*BulkLot]

	// FindByName retrieves a lot by exact name.
	FindByName(ctx context.Context, name string) (*BulkLot, error)

	// ListEligible retrieves active, undeleted lots with at least the
	// given remaining volume.
	ListEligible(ctx context.Context, minVolumeML types.Volume) ([]*BulkLot, error)

	// ListActive retrieves all active, undeleted lots.
	ListActive(ctx context.Context) ([]*BulkLot, error)
}
