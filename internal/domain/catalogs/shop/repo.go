package shop

import (
	"context"

	"essentia/internal/domain"
)

// Repository defines the interface for Shop persistence.
type Repository interface {
	domain.CatalogRepository[*Shop]

	// ListActive retrieves all active, undeleted shops.
	ListActive(ctx context.Context) ([]*Shop, error)
}
