package lot

import (
	"context"

	"essentia/internal/core/tx"
	"essentia/internal/core/types"
	"essentia/internal/domain"
)

// Service provides business logic for the BulkLot catalog.
type Service struct {
	*domain.CatalogService[*BulkLot]
	repo Repository
}

// NewService creates a new BulkLot service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(repo, txManager, "bulk lot"),
		repo:           repo,
	}
}

// ListEligible retrieves lots eligible for batch bottling.
func (s *Service) ListEligible(ctx context.Context, minVolumeML types.Volume) ([]*BulkLot, error) {
	return s.repo.ListEligible(ctx, minVolumeML)
}

// FindByName retrieves a lot by exact name.
func (s *Service) FindByName(ctx context.Context, name string) (*BulkLot, error) {
	return s.repo.FindByName(ctx, name)
}
