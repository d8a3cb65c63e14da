package bottlesize

import (
	"context"

	"essentia/internal/core/tx"
	"essentia/internal/core/types"
	"essentia/internal/domain"
)

// Service provides business logic for the ComponentStock catalog.
type Service struct {
	*domain.CatalogService[*ComponentStock]
	repo Repository
}

// NewService creates a new ComponentStock service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(repo, txManager, "bottle size"),
		repo:           repo,
	}
}

// GetBySize retrieves the component stock row for a bottle size.
func (s *Service) GetBySize(ctx context.Context, sizeML types.Volume) (*ComponentStock, error) {
	return s.repo.GetBySize(ctx, sizeML)
}
