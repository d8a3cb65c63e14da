package shop

import (
	"context"

	"essentia/internal/core/tx"
	"essentia/internal/domain"
)

// Service provides business logic for the Shop catalog.
type Service struct {
	*domain.CatalogService[*Shop]
	repo Repository
}

// NewService creates a new Shop service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(repo, txManager, "shop"),
		repo:           repo,
	}
}

// ListActive retrieves all active shops.
func (s *Service) ListActive(ctx context.Context) ([]*Shop, error) {
	return s.repo.ListActive(ctx)
}
