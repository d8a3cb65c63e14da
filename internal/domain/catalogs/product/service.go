package product

import (
	"context"

	"essentia/internal/core/id"
	"essentia/internal/core/tx"
	"essentia/internal/domain"
)

// Service provides business logic for the RetailProduct catalog.
type Service struct {
	*domain.CatalogService[*RetailProduct]
	repo Repository
}

// NewService creates a new RetailProduct service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(repo, txManager, "product"),
		repo:           repo,
	}
}

// FindBySKU retrieves a product by SKU.
func (s *Service) FindBySKU(ctx context.Context, sku string) (*RetailProduct, error) {
	return s.repo.FindBySKU(ctx, sku)
}

// ListActive retrieves all active products.
func (s *Service) ListActive(ctx context.Context) ([]*RetailProduct, error) {
	return s.repo.ListActive(ctx)
}

// ListByLot retrieves products linked to the given lot.
func (s *Service) ListByLot(ctx context.Context, lotID id.ID) ([]*RetailProduct, error) {
	return s.repo.ListByLot(ctx, lotID)
}
