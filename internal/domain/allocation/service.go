package allocation

import (
	"context"
	"fmt"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/core/tx"
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/domain/catalogs/shop"
	"essentia/pkg/logger"
)

// AssignRequest describes a bulk assignment of every active product to
// one shop.
type AssignRequest struct {
	ShopID   id.ID `json:"shopId"`
	Quantity int   `json:"quantity"`
	MinLevel int   `json:"minLevel"`
	MaxLevel int   `json:"maxLevel"`

	// UpdateExisting controls whether products already allocated to the
	// shop get their quantity overwritten. When false they are skipped.
	UpdateExisting bool `json:"updateExisting"`
}

// Validate implements entity.Validatable interface.
func (r *AssignRequest) Validate(ctx context.Context) error {
	if id.IsNil(r.ShopID) {
		return apperror.NewValidation("shop id is required").
			WithDetail("field", "shopId")
	}
	if r.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if r.MinLevel < 0 || r.MaxLevel < 0 {
		return apperror.NewValidation("levels cannot be negative")
	}
	return nil
}

// AssignReport summarizes a bulk assignment run.
type AssignReport struct {
	ShopID   id.ID `json:"shopId"`
	Inserted int   `json:"inserted"`
	Updated  int   `json:"updated"`
	Skipped  int   `json:"skipped"`
	Failed   int   `json:"failed"`
}

// Service provides bulk allocation operations on shop inventory.
type Service struct {
	repo      Repository
	products  product.Repository
	shops     shop.Repository
	txManager tx.Manager
}

// NewService creates an allocation service.
func NewService(repo Repository, products product.Repository, shops shop.Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		products:  products,
		shops:     shops,
		txManager: txManager,
	}
}

// ListByShop retrieves all allocation rows for a shop.
func (s *Service) ListByShop(ctx context.Context, shopID id.ID) ([]*ShopAllocation, error) {
	return s.repo.ListByShop(ctx, shopID)
}

// AssignAllToShop allocates every active product to the shop.
//
// The assignable quantity per product is capped by its unallocated
// availability: global stock minus what other shops already hold.
// Products with nothing available are skipped; a row error is counted
// as failed and the run continues with the remaining products.
func (s *Service) AssignAllToShop(ctx context.Context, req AssignRequest) (*AssignReport, error) {
	if err := req.Validate(ctx); err != nil {
		return nil, err
	}

	target, err := s.shops.GetByID(ctx, req.ShopID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("shop", req.ShopID.String())
		}
		return nil, err
	}
	if !target.Active || target.DeletionMark {
		return nil, apperror.NewValidation("shop is not active").
			WithDetail("shop_id", req.ShopID.String())
	}

	report := &AssignReport{ShopID: req.ShopID}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		products, err := s.products.ListActive(ctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}

		var toInsert []*ShopAllocation
		for _, p := range products {
			allocated, err := s.repo.SumByProduct(ctx, p.ID)
			if err != nil {
				report.Failed++
				logger.Warn(ctx, "assignment failed for product",
					"sku", p.SKU, "error", err)
				continue
			}

			available := p.StockCount - allocated
			existing, getErr := s.repo.Get(ctx, req.ShopID, p.ID)
			if getErr != nil && !apperror.IsNotFound(getErr) {
				report.Failed++
				logger.Warn(ctx, "assignment failed for product",
					"sku", p.SKU, "error", getErr)
				continue
			}

			if existing != nil {
				if !req.UpdateExisting {
					report.Skipped++
					continue
				}
				// The shop's own holding is reassignable.
				available += existing.Quantity
				qty := min(req.Quantity, available)
				if qty <= 0 {
					report.Skipped++
					continue
				}
				if err := s.repo.SetQuantity(ctx, existing.ID, qty); err != nil {
					report.Failed++
					logger.Warn(ctx, "assignment failed for product",
						"sku", p.SKU, "error", err)
					continue
				}
				report.Updated++
				continue
			}

			qty := min(req.Quantity, available)
			if qty <= 0 {
				report.Skipped++
				continue
			}
			toInsert = append(toInsert, NewShopAllocation(req.ShopID, p.ID, qty, req.MinLevel, req.MaxLevel))
		}

		if len(toInsert) > 0 {
			if err := s.repo.BulkInsert(ctx, toInsert); err != nil {
				return fmt.Errorf("bulk insert allocations: %w", err)
			}
			report.Inserted = len(toInsert)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "assigned products to shop",
		"shop_id", req.ShopID.String(),
		"inserted", report.Inserted,
		"updated", report.Updated,
		"skipped", report.Skipped,
		"failed", report.Failed)

	return report, nil
}

// UnassignAllFromShop removes every allocation row for the shop.
// Returns the number of rows removed.
func (s *Service) UnassignAllFromShop(ctx context.Context, shopID id.ID) (int64, error) {
	if id.IsNil(shopID) {
		return 0, apperror.NewValidation("shop id is required").
			WithDetail("field", "shopId")
	}

	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		if apperror.IsNotFound(err) {
			return 0, apperror.NewNotFound("shop", shopID.String())
		}
		return 0, err
	}

	var deleted int64
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = s.repo.DeleteByShop(ctx, shopID)
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info(ctx, "unassigned products from shop",
		"shop_id", shopID.String(),
		"deleted", deleted)

	return deleted, nil
}
