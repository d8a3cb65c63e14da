package product

import (
	"context"
	"fmt"

	"essentia/internal/core/apperror"
	"essentia/internal/core/entity"
	"essentia/internal/core/id"
	"essentia/internal/core/types"
)

// Resolver maps a (lot, bottle size) pair to its retail product,
// creating the product on first use. Identity is the deterministic SKU,
// so repeated bottling runs of the same pair converge on one row.
type Resolver struct {
	repo      Repository
	prefixLen int
}

// NewResolver creates a product resolver.
// prefixLen caps the normalized lot-name prefix in generated SKUs.
func NewResolver(repo Repository, prefixLen int) *Resolver {
	return &Resolver{repo: repo, prefixLen: prefixLen}
}

// ResolveOrCreate finds the product for the lot/size pair or creates it.
// Existing products are reactivated and get their costs refreshed; the
// stock count is never touched here. Must be called inside a transaction:
// the lookup takes a row lock on the product.
func (r *Resolver) ResolveOrCreate(
	ctx context.Context,
	lotID id.ID,
	lotName string,
	sizeML types.Volume,
	unitCost, sellingPrice types.Money,
) (*RetailProduct, error) {
	sku := MakeSKU(lotName, sizeML, r.prefixLen)

	existing, err := r.repo.FindBySKUForUpdate(ctx, sku)
	switch {
	case err == nil:
		existing.Active = true
		existing.Undelete()
		existing.UnitCost = unitCost
		existing.SellingPrice = sellingPrice
		if existing.LotID == nil {
			lid := lotID
			existing.LotID = &lid
		}
		if err := r.repo.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("refresh product %s: %w", sku, err)
		}
		return existing, nil

	case apperror.IsNotFound(err):
		lid := lotID
		p := &RetailProduct{
			Catalog:      entity.NewCatalog(sku, MakeDisplayName(lotName, sizeML)),
			SKU:          sku,
			SizeML:       sizeML,
			LotID:        &lid,
			UnitCost:     unitCost,
			SellingPrice: sellingPrice,
			StockCount:   0,
			Active:       true,
		}
		if err := r.repo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("create product %s: %w", sku, err)
		}
		return p, nil

	default:
		return nil, fmt.Errorf("lookup product %s: %w", sku, err)
	}
}
