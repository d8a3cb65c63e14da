package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/domain/catalogs/product"
	"essentia/internal/infrastructure/storage/postgres"
)

const productTable = "products"

// ProductRepo implements product.Repository.
type ProductRepo struct {
	*BaseCatalogRepo[*product.RetailProduct]
}

// NewProductRepo creates a new retail product repository.
func NewProductRepo(txManager *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			productTable,
			postgres.ExtractDBColumns[product.RetailProduct](),
			func() *product.RetailProduct { return &product.RetailProduct{} },
		),
	}
}

// FindBySKU retrieves a product by SKU.
func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*product.RetailProduct, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"sku": sku}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return item, nil
}

// FindBySKUForUpdate retrieves a product by SKU with a row lock.
// Deleted rows are included: the resolver reactivates them.
func (r *ProductRepo) FindBySKUForUpdate(ctx context.Context, sku string) (*product.RetailProduct, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"sku": sku}).
		Suffix("FOR UPDATE")

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("product", sku)
		}
		return nil, err
	}
	return item, nil
}

// ListActive retrieves all active, undeleted products.
func (r *ProductRepo) ListActive(ctx context.Context) ([]*product.RetailProduct, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("sku ASC")

	return r.FindMany(ctx, q)
}

// ListByLot retrieves products linked to the given lot.
func (r *ProductRepo) ListByLot(ctx context.Context, lotID id.ID) ([]*product.RetailProduct, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"lot_id": lotID}).
		OrderBy("sku ASC")

	return r.FindMany(ctx, q)
}
