package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"essentia/internal/domain/catalogs/shop"
	"essentia/internal/infrastructure/storage/postgres"
)

const shopTable = "shops"

// ShopRepo implements shop.Repository.
type ShopRepo struct {
	*BaseCatalogRepo[*shop.Shop]
}

// NewShopRepo creates a new shop repository.
func NewShopRepo(txManager *postgres.TxManager) *ShopRepo {
	return &ShopRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			shopTable,
			postgres.ExtractDBColumns[shop.Shop](),
			func() *shop.Shop { return &shop.Shop{} },
		),
	}
}

// ListActive retrieves all active, undeleted shops.
func (r *ShopRepo) ListActive(ctx context.Context) ([]*shop.Shop, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}
