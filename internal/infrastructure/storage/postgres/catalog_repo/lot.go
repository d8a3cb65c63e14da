package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"essentia/internal/core/apperror"
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/lot"
	"essentia/internal/infrastructure/storage/postgres"
)

const lotTable = "bulk_lots"

// LotRepo implements lot.Repository.
type LotRepo struct {
	*BaseCatalogRepo[*lot.BulkLot]
}

// NewLotRepo creates a new bulk lot repository.
func NewLotRepo(txManager *postgres.TxManager) *LotRepo {
	return &LotRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			lotTable,
			postgres.ExtractDBColumns[lot.BulkLot](),
			func() *lot.BulkLot { return &lot.BulkLot{} },
		),
	}
}

// FindByName retrieves a lot by exact name.
func (r *LotRepo) FindByName(ctx context.Context, name string) (*lot.BulkLot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bulk lot", name)
		}
		return nil, err
	}
	return item, nil
}

// ListEligible retrieves active lots with at least minVolumeML remaining.
func (r *LotRepo) ListEligible(ctx context.Context, minVolumeML types.Volume) ([]*lot.BulkLot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Where(squirrel.GtOrEq{"remaining_volume_ml": minVolumeML.ML()}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}

// ListActive retrieves all active, undeleted lots.
func (r *LotRepo) ListActive(ctx context.Context) ([]*lot.BulkLot, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"active": true}).
		Where(squirrel.Eq{"deletion_mark": false}).
		OrderBy("name ASC")

	return r.FindMany(ctx, q)
}
