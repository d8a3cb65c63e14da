package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"essentia/internal/core/apperror"
	"essentia/internal/core/types"
	"essentia/internal/domain/catalogs/bottlesize"
	"essentia/internal/infrastructure/storage/postgres"
)

const bottleSizeTable = "bottle_sizes"

// BottleSizeRepo implements bottlesize.Repository.
type BottleSizeRepo struct {
	*BaseCatalogRepo[*bottlesize.ComponentStock]
}

// NewBottleSizeRepo creates a new component stock repository.
func NewBottleSizeRepo(txManager *postgres.TxManager) *BottleSizeRepo {
	return &BottleSizeRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txManager,
			bottleSizeTable,
			postgres.ExtractDBColumns[bottlesize.ComponentStock](),
			func() *bottlesize.ComponentStock { return &bottlesize.ComponentStock{} },
		),
	}
}

// GetBySize retrieves the component stock row for a bottle size.
func (r *BottleSizeRepo) GetBySize(ctx context.Context, sizeML types.Volume) (*bottlesize.ComponentStock, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"size_ml": sizeML.ML()}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Limit(1)

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bottle size", sizeML.String())
		}
		return nil, err
	}
	return item, nil
}

// GetBySizeForUpdate retrieves the row for a bottle size with a row lock.
func (r *BottleSizeRepo) GetBySizeForUpdate(ctx context.Context, sizeML types.Volume) (*bottlesize.ComponentStock, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"size_ml": sizeML.ML()}).
		Where(squirrel.Eq{"deletion_mark": false}).
		Suffix("FOR UPDATE")

	item, err := r.FindOne(ctx, q)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("bottle size", sizeML.String())
		}
		return nil, err
	}
	return item, nil
}
