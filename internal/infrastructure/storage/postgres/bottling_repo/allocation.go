// Package bottling_repo provides PostgreSQL storage for the conversion
// engine: shop inventory allocations and conversion records.
package bottling_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"essentia/internal/core/apperror"
	"essentia/internal/core/id"
	"essentia/internal/domain/allocation"
	"essentia/internal/infrastructure/storage/postgres"
)

const allocationTable = "shop_inventory"

// AllocationRepo implements allocation.Repository.
type AllocationRepo struct {
	txManager *postgres.TxManager
	inserter  *postgres.BatchInserter
	cols      []string
}

// NewAllocationRepo creates a new shop inventory repository.
func NewAllocationRepo(txManager *postgres.TxManager) *AllocationRepo {
	return &AllocationRepo{
		txManager: txManager,
		inserter:  postgres.NewBatchInserter(txManager),
		cols:      postgres.ExtractDBColumns[allocation.ShopAllocation](),
	}
}

func (r *AllocationRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *AllocationRepo) baseSelect() squirrel.SelectBuilder {
	return r.builder().Select(r.cols...).From(allocationTable)
}

// Get retrieves the allocation row for a shop/product pair.
func (r *AllocationRepo) Get(ctx context.Context, shopID, productID id.ID) (*allocation.ShopAllocation, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"shop_id": shopID}).
		Where(squirrel.Eq{"product_id": productID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	item := &allocation.ShopAllocation{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("allocation", fmt.Sprintf("%s/%s", shopID, productID))
		}
		return nil, fmt.Errorf("get allocation: %w", err)
	}
	return item, nil
}

// AddQuantity inserts the row or adds to an existing quantity.
func (r *AllocationRepo) AddQuantity(ctx context.Context, alloc *allocation.ShopAllocation) (*allocation.ShopAllocation, error) {
	data := postgres.StructToMap(alloc)

	q := r.builder().
		Insert(allocationTable).
		SetMap(data).
		Suffix(`ON CONFLICT (shop_id, product_id) DO UPDATE
			SET quantity = ` + allocationTable + `.quantity + EXCLUDED.quantity,
			    updated_at = EXCLUDED.updated_at
			RETURNING ` + columnList(r.cols))

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build upsert: %w", err)
	}

	item := &allocation.ShopAllocation{}
	if err := pgxscan.Get(ctx, r.txManager.GetQuerier(ctx), item, sql, args...); err != nil {
		return nil, fmt.Errorf("upsert allocation: %w", err)
	}
	return item, nil
}

// SetQuantity overwrites the quantity of an existing row.
func (r *AllocationRepo) SetQuantity(ctx context.Context, allocID id.ID, quantity int) error {
	q := r.builder().
		Update(allocationTable).
		Set("quantity", quantity).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": allocID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set quantity: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("allocation", allocID.String())
	}
	return nil
}

// Zero sets the quantity of an existing row to zero.
func (r *AllocationRepo) Zero(ctx context.Context, allocID id.ID) error {
	return r.SetQuantity(ctx, allocID, 0)
}

// BulkInsert inserts many new rows over the COPY protocol.
// Must be called inside a transaction.
func (r *AllocationRepo) BulkInsert(ctx context.Context, allocs []*allocation.ShopAllocation) error {
	if len(allocs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(allocs))
	for _, a := range allocs {
		data := postgres.StructToMap(a)
		row := make([]any, 0, len(r.cols))
		for _, col := range r.cols {
			row = append(row, data[col])
		}
		rows = append(rows, row)
	}

	if _, err := r.inserter.CopyFromSlice(ctx, allocationTable, r.cols, rows); err != nil {
		return fmt.Errorf("bulk insert allocations: %w", err)
	}
	return nil
}

// ListByShop retrieves all rows for a shop.
func (r *AllocationRepo) ListByShop(ctx context.Context, shopID id.ID) ([]*allocation.ShopAllocation, error) {
	q := r.baseSelect().
		Where(squirrel.Eq{"shop_id": shopID}).
		OrderBy("created_at ASC")

	return r.findMany(ctx, q)
}

// ListNonZero retrieves every row with quantity > 0, across all shops.
func (r *AllocationRepo) ListNonZero(ctx context.Context) ([]*allocation.ShopAllocation, error) {
	q := r.baseSelect().
		Where(squirrel.Gt{"quantity": 0}).
		OrderBy("created_at ASC")

	return r.findMany(ctx, q)
}

// SumByProduct returns the total quantity allocated across shops.
func (r *AllocationRepo) SumByProduct(ctx context.Context, productID id.ID) (int, error) {
	q := r.builder().
		Select("COALESCE(SUM(quantity), 0)").
		From(allocationTable).
		Where(squirrel.Eq{"product_id": productID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum: %w", err)
	}

	var total int
	if err := r.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum allocations: %w", err)
	}
	return total, nil
}

// DeleteByShop removes all rows for a shop, returning the count.
func (r *AllocationRepo) DeleteByShop(ctx context.Context, shopID id.ID) (int64, error) {
	q := r.builder().
		Delete(allocationTable).
		Where(squirrel.Eq{"shop_id": shopID})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("delete by shop: %w", err)
	}
	return result.RowsAffected(), nil
}

func (r *AllocationRepo) findMany(ctx context.Context, q squirrel.SelectBuilder) ([]*allocation.ShopAllocation, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*allocation.ShopAllocation
	if err := pgxscan.Select(ctx, r.txManager.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	return items, nil
}
