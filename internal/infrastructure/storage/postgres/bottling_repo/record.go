package bottling_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"essentia/internal/domain/bottling"
	"essentia/internal/infrastructure/storage/postgres"
)

const recordTable = "perfume_bottling"

// RecordRepo implements bottling.RecordRepository.
// The table is append-only: there is deliberately no update or delete.
type RecordRepo struct {
	txManager *postgres.TxManager
	cols      []string
}

// NewRecordRepo creates a new conversion record repository.
func NewRecordRepo(txManager *postgres.TxManager) *RecordRepo {
	return &RecordRepo{
		txManager: txManager,
		cols:      postgres.ExtractDBColumns[bottling.ConversionRecord](),
	}
}

func (r *RecordRepo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Create appends a conversion record.
func (r *RecordRepo) Create(ctx context.Context, rec *bottling.ConversionRecord) error {
	q := r.builder().
		Insert(recordTable).
		SetMap(postgres.StructToMap(rec))

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", recordTable, err)
	}
	return nil
}

// List retrieves records matching the filter, newest first.
func (r *RecordRepo) List(ctx context.Context, f bottling.RecordFilter) ([]*bottling.ConversionRecord, int64, error) {
	q := r.builder().
		Select(r.cols...).
		From(recordTable)

	if f.LotID != nil {
		q = q.Where(squirrel.Eq{"lot_id": *f.LotID})
	}
	if f.ShopID != nil {
		q = q.Where(squirrel.Eq{"shop_id": *f.ShopID})
	}
	if f.SizeML != nil {
		q = q.Where(squirrel.Eq{"size_ml": f.SizeML.ML()})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"performed_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.Lt{"performed_at": *f.To})
	}

	countQ := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub")

	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	var total int64
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count records: %w", err)
	}

	q = q.OrderBy("performed_at DESC", "number DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build query: %w", err)
	}

	var items []*bottling.ConversionRecord
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list records: %w", err)
	}

	return items, total, nil
}

// columnList joins column names for RETURNING clauses.
func columnList(cols []string) string {
	return strings.Join(cols, ", ")
}
