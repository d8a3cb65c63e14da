package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// BatchInserter performs bulk inserts over the COPY protocol. Much
// faster than row-by-row INSERTs when assigning a full assortment to a
// shop in one go.
type BatchInserter struct {
	txManager *TxManager
}

// NewBatchInserter creates a new batch inserter.
func NewBatchInserter(txManager *TxManager) *BatchInserter {
	return &BatchInserter{txManager: txManager}
}

// CopyFromSlice bulk-inserts rows into table. Each row is an []any in
// the same order as columns. Must be called inside a transaction.
//
//	n, err := inserter.CopyFromSlice(ctx, "shop_inventory",
//	    []string{"id", "shop_id", "product_id", "quantity"}, rows)
func (b *BatchInserter) CopyFromSlice(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	tx := b.txManager.GetTx(ctx)
	if tx == nil {
		return 0, fmt.Errorf("CopyFromSlice requires transaction context")
	}

	return tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
}
