package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"essentia/pkg/numerator"
)

// numeratorQuerier routes numerator queries through the transaction
// manager, so numbers allocated inside a conversion transaction roll
// back together with it.
type numeratorQuerier struct {
	txManager *TxManager
}

// NewNumeratorQuerier adapts the TxManager to the numerator's querier.
func NewNumeratorQuerier(txManager *TxManager) numerator.Querier {
	return &numeratorQuerier{txManager: txManager}
}

func (q *numeratorQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return q.txManager.GetQuerier(ctx).QueryRow(ctx, sql, args...)
}
