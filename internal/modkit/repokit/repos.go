// Package repokit holds the shared repository seams: the Queryer
// surface repos run on, transaction helpers, and startup guards
package repokit

import (
	"context"

	"asolens/internal/platform/store"
)

// Queryer is the minimal read and write surface for SQL repos
type Queryer = store.RowQuerier

// TxRunner can execute a function inside a transaction
type TxRunner = store.TxRunner

// WithTx runs fn inside a transaction on tx. The bound Queryer the
// callback receives is only valid until the transaction ends
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
