package repository

import (
	"context"
	"errors"
	"fmt"

	"lingo-days/internal/domain"
	"lingo-days/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// contextKey is the type of context value keys owned by this package.
type contextKey string

// txKey carries the active *sqlx.Tx. Every repository method resolves its executor through
// GetExecutor, so a call made with a context from WithTransaction joins that transaction.
const txKey contextKey = "tx"

// ErrNoTransaction is returned by operations that only make sense inside WithTransaction,
// such as row locks.
var ErrNoTransaction = errors.New("repository: no transaction in context")

// txFromContext returns the transaction started by WithTransaction, if any.
func txFromContext(ctx context.Context) (*sqlx.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sqlx.Tx)
	return tx, ok
}

// GetExecutor returns the transaction stored in ctx, or db when there is none.
func GetExecutor(ctx context.Context, db DBTX) DBTX {
	if tx, ok := txFromContext(ctx); ok {
		return tx
	}
	return db
}

// TransactionManagerAdapter implements domain.TransactionManager on top of sqlx.DB.
type TransactionManagerAdapter struct {
	db *sqlx.DB
}

// NewTransactionManagerAdapter creates a new transaction manager adapter.
func NewTransactionManagerAdapter(db *sqlx.DB) domain.TransactionManager {
	return &TransactionManagerAdapter{db: db}
}

// WithTransaction runs fn with a context bound to one transaction. Repository calls made with
// that context share the transaction, and row locks taken through it (SELECT ... FOR UPDATE)
// are held until fn returns. The transaction commits when fn returns nil and rolls back on
// error or panic. A nested call joins the outer transaction and leaves commit to it.
func (tma *TransactionManagerAdapter) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := txFromContext(ctx); ok {
		return fn(ctx)
	}

	tx, err := tma.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logger.Get().Error("failed to rollback transaction after panic", zap.Error(rollbackErr))
			}
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		if rollbackErr := tx.Rollback(); rollbackErr != nil {
			return fmt.Errorf("failed to rollback transaction: %v (original error: %w)", rollbackErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
