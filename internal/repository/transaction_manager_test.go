package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_WithTransaction(t *testing.T) {
	t.Run("commits and binds executor", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		tm := NewTransactionManagerAdapter(db)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.WithTransaction(context.Background(), func(txCtx context.Context) error {
			_, ok := txFromContext(txCtx)
			assert.True(t, ok)
			assert.NotSame(t, db, GetExecutor(txCtx, db))
			return nil
		})
		require.NoError(t, err)
		assert.Same(t, db, GetExecutor(context.Background(), db))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		tm := NewTransactionManagerAdapter(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("profile write failed")
		err := tm.WithTransaction(context.Background(), func(context.Context) error { return fnErr })
		assert.ErrorIs(t, err, fnErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back and repanics", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		tm := NewTransactionManagerAdapter(db)

		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = tm.WithTransaction(context.Background(), func(context.Context) error { panic("boom") })
		})
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nested call joins outer transaction", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		tm := NewTransactionManagerAdapter(db)

		mock.ExpectBegin()
		mock.ExpectCommit()

		err := tm.WithTransaction(context.Background(), func(outer context.Context) error {
			return tm.WithTransaction(outer, func(inner context.Context) error {
				assert.Same(t, GetExecutor(outer, db), GetExecutor(inner, db))
				return nil
			})
		})
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		db, mock := setupTestDB(t)
		defer db.Close()
		tm := NewTransactionManagerAdapter(db)

		beginErr := errors.New("too many connections")
		mock.ExpectBegin().WillReturnError(beginErr)

		called := false
		err := tm.WithTransaction(context.Background(), func(context.Context) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, beginErr)
		assert.False(t, called)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
