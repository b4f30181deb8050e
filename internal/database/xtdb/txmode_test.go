package xtdb

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
)

func TestTxOptions(t *testing.T) {
	tests := []struct {
		kind adapter.StatementKind
		mode pgx.TxAccessMode
	}{
		{adapter.KindSelect, pgx.ReadOnly},
		{adapter.KindIntrospection, pgx.ReadOnly},
		{adapter.KindInsert, pgx.ReadWrite},
		{adapter.KindUpdate, pgx.ReadWrite},
		{adapter.KindDelete, pgx.ReadWrite},
		{adapter.KindDDL, pgx.ReadWrite},
		{adapter.KindFlush, pgx.ReadWrite},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.mode, txOptions(tt.kind).AccessMode)
		})
	}
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("read statement opens a read-only transaction", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error { return nil })
		require.NoError(t, err)

		tx := db.lastTx(t)
		assert.Equal(t, pgx.ReadOnly, tx.opts.AccessMode)
		assert.True(t, tx.committed)
		assert.False(t, tx.rolledBack)
	})

	t.Run("write statement opens a read-write transaction", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindInsert, func(scope *txScope) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, pgx.ReadWrite, db.lastTx(t).opts.AccessMode)
	})

	t.Run("callback error rolls back", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)
		boom := errors.New("boom")

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error { return boom })
		assert.ErrorIs(t, err, boom)

		tx := db.lastTx(t)
		assert.False(t, tx.committed)
		assert.True(t, tx.rolledBack)
	})

	t.Run("panic in callback rolls back", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		assert.Panics(t, func() {
			_ = conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error { panic("boom") })
		})
		assert.True(t, db.lastTx(t).rolledBack)
	})

	t.Run("closed connection fails before begin", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)
		conn.connected = 0

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error { return nil })
		assert.ErrorIs(t, err, adapter.ErrConnectionClosed)
		assert.Empty(t, db.txs)
	})

	t.Run("begin failure is wrapped", func(t *testing.T) {
		db := &fakeDB{beginErr: errors.New("refused")}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error { return nil })
		require.Error(t, err)

		var storeErr *adapter.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "begin", storeErr.Operation)
	})
}

func TestTxScopeModeEnforcement(t *testing.T) {
	ctx := context.Background()

	t.Run("write statement in read scope is refused", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error {
			_, err := scope.Exec(ctx, adapter.Statement{Kind: adapter.KindInsert, SQL: "INSERT INTO t (v) VALUES (1)"})
			return err
		})
		assert.True(t, adapter.IsModeViolation(err))

		tx := db.lastTx(t)
		assert.Empty(t, tx.execs, "statement must not reach the store")
		assert.True(t, tx.rolledBack)
	})

	t.Run("read statement in write scope is refused", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindInsert, func(scope *txScope) error {
			_, err := scope.Query(ctx, adapter.Statement{Kind: adapter.KindSelect, SQL: "SELECT 1"})
			return err
		})
		assert.True(t, adapter.IsModeViolation(err))
		assert.Empty(t, db.lastTx(t).queries)
	})

	t.Run("matching kinds pass through", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error {
			rows, err := scope.Query(ctx, adapter.Statement{Kind: adapter.KindSelect, SQL: "SELECT 1"})
			if err != nil {
				return err
			}
			rows.Close()
			return nil
		})
		require.NoError(t, err)
		assert.Len(t, db.lastTx(t).queries, 1)
	})

	t.Run("violation names the kind and the scope mode", func(t *testing.T) {
		db := &fakeDB{}
		conn := newTestConn(db)

		err := conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error {
			_, err := scope.Exec(ctx, adapter.Statement{Kind: adapter.KindDelete, SQL: "DELETE FROM t"})
			return err
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "delete statement issued in read-only transaction scope")
	})
}

func TestClassifySQL(t *testing.T) {
	tests := []struct {
		sql  string
		kind adapter.StatementKind
	}{
		{"SELECT 1", adapter.KindSelect},
		{"  select * from t", adapter.KindSelect},
		{"INSERT INTO t (v) VALUES (1)", adapter.KindInsert},
		{"update t set v = 1", adapter.KindUpdate},
		{"DELETE FROM t", adapter.KindDelete},
		{"CREATE TABLE t (v int)", adapter.KindDDL},
		{"ALTER TABLE t ADD COLUMN v int", adapter.KindDDL},
		{"DROP TABLE t", adapter.KindDDL},
		{"WITH x AS (SELECT 1) SELECT * FROM x", adapter.KindSelect},
	}
	for _, tt := range tests {
		t.Run(tt.sql, func(t *testing.T) {
			assert.Equal(t, tt.kind, classifySQL(tt.sql))
		})
	}
}
