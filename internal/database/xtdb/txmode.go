package xtdb

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// txOptions maps a statement kind onto the explicit access mode the store
// requires for its session. The store distinguishes read and write
// sessions rather than inferring intent from statement text.
func txOptions(kind adapter.StatementKind) pgx.TxOptions {
	if kind.Mode() == adapter.ModeReadOnly {
		return pgx.TxOptions{AccessMode: pgx.ReadOnly}
	}
	return pgx.TxOptions{AccessMode: pgx.ReadWrite}
}

// scopeTx is the subset of pgx.Tx a statement callback can reach.
type scopeTx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txScope is the execution surface handed to statement callbacks. Every
// statement routed through it is checked against the scope's access mode,
// so a write can never slip into a read-only transaction.
type txScope struct {
	tx   scopeTx
	mode adapter.AccessMode
}

func (s *txScope) check(kind adapter.StatementKind) error {
	if kind.Mode() != s.mode {
		return adapter.NewModeViolationError(s.mode, kind)
	}
	return nil
}

// Exec runs a statement that returns no rows.
func (s *txScope) Exec(ctx context.Context, stmt adapter.Statement) (pgconn.CommandTag, error) {
	if err := s.check(stmt.Kind); err != nil {
		return pgconn.CommandTag{}, err
	}
	return s.tx.Exec(ctx, stmt.SQL, stmt.Args...)
}

// Query runs a statement that returns rows. The caller owns the rows and
// must close them before the scope ends.
func (s *txScope) Query(ctx context.Context, stmt adapter.Statement) (pgx.Rows, error) {
	if err := s.check(stmt.Kind); err != nil {
		return nil, err
	}
	return s.tx.Query(ctx, stmt.SQL, stmt.Args...)
}

// QueryRow runs a statement expected to return a single row.
func (s *txScope) QueryRow(ctx context.Context, stmt adapter.Statement) (pgx.Row, error) {
	if err := s.check(stmt.Kind); err != nil {
		return nil, err
	}
	return s.tx.QueryRow(ctx, stmt.SQL, stmt.Args...), nil
}

// withTx runs fn inside a transaction whose access mode matches kind.
// The transaction is released on every exit path: commit on success,
// rollback on error and on panic. Statements never run outside a scoped
// transaction, and no scope outlives its statement.
func (c *Connection) withTx(ctx context.Context, kind adapter.StatementKind, fn func(*txScope) error) error {
	if !c.IsConnected() {
		return adapter.WrapError(dbcapabilities.XTDB, "begin", adapter.ErrConnectionClosed)
	}

	tx, err := c.db.BeginTx(ctx, txOptions(kind))
	if err != nil {
		return adapter.WrapError(dbcapabilities.XTDB, "begin", err)
	}

	done := false
	defer func() {
		if !done {
			_ = tx.Rollback(ctx)
		}
	}()

	if err := fn(&txScope{tx: tx, mode: kind.Mode()}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return adapter.WrapError(dbcapabilities.XTDB, "commit", err)
	}
	done = true
	return nil
}
