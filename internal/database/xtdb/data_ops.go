package xtdb

import (
	"context"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// DataOps implements adapter.DataOperator for XTDB. Every statement runs
// in its own scoped transaction whose access mode matches the statement
// kind.
type DataOps struct {
	conn *Connection
}

// Select translates and runs an abstract query in a read-only
// transaction.
func (d *DataOps) Select(ctx context.Context, req adapter.SelectRequest) (*adapter.Result, error) {
	stmt, err := translateSelect(req)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "select", err)
	}

	var res *adapter.Result
	err = d.conn.withTx(ctx, adapter.KindSelect, func(scope *txScope) error {
		rows, err := scope.Query(ctx, stmt)
		if err != nil {
			return err
		}
		defer rows.Close()

		res, err = scanResult(rows)
		return err
	})
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "select", err)
	}
	return res, nil
}

// Insert translates and runs an abstract insert in a write transaction.
// Rows without an identifier get a client-allocated one, reported back
// through Result.AllocatedIDs since the store returns nothing. When the
// request asks for columns back, each statement runs as a query and the
// returned rows are collected into the result.
func (d *DataOps) Insert(ctx context.Context, req adapter.InsertRequest) (*adapter.Result, error) {
	stmts, allocated, err := translateInsert(req, d.conn.keys)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "insert", err)
	}
	returning := len(returningColumns(req)) > 0

	res := &adapter.Result{AllocatedIDs: allocated}
	err = d.conn.withTx(ctx, adapter.KindInsert, func(scope *txScope) error {
		for _, stmt := range stmts {
			if !returning {
				if _, err := scope.Exec(ctx, stmt); err != nil {
					return err
				}
				continue
			}

			rows, err := scope.Query(ctx, stmt)
			if err != nil {
				return err
			}
			part, err := scanResult(rows)
			rows.Close()
			if err != nil {
				return err
			}
			res.Columns = part.Columns
			res.Rows = append(res.Rows, part.Rows...)
		}
		return nil
	})
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "insert", err)
	}

	res.RowsAffected = int64(len(stmts))
	return res, nil
}

// Update translates and runs an abstract update in a write transaction.
// The reported row count is fabricated; see updateResult.
func (d *DataOps) Update(ctx context.Context, req adapter.UpdateRequest) (*adapter.Result, error) {
	stmt, err := translateUpdate(req)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "update", err)
	}

	err = d.conn.withTx(ctx, adapter.KindUpdate, func(scope *txScope) error {
		_, err := scope.Exec(ctx, stmt)
		return err
	})
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "update", err)
	}

	return updateResult(), nil
}

// Delete translates and runs an abstract delete in a write transaction.
func (d *DataOps) Delete(ctx context.Context, req adapter.DeleteRequest) (*adapter.Result, error) {
	stmt, err := translateDelete(req)
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "delete", err)
	}

	var tag pgconn.CommandTag
	err = d.conn.withTx(ctx, adapter.KindDelete, func(scope *txScope) error {
		var execErr error
		tag, execErr = scope.Exec(ctx, stmt)
		return execErr
	})
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "delete", err)
	}

	return &adapter.Result{RowsAffected: tag.RowsAffected()}, nil
}

// Flush deletes all rows from the given tables inside one write
// transaction.
func (d *DataOps) Flush(ctx context.Context, tables []string) error {
	stmts := flushStatements(tables)

	err := d.conn.withTx(ctx, adapter.KindFlush, func(scope *txScope) error {
		for _, stmt := range stmts {
			if _, err := scope.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return adapter.WrapError(dbcapabilities.XTDB, "flush", err)
}

// ExecuteQuery runs raw SQL, classifying it by its leading keyword to
// pick the access mode. Raw updates get the same fabricated row count as
// structured ones.
func (d *DataOps) ExecuteQuery(ctx context.Context, sql string, args ...interface{}) (*adapter.Result, error) {
	kind := classifySQL(sql)
	stmt := adapter.Statement{Kind: kind, SQL: sql, Args: args}

	if kind.Mode() == adapter.ModeReadOnly {
		var res *adapter.Result
		err := d.conn.withTx(ctx, kind, func(scope *txScope) error {
			rows, err := scope.Query(ctx, stmt)
			if err != nil {
				return err
			}
			defer rows.Close()

			res, err = scanResult(rows)
			return err
		})
		if err != nil {
			return nil, adapter.WrapError(dbcapabilities.XTDB, "execute_query", err)
		}
		return res, nil
	}

	var tag pgconn.CommandTag
	err := d.conn.withTx(ctx, kind, func(scope *txScope) error {
		var err error
		tag, err = scope.Exec(ctx, stmt)
		return err
	})
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "execute_query", err)
	}

	if kind == adapter.KindUpdate {
		return updateResult(), nil
	}
	return &adapter.Result{RowsAffected: tag.RowsAffected()}, nil
}
