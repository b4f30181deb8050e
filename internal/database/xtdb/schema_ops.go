package xtdb

import (
	"context"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// SchemaOps implements adapter.SchemaOperator for XTDB.
//
// The store is schemaless: tables and columns come into existence when
// documents are inserted. The schema-mutation surface is therefore
// accepted and discarded, issuing zero statements, while introspection
// runs against the store's pg_catalog projection.
type SchemaOps struct {
	conn *Connection
}

// ListTables returns a descriptor for every table in the public schema.
// The listing runs in a read-only transaction.
func (s *SchemaOps) ListTables(ctx context.Context) ([]adapter.TableInfo, error) {
	var tables []adapter.TableInfo
	err := s.conn.withTx(ctx, adapter.KindIntrospection, func(scope *txScope) error {
		rows, err := scope.Query(ctx, adapter.Statement{
			Kind: adapter.KindIntrospection,
			SQL:  tableListQuery,
		})
		if err != nil {
			return err
		}
		defer rows.Close()

		tables, err = scanTableInfo(rows)
		return err
	})
	if err != nil {
		return nil, adapter.WrapError(dbcapabilities.XTDB, "list_tables", err)
	}
	return tables, nil
}

// applyDDL translates a schema mutation and executes whatever it yields.
// For this store that is nothing: the request succeeds without touching
// the wire.
func (s *SchemaOps) applyDDL(ctx context.Context, operation string, req adapter.DDLRequest) error {
	stmts, err := translateDDL(req)
	if err != nil {
		return adapter.WrapError(dbcapabilities.XTDB, operation, err)
	}
	if len(stmts) == 0 {
		return nil
	}

	err = s.conn.withTx(ctx, adapter.KindDDL, func(scope *txScope) error {
		for _, stmt := range stmts {
			if _, err := scope.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
	return adapter.WrapError(dbcapabilities.XTDB, operation, err)
}

// CreateTable accepts and discards a create-table request.
func (s *SchemaOps) CreateTable(ctx context.Context, req adapter.DDLRequest) error {
	return s.applyDDL(ctx, "create_table", req)
}

// AddColumn accepts and discards an add-column request.
func (s *SchemaOps) AddColumn(ctx context.Context, req adapter.DDLRequest) error {
	return s.applyDDL(ctx, "add_column", req)
}

// AlterColumn accepts and discards an alter-column request.
func (s *SchemaOps) AlterColumn(ctx context.Context, req adapter.DDLRequest) error {
	return s.applyDDL(ctx, "alter_column", req)
}

// RemoveColumn accepts and discards a remove-column request.
func (s *SchemaOps) RemoveColumn(ctx context.Context, req adapter.DDLRequest) error {
	return s.applyDDL(ctx, "remove_column", req)
}

// AlterUniqueTogether accepts and discards a unique-together change. The
// store does not enforce uniqueness constraints on data.
func (s *SchemaOps) AlterUniqueTogether(ctx context.Context, req adapter.DDLRequest) error {
	return s.applyDDL(ctx, "alter_unique_together", req)
}

// CreateIndex accepts an index request, rejecting index kinds the store
// cannot express.
func (s *SchemaOps) CreateIndex(ctx context.Context, req adapter.DDLRequest) error {
	return s.applyDDL(ctx, "create_index", req)
}

// CheckConstraints accepts a constraint-verification request without
// issuing anything. The store enforces no foreign-key or check
// constraints on data, so there is nothing to verify.
func (s *SchemaOps) CheckConstraints(ctx context.Context, tables []string) error {
	return nil
}

// SequenceResetStatements returns an empty list: the store has no
// sequence objects to reset after a bulk load.
func (s *SchemaOps) SequenceResetStatements(tables []string) []adapter.Statement {
	return sequenceResetStatements(tables)
}
