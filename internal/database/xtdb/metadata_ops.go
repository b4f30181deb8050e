package xtdb

import (
	"context"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// MetadataOps implements adapter.MetadataOperator for XTDB connections.
type MetadataOps struct {
	conn *Connection
}

// GetVersion returns the store's version string.
func (m *MetadataOps) GetVersion(ctx context.Context) (string, error) {
	var version string
	err := m.conn.withTx(ctx, adapter.KindIntrospection, func(scope *txScope) error {
		row, err := scope.QueryRow(ctx, adapter.Statement{
			Kind: adapter.KindIntrospection,
			SQL:  "SELECT version()",
		})
		if err != nil {
			return err
		}
		return row.Scan(&version)
	})
	if err != nil {
		return "", adapter.WrapError(dbcapabilities.XTDB, "get_version", err)
	}
	return version, nil
}

// GetTableCount returns the number of tables in the public schema.
func (m *MetadataOps) GetTableCount(ctx context.Context) (int, error) {
	var count int
	err := m.conn.withTx(ctx, adapter.KindIntrospection, func(scope *txScope) error {
		row, err := scope.QueryRow(ctx, adapter.Statement{
			Kind: adapter.KindIntrospection,
			SQL:  "SELECT count(*) FROM pg_tables WHERE schemaname = 'public'",
		})
		if err != nil {
			return err
		}
		return row.Scan(&count)
	})
	if err != nil {
		return 0, adapter.WrapError(dbcapabilities.XTDB, "get_table_count", err)
	}
	return count, nil
}

// CollectDatabaseMetadata collects metadata about the store.
func (m *MetadataOps) CollectDatabaseMetadata(ctx context.Context) (map[string]interface{}, error) {
	metadata := make(map[string]interface{})

	version, err := m.GetVersion(ctx)
	if err != nil {
		return nil, err
	}
	metadata["version"] = version

	tableCount, err := m.GetTableCount(ctx)
	if err != nil {
		return nil, err
	}
	metadata["table_count"] = tableCount

	caps := m.conn.adapter.Capabilities()
	metadata["store_type"] = string(caps.ID)
	metadata["reserved_id_column"] = caps.ReservedIDColumn

	return metadata, nil
}
