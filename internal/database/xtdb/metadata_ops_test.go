package xtdb

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataOpsGetVersion(t *testing.T) {
	db := &fakeDB{rowQueue: [][]interface{}{{"XTDB 2.0.0"}}}
	ops := &MetadataOps{conn: newTestConn(db)}

	version, err := ops.GetVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "XTDB 2.0.0", version)

	tx := db.lastTx(t)
	assert.Equal(t, pgx.ReadOnly, tx.opts.AccessMode)
	require.Len(t, tx.queries, 1)
	assert.Equal(t, "SELECT version()", tx.queries[0].sql)
}

func TestMetadataOpsGetTableCount(t *testing.T) {
	db := &fakeDB{rowQueue: [][]interface{}{{3}}}
	ops := &MetadataOps{conn: newTestConn(db)}

	count, err := ops.GetTableCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, pgx.ReadOnly, db.lastTx(t).opts.AccessMode)
}

func TestCollectDatabaseMetadata(t *testing.T) {
	db := &fakeDB{rowQueue: [][]interface{}{{"XTDB 2.0.0"}, {3}}}
	ops := &MetadataOps{conn: newTestConn(db)}

	metadata, err := ops.CollectDatabaseMetadata(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "XTDB 2.0.0", metadata["version"])
	assert.Equal(t, 3, metadata["table_count"])
	assert.Equal(t, "xtdb", metadata["store_type"])
	assert.Equal(t, "_id", metadata["reserved_id_column"])
}
