package xtdb

import (
	"context"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// EnsureDatabase makes sure the named database exists. The store creates
// its database implicitly on first use; there is no CREATE DATABASE to
// run, and test-harness setup expects this call to succeed against an
// already-running node.
func (c *Connection) EnsureDatabase(ctx context.Context, name string, options map[string]interface{}) error {
	if !c.IsConnected() {
		return adapter.WrapError(dbcapabilities.XTDB, "ensure_database", adapter.ErrConnectionClosed)
	}
	return EnsureDatabase(ctx, c.pool, name, options)
}

// DropDatabase tears down the named database. Callers that want the data
// gone flush the tables instead.
func (c *Connection) DropDatabase(ctx context.Context, name string, options map[string]interface{}) error {
	if !c.IsConnected() {
		return adapter.WrapError(dbcapabilities.XTDB, "drop_database", adapter.ErrConnectionClosed)
	}
	return DropDatabase(ctx, c.pool, name, options)
}

// EnsureDatabase accepts a database-provisioning request without issuing
// anything.
func EnsureDatabase(ctx context.Context, db interface{}, databaseName string, options map[string]interface{}) error {
	return nil
}

// DropDatabase accepts a database-teardown request without issuing
// anything.
func DropDatabase(ctx context.Context, db interface{}, databaseName string, options map[string]interface{}) error {
	return nil
}
