// Package adapter defines the contracts between relational callers and
// the stores this project adapts.
//
// # Architecture
//
//   - StoreAdapter: the main interface a store implementation provides
//   - Connection: an active store connection with operation interfaces
//   - Operation interfaces: SchemaOperator, DataOperator, MetadataOperator
//   - Statement model: structured Select/Insert/Update/Delete/DDL requests
//   - Registry: manages adapter registration and retrieval
//
// # Usage
//
// Store implementations register themselves in an init function:
//
//	import (
//	    "github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
//	    _ "github.com/xtdb-contrib/pgwire-adapter/internal/database/xtdb"
//	)
//
// Then connect through the registry:
//
//	conn, err := adapter.Connect(ctx, adapter.ConnectionConfig{
//	    ConnectionType: "xtdb",
//	    Host:           "localhost",
//	    Port:           5432,
//	    DatabaseName:   "xtdb",
//	})
//
// Statements are issued as structured requests, never as raw SQL built by
// the caller. The adapter translates each request into store-compatible
// SQL, wraps it in a transaction whose access mode matches the statement
// kind, and normalizes the result shape so callers keep conventional
// relational semantics.
package adapter
