// Package adapter provides the caller-facing interface for relational
// store adapters. It defines the contracts that store-specific
// implementations must follow.
package adapter

import (
	"context"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// StoreAdapter represents a store technology adapter. Each backing store
// (XTDB, plain PostgreSQL, ...) must implement this interface.
type StoreAdapter interface {
	// Type returns the canonical store type identifier
	Type() dbcapabilities.DatabaseID

	// Capabilities returns the capability metadata for this store type
	Capabilities() dbcapabilities.Capability

	// Connect establishes a connection to a specific database
	Connect(ctx context.Context, config ConnectionConfig) (Connection, error)
}

// Connection represents an active connection to a store.
// This is the main interface for interacting with the store.
type Connection interface {
	// Identity and status
	ID() string
	Type() dbcapabilities.DatabaseID
	IsConnected() bool

	// Lifecycle management
	Ping(ctx context.Context) error
	Close() error

	// Database provisioning. Stores that provision databases implicitly
	// accept these and do nothing.
	EnsureDatabase(ctx context.Context, name string, options map[string]interface{}) error
	DropDatabase(ctx context.Context, name string, options map[string]interface{}) error

	// Operation interfaces
	SchemaOperations() SchemaOperator
	DataOperations() DataOperator
	MetadataOperations() MetadataOperator

	// Raw returns the underlying store-specific connection object.
	// Type assertion is required when using Raw().
	Raw() interface{}

	// Configuration
	Config() ConnectionConfig
	Adapter() StoreAdapter
}

// SchemaOperator handles schema mutation and introspection. For stores
// without a fixed schema the mutation operations are accepted and
// discarded; callers must not assume schema is actually materialized.
type SchemaOperator interface {
	// ListTables returns a descriptor for every table in the public schema
	ListTables(ctx context.Context) ([]TableInfo, error)

	// Schema mutation surface
	CreateTable(ctx context.Context, req DDLRequest) error
	AddColumn(ctx context.Context, req DDLRequest) error
	AlterColumn(ctx context.Context, req DDLRequest) error
	RemoveColumn(ctx context.Context, req DDLRequest) error
	AlterUniqueTogether(ctx context.Context, req DDLRequest) error
	CreateIndex(ctx context.Context, req DDLRequest) error

	// CheckConstraints verifies data constraints on the given tables.
	// Stores that do not enforce constraints succeed without issuing
	// statements.
	CheckConstraints(ctx context.Context, tables []string) error

	// SequenceResetStatements returns the statements needed to reset
	// identifier sequences after a bulk load. Stores without sequence
	// objects return an empty list.
	SequenceResetStatements(tables []string) []Statement
}

// DataOperator handles data statements. Every statement runs in its own
// scoped transaction with the access mode matching its kind.
type DataOperator interface {
	Select(ctx context.Context, req SelectRequest) (*Result, error)
	Insert(ctx context.Context, req InsertRequest) (*Result, error)
	Update(ctx context.Context, req UpdateRequest) (*Result, error)
	Delete(ctx context.Context, req DeleteRequest) (*Result, error)

	// Flush deletes all rows from the given tables inside one write
	// transaction.
	Flush(ctx context.Context, tables []string) error

	// ExecuteQuery runs raw SQL, classifying it to pick the access mode.
	ExecuteQuery(ctx context.Context, sql string, args ...interface{}) (*Result, error)
}

// MetadataOperator handles metadata collection and introspection.
type MetadataOperator interface {
	CollectDatabaseMetadata(ctx context.Context) (map[string]interface{}, error)
	GetVersion(ctx context.Context) (string, error)
	GetTableCount(ctx context.Context) (int, error)
}
