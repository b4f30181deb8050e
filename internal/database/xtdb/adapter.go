package xtdb

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// Adapter implements the adapter.StoreAdapter interface for XTDB,
// reached through its PostgreSQL wire-protocol endpoint.
type Adapter struct{}

// NewAdapter creates a new XTDB adapter.
func NewAdapter() adapter.StoreAdapter {
	return &Adapter{}
}

// Type returns the store type identifier.
func (a *Adapter) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.XTDB
}

// Capabilities returns the capabilities metadata for XTDB.
func (a *Adapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(dbcapabilities.XTDB)
}

// Connect establishes a connection to an XTDB node.
func (a *Adapter) Connect(ctx context.Context, config adapter.ConnectionConfig) (adapter.Connection, error) {
	// Build connection string
	var connString strings.Builder

	fmt.Fprintf(&connString, "postgres://%s:%s@%s:%d/%s",
		config.Username,
		config.Password,
		config.Host,
		config.Port,
		config.DatabaseName)

	// Add SSL configuration
	if config.SSL {
		fmt.Fprintf(&connString, "?sslmode=%s", a.sslMode(config))

		if config.SSLCert != nil && *config.SSLCert != "" && config.SSLKey != nil && *config.SSLKey != "" {
			fmt.Fprintf(&connString, "&sslcert=%s&sslkey=%s", *config.SSLCert, *config.SSLKey)
		}
		if config.SSLRootCert != nil && *config.SSLRootCert != "" {
			fmt.Fprintf(&connString, "&sslrootcert=%s", *config.SSLRootCert)
		}
	} else {
		connString.WriteString("?sslmode=disable")
	}

	// Create connection pool. Each statement acquires its own pooled
	// connection for the duration of one scoped transaction, so the
	// access mode never leaks between statements.
	pool, err := pgxpool.New(ctx, connString.String())
	if err != nil {
		return nil, adapter.NewConnectionError(
			dbcapabilities.XTDB,
			config.Host,
			config.Port,
			fmt.Errorf("error connecting to store: %w", err),
		)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, adapter.NewConnectionError(
			dbcapabilities.XTDB,
			config.Host,
			config.Port,
			fmt.Errorf("error pinging store: %w", err),
		)
	}

	conn := &Connection{
		id:        config.DatabaseID,
		pool:      pool,
		db:        pool,
		config:    config,
		adapter:   a,
		keys:      NewKeyAllocator(),
		connected: 1,
	}

	return conn, nil
}

// sslMode returns the appropriate SSL mode for the connection
func (a *Adapter) sslMode(config adapter.ConnectionConfig) string {
	if config.SSLMode != "" {
		return config.SSLMode
	}
	if config.SSLRejectUnauthorized != nil && !*config.SSLRejectUnauthorized {
		return "verify-ca"
	}
	return "verify-full"
}

// Connection implements adapter.Connection for XTDB.
type Connection struct {
	id        string
	pool      *pgxpool.Pool
	db        txBeginner
	config    adapter.ConnectionConfig
	adapter   *Adapter
	keys      *KeyAllocator
	connected int32
}

// ID returns the connection identifier.
func (c *Connection) ID() string {
	return c.id
}

// Type returns the store type.
func (c *Connection) Type() dbcapabilities.DatabaseID {
	return dbcapabilities.XTDB
}

// IsConnected returns whether the connection is active.
func (c *Connection) IsConnected() bool {
	return atomic.LoadInt32(&c.connected) == 1
}

// Ping checks if the connection is alive.
func (c *Connection) Ping(ctx context.Context) error {
	if c.pool == nil {
		return adapter.WrapError(dbcapabilities.XTDB, "ping", adapter.ErrConnectionClosed)
	}
	return c.pool.Ping(ctx)
}

// Close closes the connection.
func (c *Connection) Close() error {
	atomic.StoreInt32(&c.connected, 0)
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

// SchemaOperations returns the schema operator for XTDB.
func (c *Connection) SchemaOperations() adapter.SchemaOperator {
	return &SchemaOps{conn: c}
}

// DataOperations returns the data operator for XTDB.
func (c *Connection) DataOperations() adapter.DataOperator {
	return &DataOps{conn: c}
}

// MetadataOperations returns the metadata operator for XTDB.
func (c *Connection) MetadataOperations() adapter.MetadataOperator {
	return &MetadataOps{conn: c}
}

// Raw returns the underlying pgxpool.Pool.
func (c *Connection) Raw() interface{} {
	return c.pool
}

// Config returns the connection configuration.
func (c *Connection) Config() adapter.ConnectionConfig {
	return c.config
}

// Adapter returns the store adapter.
func (c *Connection) Adapter() adapter.StoreAdapter {
	return c.adapter
}
