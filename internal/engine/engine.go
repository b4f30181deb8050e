// Package engine dispatches relational requests through a registered
// store adapter. Each session owns one store connection; the pipeline for
// a statement is translate, mode-select, execute, normalize, all of which
// happen inside the adapter. The engine adds session identity, lifecycle
// and logging.
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/logger"
)

// Engine manages sessions against configured stores.
type Engine struct {
	log *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
}

// New creates an engine.
func New(log *logger.Logger) *Engine {
	return &Engine{
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// Open connects to the store described by config and returns a new
// session. One session per logical unit of work; statements on one
// session run one at a time.
func (e *Engine) Open(ctx context.Context, config adapter.ConnectionConfig) (*Session, error) {
	conn, err := adapter.Connect(ctx, config)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:   uuid.NewString(),
		conn: conn,
		log:  e.log,
	}

	e.mu.Lock()
	e.sessions[s.id] = s
	e.mu.Unlock()

	e.log.Info("session %s opened to %s at %s:%d", s.id, config.ConnectionType, config.Host, config.Port)
	return s, nil
}

// Close closes a session and its store connection.
func (e *Engine) Close(s *Session) error {
	e.mu.Lock()
	delete(e.sessions, s.id)
	e.mu.Unlock()

	err := s.conn.Close()
	if err != nil {
		e.log.Error("session %s close failed: %v", s.id, err)
		return err
	}
	e.log.Info("session %s closed", s.id)
	return nil
}

// CloseAll closes every open session. Used on shutdown.
func (e *Engine) CloseAll() {
	e.mu.Lock()
	sessions := make([]*Session, 0, len(e.sessions))
	for _, s := range e.sessions {
		sessions = append(sessions, s)
	}
	e.sessions = make(map[string]*Session)
	e.mu.Unlock()

	for _, s := range sessions {
		if err := s.conn.Close(); err != nil {
			e.log.Error("session %s close failed: %v", s.id, err)
		}
	}
}

// SessionCount returns the number of open sessions.
func (e *Engine) SessionCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.sessions)
}

// Session is one logical unit of work against a store.
type Session struct {
	id   string
	conn adapter.Connection
	log  *logger.Logger
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Connection returns the underlying store connection.
func (s *Session) Connection() adapter.Connection {
	return s.conn
}

// Select runs an abstract query.
func (s *Session) Select(ctx context.Context, req adapter.SelectRequest) (*adapter.Result, error) {
	res, err := s.conn.DataOperations().Select(ctx, req)
	if err != nil {
		s.log.Error("session %s select on %s failed: %v", s.id, req.Table, err)
		return nil, err
	}
	return res, nil
}

// Insert runs an abstract insert, allocating identifiers where needed.
func (s *Session) Insert(ctx context.Context, req adapter.InsertRequest) (*adapter.Result, error) {
	res, err := s.conn.DataOperations().Insert(ctx, req)
	if err != nil {
		s.log.Error("session %s insert into %s failed: %v", s.id, req.Table, err)
		return nil, err
	}
	return res, nil
}

// Update runs an abstract update. The reported row count is fabricated
// by the adapter when the store does not report one.
func (s *Session) Update(ctx context.Context, req adapter.UpdateRequest) (*adapter.Result, error) {
	res, err := s.conn.DataOperations().Update(ctx, req)
	if err != nil {
		s.log.Error("session %s update of %s failed: %v", s.id, req.Table, err)
		return nil, err
	}
	return res, nil
}

// Delete runs an abstract delete.
func (s *Session) Delete(ctx context.Context, req adapter.DeleteRequest) (*adapter.Result, error) {
	res, err := s.conn.DataOperations().Delete(ctx, req)
	if err != nil {
		s.log.Error("session %s delete from %s failed: %v", s.id, req.Table, err)
		return nil, err
	}
	return res, nil
}

// Flush deletes all rows from the given tables in one write transaction.
func (s *Session) Flush(ctx context.Context, tables []string) error {
	if err := s.conn.DataOperations().Flush(ctx, tables); err != nil {
		s.log.Error("session %s flush failed: %v", s.id, err)
		return err
	}
	s.log.Info("session %s flushed %d tables", s.id, len(tables))
	return nil
}

// ListTables lists the store's tables.
func (s *Session) ListTables(ctx context.Context) ([]adapter.TableInfo, error) {
	tables, err := s.conn.SchemaOperations().ListTables(ctx)
	if err != nil {
		s.log.Error("session %s table listing failed: %v", s.id, err)
		return nil, err
	}
	return tables, nil
}

// ApplyDDL dispatches a schema-mutation request to the matching schema
// operation. For schemaless stores these succeed without issuing
// statements.
func (s *Session) ApplyDDL(ctx context.Context, req adapter.DDLRequest) error {
	ops := s.conn.SchemaOperations()

	var err error
	switch req.Op {
	case adapter.DDLCreateTable:
		err = ops.CreateTable(ctx, req)
	case adapter.DDLAddColumn:
		err = ops.AddColumn(ctx, req)
	case adapter.DDLAlterColumn:
		err = ops.AlterColumn(ctx, req)
	case adapter.DDLRemoveColumn:
		err = ops.RemoveColumn(ctx, req)
	case adapter.DDLAlterUniqueTogether:
		err = ops.AlterUniqueTogether(ctx, req)
	case adapter.DDLCreateIndex:
		err = ops.CreateIndex(ctx, req)
	default:
		err = fmt.Errorf("unknown DDL operation: %v", req.Op)
	}

	if err != nil {
		s.log.Error("session %s %s on %s failed: %v", s.id, req.Op, req.Table, err)
		return err
	}
	return nil
}

// CheckConstraints verifies data constraints on the given tables. For
// stores that enforce nothing this succeeds without issuing statements.
func (s *Session) CheckConstraints(ctx context.Context, tables []string) error {
	if err := s.conn.SchemaOperations().CheckConstraints(ctx, tables); err != nil {
		s.log.Error("session %s constraint check failed: %v", s.id, err)
		return err
	}
	return nil
}

// SequenceResetStatements returns the statements needed to reset
// identifier sequences after a bulk load.
func (s *Session) SequenceResetStatements(tables []string) []adapter.Statement {
	return s.conn.SchemaOperations().SequenceResetStatements(tables)
}
