package xtdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
)

// Test doubles for the pgx transaction surface, so translation, mode
// selection and normalization can be exercised without a live store.

type execRecord struct {
	sql  string
	args []interface{}
}

type fakeDB struct {
	txs      []*fakeTx
	beginErr error
	execErr  error
	rows     *fakeRows       // returned by Query when set
	rowQueue [][]interface{} // consumed one entry per QueryRow
}

func (f *fakeDB) BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	tx := &fakeTx{db: f, opts: opts, execErr: f.execErr}
	f.txs = append(f.txs, tx)
	return tx, nil
}

func (f *fakeDB) lastTx(t *testing.T) *fakeTx {
	t.Helper()
	require.NotEmpty(t, f.txs)
	return f.txs[len(f.txs)-1]
}

type fakeTx struct {
	db         *fakeDB
	opts       pgx.TxOptions
	execErr    error
	execs      []execRecord
	queries    []execRecord
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	if t.execErr != nil {
		return pgconn.CommandTag{}, t.execErr
	}
	t.execs = append(t.execs, execRecord{sql: sql, args: arguments})
	return pgconn.NewCommandTag("DELETE 1"), nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.queries = append(t.queries, execRecord{sql: sql, args: args})
	if t.db.rows != nil {
		return t.db.rows, nil
	}
	return &fakeRows{}, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.queries = append(t.queries, execRecord{sql: sql, args: args})
	var vals []interface{}
	if len(t.db.rowQueue) > 0 {
		vals = t.db.rowQueue[0]
		t.db.rowQueue = t.db.rowQueue[1:]
	}
	return &fakeRow{vals: vals}
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

type fakeRows struct {
	cols   []string
	rows   [][]interface{}
	idx    int
	err    error
	closed bool
}

func (r *fakeRows) Close() { r.closed = true }

func (r *fakeRows) Err() error { return r.err }

func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fields := make([]pgconn.FieldDescription, len(r.cols))
	for i, c := range r.cols {
		fields[i] = pgconn.FieldDescription{Name: c}
	}
	return fields
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	return scanInto(r.rows[r.idx-1], dest)
}

func (r *fakeRows) Values() ([]any, error) { return r.rows[r.idx-1], nil }

func (r *fakeRows) RawValues() [][]byte { return nil }

func (r *fakeRows) Conn() *pgx.Conn { return nil }

type fakeRow struct {
	vals []interface{}
}

func (r *fakeRow) Scan(dest ...any) error {
	return scanInto(r.vals, dest)
}

func scanInto(vals []interface{}, dest []any) error {
	if len(dest) > len(vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(vals))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = vals[i].(string)
		case *int:
			*p = vals[i].(int)
		case *int64:
			*p = vals[i].(int64)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func newTestConn(db *fakeDB) *Connection {
	return &Connection{
		id:        "test",
		db:        db,
		config:    adapter.ConnectionConfig{DatabaseID: "test"},
		adapter:   &Adapter{},
		keys:      NewKeyAllocator(),
		connected: 1,
	}
}
