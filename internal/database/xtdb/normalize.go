package xtdb

import (
	"github.com/jackc/pgx/v5"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
)

// tableListQuery is the fixed introspection query for table listings.
// Every row it returns is reported as a plain table: the store does not
// distinguish views.
const tableListQuery = "SELECT tablename FROM pg_tables WHERE schemaname = 'public'"

// fakeUpdateRowCount is reported for UPDATE statements. The store does
// not return changed row counts, so the adapter fabricates one changed
// row to satisfy callers expecting a nonzero count. This is a documented
// approximation, not a guarantee of accuracy.
const fakeUpdateRowCount = 1

// updateResult is the normalized outcome of any UPDATE.
func updateResult() *adapter.Result {
	return &adapter.Result{
		RowsAffected:    fakeUpdateRowCount,
		CountIsEstimate: true,
	}
}

// sequenceResetStatements returns the statements needed to reset
// identifier sequences after a bulk load. The store has no sequence
// objects, so the list is always empty.
func sequenceResetStatements(tables []string) []adapter.Statement {
	return []adapter.Statement{}
}

// scanTableInfo turns table-listing rows into table descriptors.
func scanTableInfo(rows pgx.Rows) ([]adapter.TableInfo, error) {
	var tables []adapter.TableInfo
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		tables = append(tables, adapter.TableInfo{Name: name, Type: "table"})
	}
	return tables, rows.Err()
}

// scanResult materializes query rows into a normalized result.
func scanResult(rows pgx.Rows) (*adapter.Result, error) {
	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = string(f.Name)
	}

	res := &adapter.Result{Columns: cols}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		row := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			if i < len(vals) {
				row[c] = vals[i]
			}
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	res.RowsAffected = int64(len(res.Rows))
	return res, nil
}
