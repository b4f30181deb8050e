package xtdb

import (
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

// ReservedIDColumn is the physical column name the store requires for the
// primary key of every row. This is a wire-format contract with the
// store, not configurable.
const ReservedIDColumn = "_id"

func unsupported(construct, reason string) error {
	return adapter.NewUnsupportedConstructError(dbcapabilities.XTDB, construct, reason)
}

// quoteIdent quotes a single identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quotePath quotes a possibly table-qualified identifier like "t.col".
func quotePath(name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = quoteIdent(p)
	}
	return strings.Join(parts, ".")
}

// checkParam rejects parameter types the store cannot represent.
// Addresses rendered as strings pass through untouched.
func checkParam(v interface{}) error {
	switch v.(type) {
	case net.IP, *net.IPNet, netip.Addr, netip.Prefix:
		return unsupported("inet parameter", "pass network addresses as strings")
	case adapter.DefaultValue, *adapter.DefaultValue:
		return unsupported("DEFAULT clause", "the store has no column defaults")
	}
	return nil
}

// translateSelect rewrites an abstract query into store SQL. Output
// columns always carry explicit aliases where two sources project the
// same unqualified name, because the store rejects duplicate-column
// projections when joined tables share a column name.
func translateSelect(req adapter.SelectRequest) (adapter.Statement, error) {
	for _, ob := range req.OrderBy {
		if ob.Random {
			return adapter.Statement{}, unsupported("random ordering", "ORDER BY RANDOM() is not available")
		}
	}

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(aliasProjection(req.Columns), ", "))
	b.WriteString(" FROM ")
	b.WriteString(quoteIdent(req.Table))
	if req.Alias != "" {
		b.WriteString(" ")
		b.WriteString(quoteIdent(req.Alias))
	}
	for _, j := range req.Joins {
		b.WriteString(" JOIN ")
		b.WriteString(quoteIdent(j.Table))
		if j.Alias != "" {
			b.WriteString(" ")
			b.WriteString(quoteIdent(j.Alias))
		}
		if j.On != "" {
			b.WriteString(" ON ")
			b.WriteString(j.On)
		}
	}

	var args []interface{}
	where, err := buildWhere(req.Where, &args)
	if err != nil {
		return adapter.Statement{}, err
	}
	b.WriteString(where)

	if len(req.OrderBy) > 0 {
		terms := make([]string, len(req.OrderBy))
		for i, ob := range req.OrderBy {
			terms[i] = quotePath(ob.Column)
			if ob.Desc {
				terms[i] += " DESC"
			}
		}
		b.WriteString(" ORDER BY ")
		b.WriteString(strings.Join(terms, ", "))
	}
	if req.Limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d", req.Limit)
	}
	if req.Offset > 0 {
		fmt.Fprintf(&b, " OFFSET %d", req.Offset)
	}

	return adapter.Statement{Kind: adapter.KindSelect, SQL: b.String(), Args: args}, nil
}

// aliasProjection renders the output column list. Columns whose
// unqualified name appears more than once are aliased deterministically
// as <table>_<column>, so no two output columns share a name. Columns
// requesting temporal truncation are rewritten through DATE_TRUNC.
func aliasProjection(cols []adapter.ColumnRef) []string {
	if len(cols) == 0 {
		return []string{"*"}
	}

	counts := make(map[string]int, len(cols))
	for _, c := range cols {
		counts[c.Name]++
	}

	used := make(map[string]bool, len(cols))
	pick := func(base string) string {
		alias := base
		for i := 2; used[alias]; i++ {
			alias = fmt.Sprintf("%s_%d", base, i)
		}
		used[alias] = true
		return alias
	}

	out := make([]string, 0, len(cols))
	for _, c := range cols {
		expr := quoteIdent(c.Name)
		if c.Table != "" {
			expr = quoteIdent(c.Table) + "." + quoteIdent(c.Name)
		}
		if c.Trunc != "" {
			expr = truncExpr(c.Trunc, expr, c.Timezone)
		}

		base := c.Alias
		if base == "" {
			base = c.Name
			if counts[c.Name] > 1 && c.Table != "" {
				base = c.Table + "_" + c.Name
			}
		}
		out = append(out, expr+" AS "+quoteIdent(pick(base)))
	}
	return out
}

// buildWhere renders AND-ed predicates with positional placeholders,
// appending values to args.
func buildWhere(preds []adapter.Predicate, args *[]interface{}) (string, error) {
	if len(preds) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		if err := checkParam(p.Value); err != nil {
			return "", err
		}
		op := p.Op
		if op == "" {
			op = "="
		}
		*args = append(*args, p.Value)
		parts = append(parts, fmt.Sprintf("%s %s $%d", quotePath(p.Column), op, len(*args)))
	}
	return " WHERE " + strings.Join(parts, " AND "), nil
}

// translateInsert produces one INSERT per row. Any caller-declared
// primary-key or parent-link column is renamed to the reserved identifier
// column; rows lacking it get a client-allocated key, and rows supplying
// more than one identifier column are rejected. The identifier is never
// requested back from the store, which performs no identity substitution.
func translateInsert(req adapter.InsertRequest, keys *KeyAllocator) ([]adapter.Statement, []int64, error) {
	if req.OnConflict != adapter.ConflictError {
		return nil, nil, unsupported("ON CONFLICT", "an insert with an existing key overwrites the document")
	}

	var stmts []adapter.Statement
	var allocated []int64

	for _, row := range req.Rows {
		cols := make([]string, len(row.Columns))
		vals := make([]interface{}, len(row.Values))
		copy(cols, row.Columns)
		copy(vals, row.Values)

		hasID := false
		for i, name := range cols {
			if name == ReservedIDColumn ||
				(req.PrimaryKey != "" && name == req.PrimaryKey) ||
				(req.ParentLink != "" && name == req.ParentLink) {
				if hasID {
					return nil, nil, fmt.Errorf("%w: row maps more than one column to %s in insert into %q",
						adapter.ErrInvalidQuery, ReservedIDColumn, req.Table)
				}
				cols[i] = ReservedIDColumn
				hasID = true
			}
			if err := checkParam(vals[i]); err != nil {
				return nil, nil, err
			}
		}
		if !hasID {
			id := keys.Next()
			cols = append([]string{ReservedIDColumn}, cols...)
			vals = append([]interface{}{id}, vals...)
			allocated = append(allocated, id)
		}

		quoted := make([]string, len(cols))
		holders := make([]string, len(cols))
		for i, name := range cols {
			quoted[i] = quoteIdent(name)
			holders[i] = fmt.Sprintf("$%d", i+1)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
			quoteIdent(req.Table), strings.Join(quoted, ", "), strings.Join(holders, ", "))

		if returning := returningColumns(req); len(returning) > 0 {
			b.WriteString(" RETURNING ")
			b.WriteString(strings.Join(returning, ", "))
		}

		stmts = append(stmts, adapter.Statement{Kind: adapter.KindInsert, SQL: b.String(), Args: vals})
	}

	return stmts, allocated, nil
}

// returningColumns drops the identifier column from a RETURNING request:
// the store never returns identifiers server-side.
func returningColumns(req adapter.InsertRequest) []string {
	var out []string
	for _, name := range req.Returning {
		if name == ReservedIDColumn || (req.PrimaryKey != "" && name == req.PrimaryKey) ||
			(req.ParentLink != "" && name == req.ParentLink) {
			continue
		}
		out = append(out, quoteIdent(name))
	}
	return out
}

// translateUpdate rewrites an abstract update into store SQL.
func translateUpdate(req adapter.UpdateRequest) (adapter.Statement, error) {
	var args []interface{}

	parts := make([]string, 0, len(req.Set.Columns))
	for i, col := range req.Set.Columns {
		val := req.Set.Values[i]
		if err := checkParam(val); err != nil {
			return adapter.Statement{}, err
		}
		args = append(args, val)
		parts = append(parts, fmt.Sprintf("%s = $%d", quoteIdent(col), len(args)))
	}

	where, err := buildWhere(req.Where, &args)
	if err != nil {
		return adapter.Statement{}, err
	}

	sql := fmt.Sprintf("UPDATE %s SET %s%s", quoteIdent(req.Table), strings.Join(parts, ", "), where)
	return adapter.Statement{Kind: adapter.KindUpdate, SQL: sql, Args: args}, nil
}

// translateDelete rewrites an abstract delete into store SQL.
func translateDelete(req adapter.DeleteRequest) (adapter.Statement, error) {
	var args []interface{}
	where, err := buildWhere(req.Where, &args)
	if err != nil {
		return adapter.Statement{}, err
	}
	sql := "DELETE FROM " + quoteIdent(req.Table) + where
	return adapter.Statement{Kind: adapter.KindDelete, SQL: sql, Args: args}, nil
}

// translateDDL maps schema mutations for a schemaless store. Everything
// translates to zero statements: the request is accepted and discarded,
// since there is no fixed schema to mutate. Index kinds the store cannot
// express are rejected instead of silently dropped.
func translateDDL(req adapter.DDLRequest) ([]adapter.Statement, error) {
	switch req.Op {
	case adapter.DDLCreateTable, adapter.DDLAddColumn, adapter.DDLAlterColumn,
		adapter.DDLRemoveColumn, adapter.DDLAlterUniqueTogether:
		return nil, nil
	case adapter.DDLCreateIndex:
		if req.Index != nil {
			switch req.Index.Kind {
			case adapter.IndexPartial:
				return nil, unsupported("partial index", "")
			case adapter.IndexCovering:
				return nil, unsupported("covering index", "")
			}
		}
		return nil, nil
	default:
		return nil, unsupported(req.Op.String(), "unknown DDL operation")
	}
}

// flushStatements builds the delete-all statements for a bulk flush. The
// caller runs them inside a single write transaction.
func flushStatements(tables []string) []adapter.Statement {
	stmts := make([]adapter.Statement, 0, len(tables))
	for _, t := range tables {
		stmts = append(stmts, adapter.Statement{
			Kind: adapter.KindFlush,
			SQL:  "DELETE FROM " + quoteIdent(t),
		})
	}
	return stmts
}

// truncExpr rewrites temporal truncation into the store's DATE_TRUNC
// form, normalizing the input expression's timezone first.
func truncExpr(field, expr, tzname string) string {
	if tzname != "" {
		expr = fmt.Sprintf("%s AT TIME ZONE '%s'", expr, strings.ReplaceAll(tzname, "'", "''"))
	}
	return fmt.Sprintf("DATE_TRUNC(%s, %s)", strings.ToUpper(field), expr)
}
