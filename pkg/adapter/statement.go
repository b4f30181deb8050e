package adapter

// StatementKind classifies an outgoing statement. The kind determines the
// access mode of the transaction the statement runs in.
type StatementKind int

const (
	KindSelect StatementKind = iota
	KindInsert
	KindUpdate
	KindDelete
	KindDDL
	KindIntrospection
	KindFlush
)

// String returns a human-readable name for the statement kind.
func (k StatementKind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	case KindDDL:
		return "ddl"
	case KindIntrospection:
		return "introspection"
	case KindFlush:
		return "flush"
	default:
		return "unknown"
	}
}

// AccessMode is the session mode a statement must run under. The store
// distinguishes read and write sessions instead of inferring intent from
// statement text, so the mode has to be chosen before execution.
type AccessMode int

const (
	ModeReadOnly AccessMode = iota
	ModeReadWrite
)

// String returns a human-readable name for the access mode.
func (m AccessMode) String() string {
	if m == ModeReadWrite {
		return "read-write"
	}
	return "read-only"
}

// Mode returns the access mode required for the statement kind.
// Select and introspection statements are read-only; everything that
// mutates data requires write mode. DDL is grouped with writes even though
// the translator discards it, so a passed-through DDL statement can never
// run in a read-only session.
func (k StatementKind) Mode() AccessMode {
	switch k {
	case KindSelect, KindIntrospection:
		return ModeReadOnly
	default:
		return ModeReadWrite
	}
}

// Statement is a translated, executable statement: SQL text plus
// positional arguments, tagged with the kind it was translated from.
type Statement struct {
	Kind StatementKind
	SQL  string
	Args []interface{}
}

// ColumnRef identifies an output column of a query, optionally qualified
// by the table (or table alias) it comes from.
//
// Trunc, when set, projects the column through temporal truncation to the
// named date part ("day", "month", ...). Timezone names the zone the
// expression is normalized to before truncation; it only applies together
// with Trunc.
type ColumnRef struct {
	Table    string
	Name     string
	Alias    string
	Trunc    string
	Timezone string
}

// Join describes an inner join against another source.
type Join struct {
	Table string
	Alias string
	On    string
}

// Predicate is a single AND-ed filter clause. Op defaults to "=" when
// empty.
type Predicate struct {
	Column string
	Op     string
	Value  interface{}
}

// OrderBy describes one ordering term. Random ordering is carried
// explicitly so translators can reject it for stores that cannot order by
// RANDOM().
type OrderBy struct {
	Column string
	Desc   bool
	Random bool
}

// SelectRequest is an abstract query request.
type SelectRequest struct {
	Table   string
	Alias   string
	Joins   []Join
	Columns []ColumnRef
	Where   []Predicate
	OrderBy []OrderBy
	Limit   int64
	Offset  int64
}

// Row is an ordered set of column/value pairs for a single record.
// Columns and Values are parallel slices.
type Row struct {
	Columns []string
	Values  []interface{}
}

// DefaultValue marks a value position that the caller wants filled in by a
// server-side DEFAULT clause. Stores without DEFAULT support reject rows
// carrying it at translation time.
type DefaultValue struct{}

// ConflictAction selects the behavior when an insert hits an existing key.
type ConflictAction int

const (
	// ConflictError is the conventional behavior: duplicate keys fail.
	ConflictError ConflictAction = iota
	// ConflictIgnore requests ON CONFLICT DO NOTHING semantics.
	ConflictIgnore
	// ConflictUpdate requests upsert semantics.
	ConflictUpdate
)

// InsertRequest is an abstract insert request. PrimaryKey names the
// caller-declared identifier column; ParentLink names a parent-link
// back-reference column in single-table inheritance. Both are renamed to
// the store's reserved identifier column during translation.
type InsertRequest struct {
	Table      string
	Rows       []Row
	PrimaryKey string
	ParentLink string
	OnConflict ConflictAction
	Returning  []string
}

// UpdateRequest is an abstract update request.
type UpdateRequest struct {
	Table string
	Set   Row
	Where []Predicate
}

// DeleteRequest is an abstract delete request.
type DeleteRequest struct {
	Table string
	Where []Predicate
}

// DDLOp enumerates the schema-mutation operations callers may issue.
type DDLOp int

const (
	DDLCreateTable DDLOp = iota
	DDLAddColumn
	DDLAlterColumn
	DDLRemoveColumn
	DDLAlterUniqueTogether
	DDLCreateIndex
)

// String returns a human-readable name for the DDL operation.
func (op DDLOp) String() string {
	switch op {
	case DDLCreateTable:
		return "create_table"
	case DDLAddColumn:
		return "add_column"
	case DDLAlterColumn:
		return "alter_column"
	case DDLRemoveColumn:
		return "remove_column"
	case DDLAlterUniqueTogether:
		return "alter_unique_together"
	case DDLCreateIndex:
		return "create_index"
	default:
		return "unknown"
	}
}

// IndexKind classifies a requested index.
type IndexKind int

const (
	IndexPlain IndexKind = iota
	IndexExpression
	IndexPartial
	IndexCovering
)

// ColumnDef describes a column in a DDL request.
type ColumnDef struct {
	Name       string
	Type       string
	PrimaryKey bool
	HasDefault bool
	Default    interface{}
}

// IndexDef describes an index in a DDL request.
type IndexDef struct {
	Name       string
	Kind       IndexKind
	Columns    []string
	Expression string
	Where      string
	Include    []string
}

// DDLRequest is an abstract schema-mutation request.
type DDLRequest struct {
	Op             DDLOp
	Table          string
	Columns        []ColumnDef
	Column         *ColumnDef
	Index          *IndexDef
	UniqueTogether [][]string
}

// TableInfo is one row of a table listing. Type is always "table": the
// store does not distinguish views.
type TableInfo struct {
	Name string
	Type string
}

// Result is the normalized outcome of a statement. CountIsEstimate marks
// row counts that were fabricated by the adapter because the store does
// not report them.
type Result struct {
	Columns         []string
	Rows            []map[string]interface{}
	RowsAffected    int64
	CountIsEstimate bool
	AllocatedIDs    []int64
}
