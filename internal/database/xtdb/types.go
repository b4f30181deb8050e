package xtdb

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
)

// txBeginner is the subset of *pgxpool.Pool the adapter needs to open
// scoped transactions.
type txBeginner interface {
	BeginTx(ctx context.Context, opts pgx.TxOptions) (pgx.Tx, error)
}

// classifySQL tags raw SQL text by its leading keyword so the right
// access mode can be chosen for statements the caller did not build
// through the structured request model. Unknown text is treated as a
// query; the store rejects writes issued through a read-only session.
func classifySQL(sql string) adapter.StatementKind {
	head, _, _ := strings.Cut(strings.TrimSpace(sql), " ")
	switch strings.ToUpper(head) {
	case "INSERT":
		return adapter.KindInsert
	case "UPDATE":
		return adapter.KindUpdate
	case "DELETE":
		return adapter.KindDelete
	case "CREATE", "ALTER", "DROP":
		return adapter.KindDDL
	default:
		return adapter.KindSelect
	}
}
