package xtdb

import (
	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
)

func init() {
	// Register the XTDB adapter with the global registry
	adapter.Register(NewAdapter())
}
