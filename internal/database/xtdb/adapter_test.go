package xtdb

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/adapter"
	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

func TestAdapterIdentity(t *testing.T) {
	a := &Adapter{}

	assert.Equal(t, dbcapabilities.XTDB, a.Type())

	caps := a.Capabilities()
	assert.Equal(t, ReservedIDColumn, caps.ReservedIDColumn)
	assert.True(t, caps.RequiresExplicitAccessMode)
	assert.False(t, caps.SupportsServerGeneratedIDs)
	assert.False(t, caps.ReportsAffectedRows)
}

func TestSSLMode(t *testing.T) {
	a := &Adapter{}
	no := false

	t.Run("explicit mode wins", func(t *testing.T) {
		assert.Equal(t, "require", a.sslMode(adapter.ConnectionConfig{SSLMode: "require"}))
	})

	t.Run("unverified peers fall back to verify-ca", func(t *testing.T) {
		assert.Equal(t, "verify-ca", a.sslMode(adapter.ConnectionConfig{SSLRejectUnauthorized: &no}))
	})

	t.Run("default is verify-full", func(t *testing.T) {
		assert.Equal(t, "verify-full", a.sslMode(adapter.ConnectionConfig{}))
	})
}

func TestConnectionIdentity(t *testing.T) {
	conn := newTestConn(&fakeDB{})

	assert.Equal(t, "test", conn.ID())
	assert.Equal(t, dbcapabilities.XTDB, conn.Type())
	assert.True(t, conn.IsConnected())

	assert.NoError(t, conn.Close())
	assert.False(t, conn.IsConnected())
}
