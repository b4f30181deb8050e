package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtdb-contrib/pgwire-adapter/pkg/dbcapabilities"
)

type stubAdapter struct {
	id        dbcapabilities.DatabaseID
	connected int
}

func (s *stubAdapter) Type() dbcapabilities.DatabaseID { return s.id }

func (s *stubAdapter) Capabilities() dbcapabilities.Capability {
	return dbcapabilities.MustGet(s.id)
}

func (s *stubAdapter) Connect(ctx context.Context, config ConnectionConfig) (Connection, error) {
	s.connected++
	return nil, nil
}

func TestRegistry(t *testing.T) {
	t.Run("register and get", func(t *testing.T) {
		reg := NewRegistry()
		stub := &stubAdapter{id: dbcapabilities.XTDB}
		reg.Register(stub)

		got, err := reg.Get(dbcapabilities.XTDB)
		require.NoError(t, err)
		assert.Same(t, StoreAdapter(stub), got)
		assert.True(t, reg.IsRegistered(dbcapabilities.XTDB))
	})

	t.Run("missing adapter", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.Get(dbcapabilities.XTDB)
		assert.ErrorIs(t, err, ErrAdapterNotFound)
	})

	t.Run("lookup by alias", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(&stubAdapter{id: dbcapabilities.XTDB})

		got, err := reg.GetByName("xtdb2")
		require.NoError(t, err)
		assert.Equal(t, dbcapabilities.XTDB, got.Type())
	})

	t.Run("unknown name", func(t *testing.T) {
		reg := NewRegistry()
		_, err := reg.GetByName("oracle")
		assert.ErrorIs(t, err, ErrAdapterNotFound)
	})

	t.Run("connect dispatches on connection type", func(t *testing.T) {
		reg := NewRegistry()
		stub := &stubAdapter{id: dbcapabilities.XTDB}
		reg.Register(stub)

		_, err := reg.Connect(context.Background(), ConnectionConfig{ConnectionType: "xtdb"})
		require.NoError(t, err)
		assert.Equal(t, 1, stub.connected)
	})

	t.Run("list registered", func(t *testing.T) {
		reg := NewRegistry()
		reg.Register(&stubAdapter{id: dbcapabilities.XTDB})
		reg.Register(&stubAdapter{id: dbcapabilities.PostgreSQL})
		assert.ElementsMatch(t,
			[]dbcapabilities.DatabaseID{dbcapabilities.XTDB, dbcapabilities.PostgreSQL},
			reg.ListRegistered())
	})
}
