package dbcapabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestXTDBCapabilities(t *testing.T) {
	caps, ok := Get(XTDB)
	require.True(t, ok)

	assert.Equal(t, "_id", caps.ReservedIDColumn)
	assert.True(t, caps.RequiresExplicitAccessMode)
	assert.False(t, caps.SupportsServerGeneratedIDs)
	assert.False(t, caps.ReportsAffectedRows)
	assert.False(t, caps.SupportsIgnoreConflicts)
	assert.False(t, caps.SupportsColumnDefaults)
	assert.False(t, caps.SupportsRandomOrdering)
	assert.False(t, caps.SupportsPartialIndexes)
	assert.False(t, caps.SupportsCoveringIndexes)
	assert.True(t, caps.SupportsExpressionIndexes)
	assert.True(t, caps.UnlimitedTextLength)
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name string
		want DatabaseID
		ok   bool
	}{
		{"xtdb", XTDB, true},
		{"XTDB", XTDB, true},
		{" xtdb ", XTDB, true},
		{"xtdb2", XTDB, true},
		{"postgres", PostgreSQL, true},
		{"postgresql", PostgreSQL, true},
		{"pgsql", PostgreSQL, true},
		{"oracle", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ParseID(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestMustGet(t *testing.T) {
	assert.NotPanics(t, func() { MustGet(XTDB) })
	assert.Panics(t, func() { MustGet("oracle") })
}

func TestGetByName(t *testing.T) {
	caps, ok := GetByName("xtdb2")
	require.True(t, ok)
	assert.Equal(t, XTDB, caps.ID)

	_, ok = GetByName("oracle")
	assert.False(t, ok)
}
