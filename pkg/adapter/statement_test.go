package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatementKindMode(t *testing.T) {
	readOnly := []StatementKind{KindSelect, KindIntrospection}
	readWrite := []StatementKind{KindInsert, KindUpdate, KindDelete, KindDDL, KindFlush}

	for _, kind := range readOnly {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, ModeReadOnly, kind.Mode())
		})
	}
	for _, kind := range readWrite {
		t.Run(kind.String(), func(t *testing.T) {
			assert.Equal(t, ModeReadWrite, kind.Mode())
		})
	}
}

func TestStatementKindString(t *testing.T) {
	assert.Equal(t, "select", KindSelect.String())
	assert.Equal(t, "flush", KindFlush.String())
	assert.Equal(t, "unknown", StatementKind(99).String())
}

func TestAccessModeString(t *testing.T) {
	assert.Equal(t, "read-only", ModeReadOnly.String())
	assert.Equal(t, "read-write", ModeReadWrite.String())
}

func TestDDLOpString(t *testing.T) {
	assert.Equal(t, "create_table", DDLCreateTable.String())
	assert.Equal(t, "alter_unique_together", DDLAlterUniqueTogether.String())
	assert.Equal(t, "unknown", DDLOp(99).String())
}
