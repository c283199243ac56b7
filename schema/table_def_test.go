package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableDef_AddColumnTracksNullableAndVarLen(t *testing.T) {
	td := NewTableDef("orders")
	require.NoError(t, td.AddColumn(&Column{Name: "id", Type: TypeInt}))
	require.NoError(t, td.AddColumn(&Column{Name: "note", Type: TypeVarchar, Length: 255, Nullable: true}))

	assert.Equal(t, 2, td.ColumnCount())
	assert.True(t, td.HasNullableColumn())
	assert.True(t, td.HasVariableLengthColumn())
	assert.Equal(t, 1, td.NullableColumnCount())
	assert.Equal(t, 1, td.NullBitmapSize())

	id, _ := td.GetColumnByOrdinal(0)
	assert.Equal(t, "id", id.Name)
}

func TestTableDef_AddColumnRejectsDuplicateName(t *testing.T) {
	td := NewTableDef("orders")
	require.NoError(t, td.AddColumn(&Column{Name: "id", Type: TypeInt}))
	err := td.AddColumn(&Column{Name: "id", Type: TypeInt})
	assert.Error(t, err)
}

func TestTableDef_SetPrimaryKeys(t *testing.T) {
	td := NewTableDef("orders")
	require.NoError(t, td.AddColumn(&Column{Name: "a", Type: TypeInt}))
	require.NoError(t, td.AddColumn(&Column{Name: "b", Type: TypeInt}))

	require.NoError(t, td.SetPrimaryKeys([]string{"b", "a"}))
	pk := td.PrimaryKeyColumns()
	require.Len(t, pk, 2)
	assert.Equal(t, "b", pk[0].Name)
	assert.Equal(t, "a", pk[1].Name)
	assert.True(t, td.HasPrimaryKey())

	col, _ := td.GetColumn("a")
	assert.True(t, col.IsPrimaryKey)
}

func TestTableDef_SetPrimaryKeysRejectsUnknownColumn(t *testing.T) {
	td := NewTableDef("orders")
	require.NoError(t, td.AddColumn(&Column{Name: "a", Type: TypeInt}))
	err := td.SetPrimaryKeys([]string{"missing"})
	assert.Error(t, err)
}

func TestTableDef_GetColumnByOrdinalOutOfRange(t *testing.T) {
	td := NewTableDef("orders")
	_, err := td.GetColumnByOrdinal(0)
	assert.Error(t, err)
}
