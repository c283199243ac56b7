package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkdb/innoq/schema"
)

func TestIntParser_SignedValuesUseSignBitXOR(t *testing.T) {
	// InnoDB stores signed integers with the sign bit flipped so
	// unsigned byte comparison still orders them correctly.
	buf := []byte{0x7F, 0xFF, 0xFF, 0xFF} // 0x7FFFFFFF == -1 (0xFFFFFFFF) XOR sign bit
	col := &schema.Column{Type: schema.TypeInt}
	val, n, err := ParseColumn(buf, 0, col, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, int32(-1), val)
}

func TestIntParser_UnsignedValuesReadDirectly(t *testing.T) {
	buf := []byte{0x00, 0x00, 0x00, 0x2A}
	col := &schema.Column{Type: schema.TypeInt, Unsigned: true}
	val, n, err := ParseColumn(buf, 0, col, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint32(42), val)
}

func TestIntParser_Year(t *testing.T) {
	col := &schema.Column{Type: schema.TypeYear}

	val, n, err := ParseColumn([]byte{125}, 0, col, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, uint16(2025), val)

	val, _, err = ParseColumn([]byte{0}, 0, col, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0), val)
}

func TestIntParser_Boolean(t *testing.T) {
	col := &schema.Column{Type: schema.TypeBoolean}
	val, n, err := ParseColumn([]byte{1}, 0, col, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, true, val)
}

func TestGetParser_UnknownTypeIsNil(t *testing.T) {
	col := &schema.Column{Type: schema.TypeDecimal}
	assert.Nil(t, GetParser(col))
	_, _, err := ParseColumn([]byte{0}, 0, col, 0)
	assert.ErrorIs(t, err, schema.ErrUnsupportedType)
}
