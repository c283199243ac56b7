package column

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkdb/innoq/schema"
)

func TestStringParser_VarcharReadsExactLength(t *testing.T) {
	buf := []byte("hello world")
	col := &schema.Column{Type: schema.TypeVarchar, Length: 20}
	val, n, err := ParseColumn(buf, 0, col, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hello", val)
}

func TestStringParser_FixedCharTrimsTrailingSpaces(t *testing.T) {
	buf := []byte("hi   ")
	col := &schema.Column{Type: schema.TypeChar, Length: 5, Charset: "latin1"}
	val, n, err := ParseColumn(buf, 0, col, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, "hi", val)
}

func TestStringParser_MultiByteCharsetWidensFixedLength(t *testing.T) {
	col := &schema.Column{Name: "c", Type: schema.TypeChar, Length: 5, Charset: "utf8mb4"}
	assert.Equal(t, 20, col.Length*col.MaxBytesPerChar())
}

func TestStringParser_Blob(t *testing.T) {
	buf := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	col := &schema.Column{Type: schema.TypeBlob}
	val, n, err := ParseColumn(buf, 0, col, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, buf, val)
}
