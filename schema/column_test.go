package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColumn_MaxBytesPerChar(t *testing.T) {
	cases := []struct {
		charset string
		want    int
	}{
		{"utf8mb4", 4},
		{"utf8", 3},
		{"utf8mb3", 3},
		{"latin1", 1},
		{"", 1},
		{"unknown_charset", 1},
	}
	for _, c := range cases {
		col := &Column{Charset: c.charset}
		assert.Equal(t, c.want, col.MaxBytesPerChar(), c.charset)
	}
}

func TestColumn_IsVariableLength(t *testing.T) {
	assert.True(t, (&Column{Type: TypeVarchar}).IsVariableLength())
	assert.True(t, (&Column{Type: TypeBlob}).IsVariableLength())
	assert.False(t, (&Column{Type: TypeChar, Charset: "latin1"}).IsVariableLength())
	assert.True(t, (&Column{Type: TypeChar, Charset: "utf8mb4"}).IsVariableLength())
	assert.False(t, (&Column{Type: TypeInt}).IsVariableLength())
}

func TestColumn_StorageSize(t *testing.T) {
	assert.Equal(t, 1, (&Column{Type: TypeTinyInt}).StorageSize())
	assert.Equal(t, 4, (&Column{Type: TypeInt}).StorageSize())
	assert.Equal(t, 8, (&Column{Type: TypeBigInt}).StorageSize())
	assert.Equal(t, 10, (&Column{Type: TypeChar, Length: 10, Charset: "latin1"}).StorageSize())
	assert.Equal(t, 0, (&Column{Type: TypeVarchar, Length: 10}).StorageSize())
}
