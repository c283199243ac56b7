package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkdb/innoq/format"
)

func TestFilePageStore_LoadReturnsExactPage(t *testing.T) {
	var data []byte
	for i := 0; i < 3; i++ {
		page := make([]byte, format.PageSize)
		page[0] = byte(i + 1)
		data = append(data, page...)
	}
	store := NewFilePageStore(bytes.NewReader(data))

	buf, err := store.Load(1)
	require.NoError(t, err)
	assert.Len(t, buf, format.PageSize)
	assert.Equal(t, byte(2), buf[0])
}

func TestFilePageStore_LoadPastEndOfFile(t *testing.T) {
	store := NewFilePageStore(bytes.NewReader(make([]byte, format.PageSize)))
	_, err := store.Load(5)
	assert.Error(t, err)
}
