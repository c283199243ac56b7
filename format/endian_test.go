package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBigEndianReaders(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}

	v16, err := Be16(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0102), v16)

	v32, err := Be32(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x01020304), v32)

	v48, err := Be48(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x010203040506), v48)

	v64, err := Be64(buf, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0102030405060708), v64)
}

func TestBigEndianReadersOutOfBounds(t *testing.T) {
	buf := []byte{0x01, 0x02}

	_, err := Be32(buf, 0)
	assert.Error(t, err)

	_, err = Be16(buf, 1)
	assert.Error(t, err)

	_, err = Be48(buf, 0)
	assert.Error(t, err)
}

func TestPageTypeString(t *testing.T) {
	assert.Equal(t, "INDEX", PageTypeIndex.String())
	assert.Equal(t, "BLOB", PageTypeBlob.String())
	assert.Equal(t, "UNKNOWN", PageType(9999).String())
}
