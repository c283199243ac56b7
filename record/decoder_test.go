package record

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkdb/innoq/format"
	"github.com/brinkdb/innoq/schema"
)

// writeHeader places a 5-byte compact record header ending at hdrOff+5.
func writeHeader(buf []byte, hdrOff, heapNo int, rtype format.RecordType, next int16) {
	buf[hdrOff] = 0 // flags=0, numOwned=0
	binary.BigEndian.PutUint16(buf[hdrOff+1:], uint16(heapNo)<<3|uint16(rtype))
	binary.BigEndian.PutUint16(buf[hdrOff+3:], uint16(next))
}

func simpleTable(t *testing.T) *schema.TableDef {
	td := schema.NewTableDef("t")
	require.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.AddColumn(&schema.Column{Name: "val", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.SetPrimaryKeys([]string{"id"}))
	return td
}

func TestDecoder_FixedWidthLeafRecord(t *testing.T) {
	table := simpleTable(t)
	dec, err := NewDecoder(table, Config{}, nil)
	require.NoError(t, err)

	buf := make([]byte, 64)
	hdrOff := 10
	writeHeader(buf, hdrOff, 5, format.RecConventional, 0)
	origin := hdrOff + format.RecordHeaderSize
	binary.BigEndian.PutUint32(buf[origin:], 42) // id
	cur := origin + 4 + 13                       // past the hidden trx id + roll pointer
	binary.BigEndian.PutUint32(buf[cur:], 100)    // val

	rec, err := dec.Decode(7, buf, origin, true)
	require.NoError(t, err)
	assert.Equal(t, KindConventional, rec.Kind)
	assert.Equal(t, uint32(7), rec.PageNumber)
	assert.Equal(t, origin, rec.Offset)
	assert.Equal(t, []interface{}{uint32(42)}, rec.Key)
	assert.Equal(t, uint32(42), rec.Values[0])
	assert.Equal(t, uint32(100), rec.Values[1])
}

func TestDecoder_NullableVarLenColumn(t *testing.T) {
	td := schema.NewTableDef("t")
	require.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.AddColumn(&schema.Column{Name: "name", Type: schema.TypeVarchar, Length: 20, Charset: "latin1", Nullable: true}))
	require.NoError(t, td.SetPrimaryKeys([]string{"id"}))
	dec, err := NewDecoder(td, Config{}, nil)
	require.NoError(t, err)

	t.Run("non-null value", func(t *testing.T) {
		buf := make([]byte, 64)
		hdrOff := 20
		buf[hdrOff-1] = 0x00 // null bitmap (adjacent to the header): not null
		buf[hdrOff-2] = 2    // var-len array (below the bitmap): "name" length = 2 (one-byte form)
		writeHeader(buf, hdrOff, 2, format.RecConventional, 0)
		origin := hdrOff + format.RecordHeaderSize
		binary.BigEndian.PutUint32(buf[origin:], 7) // id
		cur := origin + 4 + 13                      // past trx id + roll pointer
		copy(buf[cur:], "hi")

		rec, err := dec.Decode(1, buf, origin, true)
		require.NoError(t, err)
		assert.Equal(t, uint32(7), rec.Values[0])
		assert.Equal(t, "hi", rec.Values[1])
	})

	t.Run("null value", func(t *testing.T) {
		buf := make([]byte, 64)
		hdrOff := 20
		buf[hdrOff-1] = 0x01 // null bitmap (adjacent to the header): bit 0 set
		// A NULL variable-length column has no entry in the length array
		// at all, so hdrOff-2 is left untouched and never read.
		writeHeader(buf, hdrOff, 2, format.RecConventional, 0)
		origin := hdrOff + format.RecordHeaderSize
		binary.BigEndian.PutUint32(buf[origin:], 9)

		rec, err := dec.Decode(1, buf, origin, true)
		require.NoError(t, err)
		assert.Equal(t, uint32(9), rec.Values[0])
		assert.Nil(t, rec.Values[1])
	})
}

func TestDecoder_NodePointerRecord(t *testing.T) {
	table := simpleTable(t)
	dec, err := NewDecoder(table, Config{}, nil)
	require.NoError(t, err)

	buf := make([]byte, 64)
	hdrOff := 10
	writeHeader(buf, hdrOff, 2, format.RecNodePointer, 0)
	origin := hdrOff + format.RecordHeaderSize
	binary.BigEndian.PutUint32(buf[origin:], 99)   // pk prefix
	binary.BigEndian.PutUint32(buf[origin+4:], 55) // child page number

	rec, err := dec.Decode(3, buf, origin, false)
	require.NoError(t, err)
	assert.Equal(t, KindNodePointer, rec.Kind)
	assert.Equal(t, []interface{}{uint32(99)}, rec.Key)
	assert.Equal(t, uint32(55), rec.ChildPageNumber)
}

func TestDecoder_ExternallyStoredColumn(t *testing.T) {
	td := schema.NewTableDef("t")
	require.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.AddColumn(&schema.Column{Name: "data", Type: schema.TypeBlob}))
	require.NoError(t, td.SetPrimaryKeys([]string{"id"}))

	prefix := []byte("PREFIXDATA")
	wantTail := []byte("TAIL")
	var loadedPtr OverflowPagePointer
	loader := BlobLoader(func(ptr OverflowPagePointer) ([]byte, error) {
		loadedPtr = ptr
		return wantTail, nil
	})
	dec, err := NewDecoder(td, Config{}, loader)
	require.NoError(t, err)

	buf := make([]byte, 128)
	hdrOff := 30
	buf[hdrOff-2] = 30   // low byte of 14-bit length (10 prefix + 20 pointer)
	buf[hdrOff-1] = 0xC0 // high byte: two-byte form (0x80) | externally stored (0x40)
	writeHeader(buf, hdrOff, 2, format.RecConventional, 0)
	origin := hdrOff + format.RecordHeaderSize
	binary.BigEndian.PutUint32(buf[origin:], 1) // id
	cur := origin + 4 + 13
	copy(buf[cur:], prefix)
	ptrOff := cur + len(prefix)
	binary.BigEndian.PutUint32(buf[ptrOff:], 0)     // space id
	binary.BigEndian.PutUint32(buf[ptrOff+4:], 9)   // overflow page number
	binary.BigEndian.PutUint32(buf[ptrOff+8:], 0)   // offset
	binary.BigEndian.PutUint64(buf[ptrOff+12:], 14) // total length

	rec, err := dec.Decode(1, buf, origin, true)
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte{}, prefix...), wantTail...), rec.Values[1])
	assert.Equal(t, uint32(9), loadedPtr.PageNumber)
}

func TestDecoder_SoftFailsOnUnsupportedLOB(t *testing.T) {
	td := schema.NewTableDef("t")
	require.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.AddColumn(&schema.Column{Name: "data", Type: schema.TypeBlob}))
	require.NoError(t, td.SetPrimaryKeys([]string{"id"}))

	prefix := []byte("PREFIXDATA")
	loader := BlobLoader(func(ptr OverflowPagePointer) ([]byte, error) {
		return nil, errors.Wrap(ErrUnsupportedLobFormat, "LOB_FIRST page")
	})
	dec, err := NewDecoder(td, Config{ThrowOnUnsupportedNewLOB: false}, loader)
	require.NoError(t, err)

	buf := make([]byte, 128)
	hdrOff := 30
	buf[hdrOff-2] = 30
	buf[hdrOff-1] = 0xC0
	writeHeader(buf, hdrOff, 2, format.RecConventional, 0)
	origin := hdrOff + format.RecordHeaderSize
	binary.BigEndian.PutUint32(buf[origin:], 1)
	cur := origin + 4 + 13
	copy(buf[cur:], prefix)
	ptrOff := cur + len(prefix)
	binary.BigEndian.PutUint32(buf[ptrOff+4:], 9)

	rec, err := dec.Decode(1, buf, origin, true)
	require.NoError(t, err)
	assert.Nil(t, rec.Values[1])
}

func TestDecoder_RejectsTableWithoutPrimaryKey(t *testing.T) {
	td := schema.NewTableDef("t")
	require.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt}))
	_, err := NewDecoder(td, Config{}, nil)
	assert.Error(t, err)
}

func TestRecord_NextOffsetWraps(t *testing.T) {
	r := &Record{Offset: format.PageSize - 5, Header: RecordHeader{NextRecOffset: 10}}
	assert.Equal(t, 5, r.NextOffset())
}
