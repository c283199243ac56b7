package page_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brinkdb/innoq/format"
	. "github.com/brinkdb/innoq/page"
	"github.com/brinkdb/innoq/query"
	"github.com/brinkdb/innoq/record"
	"github.com/brinkdb/innoq/schema"
)

// leafSchema returns the id (PK)/val table buildLeafPage's records are
// laid out for, so a Decoder can be bound to them.
func leafSchema(t *testing.T) *schema.TableDef {
	td := schema.NewTableDef("t")
	require.NoError(t, td.AddColumn(&schema.Column{Name: "id", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.AddColumn(&schema.Column{Name: "val", Type: schema.TypeInt, Unsigned: true}))
	require.NoError(t, td.SetPrimaryKeys([]string{"id"}))
	return td
}

// buildLeafPage constructs a byte-exact 16 KiB compact-format INDEX page
// carrying len(ids) fixed-width user records (a 4-byte id, a 4-byte val),
// with no variable-length or nullable columns. It mirrors the layout
// record.Decoder and IndexPage both expect: FIL header, 36-byte index
// header, 20-byte fseg header, infimum, supremum, user records, and a
// two-slot page directory (infimum, supremum). It also returns each user
// record's origin offset, in id order, so callers can point directory
// slots at them directly.
func buildLeafPage(pageNo uint32, ids, vals []uint32, next uint32, hasNext bool) ([]byte, []int) {
	buf := make([]byte, format.PageSize)

	nextVal := uint32(0xFFFFFFFF)
	if hasNext {
		nextVal = next
	}
	binary.BigEndian.PutUint32(buf[8:], 0xFFFFFFFF) // prev
	binary.BigEndian.PutUint32(buf[12:], nextVal)
	binary.BigEndian.PutUint16(buf[24:], uint16(format.PageTypeIndex))
	binary.BigEndian.PutUint32(buf[34:], 0) // space id
	binary.BigEndian.PutUint32(buf[4:], pageNo)

	const hdrOff = format.FilHeaderSize
	n := len(ids)
	binary.BigEndian.PutUint16(buf[hdrOff+4:], uint16(n+2)|0x8000) // numHeapRecs | compact flag
	binary.BigEndian.PutUint16(buf[hdrOff+12:], uint16(format.DirNoDirection))
	binary.BigEndian.PutUint16(buf[hdrOff+16:], uint16(n)) // NumUserRecs
	binary.BigEndian.PutUint16(buf[hdrOff+26:], 0)         // page level = leaf

	pos := format.PageDataOff
	infHdrOff := pos
	infOrigin := pos + format.RecordHeaderSize
	copy(buf[infOrigin:], format.LitInfimum)
	pos = infOrigin + format.SystemRecordBytes

	supHdrOff := pos
	supOrigin := pos + format.RecordHeaderSize
	copy(buf[supOrigin:], format.LitSupremum)
	pos = supOrigin + format.SystemRecordBytes

	recOrigins := make([]int, n)
	recHdrOffs := make([]int, n)
	for i := 0; i < n; i++ {
		recHdrOffs[i] = pos
		recOrigins[i] = pos + format.RecordHeaderSize
		binary.BigEndian.PutUint32(buf[recOrigins[i]:], ids[i])
		cur := recOrigins[i] + 4 + 13 // past the hidden trx id + roll pointer
		binary.BigEndian.PutUint32(buf[cur:], vals[i])
		pos = cur + 4
	}
	heapTop := pos
	binary.BigEndian.PutUint16(buf[hdrOff+2:], uint16(heapTop))

	writeRecHeader := func(hdrOffset, heapNo int, rtype format.RecordType, nextOrigin, thisOrigin int) {
		buf[hdrOffset] = 0x01 // numOwned=1
		binary.BigEndian.PutUint16(buf[hdrOffset+1:], uint16(heapNo)<<3|uint16(rtype))
		binary.BigEndian.PutUint16(buf[hdrOffset+3:], uint16(int16(nextOrigin-thisOrigin)))
	}

	firstNext := supOrigin
	if n > 0 {
		firstNext = recOrigins[0]
	}
	writeRecHeader(infHdrOff, 0, format.RecInfimum, firstNext, infOrigin)
	writeRecHeader(supHdrOff, 1, format.RecSupremum, supOrigin, supOrigin)
	for i := 0; i < n; i++ {
		nxt := supOrigin
		if i+1 < n {
			nxt = recOrigins[i+1]
		}
		writeRecHeader(recHdrOffs[i], 2+i, format.RecConventional, nxt, recOrigins[i])
	}

	const numSlots = 2
	binary.BigEndian.PutUint16(buf[hdrOff+0:], numSlots)
	dirStart := format.PageSize - format.FilTrailerSize - numSlots*format.PageDirSlotSize
	binary.BigEndian.PutUint16(buf[dirStart:], uint16(supOrigin))
	binary.BigEndian.PutUint16(buf[dirStart+2:], uint16(infOrigin))

	return buf, recOrigins
}

func TestParseIndexPage_SchemaLessWalk(t *testing.T) {
	buf, _ := buildLeafPage(4, []uint32{1, 5, 9}, []uint32{10, 50, 90}, 0, false)
	inner, err := NewInnerPage(4, buf)
	require.NoError(t, err)

	idx, err := ParseIndexPage(inner, nil)
	require.NoError(t, err)
	assert.True(t, idx.IsLeaf())
	assert.True(t, idx.IsRoot())
	assert.Equal(t, uint16(3), idx.Hdr.NumUserRecs)

	recs, err := idx.WalkRecords(100)
	require.NoError(t, err)
	require.Len(t, recs, 3)
	for _, r := range recs {
		assert.Equal(t, record.KindConventional, r.Kind)
	}
}

func TestParseIndexPage_NextSiblingPage(t *testing.T) {
	buf, _ := buildLeafPage(4, []uint32{1}, []uint32{10}, 7, true)
	inner, err := NewInnerPage(4, buf)
	require.NoError(t, err)
	idx, err := ParseIndexPage(inner, nil)
	require.NoError(t, err)

	next, ok := idx.NextSiblingPage()
	assert.True(t, ok)
	assert.Equal(t, uint32(7), next)
}

func TestIndexPage_ValidatePage(t *testing.T) {
	table := leafSchema(t)
	dec, err := record.NewDecoder(table, record.Config{}, nil)
	require.NoError(t, err)

	buf, recOrigins := buildLeafPage(4, []uint32{1, 5}, []uint32{10, 50}, 0, false)
	inner, err := NewInnerPage(4, buf)
	require.NoError(t, err)
	idx, err := ParseIndexPage(inner, dec)
	require.NoError(t, err)

	// Point the directory straight at the user records, in ascending
	// key order, so the key-based check has real keys to compare.
	idx.DirSlots = []uint16{uint16(recOrigins[0]), uint16(recOrigins[1])}
	assert.NoError(t, idx.ValidatePage(query.DefaultComparator{}))
}

func TestIndexPage_ValidatePage_RejectsDescendingSlots(t *testing.T) {
	table := leafSchema(t)
	dec, err := record.NewDecoder(table, record.Config{}, nil)
	require.NoError(t, err)

	buf, recOrigins := buildLeafPage(4, []uint32{1, 5}, []uint32{10, 50}, 0, false)
	inner, err := NewInnerPage(4, buf)
	require.NoError(t, err)
	idx, err := ParseIndexPage(inner, dec)
	require.NoError(t, err)

	// Point the directory at the user records out of key order (key 5
	// before key 1); the default directory only ever carries infimum
	// and supremum slots, which never have a decoded Key, so this is
	// the only way to exercise the key-ordering check.
	idx.DirSlots = []uint16{uint16(recOrigins[1]), uint16(recOrigins[0])}
	assert.Error(t, idx.ValidatePage(query.DefaultComparator{}))
}

type sdiStore struct {
	sdiPages   int
	indexPage  []byte
	loadedNums []uint32
}

func (s *sdiStore) Load(pageNo uint32) ([]byte, error) {
	s.loadedNums = append(s.loadedNums, pageNo)
	if int(pageNo) < s.sdiPages {
		buf := make([]byte, format.PageSize)
		binary.BigEndian.PutUint32(buf[4:], pageNo)
		binary.BigEndian.PutUint32(buf[8:], 0xFFFFFFFF)
		binary.BigEndian.PutUint32(buf[12:], 0xFFFFFFFF)
		binary.BigEndian.PutUint16(buf[24:], uint16(format.PageTypeSDI))
		return buf, nil
	}
	return s.indexPage, nil
}

func TestLoadIndexPage_SkipsSDIPages(t *testing.T) {
	buf, _ := buildLeafPage(2, []uint32{1}, []uint32{10}, 0, false)
	store := &sdiStore{sdiPages: 2, indexPage: buf}
	idx, skipped, err := LoadIndexPage(store, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, skipped)
	assert.Equal(t, []uint32{0, 1, 2}, store.loadedNums)
	assert.NotNil(t, idx)
}
