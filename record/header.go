// header.go - compact record format header parsing (5 bytes).
package record

import (
	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
)

// RecordHeader is the 5-byte header stored immediately before every
// record's primary-key origin.
type RecordHeader struct {
	MinRec        bool
	Deleted       bool
	NumOwned      uint8
	HeapNumber    uint16
	Type          format.RecordType
	NextRecOffset int // signed, relative to this record's origin
}

func ParseRecordHeader(p []byte, off int) (RecordHeader, error) {
	if off < 0 || off+format.RecordHeaderSize > len(p) {
		return RecordHeader{}, errors.Errorf("short record header at offset %d", off)
	}
	b1 := p[off]
	flags := (b1 & 0xF0) >> 4
	nOwned := b1 & 0x0F
	b2, _ := format.Be16(p, off+1)
	rtype := format.RecordType(b2 & 0x0007)
	heap := (b2 & 0xFFF8) >> 3
	nxtU, _ := format.Be16(p, off+3)
	next := int(int16(nxtU))
	return RecordHeader{
		MinRec:        flags&0x1 != 0,
		Deleted:       flags&0x2 != 0,
		NumOwned:      nOwned,
		HeapNumber:    heap,
		Type:          rtype,
		NextRecOffset: next,
	}, nil
}
