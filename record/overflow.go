// overflow.go - the 20-byte overflow pointer trailing an externally
// stored column's 768-byte on-page prefix.
package record

import (
	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
)

// OverflowPagePointer locates the first page of a BLOB/TEXT value's
// off-page chain and the value's total length.
type OverflowPagePointer struct {
	SpaceID     uint32
	PageNumber  uint32
	Offset      uint32
	TotalLength uint64
}

func ParseOverflowPagePointer(p []byte, off int) (OverflowPagePointer, error) {
	if off+format.OverflowPointerSize > len(p) {
		return OverflowPagePointer{}, errors.Errorf("short overflow pointer at offset %d", off)
	}
	space, _ := format.Be32(p, off+0)
	page, _ := format.Be32(p, off+4)
	pageOff, _ := format.Be32(p, off+8)
	length, _ := format.Be64(p, off+12)
	return OverflowPagePointer{
		SpaceID:     space,
		PageNumber:  page,
		Offset:      pageOff,
		TotalLength: length,
	}, nil
}
