// inner.go - the base 16 KiB page: FIL header + body + FIL trailer.
package page

import (
	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
)

// InnerPage wraps a raw 16 KiB buffer returned by a PageStore with its
// parsed FIL envelope. It does not interpret the body — that is the job of
// IndexPage or BlobPage depending on FIL.PageType.
type InnerPage struct {
	PageNo  uint32
	FIL     FilHeader
	Trailer FilTrailer
	Data    []byte
}

func NewInnerPage(pageNo uint32, buf []byte) (*InnerPage, error) {
	if len(buf) != format.PageSize {
		return nil, errors.Errorf("page %d: expected %d bytes, got %d", pageNo, format.PageSize, len(buf))
	}
	h, err := ParseFilHeader(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d: FIL header", pageNo)
	}
	t, err := ParseFilTrailer(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d: FIL trailer", pageNo)
	}
	return &InnerPage{PageNo: pageNo, FIL: h, Trailer: t, Data: buf}, nil
}

func (ip *InnerPage) PageType() format.PageType { return ip.FIL.PageType }

// NextPage returns the next sibling page number at this B+ tree level, and
// whether one exists (the FIL header's "next" field is a 0xFFFFFFFF
// sentinel when there is none).
func (ip *InnerPage) NextPage() (uint32, bool) {
	if ip.FIL.Next == nil {
		return 0, false
	}
	return *ip.FIL.Next, true
}

// PrevPage returns the previous sibling page number at this B+ tree level.
func (ip *InnerPage) PrevPage() (uint32, bool) {
	if ip.FIL.Prev == nil {
		return 0, false
	}
	return *ip.FIL.Prev, true
}
