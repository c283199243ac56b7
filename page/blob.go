// blob.go - off-page BLOB/TEXT chain pages, and the adapter that lets
// the record package walk them without importing this package.
package page

import (
	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
	"github.com/brinkdb/innoq/record"
)

// BlobPage is one link in an externally stored column's overflow
// chain: FIL header, a 4-byte part length, a 4-byte next-page pointer,
// and the part's payload bytes.
type BlobPage struct {
	Inner      *InnerPage
	PartLength uint32
	NextPage   uint32 // blobNull (0xFFFFFFFF) means end of chain
	Payload    []byte
}

const blobNull uint32 = 0xFFFFFFFF

func ParseBlobPage(ip *InnerPage) (*BlobPage, error) {
	if ip.FIL.PageType != format.PageTypeBlob {
		if ip.FIL.PageType == format.PageTypeLobFirst {
			return nil, errors.Wrap(record.ErrUnsupportedLobFormat, "LOB_FIRST page")
		}
		return nil, errors.Wrapf(record.ErrPageTypeMismatch, "page %d: not a BLOB page (type=%s)", ip.PageNo, ip.FIL.PageType)
	}
	off := format.FilHeaderSize
	partLen, err := format.Be32(ip.Data, off)
	if err != nil {
		return nil, errors.Wrap(err, "blob part length")
	}
	next, err := format.Be32(ip.Data, off+4)
	if err != nil {
		return nil, errors.Wrap(err, "blob next page")
	}
	payloadOff := off + 8
	payloadEnd := format.PageSize - format.FilTrailerSize
	if int(partLen) > payloadEnd-payloadOff {
		return nil, errors.Wrapf(record.ErrMalformedRecord, "blob page %d: part length %d exceeds page", ip.PageNo, partLen)
	}
	return &BlobPage{
		Inner:      ip,
		PartLength: partLen,
		NextPage:   next,
		Payload:    ip.Data[payloadOff : payloadOff+int(partLen)],
	}, nil
}

func (b *BlobPage) HasNext() bool { return b.NextPage != blobNull }

// NewBlobLoader returns a record.BlobLoader that walks an overflow
// chain page by page through store, concatenating each page's payload,
// and assembling the full off-page tail of the column's value.
func NewBlobLoader(store PageStore) record.BlobLoader {
	return func(ptr record.OverflowPagePointer) ([]byte, error) {
		var out []byte
		pageNo := ptr.PageNumber
		for {
			inner, err := LoadInnerPage(store, pageNo)
			if err != nil {
				return nil, errors.Wrapf(err, "load overflow page %d", pageNo)
			}
			blob, err := ParseBlobPage(inner)
			if err != nil {
				return nil, err
			}
			out = append(out, blob.Payload...)
			if !blob.HasNext() {
				break
			}
			pageNo = blob.NextPage
		}
		return out, nil
	}
}
