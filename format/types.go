// types.go - page/record size constants and the small closed enums used
// throughout the on-disk layout.
package format

import "github.com/pkg/errors"

// Sizes, in bytes, fixed by the on-disk format.
const (
	PageSize       = 16 * 1024 // 16384, every page on disk is exactly this size
	FilHeaderSize  = 38
	FilTrailerSize = 8

	// 36-byte index header + 20-byte fseg header, immediately after the FIL header.
	PageHeaderSize = 56
	// Offset of the first byte after the FIL header + index/fseg headers,
	// i.e. where the infimum record's 5-byte header begins.
	PageDataOff = FilHeaderSize + PageHeaderSize

	RecordHeaderSize  = 5 // compact record header: 4 bits of flags, 4 bits n_owned, 13 bits heap no, 3 bits type, signed 16-bit next offset
	SystemRecordBytes = 8 // "infimum\x00" or "supremum" literal body
	PageDirSlotSize   = 2 // each page directory slot is a big-endian uint16 offset

	OverflowPointerSize  = 20  // {space_id u32, page_no u32, offset u32, length u64}
	OverflowPrefixSize   = 768 // on-page prefix stored before an externally-stored value
	TrxIDAndRollPtrSize  = 13  // 6-byte transaction id + 7-byte rollback pointer on leaf records
	ChildPageNumberSize  = 4   // trailing field of a node-pointer record

	BlobHeaderSize = FilHeaderSize + 8 // FIL header + 4-byte part length + 4-byte next page number
)

// ErrShortRead is returned by column parsers when a declared length would
// read past the end of the supplied buffer.
var ErrShortRead = errors.New("short read: declared length exceeds buffer")

// PageType identifies the body layout a page carries, stored in the FIL header.
type PageType uint16

const (
	PageTypeAllocated PageType = 0
	PageTypeUndoLog    PageType = 2
	PageTypeIndex      PageType = 17855
	PageTypeBlob       PageType = 10
	PageTypeSDI        PageType = 17853
	PageTypeLobFirst   PageType = 22 // MySQL 8.0 "new" LOB first page, unsupported (spec Non-goal)
)

func (t PageType) String() string {
	switch t {
	case PageTypeAllocated:
		return "ALLOCATED"
	case PageTypeUndoLog:
		return "UNDO_LOG"
	case PageTypeIndex:
		return "INDEX"
	case PageTypeBlob:
		return "BLOB"
	case PageTypeSDI:
		return "SDI"
	case PageTypeLobFirst:
		return "LOB_FIRST"
	default:
		return "UNKNOWN"
	}
}

// PageFormat is the row format a page's records are laid out in. Only
// FormatCompact is supported; FormatRedundant pages are rejected.
type PageFormat uint8

const (
	FormatRedundant PageFormat = 0
	FormatCompact   PageFormat = 1
)

// PageDirection records the most recent insertion direction, used by
// InnoDB's insert-buffer heuristics. Decoded for completeness; unused by
// the query core.
type PageDirection uint16

const (
	DirLeft        PageDirection = 1
	DirRight       PageDirection = 2
	DirSameRec     PageDirection = 3
	DirSamePage    PageDirection = 4
	DirNoDirection PageDirection = 5
)

// RecordType is the 3-bit record-type field in a compact record header.
type RecordType uint8

const (
	RecConventional RecordType = 0
	RecNodePointer  RecordType = 1
	RecInfimum      RecordType = 2
	RecSupremum     RecordType = 3
)

func (t RecordType) String() string {
	switch t {
	case RecConventional:
		return "CONVENTIONAL"
	case RecNodePointer:
		return "NODE_POINTER"
	case RecInfimum:
		return "INFIMUM"
	case RecSupremum:
		return "SUPREMUM"
	default:
		return "UNKNOWN"
	}
}

// System record literal bodies, at fixed offsets on every INDEX page.
var (
	LitInfimum  = []byte("infimum\x00")
	LitSupremum = []byte("supremum")
)

// MaxSDISkips bounds how many consecutive SDI pages a page load will skip
// over looking for the real INDEX page.
const MaxSDISkips = 2
