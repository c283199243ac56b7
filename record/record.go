// record.go - the decoded record returned by Decoder.Decode, and the
// Kind tag that replaces a nullable-field struct.
package record

import "github.com/brinkdb/innoq/format"

// Kind distinguishes what a Record actually is, in place of a
// nullable-field struct or a generic-record subclass hierarchy.
type Kind uint8

const (
	// KindInfimum is the page's fixed system low-sentinel record.
	KindInfimum Kind = iota
	// KindSupremum is the page's fixed system high-sentinel record.
	KindSupremum
	// KindConventional is an ordinary leaf user record carrying full
	// column values.
	KindConventional
	// KindNodePointer is a non-leaf record carrying a primary-key prefix
	// and a child page number instead of full column values.
	KindNodePointer
	// KindClosest wraps the nearest record found by a point lookup that
	// did not find an exact key match. Closest is never nil when Kind is
	// KindClosest.
	KindClosest
)

func (k Kind) String() string {
	switch k {
	case KindInfimum:
		return "INFIMUM"
	case KindSupremum:
		return "SUPREMUM"
	case KindConventional:
		return "CONVENTIONAL"
	case KindNodePointer:
		return "NODE_POINTER"
	case KindClosest:
		return "CLOSEST"
	default:
		return "UNKNOWN"
	}
}

// Record is a single decoded row on an INDEX page: a system sentinel, a
// leaf user record, a non-leaf node-pointer record, or the CLOSEST
// wrapper a failed point lookup returns instead of a nullable result.
type Record struct {
	PageNumber uint32
	Offset     int // record origin offset within the page's Data buffer
	Header     RecordHeader
	Kind       Kind

	// Key holds the primary-key column values, present for
	// KindConventional and KindNodePointer records.
	Key []interface{}

	// Values holds every column's decoded value in table-declared
	// order, present only for KindConventional records. Values[i] is
	// nil both for a genuinely NULL column and for any column this
	// decode skipped; callers distinguish by consulting the schema.
	Values []interface{}

	// TrxID and RollPointer are the two hidden leaf-only columns,
	// present for KindConventional records.
	TrxID       uint64
	RollPointer [7]byte

	// ChildPageNumber is the page a non-leaf search descends into,
	// present only for KindNodePointer records.
	ChildPageNumber uint32

	// Closest wraps the nearest record found in place of a key match,
	// present only for KindClosest records.
	Closest *Record
}

func (r *Record) IsSystem() bool {
	return r.Kind == KindInfimum || r.Kind == KindSupremum
}

// NextOffset returns the absolute page offset of the next record in
// heap order. The header's next-offset is signed and relative; it
// wraps into unsigned page coordinates.
func (r *Record) NextOffset() int {
	n := (r.Offset + r.Header.NextRecOffset) % format.PageSize
	if n < 0 {
		n += format.PageSize
	}
	return n
}
