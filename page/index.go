// index.go - INDEX page parsing: index header, page directory,
// infimum/supremum, and decoded user records, with the SDI-page skip
// InnoDB performs when opening a table's first data page.
package page

import (
	"bytes"

	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
	"github.com/brinkdb/innoq/record"
)

// IndexPage is a parsed INDEX page: its index header, page directory,
// system records, and a Decoder bound to the table this page belongs
// to, ready to decode any user record's origin offset.
type IndexPage struct {
	Inner    *InnerPage
	Hdr      record.IndexHeader
	Fseg     FsegHeader
	Infimum  *record.Record
	Supremum *record.Record
	DirSlots []uint16 // ascending key order; DirSlots[i] is a record origin offset

	decoder *record.Decoder
}

// ParseIndexPage parses ip's body as an INDEX page bound to decoder's
// table. It returns ErrPageTypeMismatch for any other page type.
func ParseIndexPage(ip *InnerPage, decoder *record.Decoder) (*IndexPage, error) {
	if ip.FIL.PageType != format.PageTypeIndex {
		return nil, errors.Wrapf(record.ErrPageTypeMismatch, "page %d: type=%s", ip.PageNo, ip.FIL.PageType)
	}
	hdr, err := record.ParseIndexHeader(ip.Data, format.FilHeaderSize)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d: index header", ip.PageNo)
	}
	if hdr.Format != format.FormatCompact {
		return nil, errors.Errorf("page %d: only compact format is supported (format=%d)", ip.PageNo, hdr.Format)
	}
	fseg, err := ParseFsegHeader(ip.Data, format.FilHeaderSize+36)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d: fseg header", ip.PageNo)
	}

	cur := format.PageDataOff

	infHdr, err := record.ParseRecordHeader(ip.Data, cur)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d: infimum header", ip.PageNo)
	}
	infOrigin := cur + format.RecordHeaderSize
	if !bytes.Equal(ip.Data[infOrigin:infOrigin+format.SystemRecordBytes], format.LitInfimum) {
		return nil, errors.Wrapf(record.ErrMalformedRecord, "page %d: infimum literal mismatch at %d", ip.PageNo, infOrigin)
	}
	infimum := &record.Record{PageNumber: ip.PageNo, Offset: infOrigin, Header: infHdr, Kind: record.KindInfimum}

	cur = infOrigin + format.SystemRecordBytes
	supHdr, err := record.ParseRecordHeader(ip.Data, cur)
	if err != nil {
		return nil, errors.Wrapf(err, "page %d: supremum header", ip.PageNo)
	}
	supOrigin := cur + format.RecordHeaderSize
	if !bytes.Equal(ip.Data[supOrigin:supOrigin+format.SystemRecordBytes], format.LitSupremum) {
		return nil, errors.Wrapf(record.ErrMalformedRecord, "page %d: supremum literal mismatch at %d", ip.PageNo, supOrigin)
	}
	supremum := &record.Record{PageNumber: ip.PageNo, Offset: supOrigin, Header: supHdr, Kind: record.KindSupremum}

	n := int(hdr.NumDirSlots)
	dir := make([]uint16, n)
	dirStart := format.PageSize - format.FilTrailerSize - n*format.PageDirSlotSize
	for i := 0; i < n; i++ {
		val, err := format.Be16(ip.Data, dirStart+i*format.PageDirSlotSize)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d: directory slot %d", ip.PageNo, i)
		}
		// Slots are stored back-to-front (descending key order); un-reverse them.
		dir[n-i-1] = val
	}

	return &IndexPage{
		Inner: ip, Hdr: hdr, Fseg: fseg,
		Infimum: infimum, Supremum: supremum, DirSlots: dir,
		decoder: decoder,
	}, nil
}

// LoadIndexPage loads pageNo from store, transparently skipping up to
// format.MaxSDISkips consecutive SDI pages (SDI pages can be
// interleaved with the tablespace's first INDEX pages). It returns
// the number of SDI pages skipped so callers can surface that count
// rather than it silently disappearing.
func LoadIndexPage(store PageStore, pageNo uint32, decoder *record.Decoder) (*IndexPage, int, error) {
	skipped := 0
	for {
		inner, err := LoadInnerPage(store, pageNo)
		if err != nil {
			return nil, skipped, err
		}
		if inner.FIL.PageType == format.PageTypeSDI {
			if skipped >= format.MaxSDISkips {
				return nil, skipped, errors.Errorf("page %d: too many consecutive SDI pages", pageNo)
			}
			skipped++
			pageNo++
			continue
		}
		idx, err := ParseIndexPage(inner, decoder)
		return idx, skipped, err
	}
}

func (p *IndexPage) IsLeaf() bool { return p.Hdr.IsLeaf() }
func (p *IndexPage) IsRoot() bool { return p.Inner.FIL.Prev == nil && p.Inner.FIL.Next == nil }

func (p *IndexPage) NextSiblingPage() (uint32, bool) { return p.Inner.NextPage() }
func (p *IndexPage) PrevSiblingPage() (uint32, bool) { return p.Inner.PrevPage() }

// UsedBytes mirrors the Java reference's page fill-factor calculation:
// heap top plus the FIL trailer and directory size, minus reclaimed
// garbage space.
func (p *IndexPage) UsedBytes() int {
	return int(p.Hdr.HeapTop) + format.FilTrailerSize + int(p.Hdr.NumDirSlots)*format.PageDirSlotSize - int(p.Hdr.GarbageSpace)
}

// DecodeRecordAt decodes the user or system record whose origin is at
// offset within this page's data.
func (p *IndexPage) DecodeRecordAt(offset int) (*record.Record, error) {
	if offset == p.Infimum.Offset {
		return p.Infimum, nil
	}
	if offset == p.Supremum.Offset {
		return p.Supremum, nil
	}
	if p.decoder == nil {
		// No schema bound: expose header/kind only, for callers that
		// just want to see the record chain.
		hdr, err := record.ParseRecordHeader(p.Inner.Data, offset-format.RecordHeaderSize)
		if err != nil {
			return nil, err
		}
		kind := record.KindConventional
		if hdr.Type == format.RecNodePointer {
			kind = record.KindNodePointer
		}
		return &record.Record{PageNumber: p.Inner.PageNo, Offset: offset, Header: hdr, Kind: kind}, nil
	}
	return p.decoder.Decode(p.Inner.PageNo, p.Inner.Data, offset, p.IsLeaf())
}

// WalkRecords walks every user record on the page in heap (next-record)
// order starting just after infimum, stopping at supremum or after max
// records (a safety bound against a corrupt next-offset cycle). System
// records are never included.
func (p *IndexPage) WalkRecords(max int) ([]*record.Record, error) {
	var out []*record.Record
	cur := p.Infimum
	for i := 0; i < max; i++ {
		nextOff := cur.NextOffset()
		if nextOff == p.Supremum.Offset {
			return out, nil
		}
		rec, err := p.DecodeRecordAt(nextOff)
		if err != nil {
			return out, errors.Wrapf(err, "page %d: walk at offset %d", p.Inner.PageNo, nextOff)
		}
		out = append(out, rec)
		cur = rec
	}
	return out, errors.Errorf("page %d: exceeded %d records without reaching supremum", p.Inner.PageNo, max)
}

// KeyComparator is the minimal ordering contract ValidatePage needs to
// check that directory slots are sorted by the key of the record each
// points at. query.KeyComparator satisfies this interface structurally.
type KeyComparator interface {
	Compare(a, b []interface{}) int
}

// ValidatePage checks the page directory's invariants: slots are
// sorted by the key of the record each points at (physical record
// offset need not track logical key order on a real page, so offset
// order is not itself a valid check), no slot owns more than 8
// records, and every slot offset resolves to a record whose header
// parses cleanly. cmp is only consulted for slots whose record carries
// a decoded Key; a nil decoder leaves Key unset, so a schema-less page
// gets the structural checks only. It does not re-derive the heap from
// scratch; it is a cheap sanity pass, not a full consistency checker.
func (p *IndexPage) ValidatePage(cmp KeyComparator) error {
	var prevKey []interface{}
	for i, off := range p.DirSlots {
		rec, err := p.DecodeRecordAt(int(off))
		if err != nil {
			return errors.Wrapf(err, "page %d: directory slot %d", p.Inner.PageNo, i)
		}
		if rec.Header.NumOwned > 8 {
			return errors.Errorf("page %d: directory slot %d owns %d records (max 8)", p.Inner.PageNo, i, rec.Header.NumOwned)
		}
		if cmp != nil && rec.Key != nil {
			if prevKey != nil && cmp.Compare(rec.Key, prevKey) < 0 {
				return errors.Errorf("page %d: directory slot %d key %v sorts before previous slot's key %v", p.Inner.PageNo, i, rec.Key, prevKey)
			}
			prevKey = rec.Key
		}
	}
	return nil
}
