// iterator.go - lazy cursor over the leaf-level sibling chain between
// two resolved leaf pages, grounded on the anonymous RecordIterator in
// IndexServiceImpl's getRangeQueryIterator.
package query

import (
	"github.com/brinkdb/innoq/record"
)

// RangeIterator streams qualified leaf records across the leaf pages
// from the start leaf to the end leaf, both included. Construction does
// no I/O: the first page load happens inside the first HasNext call.
type RangeIterator struct {
	nav    *TreeNavigator
	bounds Bounds

	started   bool
	done      bool
	err       error
	startPage uint32
	endPage   uint32

	pageObj *IndexPager // current page's sibling-chain handle
	records []*record.Record
	pos     int
}

// IndexPager is the minimal surface RangeIterator needs from a loaded
// page: its records are pulled up front, and only the sibling pointer
// is consulted afterward.
type IndexPager struct {
	pageNo   uint32
	nextPage uint32
	hasNext  bool
}

func NewRangeIterator(nav *TreeNavigator, bounds Bounds) *RangeIterator {
	return &RangeIterator{nav: nav, bounds: bounds}
}

// Err returns the first error encountered, if any. Once non-nil,
// HasNext always returns false.
func (it *RangeIterator) Err() error { return it.err }

// HasNext reports whether Next will return a record. It performs the
// iterator's first page load on its first call.
func (it *RangeIterator) HasNext() bool {
	if it.err != nil {
		return false
	}
	if !it.started {
		it.started = true
		if err := it.init(); err != nil {
			it.err = err
			return false
		}
	}
	for it.pos >= len(it.records) {
		if it.done {
			return false
		}
		if err := it.advance(); err != nil {
			it.err = err
			return false
		}
	}
	return true
}

// Next returns the next qualified record. Callers must call HasNext
// first; Next does not itself advance past an exhausted page.
func (it *RangeIterator) Next() *record.Record {
	r := it.records[it.pos]
	it.pos++
	return r
}

func (it *RangeIterator) init() error {
	start, end, err := it.nav.RangeBounds(it.bounds)
	if err != nil {
		return err
	}
	it.startPage, it.endPage = start, end
	return it.loadPage(start)
}

// advance moves to the next sibling page once the current page's
// records are exhausted.
func (it *RangeIterator) advance() error {
	if it.pageObj == nil || !it.pageObj.hasNext || it.pageObj.pageNo == it.endPage {
		it.done = true
		return nil
	}
	return it.loadPage(it.pageObj.nextPage)
}

// loadPage decodes pageNo's records and applies the range predicate if
// pageNo is either boundary page; interior pages between the resolved
// start and end leaves are emitted unfiltered.
func (it *RangeIterator) loadPage(pageNo uint32) error {
	idx, err := it.nav.loadPage(pageNo)
	if err != nil {
		return err
	}
	recs, err := idx.WalkRecords(maxRecordsPerPage)
	if err != nil {
		return err
	}

	isEdge := pageNo == it.startPage || pageNo == it.endPage
	if isEdge {
		recs = it.filter(recs)
	}

	next, hasNext := idx.NextSiblingPage()
	it.pageObj = &IndexPager{pageNo: pageNo, nextPage: next, hasNext: hasNext}
	it.records = recs
	it.pos = 0

	if pageNo == it.endPage {
		it.done = true
	}
	return nil
}

// filter keeps records satisfying both bounds, short-circuiting as
// soon as the upper bound first fails — records are in ascending key
// order, so everything after that point fails too.
func (it *RangeIterator) filter(recs []*record.Record) []*record.Record {
	cmp := it.nav.Comparator
	out := make([]*record.Record, 0, len(recs))
	for _, r := range recs {
		if !satisfiesLower(cmp, r.Key, it.bounds.Lower) {
			continue
		}
		if !satisfiesUpper(cmp, r.Key, it.bounds.Upper) {
			it.done = true
			break
		}
		out = append(out, r)
	}
	return out
}
