// pagesearch.go - directory-slot binary search plus linear probe
// within a single page, grounded on IndexServiceImpl.binarySearchByDirectory
// and linearSearch from the original_source reference.
package query

import (
	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/page"
	"github.com/brinkdb/innoq/record"
)

// SearchPage finds key within pg's directory and record chain. On a
// leaf page it returns either the exact match (Kind=KindConventional)
// or a KindClosest wrapper around the nearest record greater than key.
// On a non-leaf page it returns the node-pointer record whose
// ChildPageNumber the caller should descend into (the first node
// pointer when key sorts below every separator, see descendVia).
func SearchPage(pg *page.IndexPage, key []interface{}, cmp KeyComparator) (*record.Record, error) {
	from, err := binarySearchDirectory(pg, key, cmp)
	if err != nil {
		return nil, err
	}
	return linearProbe(pg, from, key, cmp)
}

// binarySearchDirectory returns the page offset linear_probe should
// start scanning from.
func binarySearchDirectory(pg *page.IndexPage, key []interface{}, cmp KeyComparator) (int, error) {
	slots := pg.DirSlots
	lo, hi := 0, len(slots)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		rec, err := pg.DecodeRecordAt(int(slots[mid]))
		if err != nil {
			return 0, errors.Wrapf(err, "page %d: decode directory slot %d", pg.Inner.PageNo, mid)
		}
		c := compareRecordKey(rec, key, cmp)
		switch {
		case c > 0:
			hi = mid - 1
		case c < 0:
			lo = mid + 1
		default:
			return int(slots[mid]), nil
		}
	}
	if lo-1 < 0 {
		return int(slots[0]), nil
	}
	return int(slots[lo-1]), nil
}

// compareRecordKey compares rec's key against target, treating infimum
// as -infinity and supremum as +infinity.
func compareRecordKey(rec *record.Record, target []interface{}, cmp KeyComparator) int {
	switch rec.Kind {
	case record.KindInfimum:
		return -1
	case record.KindSupremum:
		return 1
	default:
		return cmp.Compare(rec.Key, target)
	}
}

// linearProbe walks next_record_offset from fromOffset, returning the
// outcome of the linear-probe state machine.
func linearProbe(pg *page.IndexPage, fromOffset int, key []interface{}, cmp KeyComparator) (*record.Record, error) {
	leaf := pg.IsLeaf()
	curr, err := pg.DecodeRecordAt(fromOffset)
	if err != nil {
		return nil, err
	}
	var prev *record.Record

	for {
		switch curr.Kind {
		case record.KindInfimum:
			// always less than target; fall through to advance

		case record.KindSupremum:
			if leaf {
				return &record.Record{Kind: record.KindClosest, Closest: curr}, nil
			}
			return descendVia(prev, curr), nil

		default:
			c := cmp.Compare(curr.Key, key)
			if leaf {
				if c == 0 {
					return curr, nil
				}
				if c > 0 {
					return &record.Record{Kind: record.KindClosest, Closest: curr}, nil
				}
			} else {
				if c == 0 {
					return curr, nil
				}
				if c > 0 {
					return descendVia(prev, curr), nil
				}
			}
		}

		prev = curr
		nextOff := curr.NextOffset()
		curr, err = pg.DecodeRecordAt(nextOff)
		if err != nil {
			return nil, errors.Wrapf(err, "page %d: linear probe at offset %d", pg.Inner.PageNo, nextOff)
		}
	}
}

// descendVia implements the documented corner case: when
// the key is smaller than the smallest child separator, prev is nil or
// infimum, and the correct child is curr's, not prev's.
func descendVia(prev, curr *record.Record) *record.Record {
	if prev == nil || prev.Kind == record.KindInfimum {
		return curr
	}
	return prev
}
