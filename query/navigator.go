// navigator.go - descends the tree from root to a leaf, traverses the
// whole tree depth-first, and resolves the leaf pages that bound a
// range. Grounded on IndexServiceImpl's queryByPrimaryKey /
// queryAllRecords / queryStartAndEndPageNumber.
package query

import (
	"log/slog"

	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/page"
	"github.com/brinkdb/innoq/record"
)

// maxRecordsPerPage bounds a single page's record walk, guarding
// against an unbounded loop if a next_record_offset chain is corrupt.
const maxRecordsPerPage = 8192

// TreeNavigator descends a single clustered index's B+ tree.
type TreeNavigator struct {
	Store      page.PageStore
	Decoder    *record.Decoder
	RootPage   uint32
	Comparator KeyComparator
	Logger     *slog.Logger // nil disables logging
}

func NewTreeNavigator(store page.PageStore, decoder *record.Decoder, rootPage uint32, cmp KeyComparator, logger *slog.Logger) *TreeNavigator {
	if cmp == nil {
		cmp = DefaultComparator{}
	}
	return &TreeNavigator{Store: store, Decoder: decoder, RootPage: rootPage, Comparator: cmp, Logger: logger}
}

func (n *TreeNavigator) loadPage(pageNo uint32) (*page.IndexPage, error) {
	idx, skipped, err := page.LoadIndexPage(n.Store, pageNo, n.Decoder)
	if err != nil {
		return nil, errors.Wrapf(err, "load page %d", pageNo)
	}
	if skipped > 0 && n.Logger != nil {
		n.Logger.Debug("skipped SDI pages before INDEX page", "requested", pageNo, "skipped", skipped)
	}
	return idx, nil
}

// PointLookup returns the exact record for key, or nil if no such key
// exists.
func (n *TreeNavigator) PointLookup(key []interface{}) (*record.Record, error) {
	arity := len(n.Decoder.Table.PrimaryKeyColumns())
	if err := validateKey(key, arity); err != nil {
		return nil, err
	}
	if n.Logger != nil {
		n.Logger.Debug("point lookup", "key", key)
	}
	leafNo, err := n.findLeafPage(key)
	if err != nil {
		return nil, err
	}
	leaf, err := n.loadPage(leafNo)
	if err != nil {
		return nil, err
	}
	rec, err := SearchPage(leaf, key, n.Comparator)
	if err != nil {
		return nil, err
	}
	if rec.Kind == record.KindClosest {
		return nil, nil
	}
	return rec, nil
}

// findLeafPage descends from the root to the leaf page that would
// contain key, without requiring an exact match to exist.
func (n *TreeNavigator) findLeafPage(key []interface{}) (uint32, error) {
	pageNo := n.RootPage
	for {
		idx, err := n.loadPage(pageNo)
		if err != nil {
			return 0, err
		}
		if idx.IsLeaf() {
			return pageNo, nil
		}
		rec, err := SearchPage(idx, key, n.Comparator)
		if err != nil {
			return 0, err
		}
		pageNo = rec.ChildPageNumber
	}
}

// TraverseAll walks every leaf record in primary-key order, depth
// first. predicate, if non-nil, filters which leaf records reach
// visit; it does not stop the walk. visit's error aborts the traversal.
func (n *TreeNavigator) TraverseAll(visit func(*record.Record) error, predicate func(*record.Record) bool) error {
	return n.traversePage(n.RootPage, visit, predicate)
}

func (n *TreeNavigator) traversePage(pageNo uint32, visit func(*record.Record) error, predicate func(*record.Record) bool) error {
	idx, err := n.loadPage(pageNo)
	if err != nil {
		return err
	}
	recs, err := idx.WalkRecords(maxRecordsPerPage)
	if err != nil {
		return err
	}
	if uint16(len(recs)) != idx.Hdr.NumUserRecs && n.Logger != nil {
		n.Logger.Warn("record count mismatch against index header",
			"page", pageNo, "walked", len(recs), "header", idx.Hdr.NumUserRecs)
	}

	if idx.IsLeaf() {
		for _, rec := range recs {
			if predicate != nil && !predicate(rec) {
				continue
			}
			if err := visit(rec); err != nil {
				return err
			}
		}
		return nil
	}

	for _, rec := range recs {
		if err := n.traversePage(rec.ChildPageNumber, visit, predicate); err != nil {
			return err
		}
	}
	return nil
}

// RangeBounds resolves the leaf page numbers that hold the closest
// records to bounds' lower and upper keys. A NOP bound
// is replaced by a synthetic minimum/maximum key of the table's
// primary-key arity.
func (n *TreeNavigator) RangeBounds(bounds Bounds) (startPage, endPage uint32, err error) {
	arity := len(n.Decoder.Table.PrimaryKeyColumns())
	if err := validateBounds(n.Comparator, bounds, arity); err != nil {
		return 0, 0, err
	}
	lowerKey := bounds.Lower.Key
	if bounds.Lower.Op == NOP {
		lowerKey = syntheticKey(MinValue{}, arity)
	}
	upperKey := bounds.Upper.Key
	if bounds.Upper.Op == NOP {
		upperKey = syntheticKey(MaxValue{}, arity)
	}
	startPage, err = n.findLeafPage(lowerKey)
	if err != nil {
		return 0, 0, err
	}
	endPage, err = n.findLeafPage(upperKey)
	if err != nil {
		return 0, 0, err
	}
	return startPage, endPage, nil
}

func syntheticKey(fill interface{}, arity int) []interface{} {
	k := make([]interface{}, arity)
	for i := range k {
		k[i] = fill
	}
	return k
}

// RecordsOnPage decodes every user record physically present on
// pageNo, bypassing tree descent. Useful for inspecting a page
// directly by number.
func (n *TreeNavigator) RecordsOnPage(pageNo uint32) ([]*record.Record, error) {
	idx, err := n.loadPage(pageNo)
	if err != nil {
		return nil, err
	}
	return idx.WalkRecords(maxRecordsPerPage)
}

// ValidatePage runs IndexPage's page-directory sanity checks against
// pageNo on demand, outside of any query path.
func (n *TreeNavigator) ValidatePage(pageNo uint32) error {
	idx, err := n.loadPage(pageNo)
	if err != nil {
		return err
	}
	return idx.ValidatePage(n.Comparator)
}
