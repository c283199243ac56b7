// innoq is a CLI over the query core: dump a page, validate its
// directory, or run a point/range lookup against a tablespace file and
// a CREATE TABLE schema.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"

	"github.com/brinkdb/innoq/format"
	"github.com/brinkdb/innoq/page"
	"github.com/brinkdb/innoq/query"
	"github.com/brinkdb/innoq/record"
	"github.com/brinkdb/innoq/schema"
	"github.com/brinkdb/innoq/storage"
)

func main() {
	var (
		file       = flag.String("file", "", "path to the tablespace (.ibd) file (required)")
		sqlFile    = flag.String("sql", "", "path to a SQL file with the table's CREATE TABLE statement")
		rootPage   = flag.Uint("root", 3, "root page number of the clustered index")
		dumpPage   = flag.Int("dump", -1, "dump the FIL/index header and records of this page number")
		validate   = flag.Int("validate", -1, "run the page-directory sanity check on this page number")
		point      = flag.String("point", "", "comma-separated primary key values for a point lookup")
		rangeLower = flag.String("range-lower", "", "lower bound as OP:v1,v2,... (OP one of GT,GTE); empty means unbounded")
		rangeUpper = flag.String("range-upper", "", "upper bound as OP:v1,v2,... (OP one of LT,LTE); empty means unbounded")
		maxRecs    = flag.Int("max-records", 1000, "cap on records printed or scanned")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "innoq - InnoDB clustered-index query core\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s -file data.ibd [options]\n\n", os.Args[0])
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -file t.ibd -dump 4\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file t.ibd -sql t.sql -point 42\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file t.ibd -sql t.sql -range-lower GTE:10 -range-upper LT:20\n", os.Args[0])
	}
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fatal("open file", err)
	}
	defer f.Close()

	store := storage.NewFilePageStore(f)

	if *dumpPage >= 0 {
		dumpPageCmd(store, uint32(*dumpPage), *maxRecs)
		return
	}

	var table *schema.TableDef
	if *sqlFile != "" {
		table, err = schema.ParseTableDefFromSQLFile(*sqlFile)
		if err != nil {
			fatal("parse SQL file", err)
		}
	}

	if *validate >= 0 {
		validateCmd(store, table, uint32(*validate))
		return
	}

	if table == nil {
		fmt.Fprintln(os.Stderr, "Error: -sql is required for -point/-range queries")
		os.Exit(1)
	}
	decoder, err := record.NewDecoder(table, record.Config{}, page.NewBlobLoader(store))
	if err != nil {
		fatal("build decoder", err)
	}
	nav := query.NewTreeNavigator(store, decoder, uint32(*rootPage), query.DefaultComparator{}, nil)

	switch {
	case *point != "":
		pointCmd(nav, table, *point)
	case *rangeLower != "" || *rangeUpper != "":
		rangeCmd(nav, table, *rangeLower, *rangeUpper, *maxRecs)
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func dumpPageCmd(store *storage.FilePageStore, pageNo uint32, maxRecs int) {
	inner, err := page.LoadInnerPage(store, pageNo)
	if err != nil {
		fatal("load page", err)
	}
	fmt.Printf("Page %d: type=%s space=%d lsn=%d\n", inner.PageNo, inner.FIL.PageType, inner.FIL.SpaceID, inner.FIL.LastModLSN)
	if inner.FIL.PageType != format.PageTypeIndex {
		return
	}
	idx, err := page.ParseIndexPage(inner, nil)
	if err != nil {
		fatal("parse index page", err)
	}
	fmt.Printf("  level=%d leaf=%v root=%v records=%d dir_slots=%d used=%d/%d bytes\n",
		idx.Hdr.PageLevel, idx.IsLeaf(), idx.IsRoot(), idx.Hdr.NumUserRecs, idx.Hdr.NumDirSlots,
		idx.UsedBytes(), format.PageSize)

	recs, err := idx.WalkRecords(maxRecs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "  walk error: %v\n", err)
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  #\tHeap#\tType\tNext")
	for i, r := range recs {
		fmt.Fprintf(w, "  %d\t%d\t%s\t%d\n", i, r.Header.HeapNumber, r.Kind, r.Header.NextRecOffset)
	}
	w.Flush()
}

func validateCmd(store *storage.FilePageStore, table *schema.TableDef, pageNo uint32) {
	var decoder *record.Decoder
	if table != nil {
		d, err := record.NewDecoder(table, record.Config{}, page.NewBlobLoader(store))
		if err != nil {
			fatal("build decoder", err)
		}
		decoder = d
	}
	idx, skipped, err := page.LoadIndexPage(store, pageNo, decoder)
	if err != nil {
		fatal("load index page", err)
	}
	if skipped > 0 {
		fmt.Printf("skipped %d SDI page(s) before reaching page %d\n", skipped, pageNo)
	}
	if err := idx.ValidatePage(query.DefaultComparator{}); err != nil {
		fmt.Printf("INVALID: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("OK")
}

func pointCmd(nav *query.TreeNavigator, table *schema.TableDef, raw string) {
	key, err := parseKey(table, raw)
	if err != nil {
		fatal("parse key", err)
	}
	rec, err := nav.PointLookup(key)
	if err != nil {
		fatal("point lookup", err)
	}
	if rec == nil {
		fmt.Println("not found")
		return
	}
	printRecord(table, rec)
}

func rangeCmd(nav *query.TreeNavigator, table *schema.TableDef, lowerRaw, upperRaw string, maxRecs int) {
	bounds := query.Bounds{}
	var err error
	if lowerRaw != "" {
		bounds.Lower, err = parseBound(table, lowerRaw)
		if err != nil {
			fatal("parse lower bound", err)
		}
	}
	if upperRaw != "" {
		bounds.Upper, err = parseBound(table, upperRaw)
		if err != nil {
			fatal("parse upper bound", err)
		}
	}

	it := query.NewRangeIterator(nav, bounds)
	n := 0
	for it.HasNext() && n < maxRecs {
		printRecord(table, it.Next())
		n++
	}
	if err := it.Err(); err != nil {
		fatal("range scan", err)
	}
}

func parseBound(table *schema.TableDef, raw string) (query.Bound, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return query.Bound{}, errors.Errorf("expected OP:v1,v2,..., got %q", raw)
	}
	var op query.ComparisonOperator
	switch strings.ToUpper(parts[0]) {
	case "GT":
		op = query.GT
	case "GTE":
		op = query.GTE
	case "LT":
		op = query.LT
	case "LTE":
		op = query.LTE
	default:
		return query.Bound{}, errors.Errorf("unknown operator %q", parts[0])
	}
	key, err := parseKey(table, parts[1])
	if err != nil {
		return query.Bound{}, err
	}
	return query.Bound{Op: op, Key: key}, nil
}

// parseKey converts comma-separated CLI arguments into typed values
// matching the primary key column order. It only supports the integer
// and string families; other column types require a richer CLI.
func parseKey(table *schema.TableDef, raw string) ([]interface{}, error) {
	pk := table.PrimaryKeyColumns()
	parts := strings.Split(raw, ",")
	if len(parts) != len(pk) {
		return nil, errors.Errorf("key has %d part(s), primary key has %d column(s)", len(parts), len(pk))
	}
	key := make([]interface{}, len(parts))
	for i, col := range pk {
		switch col.Type {
		case schema.TypeChar, schema.TypeVarchar, schema.TypeText, schema.TypeTinyText,
			schema.TypeMediumText, schema.TypeLongText:
			key[i] = parts[i]
		default:
			v, err := strconv.ParseInt(strings.TrimSpace(parts[i]), 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "column %s", col.Name)
			}
			key[i] = v
		}
	}
	return key, nil
}

func printRecord(table *schema.TableDef, rec *record.Record) {
	if rec.Kind == record.KindClosest {
		fmt.Println("(no exact match)")
		return
	}
	var sb strings.Builder
	for i, col := range table.Columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		val := rec.Values[col.Ordinal]
		if val == nil {
			sb.WriteString(col.Name + "=NULL")
		} else {
			fmt.Fprintf(&sb, "%s=%v", col.Name, val)
		}
	}
	fmt.Println(sb.String())
}

func fatal(action string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", action, err)
	os.Exit(1)
}
