// comparator.go - composite primary-key comparison via the KeyComparator
// interface.
package query

import (
	"bytes"
	"strings"
)

// KeyComparator orders two composite keys lexicographically, column by
// column, left to right. Implementations own tie-breaking: the default
// here treats equal-length equal-valued keys as equal.
type KeyComparator interface {
	Compare(a, b []interface{}) int
}

// DefaultComparator compares keys column-by-column using each column's
// natural Go value ordering, with MinValue/MaxValue sentinels sorting
// below/above every concrete value.
type DefaultComparator struct{}

func (DefaultComparator) Compare(a, b []interface{}) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := compareScalar(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareScalar(a, b interface{}) int {
	if _, ok := a.(MinValue); ok {
		if _, ok := b.(MinValue); ok {
			return 0
		}
		return -1
	}
	if _, ok := a.(MaxValue); ok {
		if _, ok := b.(MaxValue); ok {
			return 0
		}
		return 1
	}
	if _, ok := b.(MinValue); ok {
		return 1
	}
	if _, ok := b.(MaxValue); ok {
		return -1
	}
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}

	switch x := a.(type) {
	case string:
		return strings.Compare(x, b.(string))
	case []byte:
		return bytes.Compare(x, b.([]byte))
	case bool:
		y := b.(bool)
		switch {
		case x == y:
			return 0
		case x:
			return 1
		default:
			return -1
		}
	default:
		xi, xIsInt := asInt64(a)
		yi, yIsInt := asInt64(b)
		if xIsInt && yIsInt {
			switch {
			case xi < yi:
				return -1
			case xi > yi:
				return 1
			default:
				return 0
			}
		}
		xu, xIsUint := asUint64(a)
		yu, yIsUint := asUint64(b)
		if xIsUint && yIsUint {
			switch {
			case xu < yu:
				return -1
			case xu > yu:
				return 1
			default:
				return 0
			}
		}
		return 0
	}
}

func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case int:
		return int64(x), true
	default:
		return 0, false
	}
}

func asUint64(v interface{}) (uint64, bool) {
	switch x := v.(type) {
	case uint8:
		return uint64(x), true
	case uint16:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	default:
		return 0, false
	}
}
