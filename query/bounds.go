// bounds.go - range predicate operators and the lower/upper bound pair
// a range scan is driven by.
package query

import "github.com/pkg/errors"

// ComparisonOperator is the closed set of operators a bound can use.
// NOP encodes "no bound"; it must be paired with an empty Key.
type ComparisonOperator uint8

const (
	NOP ComparisonOperator = iota
	GT
	GTE
	LT
	LTE
)

// Bound is one side of a range: an operator and the key it compares
// against. An NOP operator means the bound is absent.
type Bound struct {
	Op  ComparisonOperator
	Key []interface{}
}

// Bounds is a lower/upper bound pair for a range scan. Either side may
// be NOP, but never a non-NOP operator paired with an empty Key.
type Bounds struct {
	Lower Bound
	Upper Bound
}

// MinValue sorts below every other value of its column. RangeBounds
// fills a synthetic key with it for an absent lower bound, and callers
// can place it in a full-arity composite key to leave a column open;
// bounds of the wrong arity are rejected, not padded.
type MinValue struct{}

// MaxValue sorts above every other value of its column.
type MaxValue struct{}

// satisfiesLower reports whether key qualifies against bound b acting
// as a lower bound.
func satisfiesLower(cmp KeyComparator, key []interface{}, b Bound) bool {
	if b.Op == NOP {
		return true
	}
	c := cmp.Compare(key, b.Key)
	switch b.Op {
	case GT:
		return c > 0
	case GTE:
		return c >= 0
	default:
		return false
	}
}

// satisfiesUpper reports whether key qualifies against bound b acting
// as an upper bound.
func satisfiesUpper(cmp KeyComparator, key []interface{}, b Bound) bool {
	if b.Op == NOP {
		return true
	}
	c := cmp.Compare(key, b.Key)
	switch b.Op {
	case LT:
		return c < 0
	case LTE:
		return c <= 0
	default:
		return false
	}
}

// validateKey rejects an empty key, a key whose arity doesn't match
// the table's primary key, or a key carrying a nil element.
func validateKey(key []interface{}, arity int) error {
	if len(key) == 0 {
		return errors.Wrap(ErrInvalidArgument, "empty key")
	}
	if len(key) != arity {
		return errors.Wrapf(ErrInvalidArgument, "key has %d part(s), primary key has %d column(s)", len(key), arity)
	}
	for i, v := range key {
		if v == nil {
			return errors.Wrapf(ErrInvalidArgument, "key element %d is nil", i)
		}
	}
	return nil
}

// validateBound rejects a NOP bound carrying a non-empty key, a
// non-NOP bound carrying an empty key, and any key that fails
// validateKey.
func validateBound(b Bound, arity int) error {
	if b.Op == NOP {
		if len(b.Key) != 0 {
			return errors.Wrap(ErrInvalidArgument, "NOP bound must have an empty key")
		}
		return nil
	}
	return validateKey(b.Key, arity)
}

// validateBounds checks both sides of bounds against arity and rejects
// an inverted range where both sides are bounded and the lower key
// sorts after the upper key.
func validateBounds(cmp KeyComparator, bounds Bounds, arity int) error {
	if err := validateBound(bounds.Lower, arity); err != nil {
		return errors.Wrap(err, "lower bound")
	}
	if err := validateBound(bounds.Upper, arity); err != nil {
		return errors.Wrap(err, "upper bound")
	}
	if bounds.Lower.Op != NOP && bounds.Upper.Op != NOP && cmp.Compare(bounds.Lower.Key, bounds.Upper.Key) > 0 {
		return errors.Wrap(ErrInvalidArgument, "inverted bounds: lower key sorts after upper key")
	}
	return nil
}
