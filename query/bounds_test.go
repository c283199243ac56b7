package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatisfiesLower(t *testing.T) {
	cmp := DefaultComparator{}
	key := []interface{}{uint32(10)}

	assert.True(t, satisfiesLower(cmp, key, Bound{Op: NOP}))
	assert.True(t, satisfiesLower(cmp, key, Bound{Op: GTE, Key: []interface{}{uint32(10)}}))
	assert.False(t, satisfiesLower(cmp, key, Bound{Op: GT, Key: []interface{}{uint32(10)}}))
	assert.True(t, satisfiesLower(cmp, key, Bound{Op: GT, Key: []interface{}{uint32(9)}}))
}

func TestSatisfiesUpper(t *testing.T) {
	cmp := DefaultComparator{}
	key := []interface{}{uint32(10)}

	assert.True(t, satisfiesUpper(cmp, key, Bound{Op: NOP}))
	assert.True(t, satisfiesUpper(cmp, key, Bound{Op: LTE, Key: []interface{}{uint32(10)}}))
	assert.False(t, satisfiesUpper(cmp, key, Bound{Op: LT, Key: []interface{}{uint32(10)}}))
	assert.True(t, satisfiesUpper(cmp, key, Bound{Op: LT, Key: []interface{}{uint32(11)}}))
}
