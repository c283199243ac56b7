package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultComparator_ScalarOrdering(t *testing.T) {
	cmp := DefaultComparator{}

	assert.Equal(t, -1, compareScalar(uint32(1), uint32(2)))
	assert.Equal(t, 1, compareScalar(int32(5), int32(-5)))
	assert.Equal(t, 0, compareScalar("abc", "abc"))
	assert.Equal(t, -1, compareScalar("abc", "abd"))
	assert.Equal(t, 1, compareScalar(true, false))

	assert.True(t, cmp.Compare([]interface{}{uint32(1)}, []interface{}{uint32(2)}) < 0)
	assert.True(t, cmp.Compare([]interface{}{"b", uint32(1)}, []interface{}{"b", uint32(2)}) < 0)
}

func TestDefaultComparator_SentinelsBoundEveryValue(t *testing.T) {
	assert.True(t, compareScalar(MinValue{}, uint32(0)) < 0)
	assert.True(t, compareScalar(MaxValue{}, uint32(0)) > 0)
	assert.Equal(t, 0, compareScalar(MinValue{}, MinValue{}))
	assert.Equal(t, 0, compareScalar(MaxValue{}, MaxValue{}))
	assert.True(t, compareScalar(uint32(0), MaxValue{}) < 0)
	assert.True(t, compareScalar(uint32(0), MinValue{}) > 0)
}

func TestDefaultComparator_NilOrdersBelowConcreteValues(t *testing.T) {
	assert.Equal(t, 0, compareScalar(nil, nil))
	assert.True(t, compareScalar(nil, uint32(0)) < 0)
	assert.True(t, compareScalar(uint32(0), nil) > 0)
}
