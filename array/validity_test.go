package array

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidityBuilder(t *testing.T) {
	t.Run("no nulls yields nil", func(t *testing.T) {
		var b ValidityBuilder
		b.AppendValid(100)
		assert.Nil(t, b.bits)
		v := b.Finish()
		assert.Nil(t, v)
		assert.Equal(t, 0, v.NullN())
		assert.True(t, v.IsValid(42))
	})

	t.Run("lazy materialization", func(t *testing.T) {
		var b ValidityBuilder
		b.AppendValid(10)
		b.AppendNull(1)
		b.Append(true)
		b.Append(false)
		assert.Equal(t, 13, b.Len())
		assert.Equal(t, 2, b.NullN())

		v := b.Finish()
		require.NotNil(t, v)
		assert.Equal(t, 13, v.Len())
		assert.Equal(t, 2, v.NullN())
		for i := range 10 {
			assert.True(t, v.IsValid(i), i)
		}
		assert.True(t, v.IsNull(10))
		assert.True(t, v.IsValid(11))
		assert.True(t, v.IsNull(12))
	})
}

func buildValidity(pattern []bool) *Validity {
	var b ValidityBuilder
	for _, valid := range pattern {
		b.Append(valid)
	}
	return b.Finish()
}

func TestValidity_Slice(t *testing.T) {
	pattern := make([]bool, 40)
	for i := range pattern {
		pattern[i] = i%3 != 0
	}
	v := buildValidity(pattern)
	require.Equal(t, 14, v.NullN())

	s := v.Slice(5, 20)
	assert.Equal(t, 20, s.Len())
	assert.Equal(t, 5, s.Offset())
	for i := range 20 {
		assert.Equal(t, pattern[5+i], s.IsValid(i), i)
	}
	nulls := 0
	for _, valid := range pattern[5:25] {
		if !valid {
			nulls++
		}
	}
	assert.Equal(t, nulls, s.NullN())

	// unaligned windows are copied, aligned ones shared
	rebased := NewValidity(s.Bytes(), 0, 20)
	for i := range 20 {
		assert.Equal(t, pattern[5+i], rebased.IsValid(i), i)
	}
	aligned := v.Slice(8, 16)
	assert.Same(t, &v.Raw()[1], &aligned.Bytes()[0])
}

func TestValidity_Copy(t *testing.T) {
	v := buildValidity([]bool{true, false, true, true, true})
	assert.Nil(t, v.Copy(2, 3))

	c := v.Copy(1, 2)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Offset())
	assert.True(t, c.IsNull(0))
	assert.True(t, c.IsValid(1))
}

func TestValidity_NullIndices(t *testing.T) {
	v := buildValidity([]bool{true, false, true, false, false})
	idx := v.NullIndices()
	assert.Equal(t, uint64(3), idx.GetCardinality())
	assert.Equal(t, []uint32{1, 3, 4}, idx.ToArray())

	var none *Validity
	assert.True(t, none.NullIndices().IsEmpty())
}

func TestValidity_OutOfRange(t *testing.T) {
	v := buildValidity([]bool{true, false, true})
	assert.PanicsWithError(t, "index 5 out of range [0, 3)", func() { v.IsNull(5) })
	assert.PanicsWithError(t, "index -1 out of range [0, 3)", func() { v.IsValid(-1) })
	assert.NotPanics(t, func() { v.IsValid(2) })
}
