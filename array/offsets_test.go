package array

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoarrow"
)

func TestOffsetsBuilder(t *testing.T) {
	b := NewOffsetsBuilder[int32]()
	require.NoError(t, b.TryPushLength(2))
	b.ExtendConstant(2)
	b.PushLength(3)
	b.ExtendConstant(0)

	assert.Equal(t, 4, b.Len())
	assert.Equal(t, 5, b.Last())

	o := b.Finish()
	assert.Equal(t, []int32{0, 2, 2, 2, 5}, o.Values())
	assert.Equal(t, 4, o.Len())
	assert.Equal(t, 0, o.First())
	assert.Equal(t, 5, o.Last())

	start, end := o.Range(3)
	assert.Equal(t, 2, start)
	assert.Equal(t, 5, end)
	assert.Equal(t, 3, o.RunLen(3))
	assert.Equal(t, 0, o.RunLen(1))
}

func TestOffsetsBuilder_Invariants(t *testing.T) {
	b := NewOffsetsBuilder[int64]()
	lengths := []int{0, 5, 1, 0, 0, 7}
	for _, n := range lengths {
		b.PushLength(n)
	}
	o := b.Finish()
	v := o.Values()

	assert.Equal(t, int64(0), v[0])
	total := 0
	for i := 1; i < len(v); i++ {
		assert.GreaterOrEqual(t, v[i], v[i-1])
		total += lengths[i-1]
	}
	assert.Equal(t, total, o.Last())
}

func TestOffsetsBuilder_Overflow(t *testing.T) {
	b := NewOffsetsBuilder[int32]()
	require.NoError(t, b.TryPushLength(math.MaxInt32))

	err := b.TryPushLength(1)
	assert.ErrorIs(t, err, geoarrow.ErrOffsetOverflow)
	assert.Equal(t, 1, b.Len())

	assert.ErrorIs(t, b.TryPushLength(-1), geoarrow.ErrOffsetOverflow)
	assert.Panics(t, func() { b.PushLength(1) })

	wide := NewOffsetsBuilder[int64]()
	require.NoError(t, wide.TryPushLength(math.MaxInt32))
	assert.NoError(t, wide.TryPushLength(1))
}

func TestOffsets_Slice(t *testing.T) {
	o, err := NewOffsets([]int32{0, 2, 4, 4, 9})
	require.NoError(t, err)

	s := o.Slice(1, 2)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, s.First())
	assert.Equal(t, 4, s.Last())
	assert.Same(t, &o.Values()[1], &s.Values()[0])

	r := o.Rebase(1, 3)
	assert.Equal(t, []int32{0, 2, 2, 7}, r.Values())
}

func TestNewOffsets(t *testing.T) {
	_, err := NewOffsets([]int32{})
	assert.ErrorIs(t, err, geoarrow.ErrMalformed)

	_, err = NewOffsets([]int32{0, 3, 2})
	assert.ErrorIs(t, err, geoarrow.ErrMalformed)

	_, err = NewOffsets([]int64{-1, 0})
	assert.ErrorIs(t, err, geoarrow.ErrMalformed)

	var zero Offsets[int32]
	assert.Equal(t, 0, zero.Len())
	assert.Equal(t, []int32{0}, zero.Values())
}
