package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAllocAligned(t *testing.T) {
	sizes := []int{1, 10, 63, 64, 65, 100, 1024}

	for _, size := range sizes {
		buf := AllocAligned(size)
		assert.Len(t, buf, size)

		addr := uintptr(unsafe.Pointer(&buf[0]))
		assert.Equal(t, uintptr(0), addr%Alignment, "Address %d should be aligned to %d for size %d", addr, Alignment, size)
	}

	assert.Nil(t, AllocAligned(0))
	assert.Nil(t, AllocAligned(-1))
}

func TestAllocAlignedSlice(t *testing.T) {
	for _, size := range []int{1, 3, 8, 17, 1000} {
		f := AllocAlignedFloat64(size)
		assert.Len(t, f, size)
		assert.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&f[0]))%Alignment)

		i := AllocAlignedSlice[int32](size)
		assert.Len(t, i, size)
		assert.Equal(t, uintptr(0), uintptr(unsafe.Pointer(&i[0]))%Alignment)
	}
}

func TestGrow(t *testing.T) {
	t.Run("no realloc when capacity suffices", func(t *testing.T) {
		s := AllocAlignedFloat64(8)[:2]
		g := Grow(s, 4)
		assert.Equal(t, &s[0], &g[0])
	})

	t.Run("geometric", func(t *testing.T) {
		s := AllocAlignedFloat64(4)[:4]
		s[3] = 7
		g := Grow(s, 1)
		assert.Len(t, g, 4)
		assert.Equal(t, 8, cap(g))
		assert.Equal(t, 7.0, g[3])
	})

	t.Run("exact", func(t *testing.T) {
		s := AllocAlignedSlice[int32](4)[:4]
		g := GrowExact(s, 3)
		assert.Equal(t, 7, cap(g))
	})

	t.Run("from nil", func(t *testing.T) {
		var s []int64
		g := Grow(s, 5)
		assert.Len(t, g, 0)
		assert.GreaterOrEqual(t, cap(g), 5)
	})
}

func TestBytesViews(t *testing.T) {
	s := AllocAlignedSlice[int64](3)
	s[0], s[1], s[2] = 1, 2, 3

	b := Bytes(s)
	assert.Len(t, b, 24)
	assert.Same(t, (*byte)(unsafe.Pointer(&s[0])), &b[0])

	back := FromBytes[int64](b)
	assert.Equal(t, []int64{1, 2, 3}, back)
	assert.Same(t, &s[0], &back[0])

	assert.Len(t, FromBytes[int32](b[:7]), 1)
	assert.Nil(t, Bytes([]float64(nil)))
	assert.Nil(t, FromBytes[float64](b[:7]))
}
