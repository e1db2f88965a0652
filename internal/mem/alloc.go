package mem

import (
	"unsafe"
)

// Alignment is the byte alignment of every buffer (64 bytes).
const Alignment = 64

// Numeric is the set of element types stored in aligned buffers.
type Numeric interface {
	~int8 | ~int32 | ~int64 | ~float64
}

// AllocAligned allocates a byte slice of the given size with 64-byte alignment.
// The returned slice is guaranteed to start at a memory address divisible by 64.
//
// Note: This function allocates slightly more memory than requested to ensure alignment.
// The underlying array is kept alive by the returned slice.
func AllocAligned(size int) []byte {
	if size <= 0 {
		return nil
	}

	// Allocate size + alignment to ensure we can find an aligned offset
	totalSize := size + Alignment
	buf := make([]byte, totalSize)

	ptr := unsafe.Pointer(&buf[0]) //nolint:gosec // unsafe is required for memory alignment
	addr := uintptr(ptr)
	offset := (Alignment - (addr & (Alignment - 1))) & (Alignment - 1)

	return buf[offset : offset+uintptr(size) : offset+uintptr(size)]
}

// AllocAlignedSlice allocates a slice of n elements with 64-byte alignment.
func AllocAlignedSlice[T Numeric](n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	byteSlice := AllocAligned(n * int(unsafe.Sizeof(zero)))

	// 64-byte alignment satisfies the alignment of every Numeric type.
	ptr := unsafe.Pointer(&byteSlice[0]) //nolint:gosec // unsafe is required for memory alignment
	return unsafe.Slice((*T)(ptr), n)    //nolint:gosec // unsafe is required for memory alignment
}

// AllocAlignedFloat64 allocates a float64 slice of the given size with 64-byte alignment.
func AllocAlignedFloat64(size int) []float64 {
	return AllocAlignedSlice[float64](size)
}

// Grow returns s with room for at least n more elements. Capacity grows
// geometrically (at least doubling) so repeated appends amortize.
func Grow[T Numeric](s []T, n int) []T {
	if n <= cap(s)-len(s) {
		return s
	}
	return realloc(s, max(2*cap(s), len(s)+n))
}

// GrowExact returns s with room for exactly n more elements when it has to
// reallocate.
func GrowExact[T Numeric](s []T, n int) []T {
	if n <= cap(s)-len(s) {
		return s
	}
	return realloc(s, len(s)+n)
}

func realloc[T Numeric](s []T, newCap int) []T {
	ns := AllocAlignedSlice[T](newCap)[:len(s)]
	copy(ns, s)
	return ns
}

// Bytes reinterprets s as its underlying bytes without copying.
func Bytes[T Numeric](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero))) //nolint:gosec // zero-copy view
}

// FromBytes reinterprets b as a slice of T without copying. Trailing bytes
// that do not fill a whole element are ignored. b must be aligned for T,
// which holds for every buffer allocated by this package or by Arrow.
func FromBytes[T Numeric](b []byte) []T {
	var zero T
	n := len(b) / int(unsafe.Sizeof(zero))
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n) //nolint:gosec // zero-copy view
}
