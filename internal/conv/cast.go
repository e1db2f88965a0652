package conv

import (
	"fmt"
	"math"
	"unsafe"
)

// Offset is the set of Arrow offset widths.
type Offset interface {
	~int32 | ~int64
}

// IntToUint32 converts int to uint32 safely.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	// On 64-bit systems, int can exceed uint32 max; on 32-bit, this is always false
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// Uint32ToInt converts uint32 to int safely.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// IntToInt32 converts int to int32 safely.
func IntToInt32(v int) (int32, error) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int32", v)
	}
	return int32(v), nil
}

// IntToOffset converts a non-negative int to the offset width O.
func IntToOffset[O Offset](v int) (O, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to an offset (negative)", v)
	}
	if int64(v) > MaxOffset[O]() {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to a %d-bit offset (too large)", v, offsetBits[O]())
	}
	return O(v), nil
}

// MaxOffset returns the largest value representable by O.
func MaxOffset[O Offset]() int64 {
	if offsetBits[O]() == 32 {
		return math.MaxInt32
	}
	return math.MaxInt64
}

func offsetBits[O Offset]() int {
	var zero O
	return int(unsafe.Sizeof(zero)) * 8
}
