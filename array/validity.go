package array

import (
	"sync/atomic"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/apache/arrow-go/v18/arrow/bitutil"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/mem"
)

// Validity is an immutable packed bitmap, one bit per slot, set for valid
// slots. A nil *Validity means every slot is valid.
//
// The null count is computed on first use and cached, so Slice stays O(1).
type Validity struct {
	bits   []byte
	offset int // bit offset of slot 0
	length int
	nulls  atomic.Int64 // -1 until computed
}

// NewValidity wraps an Arrow-style bitmap of length slots starting at bit
// offset without copying.
func NewValidity(bits []byte, offset, length int) *Validity {
	v := &Validity{bits: bits, offset: offset, length: length}
	v.nulls.Store(-1)
	return v
}

// Len returns the number of slots.
func (v *Validity) Len() int {
	if v == nil {
		return 0
	}
	return v.length
}

// IsValid reports whether slot i is valid. A nil bitmap has no length
// and reports every slot valid.
func (v *Validity) IsValid(i int) bool {
	if v == nil {
		return true
	}
	geoarrow.CheckIndex(i, v.length)
	return bitutil.BitIsSet(v.bits, v.offset+i)
}

// IsNull reports whether slot i is null.
func (v *Validity) IsNull(i int) bool { return !v.IsValid(i) }

// NullN returns the number of null slots.
func (v *Validity) NullN() int {
	if v == nil {
		return 0
	}
	if n := v.nulls.Load(); n >= 0 {
		return int(n)
	}
	n := v.length - bitutil.CountSetBits(v.bits, v.offset, v.length)
	v.nulls.Store(int64(n))
	return n
}

// Slice returns a zero-copy window.
func (v *Validity) Slice(offset, length int) *Validity {
	if v == nil {
		return nil
	}
	checkWindow(offset, length, v.length)
	return NewValidity(v.bits, v.offset+offset, length)
}

// Copy returns a window as a fresh bitmap starting at bit zero, or nil when
// the window holds no nulls.
func (v *Validity) Copy(offset, length int) *Validity {
	w := v.Slice(offset, length)
	if w.NullN() == 0 {
		return nil
	}
	return NewValidity(w.Bytes(), 0, length)
}

// Offset returns the bit offset of slot 0 within Raw.
func (v *Validity) Offset() int { return v.offset }

// Raw returns the underlying bitmap. The slice must not be modified.
func (v *Validity) Raw() []byte {
	if v == nil {
		return nil
	}
	return v.bits
}

// Bytes returns the bitmap rebased to bit offset zero. It shares memory when
// the offset is byte-aligned and copies otherwise.
func (v *Validity) Bytes() []byte {
	if v == nil {
		return nil
	}
	if v.offset%8 == 0 {
		start := v.offset / 8
		end := start + int(bitutil.BytesForBits(int64(v.length)))
		return v.bits[start:end:end]
	}
	out := mem.AllocAligned(int(bitutil.BytesForBits(int64(v.length))))
	bitutil.CopyBitmap(v.bits, v.offset, v.length, out, 0)
	return out
}

// NullIndices returns the positions of null slots.
func (v *Validity) NullIndices() *roaring.Bitmap {
	out := roaring.New()
	if v == nil {
		return out
	}
	for i := range v.length {
		if !bitutil.BitIsSet(v.bits, v.offset+i) {
			out.Add(uint32(i))
		}
	}
	return out
}

// ValidityBuilder appends validity bits. No bitmap is materialized until
// the first null is pushed.
type ValidityBuilder struct {
	bits   []byte
	length int
	nulls  int
}

// Len returns the number of slots pushed.
func (b *ValidityBuilder) Len() int { return b.length }

// NullN returns the number of nulls pushed.
func (b *ValidityBuilder) NullN() int { return b.nulls }

// AppendValid appends n valid slots.
func (b *ValidityBuilder) AppendValid(n int) {
	if b.bits != nil {
		b.grow(b.length + n)
		for i := b.length; i < b.length+n; i++ {
			bitutil.SetBit(b.bits, i)
		}
	}
	b.length += n
}

// AppendNull appends n null slots.
func (b *ValidityBuilder) AppendNull(n int) {
	if n <= 0 {
		return
	}
	if b.bits == nil {
		b.materialize()
	}
	b.grow(b.length + n)
	for i := b.length; i < b.length+n; i++ {
		bitutil.ClearBit(b.bits, i)
	}
	b.length += n
	b.nulls += n
}

// Append appends one slot.
func (b *ValidityBuilder) Append(valid bool) {
	if valid {
		b.AppendValid(1)
	} else {
		b.AppendNull(1)
	}
}

func (b *ValidityBuilder) materialize() {
	b.grow(b.length)
	for i := range b.length {
		bitutil.SetBit(b.bits, i)
	}
}

func (b *ValidityBuilder) grow(bits int) {
	need := int(bitutil.BytesForBits(int64(bits)))
	if b.bits == nil {
		b.bits = make([]byte, 0)
	}
	if need <= len(b.bits) {
		return
	}
	if need <= cap(b.bits) {
		b.bits = b.bits[:need]
		return
	}
	next := mem.AllocAligned(max(need, 2*cap(b.bits)))
	copy(next, b.bits)
	b.bits = next[:need]
}

// Finish returns the bitmap, or nil when no null was pushed.
func (b *ValidityBuilder) Finish() *Validity {
	if b.nulls == 0 {
		*b = ValidityBuilder{}
		return nil
	}
	v := NewValidity(b.bits, 0, b.length)
	v.nulls.Store(int64(b.nulls))
	*b = ValidityBuilder{}
	return v
}
