package array

import (
	"fmt"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/conv"
	"github.com/hupe1980/geoarrow/internal/mem"
)

// OffsetType is the set of offset widths.
type OffsetType interface {
	~int32 | ~int64
}

// Offsets is an immutable nondecreasing sequence delimiting Len() runs of a
// child layer. Run i spans [values[i], values[i+1]).
//
// A freshly built buffer starts at zero; a sliced buffer may not.
type Offsets[O OffsetType] struct {
	values []O
}

// NewOffsets wraps values without copying after validating that they are
// nonempty and nondecreasing.
func NewOffsets[O OffsetType](values []O) (Offsets[O], error) {
	if len(values) == 0 {
		return Offsets[O]{}, fmt.Errorf("%w: offsets must hold at least one value", geoarrow.ErrMalformed)
	}
	if values[0] < 0 {
		return Offsets[O]{}, fmt.Errorf("%w: negative first offset %d", geoarrow.ErrMalformed, values[0])
	}
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			return Offsets[O]{}, fmt.Errorf("%w: offsets decrease at %d (%d < %d)", geoarrow.ErrMalformed, i, values[i], values[i-1])
		}
	}
	return Offsets[O]{values: values}, nil
}

// Len returns the number of runs.
func (o Offsets[O]) Len() int {
	if len(o.values) == 0 {
		return 0
	}
	return len(o.values) - 1
}

// Start returns the first child index of run i.
func (o Offsets[O]) Start(i int) int { return int(o.values[i]) }

// End returns one past the last child index of run i.
func (o Offsets[O]) End(i int) int { return int(o.values[i+1]) }

// Range returns the child index window of run i.
func (o Offsets[O]) Range(i int) (start, end int) {
	return int(o.values[i]), int(o.values[i+1])
}

// RunLen returns the length of run i.
func (o Offsets[O]) RunLen(i int) int { return int(o.values[i+1] - o.values[i]) }

// First returns the first offset, which is zero unless the buffer was sliced.
func (o Offsets[O]) First() int {
	if len(o.values) == 0 {
		return 0
	}
	return int(o.values[0])
}

// Last returns the final offset, the end of the delimited child window.
func (o Offsets[O]) Last() int {
	if len(o.values) == 0 {
		return 0
	}
	return int(o.values[len(o.values)-1])
}

// Values returns the raw offsets. The slice must not be modified.
func (o Offsets[O]) Values() []O {
	if len(o.values) == 0 {
		return []O{0}
	}
	return o.values
}

// Slice returns a zero-copy window of length runs starting at run offset.
func (o Offsets[O]) Slice(offset, length int) Offsets[O] {
	checkWindow(offset, length, o.Len())
	return Offsets[O]{values: o.values[offset : offset+length+1 : offset+length+1]}
}

// Rebase returns a copy of the window [offset, offset+length) whose first
// value is zero.
func (o Offsets[O]) Rebase(offset, length int) Offsets[O] {
	checkWindow(offset, length, o.Len())
	src := o.values[offset : offset+length+1]
	out := mem.AllocAlignedSlice[O](len(src))
	base := src[0]
	for i, v := range src {
		out[i] = v - base
	}
	return Offsets[O]{values: out}
}

// OffsetsBuilder appends run lengths as a running total.
type OffsetsBuilder[O OffsetType] struct {
	values []O
}

// NewOffsetsBuilder returns a builder holding the initial zero offset.
func NewOffsetsBuilder[O OffsetType]() *OffsetsBuilder[O] {
	b := &OffsetsBuilder[O]{}
	b.values = append(mem.Grow(b.values, 1), 0)
	return b
}

// Len returns the number of runs pushed.
func (b *OffsetsBuilder[O]) Len() int { return len(b.values) - 1 }

// Last returns the running total.
func (b *OffsetsBuilder[O]) Last() int { return int(b.values[len(b.values)-1]) }

// Reserve makes room for at least n more runs, growing geometrically.
func (b *OffsetsBuilder[O]) Reserve(n int) { b.values = mem.Grow(b.values, n) }

// ReserveExact makes room for exactly n more runs.
func (b *OffsetsBuilder[O]) ReserveExact(n int) { b.values = mem.GrowExact(b.values, n) }

// TryPushLength appends a run of n children. It fails with
// geoarrow.ErrOffsetOverflow when the running total would not fit in O.
func (b *OffsetsBuilder[O]) TryPushLength(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: negative run length %d", geoarrow.ErrOffsetOverflow, n)
	}
	next, err := conv.IntToOffset[O](b.Last() + n)
	if err != nil {
		return fmt.Errorf("%w: %w", geoarrow.ErrOffsetOverflow, err)
	}
	b.Reserve(1)
	b.values = append(b.values, next)
	return nil
}

// PushLength appends a run of n children and panics on overflow.
func (b *OffsetsBuilder[O]) PushLength(n int) {
	geoarrow.Must(b.TryPushLength(n))
}

// ExtendConstant appends n empty runs.
func (b *OffsetsBuilder[O]) ExtendConstant(n int) {
	if n <= 0 {
		return
	}
	b.Reserve(n)
	last := b.values[len(b.values)-1]
	for range n {
		b.values = append(b.values, last)
	}
}

// Finish freezes the builder into Offsets without copying.
func (b *OffsetsBuilder[O]) Finish() Offsets[O] {
	o := Offsets[O]{values: b.values}
	b.values = nil
	return o
}
