package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// RectArray stores one box per slot as separated lower and upper corners.
type RectArray struct {
	base
	lower, upper *SeparatedCoords
}

var _ Array = (*RectArray)(nil)

// NewRectArray assembles an array from parts. validity may be nil.
func NewRectArray(lower, upper *SeparatedCoords, validity *Validity, meta geoarrow.Metadata) (*RectArray, error) {
	if err := geoarrow.CheckDimension(lower.Dim(), upper.Dim()); err != nil {
		return nil, err
	}
	if lower.Len() != upper.Len() {
		return nil, geoarrow.IncorrectType("lower has %d corners, upper %d", lower.Len(), upper.Len())
	}
	if err := checkValidity(validity, lower.Len()); err != nil {
		return nil, err
	}
	return &RectArray{base: base{dim: lower.Dim(), meta: meta, validity: validity}, lower: lower, upper: upper}, nil
}

func (a *RectArray) Kind() geoarrow.Kind           { return geoarrow.KindRect }
func (a *RectArray) CoordType() geoarrow.CoordType { return geoarrow.Separated }
func (a *RectArray) Len() int                      { return a.lower.Len() }
func (a *RectArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *RectArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Lower returns the minimum corners.
func (a *RectArray) Lower() *SeparatedCoords { return a.lower }

// Upper returns the maximum corners.
func (a *RectArray) Upper() *SeparatedCoords { return a.upper }

// Value returns slot i regardless of validity.
func (a *RectArray) Value(i int) Rect {
	geoarrow.CheckIndex(i, a.Len())
	return Rect{lower: a.lower, upper: a.upper, i: i}
}

func (a *RectArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *RectArray) Slice(offset, length int) Array {
	return &RectArray{
		base:  a.slice(offset, length),
		lower: a.lower.Slice(offset, length).(*SeparatedCoords),
		upper: a.upper.Slice(offset, length).(*SeparatedCoords),
	}
}

func (a *RectArray) OwnedSlice(offset, length int) Array {
	return &RectArray{
		base:  base{dim: a.dim, meta: a.meta, validity: a.validity.Copy(offset, length)},
		lower: copyCoords(a.lower, offset, length).(*SeparatedCoords),
		upper: copyCoords(a.upper, offset, length).(*SeparatedCoords),
	}
}

// ToCoordType returns a unchanged; boxes are always stored separated.
func (a *RectArray) ToCoordType(geoarrow.CoordType) Array { return a }

func (a *RectArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// RectBuilder builds a RectArray.
type RectBuilder struct {
	meta         geoarrow.Metadata
	lower, upper *CoordBufferBuilder
	validity     ValidityBuilder
}

var _ Builder = (*RectBuilder)(nil)

// NewRectBuilder returns an empty builder. WithCoordType is ignored.
func NewRectBuilder(dim geoarrow.Dimension, opts ...Option) *RectBuilder {
	o := applyOptions(opts)
	b := &RectBuilder{
		meta:  o.metadata,
		lower: NewCoordBufferBuilder(dim, geoarrow.Separated),
		upper: NewCoordBufferBuilder(dim, geoarrow.Separated),
	}
	b.lower.Reserve(o.capacity)
	b.upper.Reserve(o.capacity)
	return b
}

func (b *RectBuilder) Kind() geoarrow.Kind     { return geoarrow.KindRect }
func (b *RectBuilder) Dim() geoarrow.Dimension { return b.lower.Dim() }
func (b *RectBuilder) Len() int                { return b.validity.Len() }

// TryPushRect appends r; nil appends a NaN-filled null slot.
func (b *RectBuilder) TryPushRect(r traits.Rect) error {
	if r == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), r); err != nil {
		return err
	}
	if err := b.lower.TryPushCoord(r.Min()); err != nil {
		return err
	}
	if err := b.upper.TryPushCoord(r.Max()); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

// PushRect is TryPushRect panicking on error.
func (b *RectBuilder) PushRect(r traits.Rect) {
	geoarrow.Must(b.TryPushRect(r))
}

// TryPushGeometry accepts rects only.
func (b *RectBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	if t, ok := g.AsType().(traits.RectType); ok {
		return b.TryPushRect(t.Rect)
	}
	return incorrectPush(geoarrow.KindRect, g)
}

func (b *RectBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a NaN-filled null slot.
func (b *RectBuilder) PushNull() {
	b.lower.PushNaN()
	b.upper.PushNaN()
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *RectBuilder) Finish() *RectArray {
	lower := b.lower.Finish().(*SeparatedCoords)
	upper := b.upper.Finish().(*SeparatedCoords)
	return &RectArray{base: base{dim: lower.Dim(), meta: b.meta, validity: b.validity.Finish()}, lower: lower, upper: upper}
}

func (b *RectBuilder) FinishArray() Array { return b.Finish() }
