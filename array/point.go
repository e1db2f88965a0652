package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// PointArray stores one coordinate per slot.
type PointArray struct {
	base
	coords CoordBuffer
}

var _ Array = (*PointArray)(nil)

// NewPointArray assembles an array from parts. validity may be nil.
func NewPointArray(coords CoordBuffer, validity *Validity, meta geoarrow.Metadata) (*PointArray, error) {
	if validity != nil && validity.Len() != coords.Len() {
		return nil, geoarrow.IncorrectType("validity has %d slots, coordinates %d", validity.Len(), coords.Len())
	}
	return &PointArray{base: base{dim: coords.Dim(), meta: meta, validity: validity}, coords: coords}, nil
}

func (a *PointArray) Kind() geoarrow.Kind           { return geoarrow.KindPoint }
func (a *PointArray) CoordType() geoarrow.CoordType { return a.coords.CoordType() }
func (a *PointArray) Len() int                      { return a.coords.Len() }
func (a *PointArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *PointArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Coords returns the coordinate buffer.
func (a *PointArray) Coords() CoordBuffer { return a.coords }

// Value returns slot i regardless of validity.
func (a *PointArray) Value(i int) Point {
	geoarrow.CheckIndex(i, a.Len())
	return Point{coords: a.coords, i: i}
}

func (a *PointArray) Geometry(i int) traits.Geometry {
	geoarrow.CheckIndex(i, a.Len())
	if a.IsNull(i) {
		return nil
	}
	return Point{coords: a.coords, i: i}
}

func (a *PointArray) Slice(offset, length int) Array {
	return &PointArray{base: a.slice(offset, length), coords: a.coords.Slice(offset, length)}
}

func (a *PointArray) OwnedSlice(offset, length int) Array {
	return &PointArray{
		base:   base{dim: a.dim, meta: a.meta, validity: a.validity.Copy(offset, length)},
		coords: copyCoords(a.coords, offset, length),
	}
}

func (a *PointArray) ToCoordType(ct geoarrow.CoordType) Array {
	return &PointArray{base: a.base, coords: a.coords.ToCoordType(ct)}
}

func (a *PointArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// PointBuilder builds a PointArray.
type PointBuilder struct {
	meta     geoarrow.Metadata
	coords   *CoordBufferBuilder
	validity ValidityBuilder
}

var _ Builder = (*PointBuilder)(nil)

// NewPointBuilder returns an empty builder.
func NewPointBuilder(dim geoarrow.Dimension, opts ...Option) *PointBuilder {
	o := applyOptions(opts)
	b := &PointBuilder{meta: o.metadata, coords: NewCoordBufferBuilder(dim, o.coordType)}
	b.coords.Reserve(o.capacity)
	return b
}

func (b *PointBuilder) Kind() geoarrow.Kind     { return geoarrow.KindPoint }
func (b *PointBuilder) Dim() geoarrow.Dimension { return b.coords.Dim() }
func (b *PointBuilder) Len() int                { return b.validity.Len() }

// TryPushPoint appends p; nil appends a null slot. An empty point is stored
// as NaN and stays valid.
func (b *PointBuilder) TryPushPoint(p traits.Point) error {
	if p == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), p); err != nil {
		return err
	}
	if c, ok := p.Coord(); ok {
		if err := b.coords.TryPushCoord(c); err != nil {
			return err
		}
	} else {
		b.coords.PushNaN()
	}
	b.validity.AppendValid(1)
	return nil
}

// PushPoint is TryPushPoint panicking on error.
func (b *PointBuilder) PushPoint(p traits.Point) {
	geoarrow.Must(b.TryPushPoint(p))
}

// TryPushGeometry accepts points and single-point multipoints.
func (b *PointBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	switch t := g.AsType().(type) {
	case traits.PointType:
		return b.TryPushPoint(t.Point)
	case traits.MultiPointType:
		if t.NumPoints() == 1 {
			return b.TryPushPoint(t.PointUnchecked(0))
		}
	}
	return incorrectPush(geoarrow.KindPoint, g)
}

func (b *PointBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a NaN-filled null slot.
func (b *PointBuilder) PushNull() {
	b.coords.PushNaN()
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *PointBuilder) Finish() *PointArray {
	coords := b.coords.Finish()
	return &PointArray{base: base{dim: coords.Dim(), meta: b.meta, validity: b.validity.Finish()}, coords: coords}
}

func (b *PointBuilder) FinishArray() Array { return b.Finish() }
