package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// MultiPointArray stores one coordinate run per slot, read as points.
type MultiPointArray struct {
	base
	coords      CoordBuffer
	geomOffsets Offsets[int32]
}

var _ Array = (*MultiPointArray)(nil)

// NewMultiPointArray assembles an array from parts. validity may be nil.
func NewMultiPointArray(coords CoordBuffer, geomOffsets Offsets[int32], validity *Validity, meta geoarrow.Metadata) (*MultiPointArray, error) {
	if err := checkLayer(geomOffsets, coords.Len(), "points"); err != nil {
		return nil, err
	}
	if err := checkValidity(validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return &MultiPointArray{base: base{dim: coords.Dim(), meta: meta, validity: validity}, coords: coords, geomOffsets: geomOffsets}, nil
}

func (a *MultiPointArray) Kind() geoarrow.Kind           { return geoarrow.KindMultiPoint }
func (a *MultiPointArray) CoordType() geoarrow.CoordType { return a.coords.CoordType() }
func (a *MultiPointArray) Len() int                      { return a.geomOffsets.Len() }
func (a *MultiPointArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *MultiPointArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Coords returns the coordinate buffer shared by every slot.
func (a *MultiPointArray) Coords() CoordBuffer { return a.coords }

// GeomOffsets returns the per-slot point offsets.
func (a *MultiPointArray) GeomOffsets() Offsets[int32] { return a.geomOffsets }

// Value returns slot i regardless of validity.
func (a *MultiPointArray) Value(i int) MultiPoint {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.geomOffsets.Range(i)
	return MultiPoint{coords: a.coords, start: start, end: end}
}

func (a *MultiPointArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *MultiPointArray) Slice(offset, length int) Array {
	return &MultiPointArray{base: a.slice(offset, length), coords: a.coords, geomOffsets: a.geomOffsets.Slice(offset, length)}
}

func (a *MultiPointArray) OwnedSlice(offset, length int) Array { return rebuild(a, offset, length) }

func (a *MultiPointArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.coords = a.coords.ToCoordType(ct)
	return &out
}

func (a *MultiPointArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// MultiPointBuilder builds a MultiPointArray.
type MultiPointBuilder struct {
	meta        geoarrow.Metadata
	coords      *CoordBufferBuilder
	geomOffsets *OffsetsBuilder[int32]
	validity    ValidityBuilder
}

var _ Builder = (*MultiPointBuilder)(nil)

// NewMultiPointBuilder returns an empty builder.
func NewMultiPointBuilder(dim geoarrow.Dimension, opts ...Option) *MultiPointBuilder {
	o := applyOptions(opts)
	b := &MultiPointBuilder{
		meta:        o.metadata,
		coords:      NewCoordBufferBuilder(dim, o.coordType),
		geomOffsets: NewOffsetsBuilder[int32](),
	}
	b.geomOffsets.Reserve(o.capacity)
	return b
}

func (b *MultiPointBuilder) Kind() geoarrow.Kind     { return geoarrow.KindMultiPoint }
func (b *MultiPointBuilder) Dim() geoarrow.Dimension { return b.coords.Dim() }
func (b *MultiPointBuilder) Len() int                { return b.geomOffsets.Len() }

// TryPushMultiPoint appends mp; nil appends a null slot. Empty member
// points are stored as NaN coordinates.
func (b *MultiPointBuilder) TryPushMultiPoint(mp traits.MultiPoint) error {
	if mp == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), mp); err != nil {
		return err
	}
	n := mp.NumPoints()
	if err := b.geomOffsets.TryPushLength(n); err != nil {
		return err
	}
	b.coords.Reserve(n)
	for i := range n {
		if err := pushPointCoord(b.coords, mp.PointUnchecked(i)); err != nil {
			return err
		}
	}
	b.validity.AppendValid(1)
	return nil
}

// PushMultiPoint is TryPushMultiPoint panicking on error.
func (b *MultiPointBuilder) PushMultiPoint(mp traits.MultiPoint) {
	geoarrow.Must(b.TryPushMultiPoint(mp))
}

// TryPushPoint appends p as a one-point multipoint; an empty point becomes
// an empty multipoint.
func (b *MultiPointBuilder) TryPushPoint(p traits.Point) error {
	if p == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), p); err != nil {
		return err
	}
	c, ok := p.Coord()
	if !ok {
		b.geomOffsets.ExtendConstant(1)
		b.validity.AppendValid(1)
		return nil
	}
	if err := b.geomOffsets.TryPushLength(1); err != nil {
		return err
	}
	if err := b.coords.TryPushCoord(c); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

// TryPushGeometry accepts points and multipoints.
func (b *MultiPointBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	switch t := g.AsType().(type) {
	case traits.PointType:
		return b.TryPushPoint(t.Point)
	case traits.MultiPointType:
		return b.TryPushMultiPoint(t.MultiPoint)
	}
	return incorrectPush(geoarrow.KindMultiPoint, g)
}

func (b *MultiPointBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a zero-length null slot.
func (b *MultiPointBuilder) PushNull() {
	b.geomOffsets.ExtendConstant(1)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *MultiPointBuilder) Finish() *MultiPointArray {
	coords := b.coords.Finish()
	return &MultiPointArray{
		base:        base{dim: coords.Dim(), meta: b.meta, validity: b.validity.Finish()},
		coords:      coords,
		geomOffsets: b.geomOffsets.Finish(),
	}
}

func (b *MultiPointBuilder) FinishArray() Array { return b.Finish() }

func pushPointCoord(coords *CoordBufferBuilder, p traits.Point) error {
	if c, ok := p.Coord(); ok {
		return coords.TryPushCoord(c)
	}
	coords.PushNaN()
	return nil
}
