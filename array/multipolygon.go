package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// MultiPolygonArray stores one polygon run per slot.
type MultiPolygonArray struct {
	base
	coords         CoordBuffer
	geomOffsets    Offsets[int32] // slot -> polygons
	polygonOffsets Offsets[int32] // polygon -> rings
	ringOffsets    Offsets[int32] // ring -> vertices
}

var _ Array = (*MultiPolygonArray)(nil)

// NewMultiPolygonArray assembles an array from parts. validity may be nil.
func NewMultiPolygonArray(coords CoordBuffer, geomOffsets, polygonOffsets, ringOffsets Offsets[int32], validity *Validity, meta geoarrow.Metadata) (*MultiPolygonArray, error) {
	if err := checkLayer(ringOffsets, coords.Len(), "vertices"); err != nil {
		return nil, err
	}
	if err := checkLayer(polygonOffsets, ringOffsets.Len(), "rings"); err != nil {
		return nil, err
	}
	if err := checkLayer(geomOffsets, polygonOffsets.Len(), "polygons"); err != nil {
		return nil, err
	}
	if err := checkValidity(validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return &MultiPolygonArray{
		base:           base{dim: coords.Dim(), meta: meta, validity: validity},
		coords:         coords,
		geomOffsets:    geomOffsets,
		polygonOffsets: polygonOffsets,
		ringOffsets:    ringOffsets,
	}, nil
}

func (a *MultiPolygonArray) Kind() geoarrow.Kind           { return geoarrow.KindMultiPolygon }
func (a *MultiPolygonArray) CoordType() geoarrow.CoordType { return a.coords.CoordType() }
func (a *MultiPolygonArray) Len() int                      { return a.geomOffsets.Len() }
func (a *MultiPolygonArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *MultiPolygonArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Coords returns the coordinate buffer shared by every slot.
func (a *MultiPolygonArray) Coords() CoordBuffer { return a.coords }

// GeomOffsets returns the per-slot polygon offsets.
func (a *MultiPolygonArray) GeomOffsets() Offsets[int32] { return a.geomOffsets }

// PolygonOffsets returns the per-polygon ring offsets.
func (a *MultiPolygonArray) PolygonOffsets() Offsets[int32] { return a.polygonOffsets }

// RingOffsets returns the per-ring vertex offsets.
func (a *MultiPolygonArray) RingOffsets() Offsets[int32] { return a.ringOffsets }

// Value returns slot i regardless of validity.
func (a *MultiPolygonArray) Value(i int) MultiPolygon {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.geomOffsets.Range(i)
	return MultiPolygon{coords: a.coords, polygons: a.polygonOffsets, rings: a.ringOffsets, start: start, end: end}
}

func (a *MultiPolygonArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *MultiPolygonArray) Slice(offset, length int) Array {
	out := *a
	out.base = a.slice(offset, length)
	out.geomOffsets = a.geomOffsets.Slice(offset, length)
	return &out
}

func (a *MultiPolygonArray) OwnedSlice(offset, length int) Array { return rebuild(a, offset, length) }

func (a *MultiPolygonArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.coords = a.coords.ToCoordType(ct)
	return &out
}

func (a *MultiPolygonArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// MultiPolygonBuilder builds a MultiPolygonArray.
type MultiPolygonBuilder struct {
	meta           geoarrow.Metadata
	coords         *CoordBufferBuilder
	geomOffsets    *OffsetsBuilder[int32]
	polygonOffsets *OffsetsBuilder[int32]
	ringOffsets    *OffsetsBuilder[int32]
	validity       ValidityBuilder
}

var _ Builder = (*MultiPolygonBuilder)(nil)

// NewMultiPolygonBuilder returns an empty builder.
func NewMultiPolygonBuilder(dim geoarrow.Dimension, opts ...Option) *MultiPolygonBuilder {
	o := applyOptions(opts)
	b := &MultiPolygonBuilder{
		meta:           o.metadata,
		coords:         NewCoordBufferBuilder(dim, o.coordType),
		geomOffsets:    NewOffsetsBuilder[int32](),
		polygonOffsets: NewOffsetsBuilder[int32](),
		ringOffsets:    NewOffsetsBuilder[int32](),
	}
	b.geomOffsets.Reserve(o.capacity)
	return b
}

func (b *MultiPolygonBuilder) Kind() geoarrow.Kind     { return geoarrow.KindMultiPolygon }
func (b *MultiPolygonBuilder) Dim() geoarrow.Dimension { return b.coords.Dim() }
func (b *MultiPolygonBuilder) Len() int                { return b.geomOffsets.Len() }

// TryPushMultiPolygon appends mp; nil appends a null slot.
func (b *MultiPolygonBuilder) TryPushMultiPolygon(mp traits.MultiPolygon) error {
	if mp == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), mp); err != nil {
		return err
	}
	n := mp.NumPolygons()
	if err := b.geomOffsets.TryPushLength(n); err != nil {
		return err
	}
	for i := range n {
		if err := pushPolygon(b.coords, b.polygonOffsets, b.ringOffsets, mp.PolygonUnchecked(i)); err != nil {
			return err
		}
	}
	b.validity.AppendValid(1)
	return nil
}

// PushMultiPolygon is TryPushMultiPolygon panicking on error.
func (b *MultiPolygonBuilder) PushMultiPolygon(mp traits.MultiPolygon) {
	geoarrow.Must(b.TryPushMultiPolygon(mp))
}

// TryPushPolygon appends p as a one-part multipolygon.
func (b *MultiPolygonBuilder) TryPushPolygon(p traits.Polygon) error {
	if p == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), p); err != nil {
		return err
	}
	if err := b.geomOffsets.TryPushLength(1); err != nil {
		return err
	}
	if err := pushPolygon(b.coords, b.polygonOffsets, b.ringOffsets, p); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

// TryPushGeometry accepts polygons, rects and multipolygons.
func (b *MultiPolygonBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	switch t := g.AsType().(type) {
	case traits.PolygonType:
		return b.TryPushPolygon(t.Polygon)
	case traits.RectType:
		return b.TryPushPolygon(traits.RectPolygon(t.Rect))
	case traits.MultiPolygonType:
		return b.TryPushMultiPolygon(t.MultiPolygon)
	}
	return incorrectPush(geoarrow.KindMultiPolygon, g)
}

func (b *MultiPolygonBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a zero-length null slot.
func (b *MultiPolygonBuilder) PushNull() {
	b.geomOffsets.ExtendConstant(1)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *MultiPolygonBuilder) Finish() *MultiPolygonArray {
	coords := b.coords.Finish()
	return &MultiPolygonArray{
		base:           base{dim: coords.Dim(), meta: b.meta, validity: b.validity.Finish()},
		coords:         coords,
		geomOffsets:    b.geomOffsets.Finish(),
		polygonOffsets: b.polygonOffsets.Finish(),
		ringOffsets:    b.ringOffsets.Finish(),
	}
}

func (b *MultiPolygonBuilder) FinishArray() Array { return b.Finish() }
