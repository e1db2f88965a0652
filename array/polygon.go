package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// PolygonArray stores one ring run per slot; each ring is a coordinate run.
type PolygonArray struct {
	base
	coords      CoordBuffer
	geomOffsets Offsets[int32] // slot -> rings
	ringOffsets Offsets[int32] // ring -> vertices
}

var _ Array = (*PolygonArray)(nil)

// NewPolygonArray assembles an array from parts. validity may be nil.
func NewPolygonArray(coords CoordBuffer, geomOffsets, ringOffsets Offsets[int32], validity *Validity, meta geoarrow.Metadata) (*PolygonArray, error) {
	if err := checkLayer(ringOffsets, coords.Len(), "vertices"); err != nil {
		return nil, err
	}
	if err := checkLayer(geomOffsets, ringOffsets.Len(), "rings"); err != nil {
		return nil, err
	}
	if err := checkValidity(validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return &PolygonArray{
		base:        base{dim: coords.Dim(), meta: meta, validity: validity},
		coords:      coords,
		geomOffsets: geomOffsets,
		ringOffsets: ringOffsets,
	}, nil
}

func (a *PolygonArray) Kind() geoarrow.Kind           { return geoarrow.KindPolygon }
func (a *PolygonArray) CoordType() geoarrow.CoordType { return a.coords.CoordType() }
func (a *PolygonArray) Len() int                      { return a.geomOffsets.Len() }
func (a *PolygonArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *PolygonArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Coords returns the coordinate buffer shared by every slot.
func (a *PolygonArray) Coords() CoordBuffer { return a.coords }

// GeomOffsets returns the per-slot ring offsets.
func (a *PolygonArray) GeomOffsets() Offsets[int32] { return a.geomOffsets }

// RingOffsets returns the per-ring vertex offsets.
func (a *PolygonArray) RingOffsets() Offsets[int32] { return a.ringOffsets }

// Value returns slot i regardless of validity.
func (a *PolygonArray) Value(i int) Polygon {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.geomOffsets.Range(i)
	return Polygon{coords: a.coords, rings: a.ringOffsets, start: start, end: end}
}

func (a *PolygonArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *PolygonArray) Slice(offset, length int) Array {
	out := *a
	out.base = a.slice(offset, length)
	out.geomOffsets = a.geomOffsets.Slice(offset, length)
	return &out
}

func (a *PolygonArray) OwnedSlice(offset, length int) Array { return rebuild(a, offset, length) }

func (a *PolygonArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.coords = a.coords.ToCoordType(ct)
	return &out
}

func (a *PolygonArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// PolygonBuilder builds a PolygonArray.
type PolygonBuilder struct {
	meta        geoarrow.Metadata
	coords      *CoordBufferBuilder
	geomOffsets *OffsetsBuilder[int32]
	ringOffsets *OffsetsBuilder[int32]
	validity    ValidityBuilder
}

var _ Builder = (*PolygonBuilder)(nil)

// NewPolygonBuilder returns an empty builder.
func NewPolygonBuilder(dim geoarrow.Dimension, opts ...Option) *PolygonBuilder {
	o := applyOptions(opts)
	b := &PolygonBuilder{
		meta:        o.metadata,
		coords:      NewCoordBufferBuilder(dim, o.coordType),
		geomOffsets: NewOffsetsBuilder[int32](),
		ringOffsets: NewOffsetsBuilder[int32](),
	}
	b.geomOffsets.Reserve(o.capacity)
	return b
}

func (b *PolygonBuilder) Kind() geoarrow.Kind     { return geoarrow.KindPolygon }
func (b *PolygonBuilder) Dim() geoarrow.Dimension { return b.coords.Dim() }
func (b *PolygonBuilder) Len() int                { return b.geomOffsets.Len() }

// TryPushPolygon appends p; nil appends a null slot. A polygon without an
// exterior is stored as an empty ring run; if it still reports interior
// rings it fails with geoarrow.ErrMalformed.
func (b *PolygonBuilder) TryPushPolygon(p traits.Polygon) error {
	if p == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), p); err != nil {
		return err
	}
	if err := pushPolygon(b.coords, b.geomOffsets, b.ringOffsets, p); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

// PushPolygon is TryPushPolygon panicking on error.
func (b *PolygonBuilder) PushPolygon(p traits.Polygon) {
	geoarrow.Must(b.TryPushPolygon(p))
}

// TryPushGeometry accepts polygons, rects and single-part multipolygons.
func (b *PolygonBuilder) TryPushGeometry(g traits.Geometry) error {
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
		if t.NumPolygons() == 1 {
			return b.TryPushPolygon(t.PolygonUnchecked(0))
		}
	}
	return incorrectPush(geoarrow.KindPolygon, g)
}

func (b *PolygonBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a zero-length null slot.
func (b *PolygonBuilder) PushNull() {
	b.geomOffsets.ExtendConstant(1)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *PolygonBuilder) Finish() *PolygonArray {
	coords := b.coords.Finish()
	return &PolygonArray{
		base:        base{dim: coords.Dim(), meta: b.meta, validity: b.validity.Finish()},
		coords:      coords,
		geomOffsets: b.geomOffsets.Finish(),
		ringOffsets: b.ringOffsets.Finish(),
	}
}

func (b *PolygonBuilder) FinishArray() Array { return b.Finish() }

// pushPolygon appends the ring count of p to geoms and every ring.
func pushPolygon(coords *CoordBufferBuilder, geoms, rings *OffsetsBuilder[int32], p traits.Polygon) error {
	if _, ok := p.Exterior(); !ok && p.NumInteriors() > 0 {
		return geoarrow.NewMalformed(0, "polygon has %d interior rings but no exterior", p.NumInteriors())
	}
	if err := geoms.TryPushLength(traits.NumRings(p)); err != nil {
		return err
	}
	for ring := range traits.Rings(p) {
		if err := pushCoords(coords, rings, ring); err != nil {
			return err
		}
	}
	return nil
}
