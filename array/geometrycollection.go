package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// GeometryCollectionArray stores one run of a Mixed array per slot.
type GeometryCollectionArray struct {
	base
	mixed       *MixedArray
	geomOffsets Offsets[int32]
}

var _ Array = (*GeometryCollectionArray)(nil)

// NewGeometryCollectionArray assembles an array from parts. validity may be nil.
func NewGeometryCollectionArray(mixed *MixedArray, geomOffsets Offsets[int32], validity *Validity, meta geoarrow.Metadata) (*GeometryCollectionArray, error) {
	if err := checkLayer(geomOffsets, mixed.Len(), "geometries"); err != nil {
		return nil, err
	}
	if err := checkValidity(validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return &GeometryCollectionArray{base: base{dim: mixed.Dim(), meta: meta, validity: validity}, mixed: mixed, geomOffsets: geomOffsets}, nil
}

func (a *GeometryCollectionArray) Kind() geoarrow.Kind           { return geoarrow.KindGeometryCollection }
func (a *GeometryCollectionArray) CoordType() geoarrow.CoordType { return a.mixed.CoordType() }
func (a *GeometryCollectionArray) Len() int                      { return a.geomOffsets.Len() }
func (a *GeometryCollectionArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *GeometryCollectionArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Mixed returns the member geometries of every slot.
func (a *GeometryCollectionArray) Mixed() *MixedArray { return a.mixed }

// GeomOffsets returns the per-slot member offsets.
func (a *GeometryCollectionArray) GeomOffsets() Offsets[int32] { return a.geomOffsets }

// Value returns slot i regardless of validity.
func (a *GeometryCollectionArray) Value(i int) GeometryCollection {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.geomOffsets.Range(i)
	return GeometryCollection{mixed: a.mixed, start: start, end: end}
}

func (a *GeometryCollectionArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *GeometryCollectionArray) Slice(offset, length int) Array {
	out := *a
	out.base = a.slice(offset, length)
	out.geomOffsets = a.geomOffsets.Slice(offset, length)
	return &out
}

func (a *GeometryCollectionArray) OwnedSlice(offset, length int) Array {
	return rebuild(a, offset, length)
}

func (a *GeometryCollectionArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.mixed = a.mixed.ToCoordType(ct).(*MixedArray)
	return &out
}

func (a *GeometryCollectionArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// GeometryCollectionBuilder builds a GeometryCollectionArray.
type GeometryCollectionBuilder struct {
	meta        geoarrow.Metadata
	mixed       *MixedBuilder
	geomOffsets *OffsetsBuilder[int32]
	validity    ValidityBuilder
}

var _ Builder = (*GeometryCollectionBuilder)(nil)

// NewGeometryCollectionBuilder returns an empty builder.
func NewGeometryCollectionBuilder(dim geoarrow.Dimension, opts ...Option) *GeometryCollectionBuilder {
	o := applyOptions(opts)
	b := &GeometryCollectionBuilder{
		meta:        o.metadata,
		mixed:       NewMixedBuilder(dim, WithCoordType(o.coordType)),
		geomOffsets: NewOffsetsBuilder[int32](),
	}
	b.geomOffsets.Reserve(o.capacity)
	return b
}

func (b *GeometryCollectionBuilder) Kind() geoarrow.Kind     { return geoarrow.KindGeometryCollection }
func (b *GeometryCollectionBuilder) Dim() geoarrow.Dimension { return b.mixed.Dim() }
func (b *GeometryCollectionBuilder) Len() int                { return b.geomOffsets.Len() }

// TryPushGeometryCollection appends gc; nil appends a null slot. Nested
// collections are rejected with geoarrow.ErrIncorrectType.
func (b *GeometryCollectionBuilder) TryPushGeometryCollection(gc traits.GeometryCollection) error {
	if gc == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), gc); err != nil {
		return err
	}
	n := gc.NumGeometries()
	if err := b.geomOffsets.TryPushLength(n); err != nil {
		return err
	}
	for i := range n {
		if err := b.mixed.TryPushGeometry(gc.GeometryUnchecked(i)); err != nil {
			return err
		}
	}
	b.validity.AppendValid(1)
	return nil
}

// PushGeometryCollection is TryPushGeometryCollection panicking on error.
func (b *GeometryCollectionBuilder) PushGeometryCollection(gc traits.GeometryCollection) {
	geoarrow.Must(b.TryPushGeometryCollection(gc))
}

// TryPushGeometry appends collections as-is and any other geometry as a
// one-member collection.
func (b *GeometryCollectionBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	if t, ok := g.AsType().(traits.GeometryCollectionType); ok {
		return b.TryPushGeometryCollection(t.GeometryCollection)
	}
	if err := checkDim(b.Dim(), g); err != nil {
		return err
	}
	if err := b.geomOffsets.TryPushLength(1); err != nil {
		return err
	}
	if err := b.mixed.TryPushGeometry(g); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

func (b *GeometryCollectionBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a zero-length null slot.
func (b *GeometryCollectionBuilder) PushNull() {
	b.geomOffsets.ExtendConstant(1)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *GeometryCollectionBuilder) Finish() *GeometryCollectionArray {
	mixed := b.mixed.Finish()
	return &GeometryCollectionArray{
		base:        base{dim: mixed.Dim(), meta: b.meta, validity: b.validity.Finish()},
		mixed:       mixed,
		geomOffsets: b.geomOffsets.Finish(),
	}
}

func (b *GeometryCollectionBuilder) FinishArray() Array { return b.Finish() }
