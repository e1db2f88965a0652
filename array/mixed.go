package array

import (
	"fmt"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/conv"
	"github.com/hupe1980/geoarrow/traits"
)

// mixedKinds are the kinds held by a Mixed array, in child order.
var mixedKinds = [...]geoarrow.Kind{
	geoarrow.KindPoint,
	geoarrow.KindLineString,
	geoarrow.KindPolygon,
	geoarrow.KindMultiPoint,
	geoarrow.KindMultiLineString,
	geoarrow.KindMultiPolygon,
}

// TypeID returns the dense union type id of kind at dim: kind + 10*dim,
// so XY ids run 1..6, XYZ 11..16, XYM 21..26 and XYZM 31..36.
func TypeID(kind geoarrow.Kind, dim geoarrow.Dimension) int8 {
	return int8(kind) + 10*int8(dim)
}

// KindOfTypeID splits a type id into kind and dimension.
func KindOfTypeID(id int8) (geoarrow.Kind, geoarrow.Dimension, bool) {
	if id < 0 {
		return 0, 0, false
	}
	kind, dim := geoarrow.Kind(id%10), geoarrow.Dimension(id/10)
	if kind < geoarrow.KindPoint || kind > geoarrow.KindMultiPolygon || !dim.Valid() {
		return 0, 0, false
	}
	return kind, dim, true
}

// MixedArray is a dense union of the six OGC kinds. Slot i lives at
// valueOffsets[i] in the child selected by typeIDs[i].
type MixedArray struct {
	base
	coordType        geoarrow.CoordType
	typeIDs          []int8
	valueOffsets     []int32
	points           *PointArray
	lineStrings      *LineStringArray
	polygons         *PolygonArray
	multiPoints      *MultiPointArray
	multiLineStrings *MultiLineStringArray
	multiPolygons    *MultiPolygonArray
}

var _ Array = (*MixedArray)(nil)

// MixedChildren are the typed children of a Mixed array.
type MixedChildren struct {
	Points           *PointArray
	LineStrings      *LineStringArray
	Polygons         *PolygonArray
	MultiPoints      *MultiPointArray
	MultiLineStrings *MultiLineStringArray
	MultiPolygons    *MultiPolygonArray
}

// NewMixedArray assembles an array from parts. Every child must be present
// and share dim.
//
// A slot is null exactly when the child value it points at is null, which
// is how the dense union storage records it. validity may be nil, in which
// case it is derived from the children; otherwise it must agree with them.
func NewMixedArray(dim geoarrow.Dimension, typeIDs []int8, valueOffsets []int32, children MixedChildren, validity *Validity, meta geoarrow.Metadata) (*MixedArray, error) {
	if children.Points == nil || children.LineStrings == nil || children.Polygons == nil ||
		children.MultiPoints == nil || children.MultiLineStrings == nil || children.MultiPolygons == nil {
		return nil, geoarrow.IncorrectType("mixed array requires all six children")
	}
	a := &MixedArray{
		base:             base{dim: dim, meta: meta},
		typeIDs:          typeIDs,
		valueOffsets:     valueOffsets,
		points:           children.Points,
		lineStrings:      children.LineStrings,
		polygons:         children.Polygons,
		multiPoints:      children.MultiPoints,
		multiLineStrings: children.MultiLineStrings,
		multiPolygons:    children.MultiPolygons,
	}
	if len(typeIDs) != len(valueOffsets) {
		return nil, geoarrow.IncorrectType("%d type ids but %d offsets", len(typeIDs), len(valueOffsets))
	}
	if err := checkValidity(validity, len(typeIDs)); err != nil {
		return nil, err
	}
	for _, kind := range mixedKinds {
		if err := geoarrow.CheckDimension(dim, a.child(kind).Dim()); err != nil {
			return nil, err
		}
	}
	a.coordType = a.points.CoordType()

	var vb ValidityBuilder
	for i, id := range typeIDs {
		kind, d, ok := KindOfTypeID(id)
		if !ok || d != dim {
			return nil, geoarrow.IncorrectType("type id %d at slot %d is not a %s geometry", id, i, dim)
		}
		child := a.child(kind)
		off := int(valueOffsets[i])
		if off < 0 || off >= child.Len() {
			return nil, geoarrow.IncorrectType("offset %d at slot %d outside %s child", off, i, kind)
		}
		valid := child.IsValid(off)
		if validity != nil && validity.IsValid(i) != valid {
			return nil, geoarrow.NewMalformed(i, "slot %d validity disagrees with its %s child value", i, kind)
		}
		vb.Append(valid)
	}
	a.validity = vb.Finish()
	return a, nil
}

func (a *MixedArray) Kind() geoarrow.Kind           { return geoarrow.KindGeometry }
func (a *MixedArray) CoordType() geoarrow.CoordType { return a.coordType }
func (a *MixedArray) Len() int                      { return len(a.typeIDs) }
func (a *MixedArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *MixedArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// TypeIDs returns the per-slot union type ids. The slice must not be modified.
func (a *MixedArray) TypeIDs() []int8 { return a.typeIDs }

// ValueOffsets returns the per-slot child offsets. The slice must not be modified.
func (a *MixedArray) ValueOffsets() []int32 { return a.valueOffsets }

// Children returns the typed children.
func (a *MixedArray) Children() MixedChildren {
	return MixedChildren{
		Points:           a.points,
		LineStrings:      a.lineStrings,
		Polygons:         a.polygons,
		MultiPoints:      a.multiPoints,
		MultiLineStrings: a.multiLineStrings,
		MultiPolygons:    a.multiPolygons,
	}
}

func (a *MixedArray) child(kind geoarrow.Kind) Array {
	switch kind {
	case geoarrow.KindPoint:
		return a.points
	case geoarrow.KindLineString:
		return a.lineStrings
	case geoarrow.KindPolygon:
		return a.polygons
	case geoarrow.KindMultiPoint:
		return a.multiPoints
	case geoarrow.KindMultiLineString:
		return a.multiLineStrings
	default:
		return a.multiPolygons
	}
}

// KindAt returns the kind stored at slot i.
func (a *MixedArray) KindAt(i int) geoarrow.Kind {
	geoarrow.CheckIndex(i, a.Len())
	kind, _, _ := KindOfTypeID(a.typeIDs[i])
	return kind
}

func (a *MixedArray) Geometry(i int) traits.Geometry {
	kind := a.KindAt(i)
	if a.IsNull(i) {
		return nil
	}
	return a.child(kind).Geometry(int(a.valueOffsets[i]))
}

func (a *MixedArray) Slice(offset, length int) Array {
	checkWindow(offset, length, a.Len())
	out := *a
	out.base = a.slice(offset, length)
	out.typeIDs = a.typeIDs[offset : offset+length : offset+length]
	out.valueOffsets = a.valueOffsets[offset : offset+length : offset+length]
	return &out
}

func (a *MixedArray) OwnedSlice(offset, length int) Array { return rebuild(a, offset, length) }

func (a *MixedArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.coordType = ct
	out.points = a.points.ToCoordType(ct).(*PointArray)
	out.lineStrings = a.lineStrings.ToCoordType(ct).(*LineStringArray)
	out.polygons = a.polygons.ToCoordType(ct).(*PolygonArray)
	out.multiPoints = a.multiPoints.ToCoordType(ct).(*MultiPointArray)
	out.multiLineStrings = a.multiLineStrings.ToCoordType(ct).(*MultiLineStringArray)
	out.multiPolygons = a.multiPolygons.ToCoordType(ct).(*MultiPolygonArray)
	return &out
}

func (a *MixedArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// MixedBuilder builds a MixedArray.
type MixedBuilder struct {
	meta             geoarrow.Metadata
	dim              geoarrow.Dimension
	coordType        geoarrow.CoordType
	typeIDs          []int8
	valueOffsets     []int32
	points           *PointBuilder
	lineStrings      *LineStringBuilder
	polygons         *PolygonBuilder
	multiPoints      *MultiPointBuilder
	multiLineStrings *MultiLineStringBuilder
	multiPolygons    *MultiPolygonBuilder
	validity         ValidityBuilder
}

var _ Builder = (*MixedBuilder)(nil)

// NewMixedBuilder returns an empty builder.
func NewMixedBuilder(dim geoarrow.Dimension, opts ...Option) *MixedBuilder {
	o := applyOptions(opts)
	child := []Option{WithCoordType(o.coordType)}
	return &MixedBuilder{
		meta:             o.metadata,
		dim:              dim,
		coordType:        o.coordType,
		typeIDs:          make([]int8, 0, o.capacity),
		valueOffsets:     make([]int32, 0, o.capacity),
		points:           NewPointBuilder(dim, child...),
		lineStrings:      NewLineStringBuilder(dim, child...),
		polygons:         NewPolygonBuilder(dim, child...),
		multiPoints:      NewMultiPointBuilder(dim, child...),
		multiLineStrings: NewMultiLineStringBuilder(dim, child...),
		multiPolygons:    NewMultiPolygonBuilder(dim, child...),
	}
}

func (b *MixedBuilder) Kind() geoarrow.Kind     { return geoarrow.KindGeometry }
func (b *MixedBuilder) Dim() geoarrow.Dimension { return b.dim }
func (b *MixedBuilder) Len() int                { return len(b.typeIDs) }

// TryPushGeometry appends g to the child of its kind; nil appends a null.
// Rects are stored as polygons. Geometry collections are rejected with
// geoarrow.ErrIncorrectType.
func (b *MixedBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.dim, g); err != nil {
		return err
	}
	var (
		child Builder
		kind  = traits.KindOf(g)
	)
	switch t := g.AsType().(type) {
	case traits.PointType:
		child = b.points
	case traits.LineStringType:
		child = b.lineStrings
	case traits.PolygonType:
		child = b.polygons
	case traits.MultiPointType:
		child = b.multiPoints
	case traits.MultiLineStringType:
		child = b.multiLineStrings
	case traits.MultiPolygonType:
		child = b.multiPolygons
	case traits.RectType:
		child, kind = b.polygons, geoarrow.KindPolygon
		g = traits.RectPolygon(t.Rect)
	case traits.GeometryCollectionType:
		return incorrectPush(geoarrow.KindGeometry, g)
	default:
		panic(traits.Unreachable(t))
	}

	offset, err := valueOffset(child.Len())
	if err != nil {
		return err
	}
	if err := child.TryPushGeometry(g); err != nil {
		return err
	}
	b.typeIDs = append(b.typeIDs, TypeID(kind, b.dim))
	b.valueOffsets = append(b.valueOffsets, offset)
	b.validity.AppendValid(1)
	return nil
}

func (b *MixedBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a null slot backed by a null point.
func (b *MixedBuilder) PushNull() {
	offset, err := valueOffset(b.points.Len())
	geoarrow.Must(err)
	b.points.PushNull()
	b.typeIDs = append(b.typeIDs, TypeID(geoarrow.KindPoint, b.dim))
	b.valueOffsets = append(b.valueOffsets, offset)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *MixedBuilder) Finish() *MixedArray {
	return &MixedArray{
		base:             base{dim: b.dim, meta: b.meta, validity: b.validity.Finish()},
		coordType:        b.coordType,
		typeIDs:          b.typeIDs,
		valueOffsets:     b.valueOffsets,
		points:           b.points.Finish(),
		lineStrings:      b.lineStrings.Finish(),
		polygons:         b.polygons.Finish(),
		multiPoints:      b.multiPoints.Finish(),
		multiLineStrings: b.multiLineStrings.Finish(),
		multiPolygons:    b.multiPolygons.Finish(),
	}
}

func (b *MixedBuilder) FinishArray() Array { return b.Finish() }

// valueOffset converts a child position to a dense union offset.
func valueOffset(n int) (int32, error) {
	off, err := conv.IntToInt32(n)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", geoarrow.ErrOffsetOverflow, err)
	}
	return off, nil
}
