package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// MultiLineStringArray stores one line run per slot.
type MultiLineStringArray struct {
	base
	coords      CoordBuffer
	geomOffsets Offsets[int32] // slot -> lines
	ringOffsets Offsets[int32] // line -> vertices
}

var _ Array = (*MultiLineStringArray)(nil)

// NewMultiLineStringArray assembles an array from parts. validity may be nil.
func NewMultiLineStringArray(coords CoordBuffer, geomOffsets, ringOffsets Offsets[int32], validity *Validity, meta geoarrow.Metadata) (*MultiLineStringArray, error) {
	if err := checkLayer(ringOffsets, coords.Len(), "vertices"); err != nil {
		return nil, err
	}
	if err := checkLayer(geomOffsets, ringOffsets.Len(), "linestrings"); err != nil {
		return nil, err
	}
	if err := checkValidity(validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return &MultiLineStringArray{
		base:        base{dim: coords.Dim(), meta: meta, validity: validity},
		coords:      coords,
		geomOffsets: geomOffsets,
		ringOffsets: ringOffsets,
	}, nil
}

func (a *MultiLineStringArray) Kind() geoarrow.Kind           { return geoarrow.KindMultiLineString }
func (a *MultiLineStringArray) CoordType() geoarrow.CoordType { return a.coords.CoordType() }
func (a *MultiLineStringArray) Len() int                      { return a.geomOffsets.Len() }
func (a *MultiLineStringArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *MultiLineStringArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Coords returns the coordinate buffer shared by every slot.
func (a *MultiLineStringArray) Coords() CoordBuffer { return a.coords }

// GeomOffsets returns the per-slot line offsets.
func (a *MultiLineStringArray) GeomOffsets() Offsets[int32] { return a.geomOffsets }

// RingOffsets returns the per-line vertex offsets.
func (a *MultiLineStringArray) RingOffsets() Offsets[int32] { return a.ringOffsets }

// Value returns slot i regardless of validity.
func (a *MultiLineStringArray) Value(i int) MultiLineString {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.geomOffsets.Range(i)
	return MultiLineString{coords: a.coords, lines: a.ringOffsets, start: start, end: end}
}

func (a *MultiLineStringArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *MultiLineStringArray) Slice(offset, length int) Array {
	out := *a
	out.base = a.slice(offset, length)
	out.geomOffsets = a.geomOffsets.Slice(offset, length)
	return &out
}

func (a *MultiLineStringArray) OwnedSlice(offset, length int) Array {
	return rebuild(a, offset, length)
}

func (a *MultiLineStringArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.coords = a.coords.ToCoordType(ct)
	return &out
}

func (a *MultiLineStringArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// MultiLineStringBuilder builds a MultiLineStringArray.
type MultiLineStringBuilder struct {
	meta        geoarrow.Metadata
	coords      *CoordBufferBuilder
	geomOffsets *OffsetsBuilder[int32]
	ringOffsets *OffsetsBuilder[int32]
	validity    ValidityBuilder
}

var _ Builder = (*MultiLineStringBuilder)(nil)

// NewMultiLineStringBuilder returns an empty builder.
func NewMultiLineStringBuilder(dim geoarrow.Dimension, opts ...Option) *MultiLineStringBuilder {
	o := applyOptions(opts)
	b := &MultiLineStringBuilder{
		meta:        o.metadata,
		coords:      NewCoordBufferBuilder(dim, o.coordType),
		geomOffsets: NewOffsetsBuilder[int32](),
		ringOffsets: NewOffsetsBuilder[int32](),
	}
	b.geomOffsets.Reserve(o.capacity)
	return b
}

func (b *MultiLineStringBuilder) Kind() geoarrow.Kind     { return geoarrow.KindMultiLineString }
func (b *MultiLineStringBuilder) Dim() geoarrow.Dimension { return b.coords.Dim() }
func (b *MultiLineStringBuilder) Len() int                { return b.geomOffsets.Len() }

// TryPushMultiLineString appends ml; nil appends a null slot.
func (b *MultiLineStringBuilder) TryPushMultiLineString(ml traits.MultiLineString) error {
	if ml == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), ml); err != nil {
		return err
	}
	n := ml.NumLineStrings()
	if err := b.geomOffsets.TryPushLength(n); err != nil {
		return err
	}
	for i := range n {
		if err := pushCoords(b.coords, b.ringOffsets, ml.LineStringUnchecked(i)); err != nil {
			return err
		}
	}
	b.validity.AppendValid(1)
	return nil
}

// PushMultiLineString is TryPushMultiLineString panicking on error.
func (b *MultiLineStringBuilder) PushMultiLineString(ml traits.MultiLineString) {
	geoarrow.Must(b.TryPushMultiLineString(ml))
}

// TryPushLineString appends ls as a one-part multilinestring.
func (b *MultiLineStringBuilder) TryPushLineString(ls traits.LineString) error {
	if ls == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), ls); err != nil {
		return err
	}
	if err := b.geomOffsets.TryPushLength(1); err != nil {
		return err
	}
	if err := pushCoords(b.coords, b.ringOffsets, ls); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

// TryPushGeometry accepts line strings and multilinestrings.
func (b *MultiLineStringBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	switch t := g.AsType().(type) {
	case traits.LineStringType:
		return b.TryPushLineString(t.LineString)
	case traits.MultiLineStringType:
		return b.TryPushMultiLineString(t.MultiLineString)
	}
	return incorrectPush(geoarrow.KindMultiLineString, g)
}

func (b *MultiLineStringBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a zero-length null slot.
func (b *MultiLineStringBuilder) PushNull() {
	b.geomOffsets.ExtendConstant(1)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *MultiLineStringBuilder) Finish() *MultiLineStringArray {
	coords := b.coords.Finish()
	return &MultiLineStringArray{
		base:        base{dim: coords.Dim(), meta: b.meta, validity: b.validity.Finish()},
		coords:      coords,
		geomOffsets: b.geomOffsets.Finish(),
		ringOffsets: b.ringOffsets.Finish(),
	}
}

func (b *MultiLineStringBuilder) FinishArray() Array { return b.Finish() }
