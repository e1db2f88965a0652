package array

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// LineStringArray stores one coordinate run per slot.
type LineStringArray struct {
	base
	coords      CoordBuffer
	geomOffsets Offsets[int32]
}

var _ Array = (*LineStringArray)(nil)

// NewLineStringArray assembles an array from parts. validity may be nil.
func NewLineStringArray(coords CoordBuffer, geomOffsets Offsets[int32], validity *Validity, meta geoarrow.Metadata) (*LineStringArray, error) {
	if err := checkLayer(geomOffsets, coords.Len(), "vertices"); err != nil {
		return nil, err
	}
	if err := checkValidity(validity, geomOffsets.Len()); err != nil {
		return nil, err
	}
	return &LineStringArray{base: base{dim: coords.Dim(), meta: meta, validity: validity}, coords: coords, geomOffsets: geomOffsets}, nil
}

func (a *LineStringArray) Kind() geoarrow.Kind           { return geoarrow.KindLineString }
func (a *LineStringArray) CoordType() geoarrow.CoordType { return a.coords.CoordType() }
func (a *LineStringArray) Len() int                      { return a.geomOffsets.Len() }
func (a *LineStringArray) IsNull(i int) bool             { return !a.isValid(i, a.Len()) }
func (a *LineStringArray) IsValid(i int) bool            { return a.isValid(i, a.Len()) }

// Coords returns the coordinate buffer shared by every slot.
func (a *LineStringArray) Coords() CoordBuffer { return a.coords }

// GeomOffsets returns the per-slot vertex offsets.
func (a *LineStringArray) GeomOffsets() Offsets[int32] { return a.geomOffsets }

// Value returns slot i regardless of validity.
func (a *LineStringArray) Value(i int) LineString {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.geomOffsets.Range(i)
	return LineString{coords: a.coords, start: start, end: end}
}

func (a *LineStringArray) Geometry(i int) traits.Geometry {
	v := a.Value(i)
	if a.IsNull(i) {
		return nil
	}
	return v
}

func (a *LineStringArray) Slice(offset, length int) Array {
	return &LineStringArray{base: a.slice(offset, length), coords: a.coords, geomOffsets: a.geomOffsets.Slice(offset, length)}
}

func (a *LineStringArray) OwnedSlice(offset, length int) Array { return rebuild(a, offset, length) }

func (a *LineStringArray) ToCoordType(ct geoarrow.CoordType) Array {
	out := *a
	out.coords = a.coords.ToCoordType(ct)
	return &out
}

func (a *LineStringArray) WithMetadata(m geoarrow.Metadata) Array {
	out := *a
	out.meta = m
	return &out
}

// LineStringBuilder builds a LineStringArray.
type LineStringBuilder struct {
	meta        geoarrow.Metadata
	coords      *CoordBufferBuilder
	geomOffsets *OffsetsBuilder[int32]
	validity    ValidityBuilder
}

var _ Builder = (*LineStringBuilder)(nil)

// NewLineStringBuilder returns an empty builder.
func NewLineStringBuilder(dim geoarrow.Dimension, opts ...Option) *LineStringBuilder {
	o := applyOptions(opts)
	b := &LineStringBuilder{
		meta:        o.metadata,
		coords:      NewCoordBufferBuilder(dim, o.coordType),
		geomOffsets: NewOffsetsBuilder[int32](),
	}
	b.geomOffsets.Reserve(o.capacity)
	return b
}

func (b *LineStringBuilder) Kind() geoarrow.Kind     { return geoarrow.KindLineString }
func (b *LineStringBuilder) Dim() geoarrow.Dimension { return b.coords.Dim() }
func (b *LineStringBuilder) Len() int                { return b.geomOffsets.Len() }

// TryPushLineString appends ls; nil appends a null slot.
func (b *LineStringBuilder) TryPushLineString(ls traits.LineString) error {
	if ls == nil {
		b.PushNull()
		return nil
	}
	if err := checkDim(b.Dim(), ls); err != nil {
		return err
	}
	if err := pushCoords(b.coords, b.geomOffsets, ls); err != nil {
		return err
	}
	b.validity.AppendValid(1)
	return nil
}

// PushLineString is TryPushLineString panicking on error.
func (b *LineStringBuilder) PushLineString(ls traits.LineString) {
	geoarrow.Must(b.TryPushLineString(ls))
}

// TryPushGeometry accepts line strings and single-part multilinestrings.
func (b *LineStringBuilder) TryPushGeometry(g traits.Geometry) error {
	if g == nil {
		b.PushNull()
		return nil
	}
	switch t := g.AsType().(type) {
	case traits.LineStringType:
		return b.TryPushLineString(t.LineString)
	case traits.MultiLineStringType:
		if t.NumLineStrings() == 1 {
			return b.TryPushLineString(t.LineStringUnchecked(0))
		}
	}
	return incorrectPush(geoarrow.KindLineString, g)
}

func (b *LineStringBuilder) PushGeometry(g traits.Geometry) {
	geoarrow.Must(b.TryPushGeometry(g))
}

// PushNull appends a zero-length null slot.
func (b *LineStringBuilder) PushNull() {
	b.geomOffsets.ExtendConstant(1)
	b.validity.AppendNull(1)
}

// Finish freezes the builder into an array without copying.
func (b *LineStringBuilder) Finish() *LineStringArray {
	coords := b.coords.Finish()
	return &LineStringArray{
		base:        base{dim: coords.Dim(), meta: b.meta, validity: b.validity.Finish()},
		coords:      coords,
		geomOffsets: b.geomOffsets.Finish(),
	}
}

func (b *LineStringBuilder) FinishArray() Array { return b.Finish() }

// pushCoords appends the run length of ls to offsets and its coordinates.
func pushCoords(coords *CoordBufferBuilder, offsets *OffsetsBuilder[int32], ls traits.LineString) error {
	n := ls.NumCoords()
	if err := offsets.TryPushLength(n); err != nil {
		return err
	}
	coords.Reserve(n)
	for i := range n {
		if err := coords.TryPushCoord(ls.CoordUnchecked(i)); err != nil {
			return err
		}
	}
	return nil
}

// checkLayer requires the offsets to end exactly at the child length.
func checkLayer(o Offsets[int32], n int, name string) error {
	if o.Last() != n {
		return geoarrow.IncorrectType("%s offsets end at %d, want %d", name, o.Last(), n)
	}
	return nil
}

func checkValidity(v *Validity, n int) error {
	if v != nil && v.Len() != n {
		return geoarrow.IncorrectType("validity has %d slots, array %d", v.Len(), n)
	}
	return nil
}
