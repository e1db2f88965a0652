package array

import (
	"iter"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// Array is an immutable geometry array of one kind and dimension.
type Array interface {
	Kind() geoarrow.Kind
	Dim() geoarrow.Dimension
	CoordType() geoarrow.CoordType
	Metadata() geoarrow.Metadata

	Len() int
	NullN() int
	IsNull(i int) bool
	IsValid(i int) bool
	// Validity returns the bitmap, or nil when every slot is valid.
	Validity() *Validity

	// Geometry returns slot i, or nil when the slot is null.
	// It panics with *geoarrow.ErrInvalidIndex when i is out of range.
	Geometry(i int) traits.Geometry

	// Slice returns a zero-copy window sharing every buffer.
	Slice(offset, length int) Array
	// OwnedSlice returns a deep copy of a window.
	OwnedSlice(offset, length int) Array
	// ToCoordType converts the coordinate layout with an O(n) copy.
	ToCoordType(ct geoarrow.CoordType) Array
	// WithMetadata returns the same buffers under new metadata.
	WithMetadata(m geoarrow.Metadata) Array

	// StorageType returns the Arrow type of the physical storage.
	StorageType() arrow.DataType
	// ExtensionType returns the GeoArrow extension type.
	ExtensionType() *ExtensionType
	// ToArrow exports the array as an Arrow extension array without copying
	// coordinates or offsets.
	ToArrow() arrow.Array
}

// Builder is the kind-independent builder interface.
type Builder interface {
	Kind() geoarrow.Kind
	Dim() geoarrow.Dimension
	Len() int
	// TryPushGeometry appends g, or a null slot when g is nil.
	TryPushGeometry(g traits.Geometry) error
	// PushGeometry is TryPushGeometry panicking on error.
	PushGeometry(g traits.Geometry)
	PushNull()
	// FinishArray freezes the builder. It must not be used afterwards.
	FinishArray() Array
}

// base holds the state shared by every array kind.
type base struct {
	dim      geoarrow.Dimension
	meta     geoarrow.Metadata
	validity *Validity
}

func (b *base) Dim() geoarrow.Dimension     { return b.dim }
func (b *base) Metadata() geoarrow.Metadata { return b.meta }
func (b *base) Validity() *Validity         { return b.validity }
func (b *base) NullN() int                  { return b.validity.NullN() }

// isValid panics with *geoarrow.ErrInvalidIndex unless 0 <= i < n.
func (b *base) isValid(i, n int) bool {
	geoarrow.CheckIndex(i, n)
	return b.validity.IsValid(i)
}

func (b *base) slice(offset, length int) base {
	return base{dim: b.dim, meta: b.meta, validity: b.validity.Slice(offset, length)}
}

// NewBuilder returns a builder for the given kind. KindGeometry yields a
// Mixed builder.
func NewBuilder(kind geoarrow.Kind, dim geoarrow.Dimension, opts ...Option) (Builder, error) {
	if !dim.Valid() {
		return nil, geoarrow.IncorrectType("unsupported dimension %s", dim)
	}
	switch kind {
	case geoarrow.KindPoint:
		return NewPointBuilder(dim, opts...), nil
	case geoarrow.KindLineString:
		return NewLineStringBuilder(dim, opts...), nil
	case geoarrow.KindPolygon:
		return NewPolygonBuilder(dim, opts...), nil
	case geoarrow.KindMultiPoint:
		return NewMultiPointBuilder(dim, opts...), nil
	case geoarrow.KindMultiLineString:
		return NewMultiLineStringBuilder(dim, opts...), nil
	case geoarrow.KindMultiPolygon:
		return NewMultiPolygonBuilder(dim, opts...), nil
	case geoarrow.KindGeometryCollection:
		return NewGeometryCollectionBuilder(dim, opts...), nil
	case geoarrow.KindRect:
		return NewRectBuilder(dim, opts...), nil
	case geoarrow.KindGeometry:
		return NewMixedBuilder(dim, opts...), nil
	default:
		return nil, geoarrow.IncorrectType("unsupported kind %s", kind)
	}
}

// FromGeometries builds an array from geometries; nil entries become nulls.
//
// Unless WithKind is given, the kind is inferred: a single kind is kept,
// single and multi variants of one family promote to the multi kind, any
// collection yields a GeometryCollection array and anything else a Mixed
// array. All inputs must share one dimension.
func FromGeometries(geoms []traits.Geometry, opts ...Option) (Array, error) {
	o := applyOptions(opts)
	kind, dim, err := infer(geoms, o)
	if err != nil {
		return nil, err
	}
	if o.capacity == 0 {
		opts = append(opts[:len(opts):len(opts)], WithCapacity(len(geoms)))
	}
	b, err := NewBuilder(kind, dim, opts...)
	if err != nil {
		return nil, err
	}
	for _, g := range geoms {
		if err := b.TryPushGeometry(g); err != nil {
			return nil, err
		}
	}
	return b.FinishArray(), nil
}

func infer(geoms []traits.Geometry, o options) (geoarrow.Kind, geoarrow.Dimension, error) {
	var (
		kinds   uint16
		dim     geoarrow.Dimension
		haveDim bool
	)
	if o.dim != nil {
		dim, haveDim = *o.dim, true
	}
	for _, g := range geoms {
		if g == nil {
			continue
		}
		if !haveDim {
			dim, haveDim = g.Dim(), true
		} else if err := geoarrow.CheckDimension(dim, g.Dim()); err != nil {
			return 0, 0, err
		}
		kinds |= 1 << traits.KindOf(g)
	}
	if o.kind != nil {
		return *o.kind, dim, nil
	}
	return inferKind(kinds), dim, nil
}

func inferKind(kinds uint16) geoarrow.Kind {
	bit := func(ks ...geoarrow.Kind) uint16 {
		var m uint16
		for _, k := range ks {
			m |= 1 << k
		}
		return m
	}
	switch {
	case kinds == 0:
		return geoarrow.KindGeometry
	case kinds&(kinds-1) == 0:
		for k := geoarrow.KindPoint; k <= geoarrow.KindRect; k++ {
			if kinds == bit(k) {
				return k
			}
		}
	case kinds&bit(geoarrow.KindGeometryCollection) != 0:
		return geoarrow.KindGeometryCollection
	case kinds&^bit(geoarrow.KindPoint, geoarrow.KindMultiPoint) == 0:
		return geoarrow.KindMultiPoint
	case kinds&^bit(geoarrow.KindLineString, geoarrow.KindMultiLineString) == 0:
		return geoarrow.KindMultiLineString
	case kinds&^bit(geoarrow.KindPolygon, geoarrow.KindRect) == 0:
		return geoarrow.KindPolygon
	case kinds&^bit(geoarrow.KindPolygon, geoarrow.KindMultiPolygon, geoarrow.KindRect) == 0:
		return geoarrow.KindMultiPolygon
	}
	return geoarrow.KindGeometry
}

// Equal reports whether a and b have the same kind, dimension, length,
// validity and geometry values. Coordinate layout and metadata are ignored.
func Equal(a, b Array) bool {
	if a.Kind() != b.Kind() || a.Dim() != b.Dim() || a.Len() != b.Len() {
		return false
	}
	for i := range a.Len() {
		if a.IsNull(i) != b.IsNull(i) {
			return false
		}
		if a.IsNull(i) {
			continue
		}
		if !traits.Equal(a.Geometry(i), b.Geometry(i)) {
			return false
		}
	}
	return true
}

// Geometries iterates over (index, geometry) pairs; null slots yield nil.
func Geometries(a Array) iter.Seq2[int, traits.Geometry] {
	return func(yield func(int, traits.Geometry) bool) {
		for i := range a.Len() {
			if !yield(i, a.Geometry(i)) {
				return
			}
		}
	}
}

// rebuild copies a window of a through a fresh builder with the given options.
func rebuild(a Array, offset, length int, opts ...Option) Array {
	checkWindow(offset, length, a.Len())
	opts = append([]Option{
		WithCoordType(a.CoordType()),
		WithMetadata(a.Metadata()),
		WithCapacity(length),
	}, opts...)
	b, err := NewBuilder(a.Kind(), a.Dim(), opts...)
	geoarrow.Must(err)
	for i := offset; i < offset+length; i++ {
		b.PushGeometry(a.Geometry(i))
	}
	return b.FinishArray()
}

// checkDim returns a dimension mismatch for g against the builder dimension.
func checkDim(dim geoarrow.Dimension, g interface{ Dim() geoarrow.Dimension }) error {
	return geoarrow.CheckDimension(dim, g.Dim())
}

func incorrectPush(target geoarrow.Kind, g traits.Geometry) error {
	return geoarrow.IncorrectType("cannot push %s into %s array", traits.KindOf(g), target)
}
