package wkb

import (
	"context"
	"fmt"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/traits"
)

// Array is a column of WKB-encoded geometries. Slot i spans
// values[offsets[i]:offsets[i+1]]; null slots have zero length.
type Array[O array.OffsetType] struct {
	offsets  array.Offsets[O]
	values   []byte
	validity *array.Validity
	meta     geoarrow.Metadata
}

// NewArray assembles a column from parts without copying. validity may be nil.
func NewArray[O array.OffsetType](offsets array.Offsets[O], values []byte, validity *array.Validity, meta geoarrow.Metadata) (*Array[O], error) {
	if offsets.Last() > len(values) {
		return nil, geoarrow.NewMalformed(len(values), "offsets end at %d past %d value bytes", offsets.Last(), len(values))
	}
	if validity != nil && validity.Len() != offsets.Len() {
		return nil, geoarrow.IncorrectType("validity has %d slots, offsets %d", validity.Len(), offsets.Len())
	}
	return &Array[O]{offsets: offsets, values: values, validity: validity, meta: meta}, nil
}

func (a *Array[O]) Len() int                    { return a.offsets.Len() }
func (a *Array[O]) NullN() int                  { return a.validity.NullN() }
func (a *Array[O]) IsNull(i int) bool           { return a.validity.IsNull(i) }
func (a *Array[O]) IsValid(i int) bool          { return a.validity.IsValid(i) }
func (a *Array[O]) Validity() *array.Validity   { return a.validity }
func (a *Array[O]) Metadata() geoarrow.Metadata { return a.meta }

// Offsets returns the value offsets.
func (a *Array[O]) Offsets() array.Offsets[O] { return a.offsets }

// Value returns the encoded bytes of slot i, empty for nulls. The slice
// must not be modified.
func (a *Array[O]) Value(i int) []byte {
	geoarrow.CheckIndex(i, a.Len())
	start, end := a.offsets.Range(i)
	return a.values[start:end:end]
}

// Geometry parses slot i. Null slots yield (nil, nil).
func (a *Array[O]) Geometry(i int) (traits.Geometry, error) {
	if a.IsNull(i) {
		geoarrow.CheckIndex(i, a.Len())
		return nil, nil
	}
	return Parse(a.Value(i))
}

// Slice returns a zero-copy window.
func (a *Array[O]) Slice(offset, length int) *Array[O] {
	return &Array[O]{
		offsets:  a.offsets.Slice(offset, length),
		values:   a.values,
		validity: a.validity.Slice(offset, length),
		meta:     a.meta,
	}
}

// WithMetadata returns the same buffers under new metadata.
func (a *Array[O]) WithMetadata(m geoarrow.Metadata) *Array[O] {
	out := *a
	out.meta = m
	return &out
}

// FromNative encodes every slot of src. Sizes are computed first so the
// value buffer is allocated exactly once; null slots get an empty run.
// With int32 offsets, columns over 2 GiB fail with geoarrow.ErrOffsetOverflow.
func FromNative[O array.OffsetType](ctx context.Context, src array.Array, opts ...Option) (*Array[O], error) {
	o := applyOptions(opts)
	n := src.Len()

	ob := array.NewOffsetsBuilder[O]()
	ob.ReserveExact(n)
	for i := range n {
		g := src.Geometry(i)
		if g == nil {
			ob.ExtendConstant(1)
			continue
		}
		if err := ob.TryPushLength(Size(g)); err != nil {
			o.logger.LogEncode(ctx, "wkb", n, 0, err)
			return nil, err
		}
	}
	offsets := ob.Finish()

	values := make([]byte, 0, offsets.Last())
	for i := range n {
		g := src.Geometry(i)
		if g == nil {
			continue
		}
		var err error
		if values, err = Append(values, g, o.order); err != nil {
			o.logger.LogEncode(ctx, "wkb", n, len(values), err)
			return nil, err
		}
	}
	o.logger.LogEncode(ctx, "wkb", n, len(values), nil)

	return &Array[O]{offsets: offsets, values: values, validity: src.Validity(), meta: src.Metadata()}, nil
}

// ToNative decodes the column into a native array. Unless
// WithArrayOptions fixes the kind, it is inferred from the decoded
// geometries as array.FromGeometries does.
func (a *Array[O]) ToNative(ctx context.Context, opts ...Option) (array.Array, error) {
	o := applyOptions(opts)
	geoms, err := a.Geometries()
	if err != nil {
		o.logger.LogDecode(ctx, "wkb", a.Len(), a.NullN(), err)
		return nil, err
	}
	arrayOpts := append([]array.Option{array.WithMetadata(a.meta)}, o.arrayOpts...)
	out, err := array.FromGeometries(geoms, arrayOpts...)
	o.logger.LogDecode(ctx, "wkb", a.Len(), a.NullN(), err)
	return out, err
}

// Geometries parses every slot; null slots yield nil.
func (a *Array[O]) Geometries() ([]traits.Geometry, error) {
	geoms := make([]traits.Geometry, a.Len())
	for i := range geoms {
		g, err := a.Geometry(i)
		if err != nil {
			return nil, &SlotError{Index: i, Err: err}
		}
		geoms[i] = g
	}
	return geoms, nil
}

// SlotError reports the slot at which a column operation failed.
type SlotError struct {
	Index int
	Err   error
}

func (e *SlotError) Error() string { return fmt.Sprintf("wkb: slot %d: %v", e.Index, e.Err) }

func (e *SlotError) Unwrap() error { return e.Err }
