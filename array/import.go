package array

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/hupe1980/geoarrow"
)

// FromArrow imports a GeoArrow extension array without copying coordinates
// or offsets.
func FromArrow(arr arrow.Array) (Array, error) {
	ext, ok := arr.(array.ExtensionArray)
	if !ok {
		return nil, geoarrow.IncorrectType("%s is not an extension array", arr.DataType())
	}
	typ, ok := ext.ExtensionType().(*ExtensionType)
	if !ok {
		return nil, geoarrow.IncorrectType("extension %s is not a native geometry type", ext.ExtensionType().ExtensionName())
	}
	return FromStorage(ext.Storage(), typ.Kind(), typ.Metadata())
}

// FromStorage imports a plain storage array of the given kind.
func FromStorage(storage arrow.Array, kind geoarrow.Kind, meta geoarrow.Metadata) (Array, error) {
	dim, _, err := inspectStorage(kind, storage.DataType())
	if err != nil {
		return nil, err
	}

	switch kind {
	case geoarrow.KindPoint:
		coords, err := coordsOf(storage, dim)
		if err != nil {
			return nil, err
		}
		return NewPointArray(coords, validityOf(storage), meta)

	case geoarrow.KindLineString, geoarrow.KindMultiPoint:
		geoms, child, err := listOf32(storage)
		if err != nil {
			return nil, err
		}
		coords, err := coordsOf(child, dim)
		if err != nil {
			return nil, err
		}
		if coords, err = fitCoords(geoms, coords); err != nil {
			return nil, err
		}
		if kind == geoarrow.KindMultiPoint {
			return NewMultiPointArray(coords, geoms, validityOf(storage), meta)
		}
		return NewLineStringArray(coords, geoms, validityOf(storage), meta)

	case geoarrow.KindPolygon, geoarrow.KindMultiLineString:
		geoms, rings, coords, err := twoLevels(storage, dim)
		if err != nil {
			return nil, err
		}
		if kind == geoarrow.KindMultiLineString {
			return NewMultiLineStringArray(coords, geoms, rings, validityOf(storage), meta)
		}
		return NewPolygonArray(coords, geoms, rings, validityOf(storage), meta)

	case geoarrow.KindMultiPolygon:
		geoms, child, err := listOf32(storage)
		if err != nil {
			return nil, err
		}
		polygons, rings, coords, err := twoLevels(child, dim)
		if err != nil {
			return nil, err
		}
		if polygons, err = fitRuns(geoms, polygons, "polygons"); err != nil {
			return nil, err
		}
		if rings, err = fitRuns(polygons, rings, "rings"); err != nil {
			return nil, err
		}
		if coords, err = fitCoords(rings, coords); err != nil {
			return nil, err
		}
		return NewMultiPolygonArray(coords, geoms, polygons, rings, validityOf(storage), meta)

	case geoarrow.KindRect:
		return rectOf(storage, dim, meta)

	case geoarrow.KindGeometry:
		return mixedOf(storage, dim, meta)

	case geoarrow.KindGeometryCollection:
		geoms, child, err := listOf32(storage)
		if err != nil {
			return nil, err
		}
		mixed, err := mixedOf(child, dim, meta)
		if err != nil {
			return nil, err
		}
		if geoms.Last() > mixed.Len() {
			return nil, geoarrow.IncorrectType("geometries offsets end at %d beyond %d values", geoms.Last(), mixed.Len())
		}
		mixed = mixed.Slice(0, geoms.Last()).(*MixedArray)
		return NewGeometryCollectionArray(mixed, geoms, validityOf(storage), meta)

	default:
		return nil, geoarrow.IncorrectType("unsupported kind %s", kind)
	}
}

func validityOf(arr arrow.Array) *Validity {
	if arr.NullN() == 0 {
		return nil
	}
	return NewValidity(arr.NullBitmapBytes(), arr.Data().Offset(), arr.Len())
}

// listOf32 returns the window of offsets of a List array and its full child.
// Callers trim the child to the window with fitRuns or fitCoords.
func listOf32(arr arrow.Array) (Offsets[int32], arrow.Array, error) {
	list, ok := arr.(*array.List)
	if !ok {
		return Offsets[int32]{}, nil, geoarrow.IncorrectType("expected list storage, got %s", arr.DataType())
	}
	offsets, err := rawOffsets(arr.Data(), 1)
	if err != nil {
		return Offsets[int32]{}, nil, err
	}
	o, err := NewOffsets(offsets)
	return o, list.ListValues(), err
}

// rawOffsets reads the Len()+1 offsets at buffer index buf.
func rawOffsets(data arrow.ArrayData, buf int) ([]int32, error) {
	if data.Len() == 0 {
		if v, err := rawInt32(data, buf, 1); err == nil {
			return v, nil
		}
		return []int32{0}, nil
	}
	return rawInt32(data, buf, data.Len()+1)
}

// rawInt32 reads n int32 values at buffer index buf, adjusted for the data offset.
func rawInt32(data arrow.ArrayData, buf, n int) ([]int32, error) {
	bufs := data.Buffers()
	if len(bufs) <= buf || bufs[buf] == nil {
		return nil, geoarrow.NewMalformed(0, "missing buffer %d", buf)
	}
	raw := arrow.Int32Traits.CastFromBytes(bufs[buf].Bytes())
	start, end := data.Offset(), data.Offset()+n
	if end > len(raw) {
		return nil, geoarrow.NewMalformed(0, "buffer %d holds %d values, need %d", buf, len(raw), end)
	}
	return raw[start:end:end], nil
}

func twoLevels(arr arrow.Array, dim geoarrow.Dimension) (outer, inner Offsets[int32], coords CoordBuffer, err error) {
	outer, child, err := listOf32(arr)
	if err != nil {
		return
	}
	inner, leaf, err := listOf32(child)
	if err != nil {
		return
	}
	if coords, err = coordsOf(leaf, dim); err != nil {
		return
	}
	if inner, err = fitRuns(outer, inner, "rings"); err != nil {
		return
	}
	coords, err = fitCoords(inner, coords)
	return
}

// fitRuns trims the child runs to the window the parent offsets reach.
func fitRuns(parent, child Offsets[int32], name string) (Offsets[int32], error) {
	if parent.Last() > child.Len() {
		return Offsets[int32]{}, geoarrow.IncorrectType("%s offsets end at %d beyond %d values", name, parent.Last(), child.Len())
	}
	return child.Slice(0, parent.Last()), nil
}

// fitCoords trims coords to the window the parent offsets reach.
func fitCoords(parent Offsets[int32], coords CoordBuffer) (CoordBuffer, error) {
	if parent.Last() > coords.Len() {
		return nil, geoarrow.IncorrectType("vertices offsets end at %d beyond %d values", parent.Last(), coords.Len())
	}
	return coords.Slice(0, parent.Last()), nil
}

func coordsOf(arr arrow.Array, dim geoarrow.Dimension) (CoordBuffer, error) {
	switch a := arr.(type) {
	case *array.FixedSizeList:
		values, ok := a.ListValues().(*array.Float64)
		if !ok {
			return nil, geoarrow.IncorrectType("coordinate values must be float64, got %s", a.ListValues().DataType())
		}
		size := dim.Size()
		raw := values.Float64Values()
		start, end := a.Data().Offset()*size, (a.Data().Offset()+a.Len())*size
		if end > len(raw) {
			return nil, geoarrow.NewMalformed(0, "coordinate buffer holds %d values, need %d", len(raw), end)
		}
		return NewInterleavedCoords(dim, raw[start:end:end])
	case *array.Struct:
		axes := make([][]float64, a.NumField())
		for i := range axes {
			f, ok := a.Field(i).(*array.Float64)
			if !ok {
				return nil, geoarrow.IncorrectType("coordinate axis must be float64, got %s", a.Field(i).DataType())
			}
			axes[i] = f.Float64Values()
		}
		return NewSeparatedCoords(dim, axes...)
	default:
		return nil, geoarrow.IncorrectType("unsupported coordinate storage %s", arr.DataType())
	}
}

func rectOf(arr arrow.Array, dim geoarrow.Dimension, meta geoarrow.Metadata) (*RectArray, error) {
	st, ok := arr.(*array.Struct)
	if !ok {
		return nil, geoarrow.IncorrectType("expected struct storage, got %s", arr.DataType())
	}
	size := dim.Size()
	axes := make([][]float64, 2*size)
	for i := range axes {
		f, ok := st.Field(i).(*array.Float64)
		if !ok {
			return nil, geoarrow.IncorrectType("box axis must be float64, got %s", st.Field(i).DataType())
		}
		axes[i] = f.Float64Values()
	}
	lower, err := NewSeparatedCoords(dim, axes[:size]...)
	if err != nil {
		return nil, err
	}
	upper, err := NewSeparatedCoords(dim, axes[size:]...)
	if err != nil {
		return nil, err
	}
	return NewRectArray(lower, upper, validityOf(arr), meta)
}

// mixedOf imports a dense union. Kinds absent from the union get empty
// children; slot validity is read from the children.
func mixedOf(arr arrow.Array, dim geoarrow.Dimension, meta geoarrow.Metadata) (*MixedArray, error) {
	union, ok := arr.(*array.DenseUnion)
	if !ok {
		return nil, geoarrow.IncorrectType("expected dense union storage, got %s", arr.DataType())
	}
	ut := union.DataType().(*arrow.DenseUnionType)

	var children MixedChildren
	ct := geoarrow.Interleaved
	for i, code := range ut.TypeCodes() {
		kind, d, ok := KindOfTypeID(int8(code))
		if !ok || d != dim {
			return nil, geoarrow.IncorrectType("unsupported union type code %d", code)
		}
		child, err := FromStorage(union.Field(i), kind, geoarrow.Metadata{})
		if err != nil {
			return nil, err
		}
		ct = child.CoordType()
		if err := children.set(child); err != nil {
			return nil, err
		}
	}
	children.fill(dim, ct)

	data := union.Data()
	bufs := data.Buffers()
	if data.Len() > 0 && (len(bufs) < 3 || bufs[1] == nil || bufs[2] == nil) {
		return nil, geoarrow.NewMalformed(0, "dense union without type id or offset buffers")
	}
	var typeIDs []int8
	if data.Len() > 0 {
		raw := arrow.Int8Traits.CastFromBytes(bufs[1].Bytes())
		start, end := data.Offset(), data.Offset()+data.Len()
		if end > len(raw) {
			return nil, geoarrow.NewMalformed(0, "type id buffer holds %d values, need %d", len(raw), end)
		}
		typeIDs = raw[start:end:end]
	}
	var valueOffsets []int32
	if data.Len() > 0 {
		var err error
		if valueOffsets, err = rawInt32(data, 2, data.Len()); err != nil {
			return nil, err
		}
	}

	return NewMixedArray(dim, typeIDs, valueOffsets, children, nil, meta)
}

func (c *MixedChildren) set(child Array) error {
	switch t := child.(type) {
	case *PointArray:
		c.Points = t
	case *LineStringArray:
		c.LineStrings = t
	case *PolygonArray:
		c.Polygons = t
	case *MultiPointArray:
		c.MultiPoints = t
	case *MultiLineStringArray:
		c.MultiLineStrings = t
	case *MultiPolygonArray:
		c.MultiPolygons = t
	default:
		return geoarrow.IncorrectType("unsupported union child %s", child.Kind())
	}
	return nil
}

func (c *MixedChildren) fill(dim geoarrow.Dimension, ct geoarrow.CoordType) {
	opt := WithCoordType(ct)
	if c.Points == nil {
		c.Points = NewPointBuilder(dim, opt).Finish()
	}
	if c.LineStrings == nil {
		c.LineStrings = NewLineStringBuilder(dim, opt).Finish()
	}
	if c.Polygons == nil {
		c.Polygons = NewPolygonBuilder(dim, opt).Finish()
	}
	if c.MultiPoints == nil {
		c.MultiPoints = NewMultiPointBuilder(dim, opt).Finish()
	}
	if c.MultiLineStrings == nil {
		c.MultiLineStrings = NewMultiLineStringBuilder(dim, opt).Finish()
	}
	if c.MultiPolygons == nil {
		c.MultiPolygons = NewMultiPolygonBuilder(dim, opt).Finish()
	}
}
