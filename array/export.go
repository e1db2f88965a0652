package array

import (
	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// arrowExporter is implemented by every array kind.
type arrowExporter interface {
	Array
	// arrowData wraps the array's buffers as Arrow data of type dt, which
	// must be the array's storage type.
	arrowData(dt arrow.DataType) arrow.ArrayData
}

func toArrow(a arrowExporter) arrow.Array {
	typ := a.ExtensionType()
	data := a.arrowData(typ.StorageType())
	defer data.Release()
	storage := array.MakeFromData(data)
	defer storage.Release()
	return array.NewExtensionArrayWithStorage(typ, storage)
}

// StorageArray returns the Arrow storage array of a without the extension
// wrapper.
func StorageArray(a Array) arrow.Array {
	e, ok := a.(arrowExporter)
	if !ok {
		return nil
	}
	data := e.arrowData(a.StorageType())
	defer data.Release()
	return array.MakeFromData(data)
}

func float64Buffer(v []float64) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Float64Traits.CastToBytes(v))
}

func int32Buffer(v []int32) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Int32Traits.CastToBytes(v))
}

func int8Buffer(v []int8) *memory.Buffer {
	return memory.NewBufferBytes(arrow.Int8Traits.CastToBytes(v))
}

func validityBuffer(v *Validity) (*memory.Buffer, int) {
	if v.NullN() == 0 {
		return nil, 0
	}
	return memory.NewBufferBytes(v.Bytes()), v.NullN()
}

func float64Data(values []float64) arrow.ArrayData {
	return array.NewData(arrow.PrimitiveTypes.Float64, len(values), []*memory.Buffer{nil, float64Buffer(values)}, nil, 0, 0)
}

func coordsData(dt arrow.DataType, c CoordBuffer, v *Validity) arrow.ArrayData {
	nullBuf, nulls := validityBuffer(v)
	var children []arrow.ArrayData
	switch c := c.(type) {
	case *InterleavedCoords:
		children = []arrow.ArrayData{float64Data(c.values)}
	case *SeparatedCoords:
		for n := range c.dim.Size() {
			children = append(children, float64Data(c.axes[n]))
		}
	}
	data := array.NewData(dt, c.Len(), []*memory.Buffer{nullBuf}, children, nulls, 0)
	releaseAll(children)
	return data
}

func listData(dt arrow.DataType, offsets Offsets[int32], child arrow.ArrayData, v *Validity) arrow.ArrayData {
	defer child.Release()
	nullBuf, nulls := validityBuffer(v)
	return array.NewData(dt, offsets.Len(), []*memory.Buffer{nullBuf, int32Buffer(offsets.Values())}, []arrow.ArrayData{child}, nulls, 0)
}

func elem(dt arrow.DataType) arrow.DataType { return dt.(*arrow.ListType).Elem() }

func releaseAll(data []arrow.ArrayData) {
	for _, d := range data {
		d.Release()
	}
}

func (a *PointArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	return coordsData(dt, a.coords, a.validity)
}

func (a *LineStringArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	return listData(dt, a.geomOffsets, coordsData(elem(dt), a.coords, nil), a.validity)
}

func (a *PolygonArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	rings := elem(dt)
	return listData(dt, a.geomOffsets,
		listData(rings, a.ringOffsets, coordsData(elem(rings), a.coords, nil), nil),
		a.validity)
}

func (a *MultiPointArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	return listData(dt, a.geomOffsets, coordsData(elem(dt), a.coords, nil), a.validity)
}

func (a *MultiLineStringArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	lines := elem(dt)
	return listData(dt, a.geomOffsets,
		listData(lines, a.ringOffsets, coordsData(elem(lines), a.coords, nil), nil),
		a.validity)
}

func (a *MultiPolygonArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	polygons := elem(dt)
	rings := elem(polygons)
	return listData(dt, a.geomOffsets,
		listData(polygons, a.polygonOffsets,
			listData(rings, a.ringOffsets, coordsData(elem(rings), a.coords, nil), nil),
			nil),
		a.validity)
}

func (a *RectArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	size := a.dim.Size()
	children := make([]arrow.ArrayData, 0, 2*size)
	for _, corner := range []*SeparatedCoords{a.lower, a.upper} {
		for n := range size {
			children = append(children, float64Data(corner.axes[n]))
		}
	}
	nullBuf, nulls := validityBuffer(a.validity)
	data := array.NewData(dt, a.Len(), []*memory.Buffer{nullBuf}, children, nulls, 0)
	releaseAll(children)
	return data
}

// arrowData exports a dense union. Nulls live in the children.
func (a *MixedArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	ut := dt.(*arrow.DenseUnionType)
	children := make([]arrow.ArrayData, len(ut.Fields()))
	for i, f := range ut.Fields() {
		kind, _, _ := KindOfTypeID(int8(ut.TypeCodes()[i]))
		children[i] = a.child(kind).(arrowExporter).arrowData(f.Type)
	}
	data := array.NewData(dt, a.Len(), []*memory.Buffer{nil, int8Buffer(a.typeIDs), int32Buffer(a.valueOffsets)}, children, 0, 0)
	releaseAll(children)
	return data
}

func (a *GeometryCollectionArray) arrowData(dt arrow.DataType) arrow.ArrayData {
	return listData(dt, a.geomOffsets, a.mixed.arrowData(elem(dt)), a.validity)
}

func (a *PointArray) StorageType() arrow.DataType { return StorageType(a.Kind(), a.dim, a.CoordType()) }
func (a *PointArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *PointArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *LineStringArray) StorageType() arrow.DataType {
	return StorageType(a.Kind(), a.dim, a.CoordType())
}
func (a *LineStringArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *LineStringArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *PolygonArray) StorageType() arrow.DataType { return StorageType(a.Kind(), a.dim, a.CoordType()) }
func (a *PolygonArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *PolygonArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *MultiPointArray) StorageType() arrow.DataType {
	return StorageType(a.Kind(), a.dim, a.CoordType())
}
func (a *MultiPointArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *MultiPointArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *MultiLineStringArray) StorageType() arrow.DataType {
	return StorageType(a.Kind(), a.dim, a.CoordType())
}
func (a *MultiLineStringArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *MultiLineStringArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *MultiPolygonArray) StorageType() arrow.DataType {
	return StorageType(a.Kind(), a.dim, a.CoordType())
}
func (a *MultiPolygonArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *MultiPolygonArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *RectArray) StorageType() arrow.DataType { return StorageType(a.Kind(), a.dim, a.CoordType()) }
func (a *RectArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *RectArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *MixedArray) StorageType() arrow.DataType { return StorageType(a.Kind(), a.dim, a.CoordType()) }
func (a *MixedArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *MixedArray) ToArrow() arrow.Array { return toArrow(a) }

func (a *GeometryCollectionArray) StorageType() arrow.DataType {
	return StorageType(a.Kind(), a.dim, a.CoordType())
}
func (a *GeometryCollectionArray) ExtensionType() *ExtensionType {
	return NewExtensionType(a.Kind(), a.dim, a.CoordType(), a.meta)
}
func (a *GeometryCollectionArray) ToArrow() arrow.Array { return toArrow(a) }
