package array

import (
	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hupe1980/geoarrow"
)

// Field names of the nested list layers.
const (
	fieldVertices    = "vertices"
	fieldRings       = "rings"
	fieldPolygons    = "polygons"
	fieldLineStrings = "linestrings"
	fieldPoints      = "points"
	fieldGeometries  = "geometries"
)

// CoordStorageType returns the Arrow type of a coordinate buffer:
// FixedSizeList<double>[D] named after the dimension when interleaved,
// Struct{x, y[, z][, m]} when separated.
func CoordStorageType(dim geoarrow.Dimension, ct geoarrow.CoordType) arrow.DataType {
	if ct == geoarrow.Interleaved {
		return arrow.FixedSizeListOfField(int32(dim.Size()), arrow.Field{Name: dim.String(), Type: arrow.PrimitiveTypes.Float64})
	}
	axes := dim.Axes()
	fields := make([]arrow.Field, len(axes))
	for i, name := range axes {
		fields[i] = arrow.Field{Name: name, Type: arrow.PrimitiveTypes.Float64}
	}
	return arrow.StructOf(fields...)
}

// StorageType returns the Arrow storage type of an array of kind.
func StorageType(kind geoarrow.Kind, dim geoarrow.Dimension, ct geoarrow.CoordType) arrow.DataType {
	coords := CoordStorageType(dim, ct)
	switch kind {
	case geoarrow.KindPoint:
		return coords
	case geoarrow.KindLineString:
		return listOf(fieldVertices, coords)
	case geoarrow.KindPolygon:
		return listOf(fieldRings, listOf(fieldVertices, coords))
	case geoarrow.KindMultiPoint:
		return listOf(fieldPoints, coords)
	case geoarrow.KindMultiLineString:
		return listOf(fieldLineStrings, listOf(fieldVertices, coords))
	case geoarrow.KindMultiPolygon:
		return listOf(fieldPolygons, listOf(fieldRings, listOf(fieldVertices, coords)))
	case geoarrow.KindRect:
		return boxStorageType(dim)
	case geoarrow.KindGeometryCollection:
		return listOf(fieldGeometries, mixedStorageType(dim, ct))
	default:
		return mixedStorageType(dim, ct)
	}
}

func listOf(name string, elem arrow.DataType) arrow.DataType {
	return arrow.ListOfField(arrow.Field{Name: name, Type: elem})
}

// boxStorageType is Struct{xmin, ymin[, zmin][, mmin], xmax, ymax[, zmax][, mmax]}.
func boxStorageType(dim geoarrow.Dimension) arrow.DataType {
	axes := dim.Axes()
	fields := make([]arrow.Field, 0, 2*len(axes))
	for _, suffix := range []string{"min", "max"} {
		for _, axis := range axes {
			fields = append(fields, arrow.Field{Name: axis + suffix, Type: arrow.PrimitiveTypes.Float64})
		}
	}
	return arrow.StructOf(fields...)
}

func mixedStorageType(dim geoarrow.Dimension, ct geoarrow.CoordType) arrow.DataType {
	fields := make([]arrow.Field, len(mixedKinds))
	codes := make([]arrow.UnionTypeCode, len(mixedKinds))
	for i, kind := range mixedKinds {
		fields[i] = arrow.Field{Name: unionFieldName(kind, dim), Type: StorageType(kind, dim, ct), Nullable: true}
		codes[i] = arrow.UnionTypeCode(TypeID(kind, dim))
	}
	return arrow.DenseUnionOf(fields, codes)
}

func unionFieldName(kind geoarrow.Kind, dim geoarrow.Dimension) string {
	switch dim {
	case geoarrow.XYZ:
		return kind.String() + " Z"
	case geoarrow.XYM:
		return kind.String() + " M"
	case geoarrow.XYZM:
		return kind.String() + " ZM"
	default:
		return kind.String()
	}
}

// listDepth returns the number of list layers above the coordinates.
func listDepth(kind geoarrow.Kind) int {
	switch kind {
	case geoarrow.KindLineString, geoarrow.KindMultiPoint:
		return 1
	case geoarrow.KindPolygon, geoarrow.KindMultiLineString:
		return 2
	case geoarrow.KindMultiPolygon:
		return 3
	default:
		return 0
	}
}

// inspectStorage recovers dimension and layout from a storage type of kind.
func inspectStorage(kind geoarrow.Kind, dt arrow.DataType) (geoarrow.Dimension, geoarrow.CoordType, error) {
	switch kind {
	case geoarrow.KindRect:
		st, ok := dt.(*arrow.StructType)
		if !ok || st.NumFields()%2 != 0 {
			return 0, 0, geoarrow.IncorrectType("box storage must be a struct of min and max axes, got %s", dt)
		}
		dim, err := dimensionOfAxes(st.Fields()[:st.NumFields()/2], "min")
		return dim, geoarrow.Separated, err
	case geoarrow.KindGeometryCollection:
		lt, ok := dt.(*arrow.ListType)
		if !ok {
			return 0, 0, geoarrow.IncorrectType("geometry collection storage must be a list, got %s", dt)
		}
		return inspectStorage(geoarrow.KindGeometry, lt.Elem())
	case geoarrow.KindGeometry:
		ut, ok := dt.(*arrow.DenseUnionType)
		if !ok || len(ut.TypeCodes()) == 0 {
			return 0, 0, geoarrow.IncorrectType("geometry storage must be a dense union, got %s", dt)
		}
		child, dim, ok := KindOfTypeID(int8(ut.TypeCodes()[0]))
		if !ok {
			return 0, 0, geoarrow.IncorrectType("unsupported union type code %d", ut.TypeCodes()[0])
		}
		_, ct, err := inspectStorage(child, ut.Fields()[0].Type)
		return dim, ct, err
	}

	for range listDepth(kind) {
		lt, ok := dt.(*arrow.ListType)
		if !ok {
			return 0, 0, geoarrow.IncorrectType("%s storage must nest lists, got %s", kind, dt)
		}
		dt = lt.Elem()
	}
	switch t := dt.(type) {
	case *arrow.FixedSizeListType:
		dim, err := dimensionOfInterleaved(t)
		return dim, geoarrow.Interleaved, err
	case *arrow.StructType:
		dim, err := dimensionOfAxes(t.Fields(), "")
		return dim, geoarrow.Separated, err
	default:
		return 0, 0, geoarrow.IncorrectType("unsupported coordinate storage %s", dt)
	}
}

func dimensionOfInterleaved(t *arrow.FixedSizeListType) (geoarrow.Dimension, error) {
	switch t.Len() {
	case 2:
		return geoarrow.XY, nil
	case 3:
		if t.ElemField().Name == "xym" {
			return geoarrow.XYM, nil
		}
		return geoarrow.XYZ, nil
	case 4:
		return geoarrow.XYZM, nil
	default:
		return 0, geoarrow.IncorrectType("unsupported coordinate width %d", t.Len())
	}
}

func dimensionOfAxes(fields []arrow.Field, suffix string) (geoarrow.Dimension, error) {
	var hasZ, hasM bool
	for i, f := range fields {
		switch {
		case i < 2:
		case f.Name == "z"+suffix:
			hasZ = true
		case f.Name == "m"+suffix:
			hasM = true
		default:
			return 0, geoarrow.IncorrectType("unexpected coordinate field %q", f.Name)
		}
	}
	dim := geoarrow.DimensionOf(hasZ, hasM)
	if len(fields) != dim.Size() {
		return 0, geoarrow.IncorrectType("%d coordinate fields", len(fields))
	}
	return dim, nil
}
