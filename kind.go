package geoarrow

import "fmt"

// Kind identifies a geometry kind.
//
// The values of the seven OGC kinds match their WKB type codes.
// KindGeometry is only used by arrays and names a heterogeneous column.
type Kind uint8

const (
	KindGeometry Kind = iota
	KindPoint
	KindLineString
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
	KindRect
)

func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "Geometry"
	case KindPoint:
		return "Point"
	case KindLineString:
		return "LineString"
	case KindPolygon:
		return "Polygon"
	case KindMultiPoint:
		return "MultiPoint"
	case KindMultiLineString:
		return "MultiLineString"
	case KindMultiPolygon:
		return "MultiPolygon"
	case KindGeometryCollection:
		return "GeometryCollection"
	case KindRect:
		return "Rect"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ExtensionName returns the GeoArrow extension type name for arrays of this kind.
func (k Kind) ExtensionName() string {
	switch k {
	case KindPoint:
		return "geoarrow.point"
	case KindLineString:
		return "geoarrow.linestring"
	case KindPolygon:
		return "geoarrow.polygon"
	case KindMultiPoint:
		return "geoarrow.multipoint"
	case KindMultiLineString:
		return "geoarrow.multilinestring"
	case KindMultiPolygon:
		return "geoarrow.multipolygon"
	case KindGeometryCollection:
		return "geoarrow.geometrycollection"
	case KindRect:
		return "geoarrow.box"
	default:
		return "geoarrow.geometry"
	}
}

// Multi returns the multi-kind a single-part kind promotes to.
// Multi kinds and collections return themselves; Rect and Geometry return KindGeometry.
func (k Kind) Multi() Kind {
	switch k {
	case KindPoint, KindMultiPoint:
		return KindMultiPoint
	case KindLineString, KindMultiLineString:
		return KindMultiLineString
	case KindPolygon, KindMultiPolygon:
		return KindMultiPolygon
	case KindGeometryCollection:
		return KindGeometryCollection
	default:
		return KindGeometry
	}
}
