package traits

import "github.com/hupe1980/geoarrow"

// Type is the closed set of geometry capabilities returned by
// Geometry.AsType. It is implemented only by the eight *Type structs of this
// package; callers switch over all of them:
//
//	switch t := g.AsType().(type) {
//	case traits.PointType:
//	case traits.LineStringType:
//	case traits.PolygonType:
//	case traits.MultiPointType:
//	case traits.MultiLineStringType:
//	case traits.MultiPolygonType:
//	case traits.GeometryCollectionType:
//	case traits.RectType:
//	default:
//		panic(traits.Unreachable(t))
//	}
type Type interface {
	Kind() geoarrow.Kind
	isType()
}

// PointType wraps a Point.
type PointType struct{ Point }

// LineStringType wraps a LineString.
type LineStringType struct{ LineString }

// PolygonType wraps a Polygon.
type PolygonType struct{ Polygon }

// MultiPointType wraps a MultiPoint.
type MultiPointType struct{ MultiPoint }

// MultiLineStringType wraps a MultiLineString.
type MultiLineStringType struct{ MultiLineString }

// MultiPolygonType wraps a MultiPolygon.
type MultiPolygonType struct{ MultiPolygon }

// GeometryCollectionType wraps a GeometryCollection.
type GeometryCollectionType struct{ GeometryCollection }

// RectType wraps a Rect.
type RectType struct{ Rect }

func (PointType) Kind() geoarrow.Kind              { return geoarrow.KindPoint }
func (LineStringType) Kind() geoarrow.Kind         { return geoarrow.KindLineString }
func (PolygonType) Kind() geoarrow.Kind            { return geoarrow.KindPolygon }
func (MultiPointType) Kind() geoarrow.Kind         { return geoarrow.KindMultiPoint }
func (MultiLineStringType) Kind() geoarrow.Kind    { return geoarrow.KindMultiLineString }
func (MultiPolygonType) Kind() geoarrow.Kind       { return geoarrow.KindMultiPolygon }
func (GeometryCollectionType) Kind() geoarrow.Kind { return geoarrow.KindGeometryCollection }
func (RectType) Kind() geoarrow.Kind               { return geoarrow.KindRect }

func (PointType) isType()              {}
func (LineStringType) isType()         {}
func (PolygonType) isType()            {}
func (MultiPointType) isType()         {}
func (MultiLineStringType) isType()    {}
func (MultiPolygonType) isType()       {}
func (GeometryCollectionType) isType() {}
func (RectType) isType()               {}

// KindOf returns the kind of g.
func KindOf(g Geometry) geoarrow.Kind { return g.AsType().Kind() }

// Unreachable returns the panic value for a Type outside the closed set.
func Unreachable(t Type) error {
	return geoarrow.IncorrectType("unknown geometry type %T", t)
}
