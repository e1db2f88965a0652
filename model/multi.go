package model

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// MultiPoint is an owned multi point.
type MultiPoint struct {
	D      geoarrow.Dimension
	Points []Point
}

var _ traits.Geometry = MultiPoint{}

func (m MultiPoint) Dim() geoarrow.Dimension           { return m.D }
func (m MultiPoint) NumPoints() int                    { return len(m.Points) }
func (m MultiPoint) PointUnchecked(i int) traits.Point { return m.Points[i] }
func (m MultiPoint) AsType() traits.Type               { return traits.MultiPointType{MultiPoint: m} }

// MultiLineString is an owned multi line string.
type MultiLineString struct {
	D           geoarrow.Dimension
	LineStrings []LineString
}

var _ traits.Geometry = MultiLineString{}

func (m MultiLineString) Dim() geoarrow.Dimension { return m.D }
func (m MultiLineString) NumLineStrings() int     { return len(m.LineStrings) }

func (m MultiLineString) LineStringUnchecked(i int) traits.LineString {
	return m.LineStrings[i]
}

func (m MultiLineString) AsType() traits.Type {
	return traits.MultiLineStringType{MultiLineString: m}
}

// MultiPolygon is an owned multi polygon.
type MultiPolygon struct {
	D        geoarrow.Dimension
	Polygons []Polygon
}

var _ traits.Geometry = MultiPolygon{}

func (m MultiPolygon) Dim() geoarrow.Dimension               { return m.D }
func (m MultiPolygon) NumPolygons() int                      { return len(m.Polygons) }
func (m MultiPolygon) PolygonUnchecked(i int) traits.Polygon { return m.Polygons[i] }
func (m MultiPolygon) AsType() traits.Type                   { return traits.MultiPolygonType{MultiPolygon: m} }

// GeometryCollection is an owned geometry collection.
type GeometryCollection struct {
	D          geoarrow.Dimension
	Geometries []traits.Geometry
}

var _ traits.Geometry = GeometryCollection{}

func (g GeometryCollection) Dim() geoarrow.Dimension { return g.D }
func (g GeometryCollection) NumGeometries() int      { return len(g.Geometries) }

func (g GeometryCollection) GeometryUnchecked(i int) traits.Geometry {
	return g.Geometries[i]
}

func (g GeometryCollection) AsType() traits.Type {
	return traits.GeometryCollectionType{GeometryCollection: g}
}
