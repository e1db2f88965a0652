package array

import (
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// Point is a view of one point stored in a coordinate buffer. A point whose
// x and y are NaN is empty.
type Point struct {
	coords CoordBuffer
	i      int
}

var (
	_ traits.Point    = Point{}
	_ traits.Geometry = Point{}
)

func (p Point) Dim() geoarrow.Dimension { return p.coords.Dim() }

func (p Point) Coord() (traits.Coord, bool) {
	if math.IsNaN(p.coords.X(p.i)) && math.IsNaN(p.coords.Y(p.i)) {
		return nil, false
	}
	return p.coords.Coord(p.i), true
}

func (p Point) AsType() traits.Type { return traits.PointType{Point: p} }

// LineString is a view of a coordinate run [start, end).
type LineString struct {
	coords     CoordBuffer
	start, end int
}

var (
	_ traits.LineString = LineString{}
	_ traits.Geometry   = LineString{}
)

func (l LineString) Dim() geoarrow.Dimension           { return l.coords.Dim() }
func (l LineString) NumCoords() int                    { return l.end - l.start }
func (l LineString) CoordUnchecked(i int) traits.Coord { return l.coords.Coord(l.start + i) }
func (l LineString) AsType() traits.Type               { return traits.LineStringType{LineString: l} }

// Polygon is a view of a ring run [start, end).
type Polygon struct {
	coords     CoordBuffer
	rings      Offsets[int32]
	start, end int
}

var (
	_ traits.Polygon  = Polygon{}
	_ traits.Geometry = Polygon{}
)

func (p Polygon) Dim() geoarrow.Dimension { return p.coords.Dim() }

func (p Polygon) Exterior() (traits.LineString, bool) {
	if p.start == p.end {
		return nil, false
	}
	return p.ring(p.start), true
}

func (p Polygon) NumInteriors() int {
	if p.start == p.end {
		return 0
	}
	return p.end - p.start - 1
}

func (p Polygon) InteriorUnchecked(i int) traits.LineString { return p.ring(p.start + 1 + i) }

func (p Polygon) AsType() traits.Type { return traits.PolygonType{Polygon: p} }

func (p Polygon) ring(r int) LineString {
	start, end := p.rings.Range(r)
	return LineString{coords: p.coords, start: start, end: end}
}

// MultiPoint is a view of a coordinate run [start, end) read as points.
type MultiPoint struct {
	coords     CoordBuffer
	start, end int
}

var (
	_ traits.MultiPoint = MultiPoint{}
	_ traits.Geometry   = MultiPoint{}
)

func (m MultiPoint) Dim() geoarrow.Dimension           { return m.coords.Dim() }
func (m MultiPoint) NumPoints() int                    { return m.end - m.start }
func (m MultiPoint) PointUnchecked(i int) traits.Point { return Point{coords: m.coords, i: m.start + i} }
func (m MultiPoint) AsType() traits.Type               { return traits.MultiPointType{MultiPoint: m} }

// MultiLineString is a view of a line run [start, end).
type MultiLineString struct {
	coords     CoordBuffer
	lines      Offsets[int32]
	start, end int
}

var (
	_ traits.MultiLineString = MultiLineString{}
	_ traits.Geometry        = MultiLineString{}
)

func (m MultiLineString) Dim() geoarrow.Dimension { return m.coords.Dim() }
func (m MultiLineString) NumLineStrings() int     { return m.end - m.start }

func (m MultiLineString) LineStringUnchecked(i int) traits.LineString {
	start, end := m.lines.Range(m.start + i)
	return LineString{coords: m.coords, start: start, end: end}
}

func (m MultiLineString) AsType() traits.Type {
	return traits.MultiLineStringType{MultiLineString: m}
}

// MultiPolygon is a view of a polygon run [start, end).
type MultiPolygon struct {
	coords     CoordBuffer
	polygons   Offsets[int32]
	rings      Offsets[int32]
	start, end int
}

var (
	_ traits.MultiPolygon = MultiPolygon{}
	_ traits.Geometry     = MultiPolygon{}
)

func (m MultiPolygon) Dim() geoarrow.Dimension { return m.coords.Dim() }
func (m MultiPolygon) NumPolygons() int        { return m.end - m.start }

func (m MultiPolygon) PolygonUnchecked(i int) traits.Polygon {
	start, end := m.polygons.Range(m.start + i)
	return Polygon{coords: m.coords, rings: m.rings, start: start, end: end}
}

func (m MultiPolygon) AsType() traits.Type { return traits.MultiPolygonType{MultiPolygon: m} }

// Rect is a view of one box.
type Rect struct {
	lower, upper CoordBuffer
	i            int
}

var (
	_ traits.Rect     = Rect{}
	_ traits.Geometry = Rect{}
)

func (r Rect) Dim() geoarrow.Dimension { return r.lower.Dim() }
func (r Rect) Min() traits.Coord       { return r.lower.Coord(r.i) }
func (r Rect) Max() traits.Coord       { return r.upper.Coord(r.i) }
func (r Rect) AsType() traits.Type     { return traits.RectType{Rect: r} }

// GeometryCollection is a view of a run [start, end) of a Mixed array.
type GeometryCollection struct {
	mixed      *MixedArray
	start, end int
}

var (
	_ traits.GeometryCollection = GeometryCollection{}
	_ traits.Geometry           = GeometryCollection{}
)

func (g GeometryCollection) Dim() geoarrow.Dimension { return g.mixed.Dim() }
func (g GeometryCollection) NumGeometries() int      { return g.end - g.start }

func (g GeometryCollection) GeometryUnchecked(i int) traits.Geometry {
	return g.mixed.Geometry(g.start + i)
}

func (g GeometryCollection) AsType() traits.Type {
	return traits.GeometryCollectionType{GeometryCollection: g}
}
