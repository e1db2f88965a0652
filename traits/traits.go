package traits

import (
	"github.com/hupe1980/geoarrow"
)

// Coord is a single coordinate tuple.
type Coord interface {
	Dim() geoarrow.Dimension
	X() float64
	Y() float64
	// NthUnchecked returns axis n. n must be < Dim().Size().
	NthUnchecked(n int) float64
}

// Point is a possibly empty single position.
type Point interface {
	Dim() geoarrow.Dimension
	// Coord returns the point's coordinate, or false for an empty point.
	Coord() (Coord, bool)
}

// LineString is an ordered sequence of coordinates.
type LineString interface {
	Dim() geoarrow.Dimension
	NumCoords() int
	CoordUnchecked(i int) Coord
}

// Polygon is an exterior ring with zero or more interior rings.
// A polygon without an exterior is empty.
type Polygon interface {
	Dim() geoarrow.Dimension
	Exterior() (LineString, bool)
	NumInteriors() int
	InteriorUnchecked(i int) LineString
}

// MultiPoint is a collection of points.
type MultiPoint interface {
	Dim() geoarrow.Dimension
	NumPoints() int
	PointUnchecked(i int) Point
}

// MultiLineString is a collection of line strings.
type MultiLineString interface {
	Dim() geoarrow.Dimension
	NumLineStrings() int
	LineStringUnchecked(i int) LineString
}

// MultiPolygon is a collection of polygons.
type MultiPolygon interface {
	Dim() geoarrow.Dimension
	NumPolygons() int
	PolygonUnchecked(i int) Polygon
}

// GeometryCollection is a heterogeneous collection of geometries.
type GeometryCollection interface {
	Dim() geoarrow.Dimension
	NumGeometries() int
	GeometryUnchecked(i int) Geometry
}

// Rect is an axis-aligned box.
type Rect interface {
	Dim() geoarrow.Dimension
	Min() Coord
	Max() Coord
}

// Geometry is any geometry. AsType exposes the concrete capability.
type Geometry interface {
	Dim() geoarrow.Dimension
	AsType() Type
}
