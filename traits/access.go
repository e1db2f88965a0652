package traits

import (
	"iter"

	"github.com/hupe1980/geoarrow"
)

// Nth returns axis n of c, panicking if n is not an axis of c's dimension.
func Nth(c Coord, n int) float64 {
	geoarrow.CheckIndex(n, c.Dim().Size())
	return c.NthUnchecked(n)
}

// CoordAt returns coordinate i of ls.
func CoordAt(ls LineString, i int) Coord {
	geoarrow.CheckIndex(i, ls.NumCoords())
	return ls.CoordUnchecked(i)
}

// InteriorAt returns interior ring i of p.
func InteriorAt(p Polygon, i int) LineString {
	geoarrow.CheckIndex(i, p.NumInteriors())
	return p.InteriorUnchecked(i)
}

// PointAt returns point i of mp.
func PointAt(mp MultiPoint, i int) Point {
	geoarrow.CheckIndex(i, mp.NumPoints())
	return mp.PointUnchecked(i)
}

// LineStringAt returns line string i of ml.
func LineStringAt(ml MultiLineString, i int) LineString {
	geoarrow.CheckIndex(i, ml.NumLineStrings())
	return ml.LineStringUnchecked(i)
}

// PolygonAt returns polygon i of mp.
func PolygonAt(mp MultiPolygon, i int) Polygon {
	geoarrow.CheckIndex(i, mp.NumPolygons())
	return mp.PolygonUnchecked(i)
}

// GeometryAt returns child i of gc.
func GeometryAt(gc GeometryCollection, i int) Geometry {
	geoarrow.CheckIndex(i, gc.NumGeometries())
	return gc.GeometryUnchecked(i)
}

// NumRings returns the total ring count of p, exterior included.
func NumRings(p Polygon) int {
	if _, ok := p.Exterior(); !ok {
		return 0
	}
	return 1 + p.NumInteriors()
}

// Rings yields the exterior ring followed by the interior rings.
func Rings(p Polygon) iter.Seq[LineString] {
	return func(yield func(LineString) bool) {
		ext, ok := p.Exterior()
		if !ok {
			return
		}
		if !yield(ext) {
			return
		}
		for i := 0; i < p.NumInteriors(); i++ {
			if !yield(p.InteriorUnchecked(i)) {
				return
			}
		}
	}
}

// Coords yields the coordinates of ls in order.
func Coords(ls LineString) iter.Seq[Coord] {
	return func(yield func(Coord) bool) {
		for i := 0; i < ls.NumCoords(); i++ {
			if !yield(ls.CoordUnchecked(i)) {
				return
			}
		}
	}
}

// Values copies the axes of c into dst, which must hold Dim().Size() values.
func Values(dst []float64, c Coord) []float64 {
	n := c.Dim().Size()
	dst = dst[:n]
	for i := 0; i < n; i++ {
		dst[i] = c.NthUnchecked(i)
	}
	return dst
}

// IsEmpty reports whether g has no coordinates.
func IsEmpty(g Geometry) bool {
	switch t := g.AsType().(type) {
	case PointType:
		_, ok := t.Coord()
		return !ok
	case LineStringType:
		return t.NumCoords() == 0
	case PolygonType:
		_, ok := t.Exterior()
		return !ok
	case MultiPointType:
		return t.NumPoints() == 0
	case MultiLineStringType:
		return t.NumLineStrings() == 0
	case MultiPolygonType:
		return t.NumPolygons() == 0
	case GeometryCollectionType:
		return t.NumGeometries() == 0
	case RectType:
		return false
	default:
		panic(Unreachable(t))
	}
}

// WalkCoords calls fn for every coordinate of g in storage order, stopping
// early when fn returns false. Empty points are skipped.
func WalkCoords(g Geometry, fn func(Coord) bool) bool {
	switch t := g.AsType().(type) {
	case PointType:
		return walkPoint(t.Point, fn)
	case LineStringType:
		return walkLineString(t.LineString, fn)
	case PolygonType:
		return walkPolygon(t.Polygon, fn)
	case MultiPointType:
		for i := 0; i < t.NumPoints(); i++ {
			if !walkPoint(t.PointUnchecked(i), fn) {
				return false
			}
		}
		return true
	case MultiLineStringType:
		for i := 0; i < t.NumLineStrings(); i++ {
			if !walkLineString(t.LineStringUnchecked(i), fn) {
				return false
			}
		}
		return true
	case MultiPolygonType:
		for i := 0; i < t.NumPolygons(); i++ {
			if !walkPolygon(t.PolygonUnchecked(i), fn) {
				return false
			}
		}
		return true
	case GeometryCollectionType:
		for i := 0; i < t.NumGeometries(); i++ {
			if !WalkCoords(t.GeometryUnchecked(i), fn) {
				return false
			}
		}
		return true
	case RectType:
		return fn(t.Min()) && fn(t.Max())
	default:
		panic(Unreachable(t))
	}
}

func walkPoint(p Point, fn func(Coord) bool) bool {
	if c, ok := p.Coord(); ok {
		return fn(c)
	}
	return true
}

func walkLineString(ls LineString, fn func(Coord) bool) bool {
	for i := 0; i < ls.NumCoords(); i++ {
		if !fn(ls.CoordUnchecked(i)) {
			return false
		}
	}
	return true
}

func walkPolygon(p Polygon, fn func(Coord) bool) bool {
	for ring := range Rings(p) {
		if !walkLineString(ring, fn) {
			return false
		}
	}
	return true
}
