package traits

import "math"

// Equal reports whether a and b are structurally equal: same kind, same
// dimension, same nesting counts and identical coordinate values. NaN equals
// NaN so that empty points compare equal.
func Equal(a, b Geometry) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Dim() != b.Dim() {
		return false
	}
	ta, tb := a.AsType(), b.AsType()
	if ta.Kind() != tb.Kind() {
		return false
	}
	switch x := ta.(type) {
	case PointType:
		return PointEqual(x.Point, tb.(PointType).Point)
	case LineStringType:
		return LineStringEqual(x.LineString, tb.(LineStringType).LineString)
	case PolygonType:
		return PolygonEqual(x.Polygon, tb.(PolygonType).Polygon)
	case MultiPointType:
		y := tb.(MultiPointType)
		if x.NumPoints() != y.NumPoints() {
			return false
		}
		for i := 0; i < x.NumPoints(); i++ {
			if !PointEqual(x.PointUnchecked(i), y.PointUnchecked(i)) {
				return false
			}
		}
		return true
	case MultiLineStringType:
		y := tb.(MultiLineStringType)
		if x.NumLineStrings() != y.NumLineStrings() {
			return false
		}
		for i := 0; i < x.NumLineStrings(); i++ {
			if !LineStringEqual(x.LineStringUnchecked(i), y.LineStringUnchecked(i)) {
				return false
			}
		}
		return true
	case MultiPolygonType:
		y := tb.(MultiPolygonType)
		if x.NumPolygons() != y.NumPolygons() {
			return false
		}
		for i := 0; i < x.NumPolygons(); i++ {
			if !PolygonEqual(x.PolygonUnchecked(i), y.PolygonUnchecked(i)) {
				return false
			}
		}
		return true
	case GeometryCollectionType:
		y := tb.(GeometryCollectionType)
		if x.NumGeometries() != y.NumGeometries() {
			return false
		}
		for i := 0; i < x.NumGeometries(); i++ {
			if !Equal(x.GeometryUnchecked(i), y.GeometryUnchecked(i)) {
				return false
			}
		}
		return true
	case RectType:
		y := tb.(RectType)
		return CoordEqual(x.Min(), y.Min()) && CoordEqual(x.Max(), y.Max())
	default:
		panic(Unreachable(x))
	}
}

// CoordEqual compares two coordinates axis by axis.
func CoordEqual(a, b Coord) bool {
	if a.Dim() != b.Dim() {
		return false
	}
	for i := 0; i < a.Dim().Size(); i++ {
		if !floatEqual(a.NthUnchecked(i), b.NthUnchecked(i)) {
			return false
		}
	}
	return true
}

// PointEqual compares two points; two empty points are equal.
func PointEqual(a, b Point) bool {
	ca, oka := a.Coord()
	cb, okb := b.Coord()
	if oka != okb {
		return false
	}
	return !oka || CoordEqual(ca, cb)
}

// LineStringEqual compares two line strings coordinate by coordinate.
func LineStringEqual(a, b LineString) bool {
	if a.NumCoords() != b.NumCoords() {
		return false
	}
	for i := 0; i < a.NumCoords(); i++ {
		if !CoordEqual(a.CoordUnchecked(i), b.CoordUnchecked(i)) {
			return false
		}
	}
	return true
}

// PolygonEqual compares two polygons ring by ring.
func PolygonEqual(a, b Polygon) bool {
	ea, oka := a.Exterior()
	eb, okb := b.Exterior()
	if oka != okb {
		return false
	}
	if !oka {
		return true
	}
	if !LineStringEqual(ea, eb) || a.NumInteriors() != b.NumInteriors() {
		return false
	}
	for i := 0; i < a.NumInteriors(); i++ {
		if !LineStringEqual(a.InteriorUnchecked(i), b.InteriorUnchecked(i)) {
			return false
		}
	}
	return true
}

func floatEqual(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
