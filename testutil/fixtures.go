package testutil

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/traits"
)

// P0 is POINT (0 1).
func P0() model.Point { return model.NewPoint(geoarrow.XY, 0, 1) }

// P1 is POINT (1 2).
func P1() model.Point { return model.NewPoint(geoarrow.XY, 1, 2) }

// P2 is POINT (2 3).
func P2() model.Point { return model.NewPoint(geoarrow.XY, 2, 3) }

// LS0 is LINESTRING (0 1, 1 2).
func LS0() model.LineString { return model.NewLineString(geoarrow.XY, 0, 1, 1, 2) }

// LS1 is LINESTRING (3 4, 5 6).
func LS1() model.LineString { return model.NewLineString(geoarrow.XY, 3, 4, 5, 6) }

// Poly0 is a closed square.
func Poly0() model.Polygon {
	return model.NewPolygon(geoarrow.XY,
		model.NewLineString(geoarrow.XY, -111, 45, -111, 41, -104, 41, -104, 45, -111, 45),
	)
}

// Poly1 is a square with one hole.
func Poly1() model.Polygon {
	return model.NewPolygon(geoarrow.XY,
		model.NewLineString(geoarrow.XY, -111, 45, -111, 41, -104, 41, -104, 45, -111, 45),
		model.NewLineString(geoarrow.XY, -110, 44, -110, 42, -105, 42, -105, 44, -110, 44),
	)
}

// MP0 is a multipoint of P0 and P1.
func MP0() model.MultiPoint {
	return model.MultiPoint{D: geoarrow.XY, Points: []model.Point{P0(), P1()}}
}

// MP1 is a multipoint of P1 and P2.
func MP1() model.MultiPoint {
	return model.MultiPoint{D: geoarrow.XY, Points: []model.Point{P1(), P2()}}
}

// ML0 is a multilinestring of LS0 and LS1.
func ML0() model.MultiLineString {
	return model.MultiLineString{D: geoarrow.XY, LineStrings: []model.LineString{LS0(), LS1()}}
}

// ML1 is a multilinestring holding LS1 only.
func ML1() model.MultiLineString {
	return model.MultiLineString{D: geoarrow.XY, LineStrings: []model.LineString{LS1()}}
}

// MPoly0 is two polygons, the second with an interior ring.
func MPoly0() model.MultiPolygon {
	return model.MultiPolygon{D: geoarrow.XY, Polygons: []model.Polygon{Poly0(), Poly1()}}
}

// MPoly1 is two simple polygons.
func MPoly1() model.MultiPolygon {
	return model.MultiPolygon{D: geoarrow.XY, Polygons: []model.Polygon{
		model.NewPolygon(geoarrow.XY,
			model.NewLineString(geoarrow.XY, 0, 0, 0, 1, 1, 1, 1, 0, 0, 0),
		),
		model.NewPolygon(geoarrow.XY,
			model.NewLineString(geoarrow.XY, 2, 2, 2, 3, 3, 3, 3, 2, 2, 2),
		),
	}}
}

// GC0 is a collection of P0, LS1 and Poly0.
func GC0() model.GeometryCollection {
	return model.GeometryCollection{D: geoarrow.XY, Geometries: []traits.Geometry{P0(), LS1(), Poly0()}}
}

// Rect0 is the box (0 0, 10 20).
func Rect0() model.Rect { return model.NewRect(model.XY(0, 0), model.XY(10, 20)) }

// Empties returns one explicit empty geometry of every kind for dim.
func Empties(dim geoarrow.Dimension) []traits.Geometry {
	return []traits.Geometry{
		model.EmptyPoint(dim),
		model.LineString{D: dim},
		model.Polygon{D: dim},
		model.MultiPoint{D: dim},
		model.MultiLineString{D: dim},
		model.MultiPolygon{D: dim},
		model.GeometryCollection{D: dim},
	}
}
