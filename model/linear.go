package model

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// LineString is an owned line string.
type LineString struct {
	D      geoarrow.Dimension
	Coords []Coord
}

var (
	_ traits.LineString = LineString{}
	_ traits.Geometry   = LineString{}
)

// NewLineString builds a line string from flat coordinate values, Dim().Size() per vertex.
func NewLineString(dim geoarrow.Dimension, flat ...float64) LineString {
	n := dim.Size()
	ls := LineString{D: dim, Coords: make([]Coord, 0, len(flat)/n)}
	for i := 0; i+n <= len(flat); i += n {
		ls.Coords = append(ls.Coords, NewCoord(dim, flat[i:i+n]...))
	}
	return ls
}

// LineStringOf copies any line string.
func LineStringOf(ls traits.LineString) LineString {
	out := LineString{D: ls.Dim(), Coords: make([]Coord, ls.NumCoords())}
	for i := range out.Coords {
		out.Coords[i] = CoordOf(ls.CoordUnchecked(i))
	}
	return out
}

func (l LineString) Dim() geoarrow.Dimension           { return l.D }
func (l LineString) NumCoords() int                    { return len(l.Coords) }
func (l LineString) CoordUnchecked(i int) traits.Coord { return l.Coords[i] }
func (l LineString) AsType() traits.Type               { return traits.LineStringType{LineString: l} }

// Polygon is an owned polygon. Rings[0] is the exterior; no rings means empty.
type Polygon struct {
	D     geoarrow.Dimension
	Rings []LineString
}

var (
	_ traits.Polygon  = Polygon{}
	_ traits.Geometry = Polygon{}
)

// NewPolygon returns a polygon from an exterior ring followed by interior rings.
func NewPolygon(dim geoarrow.Dimension, rings ...LineString) Polygon {
	return Polygon{D: dim, Rings: rings}
}

// PolygonOf copies any polygon.
func PolygonOf(p traits.Polygon) Polygon {
	out := Polygon{D: p.Dim()}
	for ring := range traits.Rings(p) {
		out.Rings = append(out.Rings, LineStringOf(ring))
	}
	return out
}

func (p Polygon) Dim() geoarrow.Dimension { return p.D }

func (p Polygon) Exterior() (traits.LineString, bool) {
	if len(p.Rings) == 0 {
		return nil, false
	}
	return p.Rings[0], true
}

func (p Polygon) NumInteriors() int {
	if len(p.Rings) == 0 {
		return 0
	}
	return len(p.Rings) - 1
}

func (p Polygon) InteriorUnchecked(i int) traits.LineString { return p.Rings[i+1] }
func (p Polygon) AsType() traits.Type                       { return traits.PolygonType{Polygon: p} }
