package traits

import "github.com/hupe1980/geoarrow"

// PolygonGeometry is a Polygon usable wherever a Geometry is expected.
type PolygonGeometry interface {
	Polygon
	Geometry
}

// RectPolygon views r as a polygon with one closed, counter-clockwise ring:
// (minx miny, maxx miny, maxx maxy, minx maxy, minx miny).
// Axes beyond XY are taken from the lower corner.
func RectPolygon(r Rect) PolygonGeometry { return rectPolygon{r} }

type rectPolygon struct{ r Rect }

func (p rectPolygon) Dim() geoarrow.Dimension { return p.r.Dim() }

func (p rectPolygon) Exterior() (LineString, bool) { return rectRing(p), true }

func (rectPolygon) NumInteriors() int { return 0 }

func (rectPolygon) InteriorUnchecked(int) LineString { return nil }

func (p rectPolygon) AsType() Type { return PolygonType{Polygon: p} }

type rectRing rectPolygon

func (r rectRing) Dim() geoarrow.Dimension { return r.r.Dim() }

func (rectRing) NumCoords() int { return 5 }

func (r rectRing) CoordUnchecked(i int) Coord {
	// corner order: lo-lo, hi-lo, hi-hi, lo-hi, lo-lo
	xs := [5]bool{false, true, true, false, false}
	ys := [5]bool{false, false, true, true, false}
	return rectCorner{r: r.r, hiX: xs[i], hiY: ys[i]}
}

type rectCorner struct {
	r        Rect
	hiX, hiY bool
}

func (c rectCorner) Dim() geoarrow.Dimension { return c.r.Dim() }

func (c rectCorner) X() float64 { return c.NthUnchecked(0) }

func (c rectCorner) Y() float64 { return c.NthUnchecked(1) }

func (c rectCorner) NthUnchecked(n int) float64 {
	switch {
	case n == 0 && c.hiX, n == 1 && c.hiY:
		return c.r.Max().NthUnchecked(n)
	default:
		return c.r.Min().NthUnchecked(n)
	}
}
