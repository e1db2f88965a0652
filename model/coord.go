package model

import (
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// Coord is an owned coordinate. Axes beyond the dimension are ignored.
type Coord struct {
	D geoarrow.Dimension
	V [4]float64
}

var _ traits.Coord = Coord{}

// NewCoord returns a coordinate of dimension dim from the leading values.
func NewCoord(dim geoarrow.Dimension, values ...float64) Coord {
	c := Coord{D: dim}
	copy(c.V[:dim.Size()], values)
	return c
}

// XY returns a two-dimensional coordinate.
func XY(x, y float64) Coord { return Coord{D: geoarrow.XY, V: [4]float64{x, y}} }

// CoordOf copies any coordinate into an owned one.
func CoordOf(c traits.Coord) Coord {
	out := Coord{D: c.Dim()}
	traits.Values(out.V[:], c)
	return out
}

func (c Coord) Dim() geoarrow.Dimension    { return c.D }
func (c Coord) X() float64                 { return c.V[0] }
func (c Coord) Y() float64                 { return c.V[1] }
func (c Coord) NthUnchecked(n int) float64 { return c.V[n] }

// Point is an owned point. The zero coordinate flag Empty marks an empty point.
type Point struct {
	C     Coord
	Empty bool
}

var (
	_ traits.Point    = Point{}
	_ traits.Geometry = Point{}
)

// NewPoint returns a point of dimension dim.
func NewPoint(dim geoarrow.Dimension, values ...float64) Point {
	return Point{C: NewCoord(dim, values...)}
}

// EmptyPoint returns an empty point of dimension dim.
func EmptyPoint(dim geoarrow.Dimension) Point {
	c := Coord{D: dim}
	for i := range c.V {
		c.V[i] = math.NaN()
	}
	return Point{C: c, Empty: true}
}

func (p Point) Dim() geoarrow.Dimension { return p.C.D }

func (p Point) Coord() (traits.Coord, bool) {
	if p.Empty {
		return nil, false
	}
	return p.C, true
}

func (p Point) AsType() traits.Type { return traits.PointType{Point: p} }

// Rect is an owned axis-aligned box.
type Rect struct {
	Lo, Hi Coord
}

var (
	_ traits.Rect     = Rect{}
	_ traits.Geometry = Rect{}
)

// NewRect returns a box spanning lo and hi.
func NewRect(lo, hi Coord) Rect { return Rect{Lo: lo, Hi: hi} }

func (r Rect) Dim() geoarrow.Dimension { return r.Lo.D }
func (r Rect) Min() traits.Coord       { return r.Lo }
func (r Rect) Max() traits.Coord       { return r.Hi }
func (r Rect) AsType() traits.Type     { return traits.RectType{Rect: r} }
