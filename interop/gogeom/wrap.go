package gogeom

import (
	geom "github.com/twpayne/go-geom"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/traits"
)

// Wrap returns a zero-copy view of g. Linear rings and other types with no
// GeoArrow counterpart fail with geoarrow.ErrIncorrectType.
func Wrap(g geom.T) (traits.Geometry, error) {
	switch t := g.(type) {
	case *geom.Point:
		dim, err := dimOf(t.Layout())
		if err != nil {
			return nil, err
		}
		return point{p: t, dim: dim}, nil
	case *geom.LineString:
		dim, err := dimOf(t.Layout())
		if err != nil {
			return nil, err
		}
		return lineString{flat: t.FlatCoords(), dim: dim}, nil
	case *geom.Polygon:
		dim, err := dimOf(t.Layout())
		if err != nil {
			return nil, err
		}
		return newPolygon(t.FlatCoords(), t.Ends(), dim), nil
	case *geom.MultiPoint:
		dim, err := dimOf(t.Layout())
		if err != nil {
			return nil, err
		}
		return multiPoint{mp: t, dim: dim}, nil
	case *geom.MultiLineString:
		dim, err := dimOf(t.Layout())
		if err != nil {
			return nil, err
		}
		return multiLineString{ml: t, dim: dim}, nil
	case *geom.MultiPolygon:
		dim, err := dimOf(t.Layout())
		if err != nil {
			return nil, err
		}
		return multiPolygon{mp: t, dim: dim}, nil
	case *geom.GeometryCollection:
		return wrapCollection(t)
	default:
		return nil, geoarrow.IncorrectType("go-geom %T has no geoarrow equivalent", g)
	}
}

// wrapCollection takes the dimension from the collection's layout. An
// empty collection without a layout is XY.
func wrapCollection(gc *geom.GeometryCollection) (traits.Geometry, error) {
	out := collection{dim: geoarrow.XY, members: make([]traits.Geometry, gc.NumGeoms())}
	if l := gc.Layout(); l != geom.NoLayout {
		dim, err := dimOf(l)
		if err != nil {
			return nil, err
		}
		out.dim = dim
	}
	for i := range out.members {
		m, err := Wrap(gc.Geom(i))
		if err != nil {
			return nil, err
		}
		if err := geoarrow.CheckDimension(out.dim, m.Dim()); err != nil {
			return nil, err
		}
		out.members[i] = m
	}
	return out, nil
}

func dimOf(l geom.Layout) (geoarrow.Dimension, error) {
	switch l {
	case geom.XY:
		return geoarrow.XY, nil
	case geom.XYZ:
		return geoarrow.XYZ, nil
	case geom.XYM:
		return geoarrow.XYM, nil
	case geom.XYZM:
		return geoarrow.XYZM, nil
	default:
		return 0, geoarrow.IncorrectType("unsupported go-geom layout %s", l)
	}
}

func layoutOf(d geoarrow.Dimension) geom.Layout {
	switch d {
	case geoarrow.XYZ:
		return geom.XYZ
	case geoarrow.XYM:
		return geom.XYM
	case geoarrow.XYZM:
		return geom.XYZM
	default:
		return geom.XY
	}
}

type coord struct {
	v   []float64
	dim geoarrow.Dimension
}

func (c coord) Dim() geoarrow.Dimension    { return c.dim }
func (c coord) X() float64                 { return c.v[0] }
func (c coord) Y() float64                 { return c.v[1] }
func (c coord) NthUnchecked(n int) float64 { return c.v[n] }

type point struct {
	p   *geom.Point
	dim geoarrow.Dimension
}

func (p point) Dim() geoarrow.Dimension { return p.dim }
func (p point) AsType() traits.Type     { return traits.PointType{Point: p} }

func (p point) Coord() (traits.Coord, bool) {
	if p.p.Empty() {
		return nil, false
	}
	return coord{v: p.p.FlatCoords(), dim: p.dim}, true
}

type lineString struct {
	flat []float64
	dim  geoarrow.Dimension
}

func (l lineString) Dim() geoarrow.Dimension { return l.dim }
func (l lineString) NumCoords() int          { return len(l.flat) / l.dim.Size() }
func (l lineString) AsType() traits.Type     { return traits.LineStringType{LineString: l} }

func (l lineString) CoordUnchecked(i int) traits.Coord {
	n := l.dim.Size()
	return coord{v: l.flat[i*n : (i+1)*n], dim: l.dim}
}

// polygon views the rings of a flat coordinate slice delimited by ends.
type polygon struct {
	rings []lineString
	dim   geoarrow.Dimension
}

func newPolygon(flat []float64, ends []int, dim geoarrow.Dimension) polygon {
	p := polygon{rings: make([]lineString, len(ends)), dim: dim}
	start := 0
	for i, end := range ends {
		p.rings[i] = lineString{flat: flat[start:end], dim: dim}
		start = end
	}
	return p
}

func (p polygon) Dim() geoarrow.Dimension { return p.dim }
func (p polygon) NumInteriors() int       { return max(len(p.rings)-1, 0) }
func (p polygon) AsType() traits.Type     { return traits.PolygonType{Polygon: p} }

func (p polygon) Exterior() (traits.LineString, bool) {
	if len(p.rings) == 0 {
		return nil, false
	}
	return p.rings[0], true
}

func (p polygon) InteriorUnchecked(i int) traits.LineString { return p.rings[i+1] }

type multiPoint struct {
	mp  *geom.MultiPoint
	dim geoarrow.Dimension
}

func (m multiPoint) Dim() geoarrow.Dimension { return m.dim }
func (m multiPoint) NumPoints() int          { return m.mp.NumPoints() }
func (m multiPoint) AsType() traits.Type     { return traits.MultiPointType{MultiPoint: m} }

func (m multiPoint) PointUnchecked(i int) traits.Point {
	return point{p: m.mp.Point(i), dim: m.dim}
}

type multiLineString struct {
	ml  *geom.MultiLineString
	dim geoarrow.Dimension
}

func (m multiLineString) Dim() geoarrow.Dimension { return m.dim }
func (m multiLineString) NumLineStrings() int     { return m.ml.NumLineStrings() }

func (m multiLineString) LineStringUnchecked(i int) traits.LineString {
	return lineString{flat: m.ml.LineString(i).FlatCoords(), dim: m.dim}
}

func (m multiLineString) AsType() traits.Type {
	return traits.MultiLineStringType{MultiLineString: m}
}

type multiPolygon struct {
	mp  *geom.MultiPolygon
	dim geoarrow.Dimension
}

func (m multiPolygon) Dim() geoarrow.Dimension { return m.dim }
func (m multiPolygon) NumPolygons() int        { return m.mp.NumPolygons() }
func (m multiPolygon) AsType() traits.Type     { return traits.MultiPolygonType{MultiPolygon: m} }

func (m multiPolygon) PolygonUnchecked(i int) traits.Polygon {
	p := m.mp.Polygon(i)
	return newPolygon(p.FlatCoords(), p.Ends(), m.dim)
}

type collection struct {
	members []traits.Geometry
	dim     geoarrow.Dimension
}

func (c collection) Dim() geoarrow.Dimension                 { return c.dim }
func (c collection) NumGeometries() int                      { return len(c.members) }
func (c collection) GeometryUnchecked(i int) traits.Geometry { return c.members[i] }

func (c collection) AsType() traits.Type {
	return traits.GeometryCollectionType{GeometryCollection: c}
}
