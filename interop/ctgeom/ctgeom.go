package ctgeom

import (
	"context"

	"github.com/ctessum/geom"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/traits"
)

const target = "ctessum/geom"

// Wrap returns a zero-copy XY view of g. A *geom.Bounds becomes a Rect.
func Wrap(g geom.Geom) (traits.Geometry, error) {
	switch t := g.(type) {
	case geom.Point:
		return point{t}, nil
	case *geom.Point:
		return point{*t}, nil
	case geom.MultiPoint:
		return multiPoint(t), nil
	case geom.LineString:
		return lineString(t), nil
	case geom.MultiLineString:
		return multiLineString(t), nil
	case geom.Polygon:
		return newPolygon(t), nil
	case geom.MultiPolygon:
		mp := make(multiPolygon, len(t))
		for i, p := range t {
			mp[i] = newPolygon(p)
		}
		return mp, nil
	case *geom.Bounds:
		return boundsRect(t), nil
	case geom.GeometryCollection:
		gc := make(collection, len(t))
		for i, m := range t {
			w, err := Wrap(m)
			if err != nil {
				return nil, err
			}
			gc[i] = w
		}
		return gc, nil
	default:
		return nil, geoarrow.IncorrectType("ctessum/geom %T has no geoarrow equivalent", g)
	}
}

// point is both the point and its coordinate.
type point struct {
	p geom.Point
}

func (p point) Dim() geoarrow.Dimension     { return geoarrow.XY }
func (p point) X() float64                  { return p.p.X }
func (p point) Y() float64                  { return p.p.Y }
func (p point) Coord() (traits.Coord, bool) { return p, true }
func (p point) AsType() traits.Type         { return traits.PointType{Point: p} }

func (p point) NthUnchecked(n int) float64 {
	if n == 0 {
		return p.p.X
	}
	return p.p.Y
}

type lineString []geom.Point

func (l lineString) Dim() geoarrow.Dimension           { return geoarrow.XY }
func (l lineString) NumCoords() int                    { return len(l) }
func (l lineString) CoordUnchecked(i int) traits.Coord { return point{l[i]} }
func (l lineString) AsType() traits.Type               { return traits.LineStringType{LineString: l} }

type polygon []lineString

func newPolygon(p geom.Polygon) polygon {
	out := make(polygon, len(p))
	for i, ring := range p {
		out[i] = lineString(ring)
	}
	return out
}

func (p polygon) Dim() geoarrow.Dimension { return geoarrow.XY }
func (p polygon) NumInteriors() int       { return max(len(p)-1, 0) }
func (p polygon) AsType() traits.Type     { return traits.PolygonType{Polygon: p} }

func (p polygon) Exterior() (traits.LineString, bool) {
	if len(p) == 0 {
		return nil, false
	}
	return p[0], true
}

func (p polygon) InteriorUnchecked(i int) traits.LineString { return p[i+1] }

type multiPoint []geom.Point

func (m multiPoint) Dim() geoarrow.Dimension           { return geoarrow.XY }
func (m multiPoint) NumPoints() int                    { return len(m) }
func (m multiPoint) PointUnchecked(i int) traits.Point { return point{m[i]} }
func (m multiPoint) AsType() traits.Type               { return traits.MultiPointType{MultiPoint: m} }

type multiLineString []geom.LineString

func (m multiLineString) Dim() geoarrow.Dimension { return geoarrow.XY }
func (m multiLineString) NumLineStrings() int     { return len(m) }

func (m multiLineString) LineStringUnchecked(i int) traits.LineString { return lineString(m[i]) }

func (m multiLineString) AsType() traits.Type {
	return traits.MultiLineStringType{MultiLineString: m}
}

type multiPolygon []polygon

func (m multiPolygon) Dim() geoarrow.Dimension               { return geoarrow.XY }
func (m multiPolygon) NumPolygons() int                      { return len(m) }
func (m multiPolygon) PolygonUnchecked(i int) traits.Polygon { return m[i] }
func (m multiPolygon) AsType() traits.Type                   { return traits.MultiPolygonType{MultiPolygon: m} }

type collection []traits.Geometry

func (c collection) Dim() geoarrow.Dimension                 { return geoarrow.XY }
func (c collection) NumGeometries() int                      { return len(c) }
func (c collection) GeometryUnchecked(i int) traits.Geometry { return c[i] }

func (c collection) AsType() traits.Type {
	return traits.GeometryCollectionType{GeometryCollection: c}
}

// FromGeometry copies g into a ctessum/geom value. Only XY input is
// accepted. Rects become polygons; empty points fail with
// geoarrow.ErrUnsupportedShape.
func FromGeometry(g traits.Geometry) (geom.Geom, error) {
	if err := geoarrow.CheckDimension(geoarrow.XY, g.Dim()); err != nil {
		return nil, err
	}
	switch t := g.AsType().(type) {
	case traits.PointType:
		return toPoint(t.Point)
	case traits.LineStringType:
		return geom.LineString(toPoints(t.LineString)), nil
	case traits.PolygonType:
		return toPolygon(t.Polygon), nil
	case traits.MultiPointType:
		mp := make(geom.MultiPoint, t.NumPoints())
		for i := range mp {
			p, err := toPoint(t.PointUnchecked(i))
			if err != nil {
				return nil, err
			}
			mp[i] = p
		}
		return mp, nil
	case traits.MultiLineStringType:
		ml := make(geom.MultiLineString, t.NumLineStrings())
		for i := range ml {
			ml[i] = toPoints(t.LineStringUnchecked(i))
		}
		return ml, nil
	case traits.MultiPolygonType:
		mp := make(geom.MultiPolygon, t.NumPolygons())
		for i := range mp {
			mp[i] = toPolygon(t.PolygonUnchecked(i))
		}
		return mp, nil
	case traits.GeometryCollectionType:
		gc := make(geom.GeometryCollection, t.NumGeometries())
		for i := range gc {
			m, err := FromGeometry(t.GeometryUnchecked(i))
			if err != nil {
				return nil, err
			}
			gc[i] = m
		}
		return gc, nil
	case traits.RectType:
		return toPolygon(traits.RectPolygon(t.Rect)), nil
	default:
		panic(traits.Unreachable(t))
	}
}

func toPoint(p traits.Point) (geom.Point, error) {
	c, ok := p.Coord()
	if !ok {
		return geom.Point{}, geoarrow.UnsupportedShape("ctessum/geom has no empty point")
	}
	return geom.Point{X: c.X(), Y: c.Y()}, nil
}

func toPoints(ls traits.LineString) []geom.Point {
	out := make([]geom.Point, ls.NumCoords())
	for i := range out {
		c := ls.CoordUnchecked(i)
		out[i] = geom.Point{X: c.X(), Y: c.Y()}
	}
	return out
}

func toPolygon(p traits.Polygon) geom.Polygon {
	out := make(geom.Polygon, 0, traits.NumRings(p))
	for ring := range traits.Rings(p) {
		out = append(out, toPoints(ring))
	}
	return out
}

// Bounds returns the extent ctessum/geom computes for g.
func Bounds(g geom.Geom) model.Rect {
	return boundsRect(g.Bounds())
}

func boundsRect(b *geom.Bounds) model.Rect {
	return model.NewRect(model.XY(b.Min.X, b.Min.Y), model.XY(b.Max.X, b.Max.Y))
}

// BoundsArray returns one box per geometry of gs; nil entries become nulls.
func BoundsArray(ctx context.Context, gs []geom.Geom, opts ...Option) *array.RectArray {
	o := applyOptions(opts)
	rb := array.NewRectBuilder(geoarrow.XY, append([]array.Option{array.WithCapacity(len(gs))}, o.arrayOpts...)...)
	for _, g := range gs {
		if g == nil {
			rb.PushNull()
			continue
		}
		rb.PushRect(Bounds(g))
	}
	o.logger.LogConvert(ctx, target, len(gs), nil)
	return rb.Finish()
}

// FromArray converts every slot of arr; null slots become nil.
func FromArray(ctx context.Context, arr array.Array, opts ...Option) ([]geom.Geom, error) {
	o := applyOptions(opts)
	out := make([]geom.Geom, arr.Len())
	for i := range out {
		g := arr.Geometry(i)
		if g == nil {
			continue
		}
		c, err := FromGeometry(g)
		if err != nil {
			o.logger.LogConvert(ctx, target, arr.Len(), err)
			return nil, err
		}
		out[i] = c
	}
	o.logger.LogConvert(ctx, target, arr.Len(), nil)
	return out, nil
}

// ToArray builds a native XY array from gs; nil entries become nulls.
func ToArray(ctx context.Context, gs []geom.Geom, opts ...Option) (array.Array, error) {
	o := applyOptions(opts)
	geoms := make([]traits.Geometry, len(gs))
	for i, g := range gs {
		if g == nil {
			continue
		}
		w, err := Wrap(g)
		if err != nil {
			o.logger.LogConvert(ctx, target, len(gs), err)
			return nil, err
		}
		geoms[i] = w
	}
	arr, err := array.FromGeometries(geoms, o.arrayOpts...)
	o.logger.LogConvert(ctx, target, len(gs), err)
	return arr, err
}
