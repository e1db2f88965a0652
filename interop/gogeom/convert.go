package gogeom

import (
	"context"

	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkt"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/traits"
)

const target = "go-geom"

// FromGeometry copies g into a go-geom value. Rects become polygons.
// A MultiPolygon holding an empty polygon fails with
// geoarrow.ErrUnsupportedShape.
func FromGeometry(g traits.Geometry) (geom.T, error) {
	layout := layoutOf(g.Dim())
	switch t := g.AsType().(type) {
	case traits.PointType:
		return toPoint(t.Point, layout), nil
	case traits.LineStringType:
		return geom.NewLineStringFlat(layout, flatten(nil, t.LineString)), nil
	case traits.PolygonType:
		flat, ends := polygonFlat(nil, nil, t.Polygon)
		return geom.NewPolygonFlat(layout, flat, ends), nil
	case traits.MultiPointType:
		mp := geom.NewMultiPoint(layout)
		for i := range t.NumPoints() {
			if err := mp.Push(toPoint(t.PointUnchecked(i), layout)); err != nil {
				return nil, err
			}
		}
		return mp, nil
	case traits.MultiLineStringType:
		var flat []float64
		ends := make([]int, t.NumLineStrings())
		for i := range ends {
			flat = flatten(flat, t.LineStringUnchecked(i))
			ends[i] = len(flat)
		}
		return geom.NewMultiLineStringFlat(layout, flat, ends), nil
	case traits.MultiPolygonType:
		var flat []float64
		endss := make([][]int, t.NumPolygons())
		for i := range endss {
			p := t.PolygonUnchecked(i)
			if _, ok := p.Exterior(); !ok {
				return nil, geoarrow.UnsupportedShape("go-geom cannot hold an empty polygon inside a multipolygon (polygon %d)", i)
			}
			flat, endss[i] = polygonFlat(flat, nil, p)
		}
		return geom.NewMultiPolygonFlat(layout, flat, endss), nil
	case traits.GeometryCollectionType:
		gc := geom.NewGeometryCollection()
		if err := gc.SetLayout(layout); err != nil {
			return nil, err
		}
		for i := range t.NumGeometries() {
			m, err := FromGeometry(t.GeometryUnchecked(i))
			if err != nil {
				return nil, err
			}
			if err := gc.Push(m); err != nil {
				return nil, err
			}
		}
		return gc, nil
	case traits.RectType:
		return FromGeometry(traits.RectPolygon(t.Rect))
	default:
		panic(traits.Unreachable(t))
	}
}

func toPoint(p traits.Point, layout geom.Layout) *geom.Point {
	c, ok := p.Coord()
	if !ok {
		return geom.NewPointEmpty(layout)
	}
	return geom.NewPointFlat(layout, traits.Values(make([]float64, layout.Stride()), c))
}

func flatten(dst []float64, ls traits.LineString) []float64 {
	for c := range traits.Coords(ls) {
		for n := range c.Dim().Size() {
			dst = append(dst, c.NthUnchecked(n))
		}
	}
	return dst
}

func polygonFlat(flat []float64, ends []int, p traits.Polygon) ([]float64, []int) {
	for ring := range traits.Rings(p) {
		flat = flatten(flat, ring)
		ends = append(ends, len(flat))
	}
	return flat, ends
}

// FromArray converts every slot of arr; null slots become nil.
func FromArray(ctx context.Context, arr array.Array, opts ...Option) ([]geom.T, error) {
	o := applyOptions(opts)
	out := make([]geom.T, arr.Len())
	for i := range out {
		g := arr.Geometry(i)
		if g == nil {
			continue
		}
		t, err := FromGeometry(g)
		if err != nil {
			o.logger.LogConvert(ctx, target, arr.Len(), err)
			return nil, err
		}
		out[i] = t
	}
	o.logger.LogConvert(ctx, target, arr.Len(), nil)
	return out, nil
}

// ToArray builds a native array from gs; nil entries become nulls.
func ToArray(ctx context.Context, gs []geom.T, opts ...Option) (array.Array, error) {
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

// ParseWKT parses one WKT geometry.
func ParseWKT(s string) (traits.Geometry, error) {
	g, err := wkt.Unmarshal(s)
	if err != nil {
		return nil, geoarrow.NewMalformed(0, "wkt: %v", err).WithCause(err)
	}
	return Wrap(g)
}

// MarshalWKT formats g as WKT.
func MarshalWKT(g traits.Geometry) (string, error) {
	t, err := FromGeometry(g)
	if err != nil {
		return "", err
	}
	return wkt.Marshal(t)
}

// FromWKT builds a native array from WKT strings; empty strings become
// nulls.
func FromWKT(ctx context.Context, texts []string, opts ...Option) (array.Array, error) {
	o := applyOptions(opts)
	geoms := make([]traits.Geometry, len(texts))
	for i, s := range texts {
		if s == "" {
			continue
		}
		g, err := ParseWKT(s)
		if err != nil {
			o.logger.LogDecode(ctx, "wkt", len(texts), 0, err)
			return nil, err
		}
		geoms[i] = g
	}
	arr, err := array.FromGeometries(geoms, o.arrayOpts...)
	if err != nil {
		o.logger.LogDecode(ctx, "wkt", len(texts), 0, err)
		return nil, err
	}
	o.logger.LogDecode(ctx, "wkt", len(texts), arr.NullN(), nil)
	return arr, nil
}
