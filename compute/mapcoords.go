package compute

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/traits"
)

// CoordFunc maps one coordinate to another of the same dimension.
type CoordFunc func(traits.Coord) (model.Coord, error)

// MapCoords applies fn to every coordinate of arr and returns an array of
// the same kind, dimension and coordinate layout. Nulls stay null.
// Empty polygons fail with geoarrow.ErrUnsupportedShape.
func MapCoords(arr array.Array, fn CoordFunc) (array.Array, error) {
	b, err := array.NewBuilder(arr.Kind(), arr.Dim(),
		array.WithCoordType(arr.CoordType()),
		array.WithMetadata(arr.Metadata()),
		array.WithCapacity(arr.Len()),
	)
	if err != nil {
		return nil, err
	}
	for i := range arr.Len() {
		if arr.IsNull(i) {
			b.PushNull()
			continue
		}
		g, err := MapGeometry(arr.Geometry(i), fn)
		if err != nil {
			return nil, err
		}
		if err := b.TryPushGeometry(g); err != nil {
			return nil, err
		}
	}
	return b.FinishArray(), nil
}

// MapGeometry applies fn to every coordinate of g.
func MapGeometry(g traits.Geometry, fn CoordFunc) (traits.Geometry, error) {
	switch t := g.AsType().(type) {
	case traits.PointType:
		return mapPoint(t.Point, fn)
	case traits.LineStringType:
		return mapLineString(t.LineString, fn)
	case traits.PolygonType:
		return mapPolygon(t.Polygon, fn)
	case traits.MultiPointType:
		out := model.MultiPoint{D: t.Dim(), Points: make([]model.Point, t.NumPoints())}
		for i := range out.Points {
			p, err := mapPoint(t.PointUnchecked(i), fn)
			if err != nil {
				return nil, err
			}
			out.Points[i] = p
		}
		return out, nil
	case traits.MultiLineStringType:
		out := model.MultiLineString{D: t.Dim(), LineStrings: make([]model.LineString, t.NumLineStrings())}
		for i := range out.LineStrings {
			ls, err := mapLineString(t.LineStringUnchecked(i), fn)
			if err != nil {
				return nil, err
			}
			out.LineStrings[i] = ls
		}
		return out, nil
	case traits.MultiPolygonType:
		out := model.MultiPolygon{D: t.Dim(), Polygons: make([]model.Polygon, t.NumPolygons())}
		for i := range out.Polygons {
			p, err := mapPolygon(t.PolygonUnchecked(i), fn)
			if err != nil {
				return nil, err
			}
			out.Polygons[i] = p
		}
		return out, nil
	case traits.GeometryCollectionType:
		out := model.GeometryCollection{D: t.Dim(), Geometries: make([]traits.Geometry, t.NumGeometries())}
		for i := range out.Geometries {
			m, err := MapGeometry(t.GeometryUnchecked(i), fn)
			if err != nil {
				return nil, err
			}
			out.Geometries[i] = m
		}
		return out, nil
	case traits.RectType:
		lo, err := fn(t.Min())
		if err != nil {
			return nil, err
		}
		hi, err := fn(t.Max())
		if err != nil {
			return nil, err
		}
		return model.NewRect(lo, hi), nil
	default:
		panic(traits.Unreachable(t))
	}
}

func mapPoint(p traits.Point, fn CoordFunc) (model.Point, error) {
	c, ok := p.Coord()
	if !ok {
		return model.EmptyPoint(p.Dim()), nil
	}
	m, err := fn(c)
	if err != nil {
		return model.Point{}, err
	}
	return model.Point{C: m}, nil
}

func mapLineString(ls traits.LineString, fn CoordFunc) (model.LineString, error) {
	out := model.LineString{D: ls.Dim(), Coords: make([]model.Coord, ls.NumCoords())}
	for i := range out.Coords {
		c, err := fn(ls.CoordUnchecked(i))
		if err != nil {
			return model.LineString{}, err
		}
		out.Coords[i] = c
	}
	return out, nil
}

func mapPolygon(p traits.Polygon, fn CoordFunc) (model.Polygon, error) {
	if _, ok := p.Exterior(); !ok {
		return model.Polygon{}, geoarrow.UnsupportedShape("cannot map the coordinates of an empty polygon")
	}
	out := model.Polygon{D: p.Dim(), Rings: make([]model.LineString, 0, traits.NumRings(p))}
	for ring := range traits.Rings(p) {
		ls, err := mapLineString(ring, fn)
		if err != nil {
			return model.Polygon{}, err
		}
		out.Rings = append(out.Rings, ls)
	}
	return out, nil
}
