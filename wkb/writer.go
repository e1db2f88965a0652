package wkb

import (
	"io"
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/conv"
	"github.com/hupe1980/geoarrow/traits"
)

// Size returns the exact encoded length of g. Boxes are sized as polygons.
func Size(g traits.Geometry) int {
	coord := 8 * g.Dim().Size()
	switch t := g.AsType().(type) {
	case traits.PointType:
		return headerSize + coord
	case traits.LineStringType:
		return headerSize + countSize + t.NumCoords()*coord
	case traits.PolygonType:
		return polygonSize(t.Polygon, coord)
	case traits.MultiPointType:
		return headerSize + countSize + t.NumPoints()*(headerSize+coord)
	case traits.MultiLineStringType:
		n := headerSize + countSize
		for i := range t.NumLineStrings() {
			n += headerSize + countSize + t.LineStringUnchecked(i).NumCoords()*coord
		}
		return n
	case traits.MultiPolygonType:
		n := headerSize + countSize
		for i := range t.NumPolygons() {
			n += polygonSize(t.PolygonUnchecked(i), coord)
		}
		return n
	case traits.GeometryCollectionType:
		n := headerSize + countSize
		for i := range t.NumGeometries() {
			n += Size(t.GeometryUnchecked(i))
		}
		return n
	case traits.RectType:
		return headerSize + 2*countSize + 5*coord
	default:
		panic(traits.Unreachable(t))
	}
}

func polygonSize(p traits.Polygon, coord int) int {
	n := headerSize + countSize
	for ring := range traits.Rings(p) {
		n += countSize + ring.NumCoords()*coord
	}
	return n
}

// Marshal encodes g into a new buffer of exactly Size(g) bytes.
func Marshal(g traits.Geometry, order ByteOrder) ([]byte, error) {
	return Append(make([]byte, 0, Size(g)), g, order)
}

// Write encodes g to w.
func Write(w io.Writer, g traits.Geometry, order ByteOrder) error {
	b, err := Marshal(g, order)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Append encodes g at the end of dst. Boxes are written as polygons.
func Append(dst []byte, g traits.Geometry, order ByteOrder) ([]byte, error) {
	e := encoder{buf: dst, order: order, bo: order.binary()}
	if err := e.geometry(g); err != nil {
		return dst, err
	}
	return e.buf, nil
}

type encoder struct {
	buf   []byte
	order ByteOrder
	bo    byteOrder
}

func (e *encoder) header(kind geoarrow.Kind, dim geoarrow.Dimension) {
	e.buf = append(e.buf, byte(e.order))
	e.buf = e.bo.AppendUint32(e.buf, typeCode(kind, dim))
}

func (e *encoder) count(n int) error {
	v, err := conv.IntToUint32(n)
	if err != nil {
		return err
	}
	e.buf = e.bo.AppendUint32(e.buf, v)
	return nil
}

func (e *encoder) coord(c traits.Coord) {
	for n := range c.Dim().Size() {
		e.buf = e.bo.AppendUint64(e.buf, math.Float64bits(c.NthUnchecked(n)))
	}
}

func (e *encoder) nanCoord(dim geoarrow.Dimension) {
	nan := math.Float64bits(math.NaN())
	for range dim.Size() {
		e.buf = e.bo.AppendUint64(e.buf, nan)
	}
}

func (e *encoder) geometry(g traits.Geometry) error {
	dim := g.Dim()
	switch t := g.AsType().(type) {
	case traits.PointType:
		e.point(t.Point)
		return nil
	case traits.LineStringType:
		e.header(geoarrow.KindLineString, dim)
		return e.coords(t.LineString)
	case traits.PolygonType:
		return e.polygon(t.Polygon)
	case traits.MultiPointType:
		e.header(geoarrow.KindMultiPoint, dim)
		if err := e.count(t.NumPoints()); err != nil {
			return err
		}
		for i := range t.NumPoints() {
			e.point(t.PointUnchecked(i))
		}
		return nil
	case traits.MultiLineStringType:
		e.header(geoarrow.KindMultiLineString, dim)
		if err := e.count(t.NumLineStrings()); err != nil {
			return err
		}
		for i := range t.NumLineStrings() {
			e.header(geoarrow.KindLineString, dim)
			if err := e.coords(t.LineStringUnchecked(i)); err != nil {
				return err
			}
		}
		return nil
	case traits.MultiPolygonType:
		e.header(geoarrow.KindMultiPolygon, dim)
		if err := e.count(t.NumPolygons()); err != nil {
			return err
		}
		for i := range t.NumPolygons() {
			if err := e.polygon(t.PolygonUnchecked(i)); err != nil {
				return err
			}
		}
		return nil
	case traits.GeometryCollectionType:
		e.header(geoarrow.KindGeometryCollection, dim)
		if err := e.count(t.NumGeometries()); err != nil {
			return err
		}
		for i := range t.NumGeometries() {
			if err := e.geometry(t.GeometryUnchecked(i)); err != nil {
				return err
			}
		}
		return nil
	case traits.RectType:
		return e.polygon(traits.RectPolygon(t.Rect))
	default:
		panic(traits.Unreachable(t))
	}
}

// point writes an empty point as NaN coordinates.
func (e *encoder) point(p traits.Point) {
	e.header(geoarrow.KindPoint, p.Dim())
	if c, ok := p.Coord(); ok {
		e.coord(c)
		return
	}
	e.nanCoord(p.Dim())
}

func (e *encoder) coords(ls traits.LineString) error {
	if err := e.count(ls.NumCoords()); err != nil {
		return err
	}
	for i := range ls.NumCoords() {
		e.coord(ls.CoordUnchecked(i))
	}
	return nil
}

func (e *encoder) polygon(p traits.Polygon) error {
	e.header(geoarrow.KindPolygon, p.Dim())
	if err := e.count(traits.NumRings(p)); err != nil {
		return err
	}
	for ring := range traits.Rings(p) {
		if err := e.coords(ring); err != nil {
			return err
		}
	}
	return nil
}
