package wkb

import (
	"encoding/binary"
	"math"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/internal/conv"
	"github.com/hupe1980/geoarrow/traits"
)

// Parse validates b as exactly one WKB geometry and returns a zero-copy
// view of it. The view keeps b alive and must not outlive modifications
// to b.
func Parse(b []byte) (traits.Geometry, error) {
	r := reader{b: b}
	g, err := r.geometry(0)
	if err != nil {
		return nil, err
	}
	if r.pos != len(b) {
		return nil, geoarrow.NewMalformed(r.pos, "%d trailing bytes", len(b)-r.pos)
	}
	return g, nil
}

type reader struct {
	b   []byte
	pos int
}

func (r *reader) need(n int, what string) error {
	if n > len(r.b)-r.pos {
		return geoarrow.NewMalformed(r.pos, "truncated %s: need %d bytes, have %d", what, n, len(r.b)-r.pos)
	}
	return nil
}

func (r *reader) header() (geoarrow.Kind, geoarrow.Dimension, byteOrder, error) {
	if err := r.need(headerSize, "header"); err != nil {
		return 0, 0, nil, err
	}
	var bo byteOrder
	switch ByteOrder(r.b[r.pos]) {
	case NDR:
		bo = binary.LittleEndian
	case XDR:
		bo = binary.BigEndian
	default:
		return 0, 0, nil, geoarrow.NewMalformed(r.pos, "invalid byte order %d", r.b[r.pos])
	}
	code := bo.Uint32(r.b[r.pos+1:])
	kind, dim, srid, ok := splitCode(code)
	if !ok {
		return 0, 0, nil, geoarrow.NewMalformed(r.pos+1, "unknown type code %d", code)
	}
	r.pos += headerSize
	if srid {
		if err := r.need(4, "srid"); err != nil {
			return 0, 0, nil, err
		}
		r.pos += 4
	}
	return kind, dim, bo, nil
}

// expect reads a nested header that must match kind and dim.
func (r *reader) expect(kind geoarrow.Kind, dim geoarrow.Dimension) (byteOrder, error) {
	start := r.pos
	k, d, bo, err := r.header()
	if err != nil {
		return nil, err
	}
	if k != kind || d != dim {
		return nil, geoarrow.NewMalformed(start, "nested %s %s where %s %s expected", k, d, kind, dim)
	}
	return bo, nil
}

// count reads an element count and checks that n elements of at least
// minSize bytes each fit in the remaining input.
func (r *reader) count(bo byteOrder, minSize int, what string) (int, error) {
	if err := r.need(countSize, what+" count"); err != nil {
		return 0, err
	}
	raw := bo.Uint32(r.b[r.pos:])
	n, err := conv.Uint32ToInt(raw)
	if err != nil {
		return 0, geoarrow.NewMalformed(r.pos, "%s count %d", what, raw).WithCause(err)
	}
	r.pos += countSize
	if rest := uint64(len(r.b) - r.pos); uint64(n)*uint64(minSize) > rest {
		return 0, geoarrow.NewMalformed(r.pos-countSize, "%s count %d exceeds the remaining %d bytes", what, n, rest)
	}
	return n, nil
}

func (r *reader) geometry(depth int) (traits.Geometry, error) {
	if depth > maxDepth {
		return nil, geoarrow.NewMalformed(r.pos, "nesting deeper than %d", maxDepth)
	}
	start := r.pos
	kind, dim, bo, err := r.header()
	if err != nil {
		return nil, err
	}
	switch kind {
	case geoarrow.KindPoint:
		return r.point(bo, dim)
	case geoarrow.KindLineString:
		return r.lineString(bo, dim)
	case geoarrow.KindPolygon:
		return r.polygon(bo, dim)
	case geoarrow.KindMultiPoint:
		n, err := r.count(bo, headerSize+8*dim.Size(), "point")
		if err != nil {
			return nil, err
		}
		mp := MultiPoint{dim: dim, points: make([]Point, n)}
		for i := range n {
			cbo, err := r.expect(geoarrow.KindPoint, dim)
			if err != nil {
				return nil, err
			}
			if mp.points[i], err = r.point(cbo, dim); err != nil {
				return nil, err
			}
		}
		return mp, nil
	case geoarrow.KindMultiLineString:
		n, err := r.count(bo, headerSize+countSize, "linestring")
		if err != nil {
			return nil, err
		}
		ml := MultiLineString{dim: dim, lineStrings: make([]LineString, n)}
		for i := range n {
			cbo, err := r.expect(geoarrow.KindLineString, dim)
			if err != nil {
				return nil, err
			}
			if ml.lineStrings[i], err = r.lineString(cbo, dim); err != nil {
				return nil, err
			}
		}
		return ml, nil
	case geoarrow.KindMultiPolygon:
		n, err := r.count(bo, headerSize+countSize, "polygon")
		if err != nil {
			return nil, err
		}
		mp := MultiPolygon{dim: dim, polygons: make([]Polygon, n)}
		for i := range n {
			cbo, err := r.expect(geoarrow.KindPolygon, dim)
			if err != nil {
				return nil, err
			}
			if mp.polygons[i], err = r.polygon(cbo, dim); err != nil {
				return nil, err
			}
		}
		return mp, nil
	case geoarrow.KindGeometryCollection:
		n, err := r.count(bo, headerSize, "geometry")
		if err != nil {
			return nil, err
		}
		gc := GeometryCollection{dim: dim, geometries: make([]traits.Geometry, n)}
		for i := range n {
			childStart := r.pos
			g, err := r.geometry(depth + 1)
			if err != nil {
				return nil, err
			}
			if g.Dim() != dim {
				return nil, geoarrow.NewMalformed(childStart, "%s member in %s collection", g.Dim(), dim)
			}
			gc.geometries[i] = g
		}
		return gc, nil
	default:
		return nil, geoarrow.NewMalformed(start, "unsupported kind %s", kind)
	}
}

func (r *reader) point(bo byteOrder, dim geoarrow.Dimension) (Point, error) {
	size := 8 * dim.Size()
	if err := r.need(size, "point"); err != nil {
		return Point{}, err
	}
	p := Point{c: Coord{b: r.b[r.pos : r.pos+size : r.pos+size], bo: bo, dim: dim}}
	r.pos += size
	return p, nil
}

func (r *reader) lineString(bo byteOrder, dim geoarrow.Dimension) (LineString, error) {
	stride := 8 * dim.Size()
	n, err := r.count(bo, stride, "coordinate")
	if err != nil {
		return LineString{}, err
	}
	end := r.pos + n*stride
	ls := LineString{b: r.b[r.pos:end:end], bo: bo, dim: dim}
	r.pos = end
	return ls, nil
}

func (r *reader) polygon(bo byteOrder, dim geoarrow.Dimension) (Polygon, error) {
	n, err := r.count(bo, countSize, "ring")
	if err != nil {
		return Polygon{}, err
	}
	p := Polygon{dim: dim, rings: make([]LineString, n)}
	for i := range n {
		if p.rings[i], err = r.lineString(bo, dim); err != nil {
			return Polygon{}, err
		}
	}
	return p, nil
}

// Coord is a coordinate decoded on access.
type Coord struct {
	b   []byte
	bo  byteOrder
	dim geoarrow.Dimension
}

var _ traits.Coord = Coord{}

func (c Coord) Dim() geoarrow.Dimension { return c.dim }
func (c Coord) X() float64              { return c.NthUnchecked(0) }
func (c Coord) Y() float64              { return c.NthUnchecked(1) }

func (c Coord) NthUnchecked(n int) float64 {
	return math.Float64frombits(c.bo.Uint64(c.b[8*n:]))
}

// Point is a parsed point. NaN x and y mark it empty.
type Point struct {
	c Coord
}

func (p Point) Dim() geoarrow.Dimension { return p.c.dim }

func (p Point) Coord() (traits.Coord, bool) {
	if math.IsNaN(p.c.X()) && math.IsNaN(p.c.Y()) {
		return nil, false
	}
	return p.c, true
}

func (p Point) AsType() traits.Type { return traits.PointType{Point: p} }

// LineString is a parsed coordinate sequence.
type LineString struct {
	b   []byte
	bo  byteOrder
	dim geoarrow.Dimension
}

func (l LineString) Dim() geoarrow.Dimension { return l.dim }
func (l LineString) NumCoords() int          { return len(l.b) / (8 * l.dim.Size()) }
func (l LineString) AsType() traits.Type     { return traits.LineStringType{LineString: l} }

func (l LineString) CoordUnchecked(i int) traits.Coord {
	stride := 8 * l.dim.Size()
	return Coord{b: l.b[i*stride : (i+1)*stride], bo: l.bo, dim: l.dim}
}

// Polygon is a parsed polygon; zero rings means empty.
type Polygon struct {
	dim   geoarrow.Dimension
	rings []LineString
}

func (p Polygon) Dim() geoarrow.Dimension { return p.dim }

func (p Polygon) Exterior() (traits.LineString, bool) {
	if len(p.rings) == 0 {
		return nil, false
	}
	return p.rings[0], true
}

func (p Polygon) NumInteriors() int {
	return max(len(p.rings)-1, 0)
}

func (p Polygon) InteriorUnchecked(i int) traits.LineString { return p.rings[i+1] }
func (p Polygon) AsType() traits.Type                       { return traits.PolygonType{Polygon: p} }

// MultiPoint is a parsed multi point.
type MultiPoint struct {
	dim    geoarrow.Dimension
	points []Point
}

func (m MultiPoint) Dim() geoarrow.Dimension           { return m.dim }
func (m MultiPoint) NumPoints() int                    { return len(m.points) }
func (m MultiPoint) PointUnchecked(i int) traits.Point { return m.points[i] }
func (m MultiPoint) AsType() traits.Type               { return traits.MultiPointType{MultiPoint: m} }

// MultiLineString is a parsed multi line string.
type MultiLineString struct {
	dim         geoarrow.Dimension
	lineStrings []LineString
}

func (m MultiLineString) Dim() geoarrow.Dimension { return m.dim }
func (m MultiLineString) NumLineStrings() int     { return len(m.lineStrings) }

func (m MultiLineString) LineStringUnchecked(i int) traits.LineString { return m.lineStrings[i] }

func (m MultiLineString) AsType() traits.Type {
	return traits.MultiLineStringType{MultiLineString: m}
}

// MultiPolygon is a parsed multi polygon.
type MultiPolygon struct {
	dim      geoarrow.Dimension
	polygons []Polygon
}

func (m MultiPolygon) Dim() geoarrow.Dimension               { return m.dim }
func (m MultiPolygon) NumPolygons() int                      { return len(m.polygons) }
func (m MultiPolygon) PolygonUnchecked(i int) traits.Polygon { return m.polygons[i] }
func (m MultiPolygon) AsType() traits.Type                   { return traits.MultiPolygonType{MultiPolygon: m} }

// GeometryCollection is a parsed collection.
type GeometryCollection struct {
	dim        geoarrow.Dimension
	geometries []traits.Geometry
}

func (g GeometryCollection) Dim() geoarrow.Dimension                 { return g.dim }
func (g GeometryCollection) NumGeometries() int                      { return len(g.geometries) }
func (g GeometryCollection) GeometryUnchecked(i int) traits.Geometry { return g.geometries[i] }

func (g GeometryCollection) AsType() traits.Type {
	return traits.GeometryCollectionType{GeometryCollection: g}
}
