package testutil

import (
	"math/rand"
	"sync"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/traits"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Coord returns a coordinate with every axis in [-180, 180).
func (r *RNG) Coord(dim geoarrow.Dimension) model.Coord {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.coordLocked(dim)
}

func (r *RNG) coordLocked(dim geoarrow.Dimension) model.Coord {
	c := model.Coord{D: dim}
	for i := range dim.Size() {
		c.V[i] = r.rand.Float64()*360 - 180
	}
	return c
}

// Geometry generates a random geometry of the given kind.
// Roughly one in eight variable-length geometries is empty.
func (r *RNG) Geometry(kind geoarrow.Kind, dim geoarrow.Dimension) traits.Geometry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.geometryLocked(kind, dim, 0)
}

// Column generates n geometries of the given kind; each slot is nil
// with probability nullRate.
func (r *RNG) Column(kind geoarrow.Kind, dim geoarrow.Dimension, n int, nullRate float64) []traits.Geometry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]traits.Geometry, n)
	for i := range out {
		if r.rand.Float64() < nullRate {
			continue
		}
		out[i] = r.geometryLocked(kind, dim, 0)
	}
	return out
}

// MixedColumn generates n geometries of random non-collection kinds.
func (r *RNG) MixedColumn(dim geoarrow.Dimension, n int, nullRate float64) []traits.Geometry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]traits.Geometry, n)
	for i := range out {
		if r.rand.Float64() < nullRate {
			continue
		}
		kind := geoarrow.Kind(1 + r.rand.Intn(6))
		out[i] = r.geometryLocked(kind, dim, 0)
	}
	return out
}

func (r *RNG) geometryLocked(kind geoarrow.Kind, dim geoarrow.Dimension, depth int) traits.Geometry {
	switch kind {
	case geoarrow.KindPoint:
		return r.pointLocked(dim)
	case geoarrow.KindLineString:
		return r.lineStringLocked(dim, r.partsLocked(2, 6))
	case geoarrow.KindPolygon:
		return r.polygonLocked(dim)
	case geoarrow.KindMultiPoint:
		mp := model.MultiPoint{D: dim, Points: make([]model.Point, r.partsLocked(1, 4))}
		for i := range mp.Points {
			mp.Points[i] = model.Point{C: r.coordLocked(dim)}
		}
		return mp
	case geoarrow.KindMultiLineString:
		ml := model.MultiLineString{D: dim, LineStrings: make([]model.LineString, r.partsLocked(1, 3))}
		for i := range ml.LineStrings {
			ml.LineStrings[i] = r.lineStringLocked(dim, 2+r.rand.Intn(4))
		}
		return ml
	case geoarrow.KindMultiPolygon:
		mp := model.MultiPolygon{D: dim, Polygons: make([]model.Polygon, r.partsLocked(1, 3))}
		for i := range mp.Polygons {
			mp.Polygons[i] = r.ringsLocked(dim, 1+r.rand.Intn(2))
		}
		return mp
	case geoarrow.KindGeometryCollection:
		gc := model.GeometryCollection{D: dim}
		if depth > 1 {
			return gc
		}
		n := r.partsLocked(1, 4)
		for range n {
			child := geoarrow.Kind(1 + r.rand.Intn(6))
			gc.Geometries = append(gc.Geometries, r.geometryLocked(child, dim, depth+1))
		}
		return gc
	case geoarrow.KindRect:
		lo, hi := r.coordLocked(dim), r.coordLocked(dim)
		for i := range dim.Size() {
			if lo.V[i] > hi.V[i] {
				lo.V[i], hi.V[i] = hi.V[i], lo.V[i]
			}
		}
		return model.NewRect(lo, hi)
	default:
		return r.geometryLocked(geoarrow.Kind(1+r.rand.Intn(6)), dim, depth)
	}
}

// partsLocked returns 0 one time in eight, otherwise a count in [lo, hi].
func (r *RNG) partsLocked(lo, hi int) int {
	if r.rand.Intn(8) == 0 {
		return 0
	}
	return lo + r.rand.Intn(hi-lo+1)
}

func (r *RNG) pointLocked(dim geoarrow.Dimension) model.Point {
	if r.rand.Intn(8) == 0 {
		return model.EmptyPoint(dim)
	}
	return model.Point{C: r.coordLocked(dim)}
}

func (r *RNG) lineStringLocked(dim geoarrow.Dimension, n int) model.LineString {
	ls := model.LineString{D: dim, Coords: make([]model.Coord, n)}
	for i := range ls.Coords {
		ls.Coords[i] = r.coordLocked(dim)
	}
	return ls
}

func (r *RNG) polygonLocked(dim geoarrow.Dimension) model.Polygon {
	return r.ringsLocked(dim, r.partsLocked(1, 3))
}

func (r *RNG) ringsLocked(dim geoarrow.Dimension, rings int) model.Polygon {
	p := model.Polygon{D: dim, Rings: make([]model.LineString, rings)}
	for i := range p.Rings {
		ring := r.lineStringLocked(dim, 3+r.rand.Intn(4))
		ring.Coords = append(ring.Coords, ring.Coords[0])
		p.Rings[i] = ring
	}
	return p
}
