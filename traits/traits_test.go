package traits_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/testutil"
	"github.com/hupe1980/geoarrow/traits"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		g    traits.Geometry
		want geoarrow.Kind
	}{
		{testutil.P0(), geoarrow.KindPoint},
		{testutil.LS0(), geoarrow.KindLineString},
		{testutil.Poly0(), geoarrow.KindPolygon},
		{testutil.MP0(), geoarrow.KindMultiPoint},
		{testutil.ML0(), geoarrow.KindMultiLineString},
		{testutil.MPoly0(), geoarrow.KindMultiPolygon},
		{testutil.GC0(), geoarrow.KindGeometryCollection},
		{testutil.Rect0(), geoarrow.KindRect},
		{traits.RectPolygon(testutil.Rect0()), geoarrow.KindPolygon},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, traits.KindOf(tt.g))
		})
	}
}

func TestCheckedAccessors(t *testing.T) {
	ls := testutil.LS0()
	assert.Equal(t, 1.0, traits.CoordAt(ls, 1).X())
	assert.Panics(t, func() { traits.CoordAt(ls, 2) })

	var idx *geoarrow.ErrInvalidIndex
	func() {
		defer func() {
			err, ok := recover().(error)
			require.True(t, ok)
			require.ErrorAs(t, err, &idx)
		}()
		traits.PointAt(testutil.MP0(), 5)
	}()
	assert.Equal(t, 5, idx.Index)
	assert.Equal(t, 2, idx.Len)

	assert.Panics(t, func() { traits.InteriorAt(testutil.Poly0(), 0) })
	assert.NotNil(t, traits.InteriorAt(testutil.Poly1(), 0))
	assert.Panics(t, func() { traits.LineStringAt(testutil.ML1(), 1) })
	assert.Panics(t, func() { traits.PolygonAt(testutil.MPoly0(), -1) })
	assert.Panics(t, func() { traits.GeometryAt(testutil.GC0(), 3) })

	c := model.NewCoord(geoarrow.XYZ, 1, 2, 3)
	assert.Equal(t, 3.0, traits.Nth(c, 2))
	assert.Panics(t, func() { traits.Nth(c, 3) })
}

func TestRings(t *testing.T) {
	p := testutil.Poly1()
	assert.Equal(t, 2, traits.NumRings(p))

	var n int
	for ring := range traits.Rings(p) {
		assert.Equal(t, 5, ring.NumCoords())
		n++
	}
	assert.Equal(t, 2, n)

	empty := model.Polygon{D: geoarrow.XY}
	assert.Equal(t, 0, traits.NumRings(empty))
	for range traits.Rings(empty) {
		t.Fatal("empty polygon yielded a ring")
	}
}

func TestIsEmpty(t *testing.T) {
	for _, g := range testutil.Empties(geoarrow.XYZ) {
		assert.True(t, traits.IsEmpty(g), traits.KindOf(g).String())
	}
	assert.False(t, traits.IsEmpty(testutil.P0()))
	assert.False(t, traits.IsEmpty(testutil.GC0()))
	assert.False(t, traits.IsEmpty(testutil.Rect0()))
}

func TestWalkCoords(t *testing.T) {
	var xs []float64
	traits.WalkCoords(testutil.GC0(), func(c traits.Coord) bool {
		xs = append(xs, c.X())
		return true
	})
	assert.Equal(t, []float64{0, 3, 5, -111, -111, -104, -104, -111}, xs)

	var n int
	done := traits.WalkCoords(testutil.MPoly0(), func(traits.Coord) bool {
		n++
		return n < 3
	})
	assert.False(t, done)
	assert.Equal(t, 3, n)

	n = 0
	traits.WalkCoords(model.EmptyPoint(geoarrow.XY), func(traits.Coord) bool {
		n++
		return true
	})
	assert.Equal(t, 0, n)
}

func TestEqual(t *testing.T) {
	assert.True(t, traits.Equal(testutil.Poly1(), testutil.Poly1()))
	assert.False(t, traits.Equal(testutil.Poly0(), testutil.Poly1()))
	assert.False(t, traits.Equal(testutil.P0(), testutil.MP0()))
	assert.True(t, traits.Equal(nil, nil))
	assert.False(t, traits.Equal(testutil.P0(), nil))

	// NaN equals NaN
	assert.True(t, traits.Equal(model.EmptyPoint(geoarrow.XY), model.EmptyPoint(geoarrow.XY)))
	nan := model.NewLineString(geoarrow.XY, math.NaN(), 1)
	assert.True(t, traits.Equal(nan, nan))

	// dimension matters even with equal leading axes
	assert.False(t, traits.Equal(model.NewPoint(geoarrow.XY, 1, 2), model.NewPoint(geoarrow.XYZ, 1, 2, 0)))
}

func TestRectPolygon(t *testing.T) {
	p := traits.RectPolygon(model.NewRect(model.NewCoord(geoarrow.XYZ, 0, 0, 5), model.NewCoord(geoarrow.XYZ, 10, 20, 7)))
	assert.Equal(t, geoarrow.XYZ, p.Dim())
	assert.Equal(t, 0, p.NumInteriors())

	var g traits.Geometry = p
	assert.Equal(t, geoarrow.KindPolygon, traits.KindOf(g))

	ext, ok := p.Exterior()
	require.True(t, ok)
	require.Equal(t, 5, ext.NumCoords())

	want := [][3]float64{{0, 0, 5}, {10, 0, 5}, {10, 20, 5}, {0, 20, 5}, {0, 0, 5}}
	for i, w := range want {
		c := ext.CoordUnchecked(i)
		var got [3]float64
		traits.Values(got[:], c)
		assert.Equal(t, w, got, "corner %d", i)
	}
}
