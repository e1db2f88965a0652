package gogeom

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	geom "github.com/twpayne/go-geom"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/testutil"
	"github.com/hupe1980/geoarrow/traits"
	"github.com/hupe1980/geoarrow/wkb"
)

func TestWrap(t *testing.T) {
	tests := []struct {
		name string
		in   geom.T
		want traits.Geometry
	}{
		{"point", geom.NewPointFlat(geom.XY, []float64{0, 1}), testutil.P0()},
		{"empty point", geom.NewPointEmpty(geom.XYZ), model.EmptyPoint(geoarrow.XYZ)},
		{"linestring", geom.NewLineStringFlat(geom.XY, []float64{0, 1, 1, 2}), testutil.LS0()},
		{
			"polygon",
			geom.NewPolygonFlat(geom.XY, []float64{
				-111, 45, -111, 41, -104, 41, -104, 45, -111, 45,
				-110, 44, -110, 42, -105, 42, -105, 44, -110, 44,
			}, []int{10, 20}),
			testutil.Poly1(),
		},
		{"empty polygon", geom.NewPolygon(geom.XY), model.Polygon{D: geoarrow.XY}},
		{"multipoint", geom.NewMultiPointFlat(geom.XY, []float64{0, 1, 1, 2}), testutil.MP0()},
		{
			"multilinestring",
			geom.NewMultiLineStringFlat(geom.XY, []float64{0, 1, 1, 2, 3, 4, 5, 6}, []int{4, 8}),
			testutil.ML0(),
		},
		{
			"multipolygon",
			geom.NewMultiPolygonFlat(geom.XY, []float64{
				0, 0, 0, 1, 1, 1, 1, 0, 0, 0,
				2, 2, 2, 3, 3, 3, 3, 2, 2, 2,
			}, [][]int{{10}, {20}}),
			testutil.MPoly1(),
		},
		{
			"linestring zm",
			geom.NewLineStringFlat(geom.XYZM, []float64{1, 2, 3, 4, 5, 6, 7, 8}),
			model.NewLineString(geoarrow.XYZM, 1, 2, 3, 4, 5, 6, 7, 8),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Wrap(tt.in)
			require.NoError(t, err)
			assert.Equal(t, traits.KindOf(tt.want), traits.KindOf(got))
			assert.True(t, traits.Equal(tt.want, got))
		})
	}
}

func TestWrap_Collection(t *testing.T) {
	gc := geom.NewGeometryCollection()
	require.NoError(t, gc.Push(
		geom.NewPointFlat(geom.XY, []float64{0, 1}),
		geom.NewLineStringFlat(geom.XY, []float64{3, 4, 5, 6}),
	))
	got, err := Wrap(gc)
	require.NoError(t, err)
	want := model.GeometryCollection{D: geoarrow.XY, Geometries: []traits.Geometry{testutil.P0(), testutil.LS1()}}
	assert.True(t, traits.Equal(want, got))

	mixed := geom.NewGeometryCollection()
	require.NoError(t, mixed.Push(
		geom.NewPointFlat(geom.XY, []float64{0, 1}),
		geom.NewPointFlat(geom.XYZ, []float64{0, 1, 2}),
	))
	_, err = Wrap(mixed)
	var dimErr *geoarrow.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dimErr)
}

func TestWrap_EmptyCollectionLayout(t *testing.T) {
	for _, dim := range []geoarrow.Dimension{geoarrow.XY, geoarrow.XYZ, geoarrow.XYM, geoarrow.XYZM} {
		t.Run(dim.String(), func(t *testing.T) {
			gc := geom.NewGeometryCollection()
			require.NoError(t, gc.SetLayout(layoutOf(dim)))

			got, err := Wrap(gc)
			require.NoError(t, err)
			assert.Equal(t, dim, got.Dim())
			assert.Equal(t, 0, got.(traits.GeometryCollection).NumGeometries())

			back, err := FromGeometry(model.GeometryCollection{D: dim})
			require.NoError(t, err)
			assert.Equal(t, layoutOf(dim), back.Layout())
		})
	}

	got, err := Wrap(geom.NewGeometryCollection())
	require.NoError(t, err)
	assert.Equal(t, geoarrow.XY, got.Dim())
}

func TestWrap_Unsupported(t *testing.T) {
	_, err := Wrap(geom.NewLinearRingFlat(geom.XY, []float64{0, 0, 1, 0, 0, 1, 0, 0}))
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestWrap_EncodesAsWKB(t *testing.T) {
	g := geom.NewPolygonFlat(geom.XY, []float64{0, 0, 0, 1, 1, 1, 0, 0}, []int{8})
	w, err := Wrap(g)
	require.NoError(t, err)

	buf, err := wkb.Marshal(w, wkb.NDR)
	require.NoError(t, err)
	back, err := wkb.Parse(buf)
	require.NoError(t, err)
	assert.True(t, traits.Equal(w, back))
}

func TestFromGeometry_RoundTrip(t *testing.T) {
	rng := testutil.NewRNG(17)
	kinds := []geoarrow.Kind{
		geoarrow.KindPoint,
		geoarrow.KindLineString,
		geoarrow.KindPolygon,
		geoarrow.KindMultiLineString,
		geoarrow.KindMultiPolygon,
	}
	for _, kind := range kinds {
		for _, dim := range []geoarrow.Dimension{geoarrow.XY, geoarrow.XYZ, geoarrow.XYM, geoarrow.XYZM} {
			t.Run(kind.String()+"/"+dim.String(), func(t *testing.T) {
				for range 10 {
					g := rng.Geometry(kind, dim)
					out, err := FromGeometry(g)
					require.NoError(t, err)
					assert.Equal(t, layoutOf(dim), out.Layout())

					back, err := Wrap(out)
					require.NoError(t, err)
					assert.True(t, traits.Equal(g, back))
				}
			})
		}
	}
}

func TestFromGeometry_Shapes(t *testing.T) {
	out, err := FromGeometry(testutil.Rect0())
	require.NoError(t, err)
	poly, ok := out.(*geom.Polygon)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0, 10, 0, 10, 20, 0, 20, 0, 0}, poly.FlatCoords())

	out, err = FromGeometry(testutil.GC0())
	require.NoError(t, err)
	gc, ok := out.(*geom.GeometryCollection)
	require.True(t, ok)
	assert.Equal(t, 3, gc.NumGeoms())

	out, err = FromGeometry(testutil.MP1())
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 2, 3}, out.FlatCoords())
}

func TestFromGeometry_EmptySubPolygon(t *testing.T) {
	mp := model.MultiPolygon{D: geoarrow.XY, Polygons: []model.Polygon{testutil.Poly0(), {D: geoarrow.XY}}}
	_, err := FromGeometry(mp)
	assert.ErrorIs(t, err, geoarrow.ErrUnsupportedShape)

	// a lone empty polygon is fine
	out, err := FromGeometry(model.Polygon{D: geoarrow.XY})
	require.NoError(t, err)
	assert.Equal(t, 0, out.(*geom.Polygon).NumLinearRings())
}

func TestArrays(t *testing.T) {
	ctx := context.Background()
	geoms := testutil.NewRNG(2).Column(geoarrow.KindMultiLineString, geoarrow.XYZ, 40, 0.2)
	arr, err := array.FromGeometries(geoms, array.WithKind(geoarrow.KindMultiLineString))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := geoarrow.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	gs, err := FromArray(ctx, arr, WithLogger(logger))
	require.NoError(t, err)
	require.Len(t, gs, arr.Len())
	for i, g := range gs {
		assert.Equal(t, arr.IsNull(i), g == nil)
	}

	back, err := ToArray(ctx, gs,
		WithLogger(logger),
		WithArrayOptions(array.WithKind(geoarrow.KindMultiLineString), array.WithCoordType(geoarrow.Separated)),
	)
	require.NoError(t, err)
	assert.Equal(t, geoarrow.Separated, back.CoordType())
	assert.True(t, array.Equal(arr, back))
	assert.Contains(t, buf.String(), "target=go-geom")
}

func TestFromArray_Unsupported(t *testing.T) {
	mp := model.MultiPolygon{D: geoarrow.XY, Polygons: []model.Polygon{{D: geoarrow.XY}}}
	arr, err := array.FromGeometries([]traits.Geometry{mp})
	require.NoError(t, err)

	_, err = FromArray(context.Background(), arr)
	assert.ErrorIs(t, err, geoarrow.ErrUnsupportedShape)
}

func TestWKT(t *testing.T) {
	g, err := ParseWKT("POLYGON ((-111 45, -111 41, -104 41, -104 45, -111 45), (-110 44, -110 42, -105 42, -105 44, -110 44))")
	require.NoError(t, err)
	assert.True(t, traits.Equal(testutil.Poly1(), g))

	g, err = ParseWKT("POINT Z (1 2 3)")
	require.NoError(t, err)
	assert.True(t, traits.Equal(model.NewPoint(geoarrow.XYZ, 1, 2, 3), g))

	_, err = ParseWKT("POLYGON ((0 0, 1")
	assert.ErrorIs(t, err, geoarrow.ErrMalformed)

	s, err := MarshalWKT(testutil.LS0())
	require.NoError(t, err)
	assert.Equal(t, "LINESTRING (0 1, 1 2)", s)
}

func TestFromWKT(t *testing.T) {
	arr, err := FromWKT(context.Background(), []string{
		"LINESTRING (0 1, 1 2)",
		"",
		"MULTILINESTRING ((3 4, 5 6))",
	})
	require.NoError(t, err)
	assert.Equal(t, geoarrow.KindMultiLineString, arr.Kind())
	assert.Equal(t, 1, arr.NullN())
	assert.True(t, traits.Equal(testutil.ML1(), arr.Geometry(2)))

	_, err = FromWKT(context.Background(), []string{"POINT (1 2)", "POINT Z (1 2 3)"})
	var dimErr *geoarrow.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dimErr)
}
