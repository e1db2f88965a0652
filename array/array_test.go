package array

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

var (
	allDims       = []geoarrow.Dimension{geoarrow.XY, geoarrow.XYZ, geoarrow.XYM, geoarrow.XYZM}
	allCoordTypes = []geoarrow.CoordType{geoarrow.Interleaved, geoarrow.Separated}
	allKinds      = []geoarrow.Kind{
		geoarrow.KindPoint,
		geoarrow.KindLineString,
		geoarrow.KindPolygon,
		geoarrow.KindMultiPoint,
		geoarrow.KindMultiLineString,
		geoarrow.KindMultiPolygon,
		geoarrow.KindGeometryCollection,
		geoarrow.KindRect,
		geoarrow.KindGeometry,
	}
)

func column(seed int64, kind geoarrow.Kind, dim geoarrow.Dimension, n int) []traits.Geometry {
	rng := testutil.NewRNG(seed)
	if kind == geoarrow.KindGeometry {
		return rng.MixedColumn(dim, n, 0.1)
	}
	return rng.Column(kind, dim, n, 0.1)
}

func assertGeometries(t *testing.T, want []traits.Geometry, a Array) {
	t.Helper()
	require.Equal(t, len(want), a.Len())
	for i, g := range want {
		if g == nil {
			assert.True(t, a.IsNull(i), "slot %d should be null", i)
			assert.Nil(t, a.Geometry(i))
			continue
		}
		require.True(t, a.IsValid(i), "slot %d should be valid", i)
		assert.True(t, traits.Equal(g, a.Geometry(i)), "slot %d differs", i)
	}
}

func TestFromGeometries_RoundTrip(t *testing.T) {
	for _, kind := range allKinds {
		for _, dim := range allDims {
			for _, ct := range allCoordTypes {
				t.Run(kind.String()+"/"+dim.String()+"/"+ct.String(), func(t *testing.T) {
					geoms := column(7, kind, dim, 64)
					a, err := FromGeometries(geoms, WithKind(kind), WithDimension(dim), WithCoordType(ct))
					require.NoError(t, err)

					assert.Equal(t, kind, a.Kind())
					assert.Equal(t, dim, a.Dim())
					if kind == geoarrow.KindRect {
						assert.Equal(t, geoarrow.Separated, a.CoordType())
					} else {
						assert.Equal(t, ct, a.CoordType())
					}
					assertGeometries(t, geoms, a)

					nulls := 0
					for _, g := range geoms {
						if g == nil {
							nulls++
						}
					}
					assert.Equal(t, nulls, a.NullN())
				})
			}
		}
	}
}

func TestLineStringBuilder_Offsets(t *testing.T) {
	b := NewLineStringBuilder(geoarrow.XY)
	b.PushLineString(testutil.LS0())
	b.PushLineString(testutil.LS1())
	a := b.Finish()

	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []int32{0, 2, 4}, a.GeomOffsets().Values())
	assert.Equal(t, 4, a.Coords().Len())
	assert.Equal(t, 0, a.NullN())
	assert.Nil(t, a.Validity())

	ls := a.Value(1)
	assert.Equal(t, 2, ls.NumCoords())
	assert.Equal(t, 5.0, ls.CoordUnchecked(1).X())
}

func TestPointBuilder_Null(t *testing.T) {
	b := NewPointBuilder(geoarrow.XY)
	b.PushPoint(testutil.P0())
	b.PushNull()
	b.PushPoint(model.EmptyPoint(geoarrow.XY))
	a := b.Finish()

	require.Equal(t, 3, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.True(t, a.IsNull(1))
	assert.Nil(t, a.Geometry(1))
	assert.True(t, math.IsNaN(a.Coords().X(1)))
	assert.True(t, math.IsNaN(a.Coords().Y(1)))

	// empty points stay valid
	assert.True(t, a.IsValid(2))
	_, ok := a.Geometry(2).(traits.Point).Coord()
	assert.False(t, ok)
}

func TestArray_NullAccessorsOutOfRange(t *testing.T) {
	withNull, err := FromGeometries([]traits.Geometry{testutil.LS0(), nil, testutil.LS1()})
	require.NoError(t, err)
	noNulls, err := FromGeometries([]traits.Geometry{testutil.P0(), testutil.P1()})
	require.NoError(t, err)
	mixed, err := FromGeometries([]traits.Geometry{testutil.P0(), nil, testutil.Poly0()})
	require.NoError(t, err)

	tests := []struct {
		name string
		arr  Array
	}{
		{"with validity", withNull},
		{"without validity", noNulls},
		{"mixed", mixed},
		{"slice", withNull.Slice(1, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := tt.arr.Len()
			assertInvalidIndex(t, n, func() { tt.arr.IsNull(n + 2) })
			assertInvalidIndex(t, n, func() { tt.arr.IsValid(-1) })
			assertInvalidIndex(t, n, func() { tt.arr.Geometry(n) })
			assert.NotPanics(t, func() { tt.arr.IsNull(n - 1) })
		})
	}
}

func assertInvalidIndex(t *testing.T, n int, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected a panic")
		err, ok := r.(error)
		require.True(t, ok)
		var ie *geoarrow.ErrInvalidIndex
		require.ErrorAs(t, err, &ie)
		assert.Equal(t, n, ie.Len)
	}()
	fn()
}

func TestPolygonBuilder(t *testing.T) {
	b := NewPolygonBuilder(geoarrow.XY, WithCoordType(geoarrow.Separated))
	b.PushPolygon(testutil.Poly0())
	b.PushPolygon(testutil.Poly1())
	b.PushNull()
	b.PushGeometry(testutil.Rect0())
	a := b.Finish()

	assert.Equal(t, []int32{0, 1, 3, 3, 4}, a.GeomOffsets().Values())
	assert.Equal(t, []int32{0, 5, 10, 15, 20}, a.RingOffsets().Values())

	p := a.Value(1)
	assert.Equal(t, 1, p.NumInteriors())
	ext, ok := p.Exterior()
	require.True(t, ok)
	assert.Equal(t, 5, ext.NumCoords())

	rect := a.Value(3)
	assert.True(t, traits.Equal(traits.RectPolygon(testutil.Rect0()), rect))
}

type holesOnly struct{ hole traits.LineString }

func (p holesOnly) Dim() geoarrow.Dimension                 { return p.hole.Dim() }
func (holesOnly) Exterior() (traits.LineString, bool)       { return nil, false }
func (holesOnly) NumInteriors() int                         { return 1 }
func (p holesOnly) InteriorUnchecked(int) traits.LineString { return p.hole }

func TestPolygonBuilder_InteriorsWithoutExterior(t *testing.T) {
	p := holesOnly{hole: testutil.LS0()}

	pb := NewPolygonBuilder(geoarrow.XY)
	assert.ErrorIs(t, pb.TryPushPolygon(p), geoarrow.ErrMalformed)
	assert.Equal(t, 0, pb.Len())

	mb := NewMultiPolygonBuilder(geoarrow.XY)
	assert.ErrorIs(t, mb.TryPushPolygon(p), geoarrow.ErrMalformed)

	// a truly empty polygon is still accepted
	require.NoError(t, pb.TryPushPolygon(model.NewPolygon(geoarrow.XY)))
	assert.True(t, traits.IsEmpty(pb.Finish().Geometry(0)))
}

func TestNewArray_OffsetsCoverChild(t *testing.T) {
	coords, err := NewInterleavedCoords(geoarrow.XY, []float64{0, 0, 1, 1, 2, 2, 3, 3})
	require.NoError(t, err)

	short, err := NewOffsets([]int32{0, 2, 3})
	require.NoError(t, err)
	_, err = NewLineStringArray(coords, short, nil, geoarrow.Metadata{})
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)

	long, err := NewOffsets([]int32{0, 2, 5})
	require.NoError(t, err)
	_, err = NewMultiPointArray(coords, long, nil, geoarrow.Metadata{})
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)

	exact, err := NewOffsets([]int32{0, 2, 4})
	require.NoError(t, err)
	a, err := NewLineStringArray(coords, exact, nil, geoarrow.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())

	// two rings over four vertices, but the polygons reach only one ring
	geoms, err := NewOffsets([]int32{0, 1})
	require.NoError(t, err)
	_, err = NewPolygonArray(coords, geoms, exact, nil, geoarrow.Metadata{})
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestBuilder_Promotion(t *testing.T) {
	single := model.MultiPoint{D: geoarrow.XY, Points: []model.Point{testutil.P2()}}

	pb := NewPointBuilder(geoarrow.XY)
	require.NoError(t, pb.TryPushGeometry(single))
	assert.ErrorIs(t, pb.TryPushGeometry(testutil.MP0()), geoarrow.ErrIncorrectType)
	assert.ErrorIs(t, pb.TryPushGeometry(testutil.LS0()), geoarrow.ErrIncorrectType)
	assert.Equal(t, 1, pb.Len())

	lb := NewLineStringBuilder(geoarrow.XY)
	require.NoError(t, lb.TryPushGeometry(testutil.ML1()))
	assert.ErrorIs(t, lb.TryPushGeometry(testutil.ML0()), geoarrow.ErrIncorrectType)

	mb := NewMultiPolygonBuilder(geoarrow.XY)
	require.NoError(t, mb.TryPushGeometry(testutil.Poly1()))
	require.NoError(t, mb.TryPushGeometry(testutil.MPoly0()))
	a := mb.Finish()
	assert.Equal(t, 1, a.Value(0).NumPolygons())
	assert.Equal(t, 2, a.Value(1).NumPolygons())
}

func TestBuilder_DimensionMismatch(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			b, err := NewBuilder(kind, geoarrow.XYZ)
			require.NoError(t, err)

			g := testutil.NewRNG(1).Geometry(kind, geoarrow.XY)
			err = b.TryPushGeometry(g)
			var dm *geoarrow.ErrDimensionMismatch
			require.ErrorAs(t, err, &dm)
			assert.Equal(t, geoarrow.XYZ, dm.Expected)
			assert.Equal(t, geoarrow.XY, dm.Actual)
		})
	}
}

func TestNewBuilder_Invalid(t *testing.T) {
	_, err := NewBuilder(geoarrow.Kind(42), geoarrow.XY)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)

	_, err = NewBuilder(geoarrow.KindPoint, geoarrow.Dimension(9))
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestFromGeometries_KeepsCallerOptions(t *testing.T) {
	opts := make([]Option, 1, 4)
	opts[0] = WithCoordType(geoarrow.Separated)

	a, err := FromGeometries([]traits.Geometry{testutil.P0()}, opts...)
	require.NoError(t, err)
	assert.Equal(t, geoarrow.Separated, a.CoordType())
	assert.Len(t, opts, 1)
	assert.Nil(t, opts[:cap(opts)][1], "spare capacity must stay untouched")
}

func TestFromGeometries_Inference(t *testing.T) {
	tests := []struct {
		name  string
		geoms []traits.Geometry
		want  geoarrow.Kind
	}{
		{"points", []traits.Geometry{testutil.P0(), nil, testutil.P1()}, geoarrow.KindPoint},
		{"point and multipoint", []traits.Geometry{testutil.P0(), testutil.MP1()}, geoarrow.KindMultiPoint},
		{"linestring and multi", []traits.Geometry{testutil.ML0(), testutil.LS0()}, geoarrow.KindMultiLineString},
		{"polygon and rect", []traits.Geometry{testutil.Poly0(), testutil.Rect0()}, geoarrow.KindPolygon},
		{"polygon and multipolygon", []traits.Geometry{testutil.Poly0(), testutil.MPoly1(), testutil.Rect0()}, geoarrow.KindMultiPolygon},
		{"rects", []traits.Geometry{testutil.Rect0()}, geoarrow.KindRect},
		{"collection", []traits.Geometry{testutil.P0(), testutil.GC0()}, geoarrow.KindGeometryCollection},
		{"mixed", []traits.Geometry{testutil.P0(), testutil.LS0(), testutil.Poly1()}, geoarrow.KindGeometry},
		{"all null", []traits.Geometry{nil, nil}, geoarrow.KindGeometry},
		{"empty input", nil, geoarrow.KindGeometry},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := FromGeometries(tt.geoms)
			require.NoError(t, err)
			assert.Equal(t, tt.want, a.Kind())
			assert.Equal(t, len(tt.geoms), a.Len())
		})
	}

	_, err := FromGeometries([]traits.Geometry{testutil.P0(), model.NewPoint(geoarrow.XYZ, 1, 2, 3)})
	var dm *geoarrow.ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)
}

func TestArray_Slice(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			geoms := column(3, kind, geoarrow.XY, 40)
			a, err := FromGeometries(geoms, WithKind(kind), WithDimension(geoarrow.XY))
			require.NoError(t, err)

			s := a.Slice(11, 20)
			assert.Equal(t, 20, s.Len())
			assertGeometries(t, geoms[11:31], s)

			owned := a.OwnedSlice(11, 20)
			assert.True(t, Equal(s, owned))
			assertGeometries(t, geoms[11:31], owned)

			empty := a.Slice(40, 0)
			assert.Equal(t, 0, empty.Len())

			assert.Panics(t, func() { a.Slice(30, 11) })
			assert.Panics(t, func() { a.Geometry(40) })
			assert.Panics(t, func() { a.Geometry(-1) })
		})
	}
}

func TestArray_SliceSharesBuffers(t *testing.T) {
	geoms := column(5, geoarrow.KindPolygon, geoarrow.XY, 30)
	a, err := FromGeometries(geoms, WithKind(geoarrow.KindPolygon))
	require.NoError(t, err)
	p := a.(*PolygonArray)

	s := p.Slice(10, 5).(*PolygonArray)
	assert.Same(t, &p.GeomOffsets().Values()[10], &s.GeomOffsets().Values()[0])
	assert.Same(t, p.Coords(), s.Coords())

	owned := p.OwnedSlice(10, 5).(*PolygonArray)
	assert.Equal(t, 0, owned.GeomOffsets().First())
	assert.Equal(t, 0, owned.RingOffsets().First())
}

func TestArray_ToCoordType(t *testing.T) {
	for _, kind := range allKinds {
		t.Run(kind.String(), func(t *testing.T) {
			geoms := column(9, kind, geoarrow.XYZ, 25)
			a, err := FromGeometries(geoms, WithKind(kind), WithDimension(geoarrow.XYZ))
			require.NoError(t, err)

			sep := a.ToCoordType(geoarrow.Separated)
			assert.Equal(t, geoarrow.Separated, sep.CoordType())
			assert.True(t, Equal(a, sep))

			back := sep.ToCoordType(geoarrow.Interleaved)
			assert.True(t, Equal(a, back))
		})
	}
}

func TestArray_WithMetadata(t *testing.T) {
	a, err := FromGeometries([]traits.Geometry{testutil.LS0()})
	require.NoError(t, err)

	meta := geoarrow.Metadata{CRS: "EPSG:4326", Edges: geoarrow.EdgesSpherical}
	b := a.WithMetadata(meta)
	assert.Equal(t, meta, b.Metadata())
	assert.True(t, a.Metadata().IsZero())
	assert.True(t, Equal(a, b))
}

func TestMixedArray(t *testing.T) {
	b := NewMixedBuilder(geoarrow.XY)
	b.PushGeometry(testutil.P0())
	b.PushGeometry(testutil.LS0())
	b.PushNull()
	b.PushGeometry(testutil.MPoly0())
	b.PushGeometry(testutil.Rect0())
	b.PushGeometry(testutil.P1())

	assert.ErrorIs(t, b.TryPushGeometry(testutil.GC0()), geoarrow.ErrIncorrectType)
	a := b.Finish()

	require.Equal(t, 6, a.Len())
	assert.Equal(t, 1, a.NullN())
	assert.True(t, a.IsNull(2))
	assert.Equal(t, []geoarrow.Kind{
		geoarrow.KindPoint, geoarrow.KindLineString, geoarrow.KindPoint,
		geoarrow.KindMultiPolygon, geoarrow.KindPolygon, geoarrow.KindPoint,
	}, []geoarrow.Kind{a.KindAt(0), a.KindAt(1), a.KindAt(2), a.KindAt(3), a.KindAt(4), a.KindAt(5)})
	assert.Equal(t, []int32{0, 0, 1, 0, 0, 2}, a.ValueOffsets())
	assert.Equal(t, TypeID(geoarrow.KindMultiPolygon, geoarrow.XY), a.TypeIDs()[3])

	children := a.Children()
	assert.Equal(t, 3, children.Points.Len())
	assert.Equal(t, 1, children.Points.NullN())

	assert.True(t, traits.Equal(testutil.MPoly0(), a.Geometry(3)))
	assert.True(t, traits.Equal(traits.RectPolygon(testutil.Rect0()), a.Geometry(4)))
}

func TestTypeID(t *testing.T) {
	for _, dim := range allDims {
		for kind := geoarrow.KindPoint; kind <= geoarrow.KindMultiPolygon; kind++ {
			id := TypeID(kind, dim)
			k, d, ok := KindOfTypeID(id)
			require.True(t, ok)
			assert.Equal(t, kind, k)
			assert.Equal(t, dim, d)
		}
	}
	assert.Equal(t, int8(1), TypeID(geoarrow.KindPoint, geoarrow.XY))
	assert.Equal(t, int8(36), TypeID(geoarrow.KindMultiPolygon, geoarrow.XYZM))

	_, _, ok := KindOfTypeID(7)
	assert.False(t, ok)
}

func TestValueOffset(t *testing.T) {
	off, err := valueOffset(math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), off)

	_, err = valueOffset(math.MaxInt32 + 1)
	assert.ErrorIs(t, err, geoarrow.ErrOffsetOverflow)
}

func TestGeometryCollectionArray(t *testing.T) {
	b := NewGeometryCollectionBuilder(geoarrow.XY)
	b.PushGeometryCollection(testutil.GC0())
	b.PushNull()
	b.PushGeometry(testutil.LS1())
	b.PushGeometryCollection(model.GeometryCollection{D: geoarrow.XY})
	arr := b.Finish()

	assert.Equal(t, []int32{0, 3, 3, 4, 4}, arr.GeomOffsets().Values())
	assert.Equal(t, 4, arr.Mixed().Len())
	assert.True(t, traits.Equal(testutil.GC0(), arr.Geometry(0)))
	assert.Nil(t, arr.Geometry(1))
	assert.Equal(t, 1, arr.Value(2).NumGeometries())
	assert.Equal(t, 0, arr.Value(3).NumGeometries())

	nested := model.GeometryCollection{D: geoarrow.XY, Geometries: []traits.Geometry{testutil.GC0()}}
	err := NewGeometryCollectionBuilder(geoarrow.XY).TryPushGeometryCollection(nested)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestEmptyGeometries(t *testing.T) {
	for _, dim := range allDims {
		t.Run(dim.String(), func(t *testing.T) {
			empties := testutil.Empties(dim)
			for _, g := range empties {
				kind := traits.KindOf(g)
				a, err := FromGeometries([]traits.Geometry{g}, WithKind(kind))
				require.NoError(t, err)
				assert.Equal(t, 0, a.NullN(), kind.String())
				assert.True(t, traits.Equal(g, a.Geometry(0)), kind.String())
			}
		})
	}
}

func TestGeometries(t *testing.T) {
	geoms := []traits.Geometry{testutil.P0(), nil, testutil.P2()}
	a, err := FromGeometries(geoms)
	require.NoError(t, err)

	var got []traits.Geometry
	for i, g := range Geometries(a) {
		assert.Equal(t, len(got), i)
		got = append(got, g)
	}
	require.Len(t, got, 3)
	assert.Nil(t, got[1])
	assert.True(t, traits.Equal(testutil.P2(), got[2]))
}

func TestEqual(t *testing.T) {
	a, err := FromGeometries([]traits.Geometry{testutil.LS0(), nil})
	require.NoError(t, err)
	b, err := FromGeometries([]traits.Geometry{testutil.LS0(), testutil.LS1()})
	require.NoError(t, err)
	c, err := FromGeometries([]traits.Geometry{testutil.LS0(), nil}, WithCoordType(geoarrow.Separated))
	require.NoError(t, err)

	assert.False(t, Equal(a, b))
	assert.True(t, Equal(a, c))
	assert.False(t, Equal(a, a.Slice(0, 1)))
}
