//go:build cgo

package ffi

import (
	"testing"

	arrowarray "github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/testutil"
	"github.com/hupe1980/geoarrow/traits"
)

func TestExportImport(t *testing.T) {
	rng := testutil.NewRNG(31)
	tests := []struct {
		name  string
		geoms []traits.Geometry
		opts  []array.Option
	}{
		{"point", rng.Column(geoarrow.KindPoint, geoarrow.XYZ, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindPoint)}},
		{"point separated", rng.Column(geoarrow.KindPoint, geoarrow.XY, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindPoint), array.WithCoordType(geoarrow.Separated)}},
		{"linestring", rng.Column(geoarrow.KindLineString, geoarrow.XYM, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindLineString)}},
		{"polygon", rng.Column(geoarrow.KindPolygon, geoarrow.XYZ, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindPolygon)}},
		{"multipolygon", rng.Column(geoarrow.KindMultiPolygon, geoarrow.XYZ, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindMultiPolygon)}},
		{"collection", rng.Column(geoarrow.KindGeometryCollection, geoarrow.XYZ, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindGeometryCollection)}},
		{"rect", rng.Column(geoarrow.KindRect, geoarrow.XYZ, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindRect)}},
		{"mixed", rng.MixedColumn(geoarrow.XY, 20, 0.2), []array.Option{array.WithKind(geoarrow.KindGeometry)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append(tt.opts, array.WithMetadata(geoarrow.Metadata{CRS: "OGC:CRS84"}))
			arr, err := array.FromGeometries(tt.geoms, opts...)
			require.NoError(t, err)

			e := Export(arr)
			back, err := Import(e)
			require.NoError(t, err)
			assert.Nil(t, e.Array)
			assert.Equal(t, arr.Kind(), back.Kind())
			assert.Equal(t, arr.CoordType(), back.CoordType())
			assert.Equal(t, "OGC:CRS84", back.Metadata().CRS)
			assert.Equal(t, arr.NullN(), back.NullN())
			assert.True(t, array.Equal(arr, back))

			// the source is still usable after a non-consuming export
			assert.True(t, array.Equal(arr, arr.Slice(0, arr.Len())))
		})
	}
}

func TestImport_PlainArray(t *testing.T) {
	b := arrowarray.NewInt64Builder(memory.DefaultAllocator)
	defer b.Release()
	b.AppendValues([]int64{1, 2, 3}, nil)
	ints := b.NewArray()
	defer ints.Release()

	_, err := Import(ExportArrow(ints))
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestExport_Release(t *testing.T) {
	arr, err := array.FromGeometries(testutil.NewRNG(1).Column(geoarrow.KindLineString, geoarrow.XY, 5, 0))
	require.NoError(t, err)

	e := Export(arr)
	require.NotNil(t, e.Array)
	e.Release()
	e.Release()
	assert.Nil(t, e.Array)
	assert.Nil(t, e.Schema)
}

func TestExportArrowOwned(t *testing.T) {
	arr, err := array.FromGeometries(testutil.NewRNG(2).Column(geoarrow.KindPoint, geoarrow.XY, 4, 0))
	require.NoError(t, err)

	a := arr.ToArrow()
	a.Retain()
	e := ExportArrowOwned(a)
	// the extra reference is ours; the one passed in now belongs to e
	a.Release()

	back, err := Import(e)
	require.NoError(t, err)
	assert.True(t, array.Equal(arr, back))
}

func TestImportC_Nil(t *testing.T) {
	_, err := ImportC(nil, nil)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}
