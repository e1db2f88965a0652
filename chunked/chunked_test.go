package chunked

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/model"
	"github.com/hupe1980/geoarrow/testutil"
	"github.com/hupe1980/geoarrow/traits"
	"github.com/hupe1980/geoarrow/wkb"
)

func lineChunks(t *testing.T, sizes ...int) ([]traits.Geometry, *Array[array.Array]) {
	t.Helper()
	rng := testutil.NewRNG(9)
	var all []traits.Geometry
	chunks := make([]array.Array, len(sizes))
	for i, n := range sizes {
		geoms := rng.Column(geoarrow.KindLineString, geoarrow.XY, n, 0.25)
		arr, err := array.FromGeometries(geoms, array.WithKind(geoarrow.KindLineString), array.WithDimension(geoarrow.XY))
		require.NoError(t, err)
		chunks[i] = arr
		all = append(all, geoms...)
	}
	col, err := NewNative(chunks...)
	require.NoError(t, err)
	return all, col
}

func TestArray_LenNullN(t *testing.T) {
	all, col := lineChunks(t, 4, 0, 7, 3)
	assert.Equal(t, 4, col.NumChunks())
	assert.Equal(t, len(all), col.Len())

	nulls := 0
	for _, g := range all {
		if g == nil {
			nulls++
		}
	}
	assert.Equal(t, nulls, col.NullN())

	empty := New[array.Array]()
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0, empty.NullN())
}

func TestNewNative_Mismatch(t *testing.T) {
	a, err := array.FromGeometries([]traits.Geometry{testutil.P0()})
	require.NoError(t, err)
	b, err := array.FromGeometries([]traits.Geometry{testutil.LS0()})
	require.NoError(t, err)

	_, err = NewNative(a, b)
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestArray_Locate(t *testing.T) {
	_, col := lineChunks(t, 4, 0, 7, 3)

	tests := []struct {
		row, chunk, offset int
	}{
		{0, 0, 0},
		{3, 0, 3},
		{4, 2, 0},
		{10, 2, 6},
		{11, 3, 0},
		{13, 3, 2},
	}
	for _, tt := range tests {
		c, off := col.Locate(tt.row)
		assert.Equal(t, tt.chunk, c, "row %d", tt.row)
		assert.Equal(t, tt.offset, off, "row %d", tt.row)
	}

	assert.PanicsWithError(t, (&geoarrow.ErrInvalidIndex{Index: 14, Len: 14}).Error(), func() {
		col.Locate(14)
	})
}

func TestArray_Slice(t *testing.T) {
	all, col := lineChunks(t, 4, 0, 7, 3)

	s := col.Slice(2, 10)
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 3, s.NumChunks())
	assert.Equal(t, 2, s.Chunk(0).Len())
	assert.Equal(t, 7, s.Chunk(1).Len())
	assert.Equal(t, 1, s.Chunk(2).Len())

	for row, g := range Geometries(s) {
		want := all[2+row]
		if want == nil {
			assert.Nil(t, g)
			continue
		}
		assert.True(t, traits.Equal(want, g), "row %d", row)
	}

	assert.Equal(t, 0, col.Slice(14, 0).NumChunks())
	assert.Panics(t, func() { col.Slice(10, 5) })
}

func TestArray_Append(t *testing.T) {
	_, col := lineChunks(t, 2, 3)
	more := col.Append(col.Chunk(0))
	assert.Equal(t, 2, col.NumChunks())
	assert.Equal(t, 3, more.NumChunks())
	assert.Equal(t, 7, more.Len())
}

func TestGeometries(t *testing.T) {
	all, col := lineChunks(t, 3, 5)

	rows := 0
	for row, g := range Geometries(col) {
		assert.Equal(t, rows, row)
		if all[row] == nil {
			assert.Nil(t, g)
		} else {
			assert.True(t, traits.Equal(all[row], g))
		}
		rows++
	}
	assert.Equal(t, len(all), rows)

	for row := range Geometries(col) {
		if row == 2 {
			break
		}
	}
}

func TestTryMap_PreservesOrder(t *testing.T) {
	chunks := make([]array.Array, 16)
	for i := range chunks {
		arr, err := array.FromGeometries([]traits.Geometry{model.NewPoint(geoarrow.XY, float64(i), 0)})
		require.NoError(t, err)
		chunks[i] = arr
	}
	col := New(chunks...)

	// later chunks finish first
	out, err := TryMap(context.Background(), col, func(_ context.Context, c array.Array) (array.Array, error) {
		cd, _ := c.Geometry(0).(traits.Point).Coord()
		time.Sleep(time.Duration(16-int(cd.X())) * time.Millisecond)
		return c, nil
	}, WithConcurrency(16))
	require.NoError(t, err)

	require.Equal(t, 16, out.NumChunks())
	for i := range out.NumChunks() {
		cd, ok := out.Chunk(i).Geometry(0).(traits.Point).Coord()
		require.True(t, ok)
		assert.Equal(t, float64(i), cd.X())
	}
}

func TestTryMap_Error(t *testing.T) {
	_, col := lineChunks(t, 2, 2, 2, 2)
	boom := errors.New("boom")

	var calls atomic.Int32
	_, err := TryMap(context.Background(), col, func(ctx context.Context, c array.Array) (array.Array, error) {
		calls.Add(1)
		if c == col.Chunk(2) {
			return nil, boom
		}
		return c, nil
	}, WithConcurrency(1))

	require.ErrorIs(t, err, boom)
	var chunkErr *ChunkError
	require.ErrorAs(t, err, &chunkErr)
	assert.Equal(t, 2, chunkErr.Index)
	assert.Equal(t, int32(3), calls.Load())
}

func TestTryMap_Canceled(t *testing.T) {
	_, col := lineChunks(t, 1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := TryMap(ctx, col, func(_ context.Context, c array.Array) (array.Array, error) {
		return c, nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMap(t *testing.T) {
	_, col := lineChunks(t, 3, 4, 5)
	out := Map(col, func(c array.Array) array.Array {
		return c.ToCoordType(geoarrow.Separated)
	})
	require.Equal(t, col.Len(), out.Len())
	for i := range out.NumChunks() {
		assert.Equal(t, geoarrow.Separated, out.Chunk(i).CoordType())
		assert.True(t, array.Equal(col.Chunk(i), out.Chunk(i)))
	}
}

func TestWKB_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, col := lineChunks(t, 5, 0, 6)

	encoded, err := EncodeWKB[int64](ctx, col, WithWKBOptions(wkb.WithByteOrder(wkb.XDR)))
	require.NoError(t, err)
	assert.Equal(t, col.Len(), encoded.Len())
	assert.Equal(t, col.NullN(), encoded.NullN())

	decoded, err := DecodeWKB(ctx, encoded,
		WithWKBOptions(wkb.WithArrayOptions(array.WithKind(geoarrow.KindLineString))),
		WithConcurrency(2),
	)
	require.NoError(t, err)
	for i := range col.NumChunks() {
		assert.True(t, array.Equal(col.Chunk(i), decoded.Chunk(i)))
	}
}

func TestArrow_RoundTrip(t *testing.T) {
	_, col := lineChunks(t, 5, 3)

	exported, err := ToArrow(col)
	require.NoError(t, err)
	defer exported.Release()
	assert.Equal(t, col.Len(), exported.Len())
	assert.Equal(t, col.NullN(), exported.NullN())
	assert.Len(t, exported.Chunks(), 2)

	back, err := FromArrow(exported)
	require.NoError(t, err)
	for i := range col.NumChunks() {
		assert.True(t, array.Equal(col.Chunk(i), back.Chunk(i)))
	}

	_, err = ToArrow(New[array.Array]())
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)

	points, err := array.FromGeometries([]traits.Geometry{testutil.P0()})
	require.NoError(t, err)
	_, err = ToArrow(col.Append(points))
	assert.ErrorIs(t, err, geoarrow.ErrIncorrectType)
}

func TestTryMap_Logger(t *testing.T) {
	var buf bytes.Buffer
	logger := geoarrow.NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	_, col := lineChunks(t, 1, 1)

	Map(col, func(c array.Array) array.Array { return c }, WithLogger(logger))
	assert.Contains(t, buf.String(), "chunk map completed")
	assert.Contains(t, buf.String(), "chunks=2")
}
