package geoarrow

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDimension(t *testing.T) {
	tests := []struct {
		dim        Dimension
		size       int
		hasZ, hasM bool
		axes       []string
	}{
		{XY, 2, false, false, []string{"x", "y"}},
		{XYZ, 3, true, false, []string{"x", "y", "z"}},
		{XYM, 3, false, true, []string{"x", "y", "m"}},
		{XYZM, 4, true, true, []string{"x", "y", "z", "m"}},
	}
	for _, tt := range tests {
		t.Run(tt.dim.String(), func(t *testing.T) {
			assert.Equal(t, tt.size, tt.dim.Size())
			assert.Equal(t, tt.hasZ, tt.dim.HasZ())
			assert.Equal(t, tt.hasM, tt.dim.HasM())
			assert.Equal(t, tt.axes, tt.dim.Axes())
			assert.Equal(t, tt.dim, DimensionOf(tt.hasZ, tt.hasM))
			assert.True(t, tt.dim.Valid())
		})
	}
	assert.False(t, Dimension(4).Valid())
	assert.Equal(t, "Dimension(4)", Dimension(4).String())
}

func TestKind(t *testing.T) {
	assert.Equal(t, "geoarrow.point", KindPoint.ExtensionName())
	assert.Equal(t, "geoarrow.box", KindRect.ExtensionName())
	assert.Equal(t, "geoarrow.geometry", KindGeometry.ExtensionName())
	assert.Equal(t, "geoarrow.geometrycollection", KindGeometryCollection.ExtensionName())

	assert.Equal(t, KindMultiPoint, KindPoint.Multi())
	assert.Equal(t, KindMultiPolygon, KindMultiPolygon.Multi())
	assert.Equal(t, KindGeometry, KindRect.Multi())
	assert.Equal(t, "Kind(42)", Kind(42).String())
}

func TestMetadata(t *testing.T) {
	assert.True(t, Metadata{}.IsZero())
	assert.False(t, Metadata{CRS: "EPSG:4326"}.IsZero())
	assert.False(t, Metadata{Edges: EdgesSpherical}.IsZero())
	assert.Equal(t, "spherical", EdgesSpherical.String())
}

func TestErrors(t *testing.T) {
	cause := errors.New("short read")
	err := fmt.Errorf("decode: %w", NewMalformed(12, "truncated %s", "ring").WithCause(cause))

	assert.ErrorIs(t, err, ErrMalformed)
	assert.ErrorIs(t, err, cause)
	var me *ErrMalformedEncoding
	require.ErrorAs(t, err, &me)
	assert.Equal(t, 12, me.Offset)
	assert.Equal(t, "malformed encoding at byte 12: truncated ring", me.Error())

	assert.ErrorIs(t, IncorrectType("kind %s", KindRect), ErrIncorrectType)
	assert.ErrorIs(t, UnsupportedShape("empty"), ErrUnsupportedShape)

	assert.NoError(t, CheckDimension(XY, XY))
	var dm *ErrDimensionMismatch
	require.ErrorAs(t, CheckDimension(XY, XYZ), &dm)
	assert.Equal(t, XYZ, dm.Actual)

	assert.NotPanics(t, func() { CheckIndex(0, 1) })
	assert.PanicsWithError(t, "index 3 out of range [0, 3)", func() { CheckIndex(3, 3) })
	assert.Panics(t, func() { CheckIndex(-1, 3) })
	assert.PanicsWithError(t, cause.Error(), func() { Must(cause) })
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		WithKind(KindPolygon).
		WithDimension(XYZ).
		WithCount(3)
	ctx := context.Background()

	l.LogDecode(ctx, "wkb", 3, 1, nil)
	l.LogEncode(ctx, "wkb", 3, 0, errors.New("boom"))
	l.LogChunkMap(ctx, 2, 1, errors.New("boom"))
	l.LogConvert(ctx, "go-geom", 3, nil)

	out := buf.String()
	assert.Contains(t, out, "kind=Polygon")
	assert.Contains(t, out, "dimension=xyz")
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "decode completed")
	assert.Contains(t, out, "encode failed")
	assert.Contains(t, out, "chunk map failed")
	assert.Contains(t, out, "target=go-geom")

	assert.NotPanics(t, func() {
		NoopLogger().LogDecode(ctx, "wkb", 1, 0, nil)
	})
}
