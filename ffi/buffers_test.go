package ffi

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/testutil"
	"github.com/hupe1980/geoarrow/traits"
)

func TestBuffers_LineString(t *testing.T) {
	arr, err := array.FromGeometries([]traits.Geometry{testutil.LS0(), nil, testutil.LS1()})
	require.NoError(t, err)
	exported := arr.ToArrow()
	defer exported.Release()

	bufs := Buffers(exported)
	require.Len(t, bufs, 5)

	assert.Equal(t, "", bufs[0].Path)
	assert.Equal(t, RoleValidity, bufs[0].Role)
	assert.NotZero(t, bufs[0].Ptr)

	assert.Equal(t, RoleOffsets, bufs[1].Role)
	assert.Equal(t, 4, bufs[1].ByteWidth)
	assert.Equal(t, 4*4, bufs[1].Len)
	assert.Equal(t, arrow.LIST, bufs[1].Type.ID())

	assert.Equal(t, "vertices", bufs[2].Path)
	assert.Equal(t, RoleValidity, bufs[2].Role)
	assert.Equal(t, arrow.FIXED_SIZE_LIST, bufs[2].Type.ID())

	assert.Zero(t, bufs[2].Ptr, "coordinates carry no validity")

	assert.Equal(t, "vertices.xy", bufs[3].Path)
	assert.Equal(t, RoleValidity, bufs[3].Role)
	assert.Zero(t, bufs[3].Ptr)

	assert.Equal(t, "vertices.xy", bufs[4].Path)
	assert.Equal(t, RoleValues, bufs[4].Role)
	assert.Equal(t, 8, bufs[4].ByteWidth)
	assert.Equal(t, 8*8, bufs[4].Len)
	assert.NotZero(t, bufs[4].Ptr)
}

func TestBuffers_Separated(t *testing.T) {
	arr, err := array.FromGeometries(
		[]traits.Geometry{testutil.P0(), testutil.P1()},
		array.WithCoordType(geoarrow.Separated),
	)
	require.NoError(t, err)
	exported := arr.ToArrow()
	defer exported.Release()

	bufs := Buffers(exported)
	var paths []string
	for _, b := range bufs {
		if b.Role == RoleValues {
			paths = append(paths, b.Path)
			assert.Equal(t, 2*8, b.Len)
		}
	}
	assert.Equal(t, []string{"x", "y"}, paths)
	assert.Zero(t, bufs[0].Ptr, "no validity bitmap without nulls")
}

func TestBuffers_Mixed(t *testing.T) {
	arr, err := array.FromGeometries([]traits.Geometry{testutil.P0(), testutil.LS0()})
	require.NoError(t, err)
	require.Equal(t, geoarrow.KindGeometry, arr.Kind())
	exported := arr.ToArrow()
	defer exported.Release()

	bufs := Buffers(exported)
	require.GreaterOrEqual(t, len(bufs), 2)
	assert.Equal(t, "", bufs[0].Path)
	assert.Equal(t, RoleTypeIDs, bufs[0].Role)
	assert.Equal(t, 1, bufs[0].ByteWidth)
	assert.Equal(t, 2, bufs[0].Len)
	assert.NotZero(t, bufs[0].Ptr)

	assert.Equal(t, "", bufs[1].Path)
	assert.Equal(t, RoleOffsets, bufs[1].Role)
	assert.Equal(t, 4, bufs[1].ByteWidth)
	assert.Equal(t, 2*4, bufs[1].Len)
	assert.NotZero(t, bufs[1].Ptr)

	// the first child starts right after the union's own buffers
	assert.NotEqual(t, "", bufs[2].Path)
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "validity", RoleValidity.String())
	assert.Equal(t, "type_ids", RoleTypeIDs.String())
	assert.Equal(t, "offsets", RoleOffsets.String())
	assert.Equal(t, "values", RoleValues.String())
	assert.Equal(t, "unknown", Role(9).String())
}
