package compute

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
)

// Filter copies the slots of arr selected by sel, in ascending index
// order, into a new array of the same kind, dimension and layout.
// Indices past the end fail with *geoarrow.ErrInvalidIndex.
func Filter(arr array.Array, sel *roaring.Bitmap) (array.Array, error) {
	if n := sel.GetCardinality(); n > 0 {
		if last := int(sel.Maximum()); last >= arr.Len() {
			return nil, &geoarrow.ErrInvalidIndex{Index: last, Len: arr.Len()}
		}
	}
	b, err := array.NewBuilder(arr.Kind(), arr.Dim(),
		array.WithCoordType(arr.CoordType()),
		array.WithMetadata(arr.Metadata()),
		array.WithCapacity(int(sel.GetCardinality())),
	)
	if err != nil {
		return nil, err
	}
	it := sel.Iterator()
	for it.HasNext() {
		if err := b.TryPushGeometry(arr.Geometry(int(it.Next()))); err != nil {
			return nil, err
		}
	}
	return b.FinishArray(), nil
}

// ValidIndices returns the positions of the non-null slots of arr.
func ValidIndices(arr array.Array) *roaring.Bitmap {
	out := roaring.New()
	out.AddRange(0, uint64(arr.Len()))
	out.AndNot(arr.Validity().NullIndices())
	return out
}
