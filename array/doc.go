// Package array implements columnar geometry arrays.
//
// An array is a coordinate buffer, zero or more offsets layers that
// delimit variable-length runs, an optional validity bitmap and metadata.
// One array type exists per geometry kind; Mixed is a dense union of the
// six OGC kinds and GeometryCollection nests a Mixed array under one more
// offsets layer.
//
// # Building
//
// Builders are append-only and single-owner. Every mutating operation has a
// fallible Try form and a panicking form sharing one implementation:
//
//	b := array.NewLineStringBuilder(geoarrow.XY)
//	b.PushLineString(ls)       // panics on dimension mismatch
//	err := b.TryPushGeometry(g) // returns the error
//	b.PushNull()
//	arr := b.Finish()
//
// A failing push is not rolled back. A builder that returned an error must
// be abandoned.
//
// # Nulls
//
// Nullness is only ever read from the validity bitmap. A null
// variable-length slot is a zero-length run; a null Point or Rect slot is
// NaN-filled. Finish omits the bitmap when no null was pushed.
//
// # Sharing
//
// Finished arrays are immutable and safe for concurrent reads. Slice is
// O(1) and shares every buffer; OwnedSlice copies the window.
//
// # Arrow
//
// Every array exposes its Arrow storage type, its GeoArrow extension type
// and a zero-copy ToArrow export. FromArrow imports storage or extension
// arrays without copying coordinates.
package array
