// Package geoarrow provides a columnar, zero-copy in-memory encoding for
// geometries and a Well-Known-Binary codec built on top of it.
//
// Geometries are stored as typed array columns instead of individually
// allocated objects: coordinates live in one interleaved or separated
// coordinate buffer, nesting (rings, parts, vertices) is expressed through
// offsets buffers, and nulls are tracked in an optional validity bitmap.
//
// # Packages
//
//   - traits: capability interfaces (Coord, Point, LineString, ...) used by
//     every algorithm and codec, independent of the concrete representation
//   - array: coordinate/offset/validity buffers, one array and builder per
//     geometry kind, and zero-copy interchange with Apache Arrow
//   - wkb: WKB reader/writer and a binary WKB column
//   - chunked: a logical column made of same-typed arrays
//   - compute: algorithms written once against the traits
//   - interop/gogeom, interop/ctgeom: adapters for external geometry libraries
//   - ffi: Arrow C data interface export and import
//
// # Quick Start
//
//	b := array.NewLineStringBuilder(geoarrow.XY)
//	b.PushLineString(model.NewLineString(geoarrow.XY, 0, 1, 1, 2))
//	b.PushNull()
//	arr := b.Finish()
//
//	raw, _ := wkb.Marshal(arr.Value(0))
//
// # Builders
//
// Builders are append-only and single-owner. Every mutating operation comes
// in two forms: TryPushX returns an error for untrusted input, PushX panics
// with the same error for known-good data. A failed push is not rolled back;
// a builder that returned an error must be discarded.
package geoarrow
