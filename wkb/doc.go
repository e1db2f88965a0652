// Package wkb encodes and decodes OGC Well-Known Binary.
//
// The writer works against the traits interfaces, so any geometry (native
// array scalars, model values, interop wrappers) can be encoded:
//
//	buf, err := wkb.Marshal(g, wkb.NDR)
//
// Size returns the exact encoded length from shape counts and dimension
// alone, which lets column encoders allocate once.
//
// Parse validates a buffer and returns a zero-copy view implementing the
// traits interfaces. Coordinates are decoded on access; nothing is copied
// out of the input. Malformed input yields *geoarrow.ErrMalformedEncoding
// and never a panic.
//
// Type codes follow ISO SQL/MM (1000 Z, 2000 M, 3000 ZM). The reader also
// accepts the PostGIS EWKB high-bit flags and skips an embedded SRID.
//
// Array is a WKB binary column stored as Arrow Binary or LargeBinary under
// the geoarrow.wkb extension, convertible to and from native arrays.
package wkb
