// Package traits defines capability interfaces for reading geometries
// independently of how they are stored.
//
// Every representation (native array scalars, parsed WKB, external geometry
// libraries) implements each interface once; every algorithm and codec is
// written once against the interfaces.
//
// Each interface exposes an unchecked positional accessor (suffix
// Unchecked) whose caller has already validated the index. The checked
// package-level wrappers (CoordAt, InteriorAt, PointAt, ...) panic with
// *geoarrow.ErrInvalidIndex on out-of-range access.
package traits
