// Package gogeom converts between native arrays and
// github.com/twpayne/go-geom geometries.
//
// Wrap exposes go-geom values through the traits interfaces without
// copying, so they can be pushed into any builder or encoded as WKB.
// FromGeometry goes the other way and copies.
package gogeom
