// Package testutil provides testing utilities for geoarrow.
//
// This package is intended for use in tests and benchmarks only.
// It provides fixed geometry fixtures and a seeded generator of random
// geometries of every kind and dimension.
//
// # Fixtures
//
//	ls := testutil.LS0()   // LINESTRING (0 1, 1 2)
//	mp := testutil.MP0()   // two polygons, the second with a hole
//
// # Random Geometries
//
//	rng := testutil.NewRNG(seed)
//	g := rng.Geometry(geoarrow.KindPolygon, geoarrow.XYZ)
//	col := rng.Column(geoarrow.KindLineString, geoarrow.XY, 100, 0.1)
package testutil
