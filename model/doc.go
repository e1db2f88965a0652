// Package model defines owned geometry values that implement the traits
// interfaces.
//
// Model values are ordinary heap objects. They are convenient for
// constructing input for builders, for results of coordinate transforms,
// and for tests:
//
//	ls := model.NewLineString(geoarrow.XY, 0, 1, 1, 2)
//	poly := model.NewPolygon(geoarrow.XY, ring, hole)
//
// Columnar storage lives in package array; model values are never shared
// with arrays.
package model
