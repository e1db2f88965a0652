// Package ctgeom converts between native arrays and github.com/ctessum/geom
// geometries. That library is planar XY only; other dimensions are
// rejected on the way out.
package ctgeom
