// Package compute holds algorithms written once against the geometry
// traits, with one kind dispatch per algorithm.
package compute
