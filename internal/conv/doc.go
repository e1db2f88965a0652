// Package conv converts between integer widths with range checks.
//
// Counts read from WKB headers and Arrow offset buffers are untrusted, so
// every narrowing conversion on those paths goes through this package and
// reports failure instead of wrapping. Loop indices that are bounded by a
// slice length are cast directly.
package conv
