// Package ffi exchanges arrays through the Arrow C data interface.
//
// Buffers describes the (pointer, length, type) triplets behind an Arrow
// array and needs no cgo. Export and Import move arrays across a C
// boundary and are only built with cgo enabled. Every exported handle
// must be released exactly once, either by Release or by the consumer.
package ffi
