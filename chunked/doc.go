// Package chunked treats an ordered sequence of same-typed arrays as one
// logical column.
//
// Chunks are never concatenated. Map and TryMap run a function over every
// chunk, possibly on parallel workers, and place each result at the index
// of the chunk it came from.
package chunked
