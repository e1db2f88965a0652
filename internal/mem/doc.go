// Package mem provides memory allocation utilities.
//
// # Aligned Allocation
//
// Buffers are 64-byte aligned, the alignment the Arrow columnar format
// recommends, so coordinate and offset buffers can be handed to Arrow
// consumers without copying.
package mem
