package chunked

import (
	"context"
	"fmt"
	"iter"
	"sync/atomic"

	"github.com/apache/arrow-go/v18/arrow"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/traits"
)

// Chunk is anything that can serve as one chunk of a column.
// array.Array and *wkb.Array[O] both qualify.
type Chunk[T any] interface {
	Len() int
	NullN() int
	Slice(offset, length int) T
}

// Array is an ordered sequence of chunks.
type Array[T Chunk[T]] struct {
	chunks []T
}

// New wraps chunks without copying them.
func New[T Chunk[T]](chunks ...T) *Array[T] {
	return &Array[T]{chunks: chunks}
}

// NewNative wraps native arrays that must share kind, dimension and
// coordinate layout.
func NewNative(chunks ...array.Array) (*Array[array.Array], error) {
	for i := 1; i < len(chunks); i++ {
		a, b := chunks[0], chunks[i]
		if a.Kind() != b.Kind() || a.Dim() != b.Dim() || a.CoordType() != b.CoordType() {
			return nil, geoarrow.IncorrectType("chunk %d is %s %s %s, chunk 0 is %s %s %s",
				i, b.Kind(), b.Dim(), b.CoordType(), a.Kind(), a.Dim(), a.CoordType())
		}
	}
	return New(chunks...), nil
}

func (a *Array[T]) NumChunks() int { return len(a.chunks) }
func (a *Array[T]) Chunk(i int) T  { return a.chunks[i] }

// Chunks returns the chunk slice. It must not be modified.
func (a *Array[T]) Chunks() []T { return a.chunks }

// Len sums the chunk lengths.
func (a *Array[T]) Len() int {
	n := 0
	for _, c := range a.chunks {
		n += c.Len()
	}
	return n
}

// NullN sums the chunk null counts.
func (a *Array[T]) NullN() int {
	n := 0
	for _, c := range a.chunks {
		n += c.NullN()
	}
	return n
}

// Locate maps a logical row to its chunk and the row within that chunk.
// It panics with *geoarrow.ErrInvalidIndex when i is out of range.
func (a *Array[T]) Locate(i int) (chunk, row int) {
	if i >= 0 {
		row = i
		for c, ch := range a.chunks {
			if row < ch.Len() {
				return c, row
			}
			row -= ch.Len()
		}
	}
	panic(&geoarrow.ErrInvalidIndex{Index: i, Len: a.Len()})
}

// Append returns a column with chunks added after the existing ones.
// Neither a nor the chunks are copied.
func (a *Array[T]) Append(chunks ...T) *Array[T] {
	out := make([]T, 0, len(a.chunks)+len(chunks))
	out = append(out, a.chunks...)
	return &Array[T]{chunks: append(out, chunks...)}
}

// Slice returns the logical rows [offset, offset+length) as zero-copy
// slices of the chunks they touch.
func (a *Array[T]) Slice(offset, length int) *Array[T] {
	total := a.Len()
	if offset < 0 || length < 0 || offset+length > total {
		panic(&geoarrow.ErrInvalidIndex{Index: offset + length, Len: total})
	}
	var out []T
	for _, c := range a.chunks {
		if length == 0 {
			break
		}
		n := c.Len()
		if offset >= n {
			offset -= n
			continue
		}
		take := min(n-offset, length)
		out = append(out, c.Slice(offset, take))
		offset = 0
		length -= take
	}
	return &Array[T]{chunks: out}
}

// TryMap runs fn over every chunk. Up to WithConcurrency chunks run at
// once; result i always comes from chunk i. The first error cancels the
// remaining work and is returned.
func TryMap[T Chunk[T], U Chunk[U]](ctx context.Context, a *Array[T], fn func(context.Context, T) (U, error), opts ...Option) (*Array[U], error) {
	o := applyOptions(opts)
	out := make([]U, len(a.chunks))
	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, c := range a.chunks {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := fn(gctx, c)
			if err != nil {
				failed.Add(1)
				return &ChunkError{Index: i, Err: err}
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		o.logger.LogChunkMap(ctx, len(a.chunks), int(failed.Load()), err)
		return nil, err
	}
	o.logger.LogChunkMap(ctx, len(a.chunks), 0, nil)
	return &Array[U]{chunks: out}, nil
}

// Map runs an infallible fn over every chunk with the same ordering
// guarantees as TryMap.
func Map[T Chunk[T], U Chunk[U]](a *Array[T], fn func(T) U, opts ...Option) *Array[U] {
	out, err := TryMap(context.Background(), a, func(_ context.Context, c T) (U, error) {
		return fn(c), nil
	}, opts...)
	geoarrow.Must(err)
	return out
}

// ChunkError reports the chunk at which a map failed.
type ChunkError struct {
	Index int
	Err   error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunked: chunk %d: %v", e.Index, e.Err)
}

func (e *ChunkError) Unwrap() error { return e.Err }

// Geometries iterates the rows of a native column in logical order.
// Null rows yield nil.
func Geometries(a *Array[array.Array]) iter.Seq2[int, traits.Geometry] {
	return func(yield func(int, traits.Geometry) bool) {
		row := 0
		for _, c := range a.chunks {
			for i := range c.Len() {
				if !yield(row, c.Geometry(i)) {
					return
				}
				row++
			}
		}
	}
}

// Exportable chunks convert to Arrow arrays.
type Exportable[T any] interface {
	Chunk[T]
	ToArrow() arrow.Array
}

// ToArrow exports every chunk into an arrow.Chunked without copying
// buffers. All chunks must export to the same Arrow type. An empty
// column needs an explicit type, so it fails with geoarrow.ErrIncorrectType.
func ToArrow[T Exportable[T]](a *Array[T]) (*arrow.Chunked, error) {
	if len(a.chunks) == 0 {
		return nil, geoarrow.IncorrectType("cannot infer the Arrow type of a column without chunks")
	}
	arrs := make([]arrow.Array, len(a.chunks))
	defer func() {
		for _, arr := range arrs {
			if arr != nil {
				arr.Release()
			}
		}
	}()
	for i, c := range a.chunks {
		arrs[i] = c.ToArrow()
		if i > 0 && !arrow.TypeEqual(arrs[0].DataType(), arrs[i].DataType()) {
			return nil, geoarrow.IncorrectType("chunk %d exports %s, chunk 0 exports %s",
				i, arrs[i].DataType(), arrs[0].DataType())
		}
	}
	return arrow.NewChunked(arrs[0].DataType(), arrs), nil
}

// FromArrow imports every chunk of c as a native array.
func FromArrow(c *arrow.Chunked) (*Array[array.Array], error) {
	chunks := make([]array.Array, len(c.Chunks()))
	for i, arr := range c.Chunks() {
		native, err := array.FromArrow(arr)
		if err != nil {
			return nil, &ChunkError{Index: i, Err: err}
		}
		chunks[i] = native
	}
	return New(chunks...), nil
}
