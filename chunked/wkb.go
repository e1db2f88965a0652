package chunked

import (
	"context"

	"github.com/hupe1980/geoarrow/array"
	"github.com/hupe1980/geoarrow/wkb"
)

// EncodeWKB encodes every chunk of a native column.
func EncodeWKB[O array.OffsetType](ctx context.Context, a *Array[array.Array], opts ...Option) (*Array[*wkb.Array[O]], error) {
	o := applyOptions(opts)
	return TryMap(ctx, a, func(ctx context.Context, c array.Array) (*wkb.Array[O], error) {
		return wkb.FromNative[O](ctx, c, o.wkbOpts...)
	}, opts...)
}

// DecodeWKB decodes every chunk of a WKB column. Pass
// WithWKBOptions(wkb.WithArrayOptions(array.WithKind(k))) to fix the
// output kind; chunks are otherwise inferred independently and may differ.
func DecodeWKB[O array.OffsetType](ctx context.Context, a *Array[*wkb.Array[O]], opts ...Option) (*Array[array.Array], error) {
	o := applyOptions(opts)
	return TryMap(ctx, a, func(ctx context.Context, c *wkb.Array[O]) (array.Array, error) {
		return c.ToNative(ctx, o.wkbOpts...)
	}, opts...)
}
