package array

import "github.com/hupe1980/geoarrow"

type options struct {
	coordType geoarrow.CoordType
	metadata  geoarrow.Metadata
	capacity  int
	kind      *geoarrow.Kind
	dim       *geoarrow.Dimension
}

// Option configures builders and conversions.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{coordType: geoarrow.Interleaved}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithCoordType selects the coordinate layout of built arrays.
// Defaults to geoarrow.Interleaved. Rect arrays are always separated.
func WithCoordType(ct geoarrow.CoordType) Option {
	return func(o *options) {
		o.coordType = ct
	}
}

// WithMetadata attaches CRS and edge metadata to built arrays.
func WithMetadata(m geoarrow.Metadata) Option {
	return func(o *options) {
		o.metadata = m
	}
}

// WithCapacity hints the number of geometries that will be pushed.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithKind fixes the target kind of FromGeometries instead of inferring it.
func WithKind(k geoarrow.Kind) Option {
	return func(o *options) {
		o.kind = &k
	}
}

// WithDimension fixes the dimension of FromGeometries instead of inferring it.
// Required when every input is nil.
func WithDimension(d geoarrow.Dimension) Option {
	return func(o *options) {
		o.dim = &d
	}
}
