package wkb

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
)

type options struct {
	order     ByteOrder
	logger    *geoarrow.Logger
	arrayOpts []array.Option
}

// Option configures column encoding and decoding.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{order: NDR, logger: geoarrow.NoopLogger()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithByteOrder selects the byte order FromNative writes. Defaults to NDR.
func WithByteOrder(order ByteOrder) Option {
	return func(o *options) {
		o.order = order
	}
}

// WithLogger sets the logger for column conversions.
// Defaults to a no-op logger.
func WithLogger(l *geoarrow.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithArrayOptions passes options to the native builder used by ToNative,
// for example array.WithKind or array.WithCoordType.
func WithArrayOptions(opts ...array.Option) Option {
	return func(o *options) {
		o.arrayOpts = append(o.arrayOpts, opts...)
	}
}
