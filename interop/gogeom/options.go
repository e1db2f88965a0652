package gogeom

import (
	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/array"
)

type options struct {
	logger    *geoarrow.Logger
	arrayOpts []array.Option
}

// Option configures array conversions.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{logger: geoarrow.NoopLogger()}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *geoarrow.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithArrayOptions passes options to the builder used by ToArray and
// FromWKT.
func WithArrayOptions(opts ...array.Option) Option {
	return func(o *options) {
		o.arrayOpts = append(o.arrayOpts, opts...)
	}
}
