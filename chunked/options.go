package chunked

import (
	"runtime"

	"github.com/hupe1980/geoarrow"
	"github.com/hupe1980/geoarrow/wkb"
)

type options struct {
	concurrency int
	logger      *geoarrow.Logger
	wkbOpts     []wkb.Option
}

// Option configures chunk-wise operations.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      geoarrow.NoopLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// WithConcurrency bounds the number of chunks processed at once.
// Values below 1 run chunks one at a time. Defaults to GOMAXPROCS.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = max(n, 1)
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *geoarrow.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithWKBOptions passes options to the per-chunk WKB conversions of
// EncodeWKB and DecodeWKB.
func WithWKBOptions(opts ...wkb.Option) Option {
	return func(o *options) {
		o.wkbOpts = append(o.wkbOpts, opts...)
	}
}
