package anndataset

import "github.com/hupe1980/anndataset/container"

type options struct {
	compression container.Compression
	logger      *Logger
}

// Option configures dataset read/write behavior.
type Option func(*options)

// WithCompression selects the payload compression codec used when writing.
// The codec is recorded in the file header, so readers need no option.
func WithCompression(c container.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithLogger attaches a logger to read/write operations.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{
		compression: container.CompressionNone,
		logger:      NoopLogger(),
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
