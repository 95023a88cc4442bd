package dirx

import "github.com/rs/zerolog"

// Option represents optional parameters for directory and collect operations
type Option func(*options)

type options struct {
	onlyFiles  bool
	recursive  bool
	extensions ExtensionFilter
	backend    Backend
	logger     zerolog.Logger
}

// defaultOptions returns default options for directory operations
func defaultOptions() *options {
	return &options{
		onlyFiles:  false,
		recursive:  false,
		extensions: nil,
		backend:    nativeBackend{},
		logger:     zerolog.Nop(),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithOnlyFiles leaves directories out of collected entries.
// Directories are still recursed into when WithRecursive is set.
func WithOnlyFiles() Option {
	return func(opts *options) {
		opts.onlyFiles = true
	}
}

// WithRecursive enables recursion into subdirectories
func WithRecursive() Option {
	return func(opts *options) {
		opts.recursive = true
	}
}

// WithExtensions keeps only files whose extension is one of exts.
// Extensions are matched case-sensitively; a leading dot is optional.
func WithExtensions(exts ...string) Option {
	return func(opts *options) {
		if opts.extensions == nil {
			opts.extensions = NewExtensionFilter()
		}
		opts.extensions.Add(exts...)
	}
}

// WithBackend replaces the native enumeration backend
func WithBackend(backend Backend) Option {
	return func(opts *options) {
		if backend != nil {
			opts.backend = backend
		}
	}
}

// WithLogger sets the logger used for traversal debug events.
// Nothing is logged by default.
func WithLogger(logger zerolog.Logger) Option {
	return func(opts *options) {
		opts.logger = logger
	}
}
