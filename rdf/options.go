package rdf

import "context"

const (
	// DefaultMaxLineBytes bounds a single N-Triples/N-Quads line.
	DefaultMaxLineBytes = 1 << 20
	// DefaultMaxTriples is the default statement limit; zero means unlimited.
	DefaultMaxTriples = 0
)

// Option configures decoder behavior.
type Option func(*Options)

// Options configures decoders and Load.
type Options struct {
	// Context for cancellation and timeouts
	Context context.Context

	// Security limits for untrusted input. Zero or negative values disable a limit.
	MaxLineBytes int
	MaxTriples   int64

	// StrictIRIValidation rejects IRIs that fail ValidateIRI while decoding.
	StrictIRIValidation bool

	// JSON-LD specific
	BaseIRI             string
	AllowRemoteContexts bool
}

// OptContext sets the context for cancellation and timeouts.
func OptContext(ctx context.Context) Option {
	return func(opts *Options) {
		opts.Context = ctx
	}
}

// OptMaxLineBytes sets the maximum line size limit.
func OptMaxLineBytes(maxBytes int) Option {
	return func(opts *Options) {
		opts.MaxLineBytes = maxBytes
	}
}

// OptMaxTriples sets the maximum number of triples/quads to process.
func OptMaxTriples(maxTriples int64) Option {
	return func(opts *Options) {
		opts.MaxTriples = maxTriples
	}
}

// OptStrictIRIValidation enables IRI validation while decoding.
// Invalid IRIs cause parse errors when this option is enabled.
func OptStrictIRIValidation() Option {
	return func(opts *Options) {
		opts.StrictIRIValidation = true
	}
}

// OptBaseIRI sets the base IRI used to resolve relative JSON-LD references.
func OptBaseIRI(base string) Option {
	return func(opts *Options) {
		opts.BaseIRI = base
	}
}

// OptAllowRemoteContexts lets JSON-LD documents load remote @context URLs.
func OptAllowRemoteContexts() Option {
	return func(opts *Options) {
		opts.AllowRemoteContexts = true
	}
}

func defaultOptions() Options {
	return Options{
		MaxLineBytes: DefaultMaxLineBytes,
		MaxTriples:   DefaultMaxTriples,
	}
}

func buildOptions(opts []Option) Options {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	return options
}
