package rdf

import (
	"context"
	"io"
)

// Decoder streams RDF statements from an input.
// Triples from N-Triples arrive as quads with a nil graph.
type Decoder interface {
	Next() (Quad, error)
	Close() error
}

// Encoder streams RDF statements to an output.
// For N-Triples the graph (G) field is ignored.
type Encoder interface {
	Write(Quad) error
	Flush() error
	Close() error
}

// Handler processes statements in push mode.
type Handler func(Quad) error

// NewDecoder creates a decoder for the specified format.
func NewDecoder(r io.Reader, format Format, opts ...Option) (Decoder, error) {
	options := buildOptions(opts)
	switch format {
	case FormatNTriples, FormatNQuads:
		return newNTDecoder(r, format, options), nil
	case FormatJSONLD:
		return newJSONLDDecoder(r, options), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// NewEncoder creates an encoder for the specified format.
func NewEncoder(w io.Writer, format Format) (Encoder, error) {
	switch format {
	case FormatNTriples, FormatNQuads:
		return newNTEncoder(w, format), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// Parse decodes r and streams statements to the handler.
// If ctx is nil, context.Background() is used.
func Parse(ctx context.Context, r io.Reader, format Format, handler Handler, opts ...Option) error {
	if ctx == nil {
		ctx = context.Background()
	}
	dec, err := NewDecoder(r, format, append(opts, OptContext(ctx))...)
	if err != nil {
		return err
	}
	defer dec.Close()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		q, err := dec.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := handler(q); err != nil {
			return err
		}
	}
}

// Load decodes r into a new graph. Statements in named graphs are merged
// into the returned graph.
func Load(ctx context.Context, r io.Reader, format Format, opts ...Option) (*Graph, error) {
	g := NewGraph()
	err := Parse(ctx, r, format, func(q Quad) error {
		_, err := g.Add(q.ToTriple())
		return err
	}, opts...)
	if err != nil {
		return nil, err
	}
	return g, nil
}
