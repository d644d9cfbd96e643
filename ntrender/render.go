// Package ntrender renders RDF resources and terms as N-Triples strings.
//
// Every function captures the output of the corresponding rdf writer in a
// private in-memory buffer and returns it untouched. Errors from the rdf
// package are returned as-is, so rdf.Code and errors.Is keep working on them.
package ntrender

import (
	"context"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/geoknoesis/ntrender/rdf"
)

// RenderNTriple returns the N-Triples statements whose subject is r,
// exactly as rdf.WriteResource writes them.
func RenderNTriple(r rdf.Resource) (string, error) {
	var sb strings.Builder
	if err := rdf.WriteResource(&sb, r); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderNode returns the N-Triples node form of t, such as <iri> or _:b0,
// exactly as rdf.WriteTerm writes it.
func RenderNode(t rdf.Term) (string, error) {
	var sb strings.Builder
	if err := rdf.WriteTerm(&sb, t); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Option configures RenderAll.
type Option func(*options)

type options struct {
	concurrency int
}

// WithConcurrency bounds the number of resources rendered at once.
// Values below one select runtime.GOMAXPROCS(0).
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// RenderAll renders every resource concurrently. Result i belongs to rs[i].
// The first failure stops outstanding work and is returned unchanged.
func RenderAll(ctx context.Context, rs []rdf.Resource, opts ...Option) ([]string, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = runtime.GOMAXPROCS(0)
	}

	out := make([]string, len(rs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, r := range rs {
		i, r := i, r
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			s, err := RenderNTriple(r)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
