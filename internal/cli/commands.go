package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/geoknoesis/ntrender/ntrender"
	"github.com/geoknoesis/ntrender/rdf"
)

func (a *App) renderCommand() *cobra.Command {
	var (
		resources   []string
		all         bool
		format      string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Print the N-Triples statements of resources in FILE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(resources) > 0) {
				return errors.New("exactly one of --resource or --all is required")
			}

			ctx, cancel := a.renderContext(cmd.Context())
			defer cancel()

			g, err := a.loadGraph(ctx, args[0], format)
			if err != nil {
				return err
			}

			var targets []rdf.Resource
			if all {
				for _, s := range g.Subjects() {
					targets = append(targets, g.Resource(s))
				}
			} else {
				for _, raw := range resources {
					node, err := parseNode(raw)
					if err != nil {
						return err
					}
					targets = append(targets, g.Resource(node))
				}
				a.warnMissing(g, targets)
			}

			if concurrency == 0 {
				concurrency = a.cfg.Render.Concurrency
			}
			rendered, err := ntrender.RenderAll(ctx, targets, ntrender.WithConcurrency(concurrency))
			if err != nil {
				return errors.Wrap(err, "render")
			}
			for _, s := range rendered {
				if _, err := io.WriteString(a.out, s); err != nil {
					return errors.Wrap(err, "write output")
				}
			}
			a.log.Info("rendered resources", slog.Int("resources", len(targets)))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&resources, "resource", "r", nil, "resource to render: IRI, <IRI> or _:label (repeatable)")
	flags.BoolVar(&all, "all", false, "render every subject in the graph")
	formatFlag(flags, &format)
	flags.IntVar(&concurrency, "concurrency", 0, "resources rendered in parallel (default from config, then GOMAXPROCS)")
	return cmd
}

func (a *App) subjectsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "subjects FILE",
		Short: "List the subjects of FILE in N-Triples node syntax",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.renderContext(cmd.Context())
			defer cancel()

			g, err := a.loadGraph(ctx, args[0], format)
			if err != nil {
				return err
			}
			for _, s := range g.Subjects() {
				node, err := ntrender.RenderNode(s)
				if err != nil {
					return errors.Wrap(err, "render subject")
				}
				fmt.Fprintln(a.out, node)
			}
			return nil
		},
	}
	formatFlag(cmd.Flags(), &format)
	return cmd
}

func (a *App) nodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "node TERM...",
		Short: "Print the N-Triples node form of IRIs or blank node labels",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, raw := range args {
				term, err := parseNode(raw)
				if err != nil {
					return err
				}
				node, err := ntrender.RenderNode(term)
				if err != nil {
					return errors.Wrapf(err, "render %q", raw)
				}
				fmt.Fprintln(a.out, node)
			}
			return nil
		},
	}
}

// warnMissing logs every requested resource that is not a subject of g,
// with the closest subjects as hints.
func (a *App) warnMissing(g *rdf.Graph, targets []rdf.Resource) {
	var subjects []string
	for _, r := range targets {
		if len(r.Properties()) > 0 {
			continue
		}
		want, err := ntrender.RenderNode(r.Node)
		if err != nil {
			continue
		}
		if subjects == nil {
			for _, s := range g.Subjects() {
				if node, err := ntrender.RenderNode(s); err == nil {
					subjects = append(subjects, node)
				}
			}
		}
		a.log.Warn("resource has no statements",
			slog.String("resource", want),
			slog.Any("did_you_mean", suggest(want, subjects)),
		)
	}
}

func formatFlag(flags *pflag.FlagSet, p *string) {
	flags.StringVarP(p, "format", "f", "", "input format: ntriples, nquads or jsonld (default from config or extension)")
}

func (a *App) renderContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	if a.cfg.Render.Timeout > 0 {
		return context.WithTimeout(parent, a.cfg.Render.Timeout)
	}
	return context.WithCancel(parent)
}

func (a *App) loadGraph(ctx context.Context, path, formatName string) (*rdf.Graph, error) {
	format, err := a.resolveFormat(path, formatName)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open input")
	}
	defer f.Close()

	opts := []rdf.Option{
		rdf.OptMaxLineBytes(a.cfg.Limits.MaxLineBytes),
		rdf.OptMaxTriples(a.cfg.Limits.MaxTriples),
		rdf.OptBaseIRI(a.cfg.Input.BaseIRI),
	}
	if a.cfg.Limits.StrictIRI {
		opts = append(opts, rdf.OptStrictIRIValidation())
	}
	if a.cfg.Input.RemoteContexts {
		opts = append(opts, rdf.OptAllowRemoteContexts())
	}

	g, err := rdf.Load(ctx, f, format, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	a.log.Debug("graph loaded",
		slog.String("path", path),
		slog.String("format", string(format)),
		slog.Int("triples", g.Len()),
	)
	return g, nil
}

func (a *App) resolveFormat(path, flag string) (rdf.Format, error) {
	name := flag
	if name == "" {
		name = a.cfg.Input.Format
	}
	if name == "" {
		if format, err := rdf.FormatFromPath(path); err == nil {
			return format, nil
		}
		return a.sniffFormat(path)
	}
	format, ok := rdf.ParseFormat(name)
	if !ok {
		return "", errors.Wrapf(rdf.ErrUnsupportedFormat, "format %q", name)
	}
	return format, nil
}

// parseNode accepts "_:label", "<iri>" or a bare IRI.
func parseNode(raw string) (rdf.Term, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "_:"):
		if len(raw) == 2 {
			return nil, errors.Errorf("blank node label missing in %q", raw)
		}
		return rdf.BlankNode{ID: raw[2:]}, nil
	case strings.HasPrefix(raw, "<") && strings.HasSuffix(raw, ">"):
		raw = raw[1 : len(raw)-1]
	}
	if raw == "" {
		return nil, errors.New("empty IRI")
	}
	return rdf.NewIRI(raw), nil
}

// sniffFormat detects the format of path from its content when the
// extension names none.
func (a *App) sniffFormat(path string) (rdf.Format, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return "", errors.Wrap(err, "detect format")
	}
	format, err := rdf.FormatFromContentType(mtype.String())
	if err != nil {
		return "", errors.Wrapf(err, "detect format of %s", path)
	}
	a.log.Debug("format detected from content",
		slog.String("path", path),
		slog.String("mime", mtype.String()),
		slog.String("format", string(format)),
	)
	return format, nil
}
