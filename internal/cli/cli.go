package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/geoknoesis/ntrender/internal/config"
	"github.com/geoknoesis/ntrender/internal/lib/logger/sl"
)

// App holds the state shared by the ntrender commands.
type App struct {
	out    io.Writer
	errOut io.Writer
	log    *slog.Logger
	cfg    *config.Config

	configPath string
	env        string
}

// New returns an App writing results to out and logs to errOut.
func New(out, errOut io.Writer) *App {
	return &App{
		out:    out,
		errOut: errOut,
		log:    slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// Run executes the command line args and logs a failure once.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd := a.Command()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		a.log.Error("command failed", sl.Err(err), sl.Code(err))
		return err
	}
	return nil
}

// Command builds the root command.
func (a *App) Command() *cobra.Command {
	root := &cobra.Command{
		Use:           "ntrender",
		Short:         "Render RDF resources as N-Triples",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to config file (default $CONFIG_PATH)")
	flags.StringVar(&a.env, "env", "", "environment: local, dev or prod (overrides config)")

	root.AddCommand(
		a.renderCommand(),
		a.subjectsCommand(),
		a.nodeCommand(),
	)
	return root
}

func (a *App) setup() error {
	path := a.configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.env != "" {
		switch a.env {
		case config.EnvLocal, config.EnvDev, config.EnvProd:
			cfg.Env = a.env
		default:
			return errors.Errorf("unknown env %q", a.env)
		}
	}
	a.cfg = cfg
	a.log = setupLogger(cfg.Env, a.errOut)
	a.log.Debug("config loaded", slog.String("env", cfg.Env), slog.String("path", path))
	return nil
}

func setupLogger(env string, w io.Writer) *slog.Logger {
	var log *slog.Logger

	switch env {
	case config.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case config.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
