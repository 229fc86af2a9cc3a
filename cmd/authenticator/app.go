package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jeremyhahn/go-authenticator/pkg/clock"
	"github.com/jeremyhahn/go-authenticator/pkg/command"
	"github.com/jeremyhahn/go-authenticator/pkg/config"
	"github.com/jeremyhahn/go-authenticator/pkg/store"
)

// app carries the state of one invocation.
type app struct {
	stdout  io.Writer
	stderr  io.Writer
	printer *printer

	loader     *config.Loader
	cfg        *config.Config
	logger     *slog.Logger
	clock      clock.Clocker
	configFile string
	verbose    bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:  stdout,
		stderr:  stderr,
		printer: newPrinter(stdout, stderr),
		loader:  config.NewLoader(),
		logger:  slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               "authenticator",
		Short:             "Generate HOTP and TOTP codes for your accounts",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default <dir>/config.toml)")
	flags.String("dir", "", "directory holding the account store (default ~/"+config.DefaultDirName+")")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(
		a.addCommand(),
		a.deleteCommand(),
		a.listCommand(),
		a.viewCommand(),
	)
	return root
}

// setup resolves configuration and logging once the command line is parsed.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loader.BindFlag(config.KeyStoreDir, cmd.Flags().Lookup("dir")); err != nil {
		return err
	}
	if f := cmd.Flags().Lookup("length"); f != nil {
		if err := a.loader.BindFlag(config.KeyOTPLength, f); err != nil {
			return err
		}
	}

	cfg, err := a.loader.Load(a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg

	level := cfg.Log.SlogLevel()
	if a.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	a.logger.Debug("configuration loaded",
		"store", cfg.StorePath(),
		"config_file", cfg.ConfigFile(),
		"length", cfg.OTP.Length,
	)
	return nil
}

// withService runs fn inside a store session; the store is persisted however
// fn returns.
func (a *app) withService(ctx context.Context, fn func(*command.Service) error) error {
	return store.WithSession(ctx, a.cfg.StorePath(), a.logger, func(s *store.Store) error {
		svc, err := command.New(s,
			command.WithClock(a.clock),
			command.WithLogger(a.logger),
		)
		if err != nil {
			return err
		}
		return fn(svc)
	})
}
