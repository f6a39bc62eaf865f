// Package cmd implements the gauge CLI commands.
//
// The root command carries the flags shared by every subcommand (--config
// and --verbose) and dispatches to render, animate and version.
package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/go-drift/gauge/pkg/errors"
	"github.com/go-drift/gauge/pkg/gauge"
)

// globalOptions holds flags shared by all commands.
type globalOptions struct {
	configPath string
	verbose    bool
}

// NewRootCommand builds a fresh command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "gauge",
		Short: "Render circular progress gauges",
		Long: `gauge draws a circular progress gauge (a grey track ring with a green
arc proportional to a 0-100 value) and writes it as PNG.

Settings come from an optional gauge.yaml in the current directory, or the
file named by --config, and are overridden by command flags.

Use "gauge <command> --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(cmd.ErrOrStderr(), opts.verbose)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a gauge.yaml configuration file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRenderCommand(opts),
		newAnimateCommand(opts),
		newVersionCommand(),
	)
	return root
}

// Execute runs the CLI with os.Args. An interrupt cancels the running
// command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// setupLogging routes widget logs, reported errors and raster backend logs to
// w. Without verbose only warnings and errors are written.
func setupLogging(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))

	gauge.SetLogger(logger)
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
	if verbose {
		gg.SetLogger(logger)
	} else {
		gg.SetLogger(nil)
	}
}
