// Package cli implements the inspectra CLI commands.
package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/raysh454/inspectra/internal/app"
	"github.com/raysh454/inspectra/internal/logging"
)

// Version is overridden at build time with -ldflags "-X ...cli.Version=...".
var Version = "0.1.0"

type rootOptions struct {
	configPath string
	logLevel   string
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "inspectra",
		Short: "Site-quality scan dashboard",
		Long: `Inspectra runs site-quality analyses of a URL or a screenshot,
streams their progress and keeps a history of completed scans.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (overrides config)")

	// Add subcommands (alphabetical)
	root.AddCommand(newHistoryCmd(opts))
	root.AddCommand(newScanCmd(opts))
	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newVersionCmd())
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

func (o *rootOptions) load() (*app.Config, error) {
	cfg, err := app.LoadConfig(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	return cfg, nil
}

func newLogger(w io.Writer, level string) logging.Logger {
	return logging.NewLogger(w, "inspectra", logging.ParseLevel(level))
}
