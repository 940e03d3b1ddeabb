// Command markup renders, serves and publishes HTML documents assembled
// from a head source and a body source.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/markup/internal/config"
	"github.com/vango-dev/markup/internal/errors"
	"github.com/vango-dev/markup/internal/logging"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// globalOptions holds the persistent flags.
type globalOptions struct {
	configPath string
	logLevel   string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "markup",
		Short: "Render typed HTML documents",
		Long: `markup assembles an HTML document from a head source and a body
source and writes it as <!DOCTYPE html><html>{head}{body}</html>.

Bodies ending in .md are converted from Markdown. Documents can be
written to a file, served with live preview, or published to S3.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to markup.yaml or markup.json")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(
		renderCmd(opts),
		serveCmd(opts),
		publishCmd(opts),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig loads the configuration named by --config, or markup.yaml /
// markup.json from the working directory. Without either, defaults apply.
func loadConfig(opts *globalOptions) (*config.Config, error) {
	if opts.configPath != "" {
		return config.LoadFile(opts.configPath)
	}
	cfg, err := config.Load(".")
	if errors.HasCode(err, "E121") {
		return config.New(), nil
	}
	return cfg, err
}

// newLogger builds the stderr logger. --log-level wins over the config.
func newLogger(cfg *config.Config, opts *globalOptions) *slog.Logger {
	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	return logging.New(os.Stderr, logging.Options{
		Level: logging.ParseLevel(level),
		Color: cfg.Log.Color,
	})
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
