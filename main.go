// profile-banner designs social-profile header banners in the terminal.
//
// It edits a banner (name, title, skill badges, theme and optional GitHub
// statistics) in a live terminal preview and exports the same composition
// as a 1500x500 PNG.
//
// Usage:
//
//	profile-banner [preview]          interactive editor (default)
//	profile-banner render [flags]     lay out and export once
//	profile-banner stats USER         fetch and print GitHub statistics
//	profile-banner themes [--toml]    list or dump the theme palettes
//	profile-banner version
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/profile-banner/pkg/collectors"
	"gitlab.com/tinyland/lab/profile-banner/pkg/collectors/github"
	"gitlab.com/tinyland/lab/profile-banner/pkg/config"
	"gitlab.com/tinyland/lab/profile-banner/pkg/fonts"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// cli carries what every subcommand needs once the root pre-run has
// loaded configuration.
type cli struct {
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func main() {
	_ = config.LoadDotEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out, errOut: errOut}
	root := &cobra.Command{
		Use:           "profile-banner",
		Short:         "Design profile header banners in the terminal",
		Long:          "profile-banner edits a social profile banner in a live terminal preview and exports it as a 1500x500 PNG.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runPreview(cmd.Context())
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config.toml (default: XDG config dir)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		c.previewCmd(),
		c.renderCmd(),
		c.statsCmd(),
		c.themesCmd(),
		c.versionCmd(),
	)
	return root
}

// setup loads and validates configuration, applies a theme palette file
// and installs a stderr logger. The preview command swaps the logger for
// a file logger once the TUI owns the terminal.
func (c *cli) setup() error {
	var (
		cfg *config.Config
		err error
	)
	if c.configPath != "" {
		cfg, err = config.LoadFromFile(c.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	c.logger = newLogger(c.errOut, cfg.General.LogLevel, c.verbose)

	if cfg.Theme.File != "" {
		t, err := theme.LoadFile(cfg.Theme.File)
		if err != nil {
			return fmt.Errorf("theme file: %w", err)
		}
		if err := theme.Override(t); err != nil {
			return fmt.Errorf("theme file: %w", err)
		}
		c.logger.Debug("theme overridden", "theme", t.Name, "file", cfg.Theme.File)
	}
	return nil
}

// source returns the GitHub statistics source with status tracking.
func (c *cli) source(logger *slog.Logger) *collectors.Tracked {
	return collectors.Track(github.New(
		github.WithBaseURL(c.cfg.GitHub.BaseURL),
		github.WithUserAgent(c.cfg.GitHub.UserAgent+"/"+version),
		github.WithTimeout(c.cfg.GitHub.Timeout.Duration),
		github.WithLogger(logger),
	))
}

func (c *cli) fonts() (*fonts.Set, error) {
	fs, err := fonts.Load(c.cfg.Fonts.Regular, c.cfg.Fonts.Bold)
	if err != nil {
		return nil, fmt.Errorf("fonts: %w", err)
	}
	return fs, nil
}

// newLogger builds the process logger. verbose forces debug level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	lvl := parseLevel(level)
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openLogFile opens path for appending, creating its directory.
func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func (c *cli) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(c.out, "profile-banner %s (%s) built %s\n", version, commit, date)
		},
	}
}
