package main

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"gitlab.com/tinyland/lab/profile-banner/pkg/app"
	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/export"
	"gitlab.com/tinyland/lab/profile-banner/pkg/terminal"
)

var errNotInteractive = errors.New("preview needs an interactive terminal; use 'profile-banner render' instead")

func (c *cli) previewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview",
		Short: "Edit the banner in a live terminal preview (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runPreview(cmd.Context())
		},
	}
}

func (c *cli) runPreview(ctx context.Context) error {
	if f, ok := c.out.(*os.File); !ok || !terminal.IsInteractive(f) {
		return errNotInteractive
	}

	// The TUI owns the terminal, so logs go to a file.
	logOut := io.Discard
	if path := c.cfg.General.LogFile; path != "" {
		f, err := openLogFile(path)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, c.cfg.General.LogLevel, c.verbose)

	fs, err := c.fonts()
	if err != nil {
		return err
	}

	src := c.source(logger)
	store := banner.NewStore(banner.NewSession(c.cfg.BannerState()))
	logger.Info("preview starting",
		"version", version,
		"terminal", terminal.Detect().String(),
		"theme", c.cfg.Banner.Theme)

	err = app.Run(ctx, app.Deps{
		Store:     store,
		Source:    src,
		Fonts:     fs,
		Exporter:  export.New(fs),
		ExportDir: c.cfg.Export.Dir,
		Logger:    logger,
		MinCols:   c.cfg.Preview.MinCols,
		MaxCols:   c.cfg.Preview.MaxCols,
	})
	st := src.Status()
	logger.Info("preview stopped", "fetches", st.RunCount, "failures", st.ErrorCount)
	return err
}
