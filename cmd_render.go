package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/export"
	"gitlab.com/tinyland/lab/profile-banner/pkg/inline"
	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/preview"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/terminal"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// renderFlags override the configured banner for one render.
type renderFlags struct {
	name   string
	title  string
	skills []string
	theme  string
	user   string
	stats  bool
	picked []string
	out    string
	print  bool
	show   bool
}

func (c *cli) renderCmd() *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Lay out the banner once and export it as PNG",
		Long: `Render builds the banner from configuration and flags, optionally fetches
GitHub statistics, and writes banner-<theme>.png into the export directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runRender(cmd.Context(), cmd.Flags(), f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.name, "name", "n", "", "display name")
	fl.StringVarP(&f.title, "title", "t", "", "title line")
	fl.StringArrayVarP(&f.skills, "skill", "s", nil, "skill badge (repeatable, replaces configured skills)")
	fl.StringVar(&f.theme, "theme", "", "theme: "+strings.Join(themeKeys(), ", "))
	fl.StringVarP(&f.user, "user", "u", "", "GitHub username")
	fl.BoolVar(&f.stats, "stats", false, "fetch and show GitHub statistics")
	fl.StringArrayVar(&f.picked, "stat", nil, "statistic to show (repeatable, replaces configured stats)")
	fl.StringVarP(&f.out, "out", "o", "", "export directory (default from config)")
	fl.BoolVar(&f.print, "print", false, "print the terminal preview to stdout")
	fl.BoolVar(&f.show, "show", false, "display the exported PNG inline")
	return cmd
}

func (c *cli) runRender(ctx context.Context, fl *pflag.FlagSet, f renderFlags) error {
	s, err := applyRenderFlags(c.cfg.BannerState(), fl, f)
	if err != nil {
		return err
	}

	var rec *stats.Record
	if s.StatsEnabled && strings.TrimSpace(s.GitHubUsername) != "" {
		src := c.source(c.logger)
		fctx, cancel := context.WithTimeout(ctx, c.cfg.GitHub.Timeout.Duration)
		r, err := src.Fetch(fctx, strings.TrimSpace(s.GitHubUsername))
		cancel()
		if err != nil {
			return fmt.Errorf("fetch stats for %q: %w", s.GitHubUsername, err)
		}
		rec = &r
		c.logger.Debug("stats fetched", "user", s.GitHubUsername, "latency", src.Status().LastLatency)
	}

	fs, err := c.fonts()
	if err != nil {
		return err
	}
	th := theme.Get(s.Theme)
	plan := layout.Build(s, rec, th.Geometry, fs)

	dir := c.cfg.Export.Dir
	if fl.Changed("out") {
		dir = f.out
	}
	path, err := export.New(fs).Export(plan, th, dir)
	if err != nil {
		return err
	}
	c.logger.Info("banner exported", "path", path, "theme", th.Name, "hash", plan.Hash())

	if f.print {
		fmt.Fprintln(c.out, c.previewText(plan, th))
	}
	if f.show || c.cfg.Export.OpenInline {
		if err := c.showInline(path); err != nil {
			c.logger.Warn("inline display failed", "path", path, "error", err)
		}
	}
	fmt.Fprintln(c.out, path)
	return nil
}

// applyRenderFlags layers the flags the user actually set over s.
func applyRenderFlags(s banner.State, fl *pflag.FlagSet, f renderFlags) (banner.State, error) {
	if fl.Changed("name") {
		s = s.SetDisplayName(f.name)
	}
	if fl.Changed("title") {
		s = s.SetTitle(f.title)
	}
	if fl.Changed("skill") {
		s.Skills = nil
		for _, sk := range f.skills {
			s = s.AddSkill(sk)
		}
	}
	if fl.Changed("theme") {
		n, err := theme.ParseName(f.theme)
		if err != nil {
			return s, err
		}
		s = s.SetTheme(n)
	}
	if fl.Changed("user") {
		s = s.SetGitHubUsername(f.user)
	}
	if fl.Changed("stats") {
		s = s.SetStatsEnabled(f.stats)
	}
	if fl.Changed("stat") {
		s.SelectedStats = nil
		for _, name := range f.picked {
			k, err := stats.ParseKind(name)
			if err != nil {
				return s, err
			}
			if !s.IsSelected(k) {
				s = s.ToggleStat(k)
			}
		}
	}
	return s, nil
}

// previewText draws the plan at the terminal width. Colors are dropped
// when stdout is not a terminal.
func (c *cli) previewText(p layout.Plan, th theme.Theme) string {
	r := lipgloss.NewRenderer(c.out)
	if f, ok := c.out.(*os.File); !ok || !terminal.IsInteractive(f) {
		r.SetColorProfile(termenv.Ascii)
	}
	cols := terminal.PreviewCols(terminal.GetSize().Cols, 0, c.cfg.Preview.MinCols, c.cfg.Preview.MaxCols)
	return preview.Draw(p, th, cols).StringWith(r)
}

func (c *cli) showInline(path string) error {
	size := terminal.GetSize()
	proto := terminal.SelectProtocol(terminal.Detect(), c.cfg.Preview.Protocol)
	cols := terminal.PreviewCols(size.Cols, 0, c.cfg.Preview.MinCols, c.cfg.Preview.MaxCols)
	out, err := inline.New(proto, size).RenderFile(path, cols)
	if err != nil {
		return err
	}
	c.logger.Debug("inline image", "protocol", proto.String(), "cols", cols)
	fmt.Fprintln(c.out, out)
	return nil
}

func themeKeys() []string {
	names := theme.Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}
