package app

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/export"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

var (
	apHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9fafb"))
	apLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")).Width(8)
	apFocusStyle  = apLabelStyle.Foreground(lipgloss.Color("#f472b6")).Bold(true)
	apMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	apChipStyle   = lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#374151")).Foreground(lipgloss.Color("#f9fafb"))
	apActiveStyle = apChipStyle.Background(lipgloss.Color("#db2777")).Bold(true)
	apNoticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fbbf24"))
)

const (
	zoneStatsToggle = "stats-toggle"
	zoneFetch       = "fetch"
	zoneExport      = "export"
)

func zoneTheme(n theme.Name) string { return "theme:" + string(n) }
func zoneStat(k stats.Kind) string  { return "stat:" + k.String() }
func zoneSkill(i int) string        { return "skill:" + strconv.Itoa(i) }

const apHelp = "tab next field · ctrl+t theme · ctrl+s stats · ctrl+f fetch · ctrl+e export · alt+1…8 remove skill · esc quit"

func (m Model) View() string {
	s := m.snap
	th := theme.Get(s.State.Theme)

	lines := []string{apHeaderStyle.Render("Profile Banner")}
	lines = append(lines, strings.Split(m.rendered, "\n")...)
	lines = append(lines,
		apMutedStyle.Render(fmt.Sprintf("%s · %d × %d px · %s", th.Label, export.Width, export.Height, export.FileName(th.Name))),
		"",
		m.inputRow("Name", focusName),
		m.inputRow("Title", focusTitle),
		m.skillsRow(),
		m.inputRow("Add", focusSkill),
		m.themeRow(),
		m.statsRow(),
		m.inputRow("GitHub", focusUser)+"  "+m.fetchControl(),
	)
	if sum := apSummary(s.Stats); sum != "" {
		lines = append(lines, apLabelStyle.Render("")+apMutedStyle.Render(sum))
	}
	if s.State.StatsEnabled {
		lines = append(lines, m.pickerRows()...)
	}
	lines = append(lines, apLabelStyle.Render("")+m.mark(zoneExport, apChipStyle.Render("Export PNG"))+" "+
		apMutedStyle.Render("→ "+m.deps.ExportDir))
	if s.Notice != "" {
		lines = append(lines, apNoticeStyle.Render(s.Notice))
	}
	lines = append(lines, apMutedStyle.Render(apHelp))

	for i, l := range lines {
		if ansi.StringWidth(l) > m.width {
			lines[i] = ansi.Truncate(l, m.width, "…")
		}
	}
	out := strings.Join(lines, "\n")
	if m.deps.Zones != nil {
		out = m.deps.Zones.Scan(out)
	}
	return out
}

func (m Model) mark(id, s string) string {
	if m.deps.Zones == nil {
		return s
	}
	return m.deps.Zones.Mark(id, s)
}

func (m Model) label(text string, f focusTarget) string {
	if m.focus == f {
		return apFocusStyle.Render(text)
	}
	return apLabelStyle.Render(text)
}

func (m Model) inputRow(text string, f focusTarget) string {
	return m.label(text, f) + m.inputs[f.input()].View()
}

func (m Model) skillsRow() string {
	skills := m.snap.State.Skills
	parts := make([]string, 0, len(skills)+1)
	for i, sk := range skills {
		parts = append(parts, m.mark(zoneSkill(i), apChipStyle.Render(sk+" ×")))
	}
	parts = append(parts, apMutedStyle.Render(fmt.Sprintf("%d/%d", len(skills), banner.MaxSkills)))
	return apLabelStyle.Render("Skills") + strings.Join(parts, " ")
}

func (m Model) themeRow() string {
	names := theme.Names()
	parts := make([]string, len(names))
	for i, n := range names {
		st := apChipStyle
		if n == m.snap.State.Theme {
			st = apActiveStyle
		}
		parts[i] = m.mark(zoneTheme(n), st.Render(theme.Get(n).Label))
	}
	return apLabelStyle.Render("Theme") + strings.Join(parts, " ")
}

func (m Model) statsRow() string {
	box := "[ ]"
	if m.snap.State.StatsEnabled {
		box = "[x]"
	}
	return apLabelStyle.Render("Stats") + m.mark(zoneStatsToggle, box+" Show GitHub stats")
}

func (m Model) fetchControl() string {
	switch {
	case m.snap.Loading:
		return m.spinner.View() + " Loading…"
	case m.snap.CanFetch():
		return m.mark(zoneFetch, apChipStyle.Render("Fetch stats"))
	default:
		return apMutedStyle.Render("Fetch stats")
	}
}

func (m Model) pickerRows() []string {
	sel := m.snap.State.SelectedStats
	rows := []string{m.label("Show", focusPicker) +
		apMutedStyle.Render(fmt.Sprintf("pick up to %d (%d/%d)", banner.MaxSelectedStats, len(sel), banner.MaxSelectedStats))}
	for i, k := range stats.Kinds() {
		d := stats.Describe(k)
		cursor := "  "
		if m.focus == focusPicker && m.cursor == i {
			cursor = "> "
		}
		box := "[ ]"
		if m.snap.State.IsSelected(k) {
			box = "[x]"
		}
		row := fmt.Sprintf("%s%s %s %s", cursor, box, d.Icon, d.Label)
		if m.snap.Stats != nil {
			row += " " + stats.Format(k, m.snap.Stats.Value(k))
		}
		rows = append(rows, apLabelStyle.Render("")+m.mark(zoneStat(k), row)+" "+apMutedStyle.Render(d.Description))
	}
	return rows
}

// apSummary is the one-line digest shown under the username once stats
// are loaded.
func apSummary(r *stats.Record) string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s repos · %s stars · %s followers",
		stats.Format(stats.Repos, r.Repos),
		stats.Format(stats.Stars, r.Stars),
		stats.Format(stats.Followers, r.Followers))
}
