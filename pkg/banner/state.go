// Package banner owns the banner being edited: the user's content choices,
// the transitions that change them, and a Store that publishes each new
// snapshot to whoever renders it.
//
// Every transition is a pure function from one State to the next. Slices are
// copied on write, so a State handed to a renderer never changes underneath
// it.
package banner

import (
	"strings"

	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

const (
	MaxSkills        = 8
	MaxSelectedStats = 4
)

// State is the user's banner configuration.
type State struct {
	DisplayName    string
	Title          string
	Skills         []string
	Theme          theme.Name
	StatsEnabled   bool
	GitHubUsername string
	SelectedStats  []stats.Kind
}

// Default returns the banner a new session starts with.
func Default() State {
	return State{
		DisplayName:   "Jane Dev",
		Title:         "Full-Stack Developer",
		Skills:        []string{"React", "TypeScript", "Node.js", "Python"},
		Theme:         theme.Gradient,
		SelectedStats: []stats.Kind{stats.Repos, stats.Stars, stats.Followers},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.Skills = append([]string(nil), s.Skills...)
	s.SelectedStats = append([]stats.Kind(nil), s.SelectedStats...)
	return s
}

// SetDisplayName replaces the display name.
func (s State) SetDisplayName(v string) State {
	s = s.Clone()
	s.DisplayName = v
	return s
}

// SetTitle replaces the title line.
func (s State) SetTitle(v string) State {
	s = s.Clone()
	s.Title = v
	return s
}

// SetGitHubUsername replaces the username stats are fetched for.
func (s State) SetGitHubUsername(v string) State {
	s = s.Clone()
	s.GitHubUsername = v
	return s
}

// SetTheme selects one of the built-in themes.
func (s State) SetTheme(v theme.Name) State {
	s = s.Clone()
	s.Theme = v
	return s
}

// SetStatsEnabled shows or hides the stats block.
func (s State) SetStatsEnabled(v bool) State {
	s = s.Clone()
	s.StatsEnabled = v
	return s
}

// AddSkill appends the trimmed text as a skill badge. Empty text and a full
// skill list leave s unchanged.
func (s State) AddSkill(text string) State {
	text = strings.TrimSpace(text)
	if text == "" || len(s.Skills) >= MaxSkills {
		return s
	}
	s = s.Clone()
	s.Skills = append(s.Skills, text)
	return s
}

// RemoveSkill deletes the skill at index i. An out-of-range index leaves s
// unchanged.
func (s State) RemoveSkill(i int) State {
	if i < 0 || i >= len(s.Skills) {
		return s
	}
	s = s.Clone()
	s.Skills = append(s.Skills[:i], s.Skills[i+1:]...)
	return s
}

// ToggleStat deselects k if selected, otherwise appends it unless four
// stats are already selected.
func (s State) ToggleStat(k stats.Kind) State {
	if i := s.statIndex(k); i >= 0 {
		s = s.Clone()
		s.SelectedStats = append(s.SelectedStats[:i], s.SelectedStats[i+1:]...)
		return s
	}
	if len(s.SelectedStats) >= MaxSelectedStats || !k.Valid() {
		return s
	}
	s = s.Clone()
	s.SelectedStats = append(s.SelectedStats, k)
	return s
}

// IsSelected reports whether k is part of the stats row.
func (s State) IsSelected(k stats.Kind) bool {
	return s.statIndex(k) >= 0
}

func (s State) statIndex(k stats.Kind) int {
	for i, sel := range s.SelectedStats {
		if sel == k {
			return i
		}
	}
	return -1
}
