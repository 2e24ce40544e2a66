package banner

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/profile-banner/pkg/collectors"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// Session is the controller's view of one editing session: the banner, the
// last fetched statistics and transient UI status.
type Session struct {
	State   State
	Stats   *stats.Record // nil until a fetch succeeds
	Loading bool
	Notice  string // last user-facing message, empty when none
	Version uint64 // incremented on every reduction
}

// NewSession starts a session from s.
func NewSession(s State) Session {
	return Session{State: s.Clone()}
}

// CanFetch reports whether a stats fetch may start: none is in flight and
// a username is present.
func (s Session) CanFetch() bool {
	return !s.Loading && strings.TrimSpace(s.State.GitHubUsername) != ""
}

// Action is one user intent or asynchronous result. The set of actions is
// closed; Reduce handles every variant.
type Action interface {
	action()
}

type (
	SetDisplayName    struct{ Value string }
	SetTitle          struct{ Value string }
	SetGitHubUsername struct{ Value string }
	SetTheme          struct{ Theme theme.Name }
	SetStatsEnabled   struct{ Enabled bool }
	AddSkill          struct{ Text string }
	RemoveSkill       struct{ Index int }
	ToggleStat        struct{ Kind stats.Kind }

	// FetchStarted marks a stats fetch as in flight.
	FetchStarted struct{}
	// FetchSucceeded installs a freshly fetched record.
	FetchSucceeded struct{ Record stats.Record }
	// FetchFailed clears the record and tells the user why.
	FetchFailed struct {
		Username string
		Err      error
	}
	// ExportFinished reports the outcome of a raster export.
	ExportFinished struct {
		Path string
		Err  error
	}
	DismissNotice struct{}
)

func (SetDisplayName) action()    {}
func (SetTitle) action()          {}
func (SetGitHubUsername) action() {}
func (SetTheme) action()          {}
func (SetStatsEnabled) action()   {}
func (AddSkill) action()          {}
func (RemoveSkill) action()       {}
func (ToggleStat) action()        {}
func (FetchStarted) action()      {}
func (FetchSucceeded) action()    {}
func (FetchFailed) action()       {}
func (ExportFinished) action()    {}
func (DismissNotice) action()     {}

// Reduce applies a to s and returns the next session. It never mutates s.
func Reduce(s Session, a Action) Session {
	next := s
	next.State = s.State.Clone()
	next.Version = s.Version + 1

	switch a := a.(type) {
	case SetDisplayName:
		next.State = next.State.SetDisplayName(a.Value)
	case SetTitle:
		next.State = next.State.SetTitle(a.Value)
	case SetGitHubUsername:
		next.State = next.State.SetGitHubUsername(a.Value)
	case SetTheme:
		next.State = next.State.SetTheme(a.Theme)
	case SetStatsEnabled:
		next.State = next.State.SetStatsEnabled(a.Enabled)
	case AddSkill:
		next.State = next.State.AddSkill(a.Text)
	case RemoveSkill:
		next.State = next.State.RemoveSkill(a.Index)
	case ToggleStat:
		next.State = next.State.ToggleStat(a.Kind)
	case FetchStarted:
		next.Loading = true
		next.Notice = ""
	case FetchSucceeded:
		rec := a.Record
		next.Stats = &rec
		next.Loading = false
		next.Notice = ""
	case FetchFailed:
		next.Stats = nil
		next.Loading = false
		next.Notice = FetchFailureNotice(a.Username, a.Err)
	case ExportFinished:
		if a.Err != nil {
			next.Notice = fmt.Sprintf("Export failed: %v. Try again!", a.Err)
		} else {
			next.Notice = "Saved " + a.Path
		}
	case DismissNotice:
		next.Notice = ""
	default:
		next.Version = s.Version
	}
	return next
}

// FetchFailureNotice renders the message shown when stats cannot be loaded.
func FetchFailureNotice(username string, err error) string {
	if errors.Is(err, collectors.ErrUserNotFound) || err == nil {
		return fmt.Sprintf("Could not fetch stats for %q. Check the username!", username)
	}
	return fmt.Sprintf("Could not fetch stats for %q: %v", username, err)
}
