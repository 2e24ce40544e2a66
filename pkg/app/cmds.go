package app

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// snapshotMsg signals that the store published a new session.
type snapshotMsg struct{}

// waitForSnapshot blocks until the store publishes, then wakes Update.
func waitForSnapshot(ch <-chan banner.Session) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return snapshotMsg{}
	}
}

// startFetch marks a fetch as started and returns the command that runs
// it. It returns nil when a fetch is already in flight or no username is
// set, so repeated presses are ignored.
func (m *Model) startFetch() tea.Cmd {
	if !m.snap.CanFetch() || m.deps.Source == nil {
		return nil
	}
	username := strings.TrimSpace(m.snap.State.GitHubUsername)
	m.dispatch(banner.FetchStarted{})
	return tea.Batch(m.spinner.Tick, fetchCmd(m, username))
}

// fetchCmd fetches in the background and dispatches the outcome straight
// into the store; the subscription then wakes the UI.
func fetchCmd(m *Model, username string) tea.Cmd {
	ctx, src, st, log := m.ctx, m.deps.Source, m.deps.Store, m.log
	return func() tea.Msg {
		start := time.Now()
		rec, err := src.Fetch(ctx, username)
		if err != nil {
			log.Warn("stats fetch failed", "source", src.Name(), "user", username, "error", err)
			st.Dispatch(banner.FetchFailed{Username: username, Err: err})
			return nil
		}
		log.Info("stats fetched", "source", src.Name(), "user", username, "latency", time.Since(start))
		st.Dispatch(banner.FetchSucceeded{Record: rec})
		return nil
	}
}

// startExport renders the current plan to PNG in the background.
func (m *Model) startExport() tea.Cmd {
	plan := m.plan
	th := theme.Get(m.snap.State.Theme)
	return exportCmd(m, plan, th)
}

func exportCmd(m *Model, p layout.Plan, th theme.Theme) tea.Cmd {
	r, dir, st, log := m.deps.Exporter, m.deps.ExportDir, m.deps.Store, m.log
	return func() tea.Msg {
		path, err := r.Export(p, th, dir)
		if err != nil {
			log.Error("export failed", "dir", dir, "error", err)
		} else {
			log.Info("banner exported", "path", path)
		}
		st.Dispatch(banner.ExportFinished{Path: path, Err: err})
		return nil
	}
}
