// Package app hosts the interactive banner editor: a bubbletea program
// whose form edits a banner.Store and whose preview pane repaints from
// every new snapshot.
//
// The model never mutates banner state itself. Keys, clicks and finished
// background work become banner.Actions; the Store reduces them and the
// model redraws from the snapshot it gets back.
package app

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/collectors"
	"gitlab.com/tinyland/lab/profile-banner/pkg/export"
	"gitlab.com/tinyland/lab/profile-banner/pkg/fonts"
	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/preview"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/terminal"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// Deps are the collaborators the editor drives.
type Deps struct {
	Store     *banner.Store
	Source    collectors.Source
	Fonts     *fonts.Set
	Exporter  *export.Renderer
	ExportDir string
	Logger    *slog.Logger

	// Preview width bounds in cells.
	MinCols int
	MaxCols int

	// Zones resolves mouse clicks; nil disables mouse handling.
	Zones *zone.Manager
}

// Model is the bubbletea model of the editor.
type Model struct {
	ctx  context.Context
	deps Deps
	log  *slog.Logger

	inputs  [numInputs]textinput.Model
	focus   focusTarget
	cursor  int // highlighted row of the stat picker
	spinner spinner.Model

	snap   banner.Session
	snapCh <-chan banner.Session
	cancel func()

	plan     layout.Plan
	planKey  string
	rendered string

	width  int
	height int
}

// New builds the editor around d. ctx bounds every fetch the editor
// starts; cancel it to abandon in-flight requests.
func New(ctx context.Context, d Deps) Model {
	if d.Logger == nil {
		d.Logger = slog.New(slog.DiscardHandler)
	}
	if d.Fonts == nil {
		d.Fonts = fonts.Default()
	}
	if d.Exporter == nil {
		d.Exporter = export.New(d.Fonts)
	}
	if d.MinCols <= 0 {
		d.MinCols = preview.MinCols
	}

	m := Model{
		ctx:     ctx,
		deps:    d,
		log:     d.Logger,
		spinner: spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		snap:    d.Store.Snapshot(),
		width:   80,
		height:  24,
	}
	m.snapCh, m.cancel = d.Store.SubscribeChan()

	s := m.snap.State
	m.inputs[inputName] = apNewInput("Display name", s.DisplayName, 40)
	m.inputs[inputTitle] = apNewInput("Title", s.Title, 60)
	m.inputs[inputSkill] = apNewInput("Add a skill and press enter", "", 24)
	m.inputs[inputUser] = apNewInput("GitHub username", s.GitHubUsername, 39)
	m.inputs[inputName].Focus()
	m.refreshPlan()
	return m
}

func apNewInput(placeholder, value string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = limit
	ti.SetValue(value)
	ti.CursorEnd()
	return ti
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.cancel != nil {
		m.cancel()
	}
}

// Session returns the snapshot the model last drew.
func (m Model) Session() banner.Session {
	return m.snap
}

// Plan returns the layout the preview currently shows.
func (m Model) Plan() layout.Plan {
	return m.plan
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForSnapshot(m.snapCh))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.refreshPlan()
		return m, nil

	case snapshotMsg:
		// The channel only signals; the store holds the newest session.
		m.applySnapshot(m.deps.Store.Snapshot())
		return m, waitForSnapshot(m.snapCh)

	case spinner.TickMsg:
		if !m.snap.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.snap.Notice != "" {
			m.dispatch(banner.DismissNotice{})
			return m, nil
		}
		return m, tea.Quit
	case "tab":
		cmd := m.setFocus(m.step(focusTarget.next))
		return m, cmd
	case "shift+tab":
		cmd := m.setFocus(m.step(focusTarget.prev))
		return m, cmd
	case "ctrl+t":
		m.dispatch(banner.SetTheme{Theme: theme.Next(m.snap.State.Theme)})
		return m, nil
	case "ctrl+s":
		m.dispatch(banner.SetStatsEnabled{Enabled: !m.snap.State.StatsEnabled})
		return m, nil
	case "ctrl+f":
		cmd := m.startFetch()
		return m, cmd
	case "ctrl+e":
		cmd := m.startExport()
		return m, cmd
	}

	if msg.Alt && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '8' {
		m.dispatch(banner.RemoveSkill{Index: int(msg.Runes[0] - '1')})
		return m, nil
	}

	if m.focus == focusPicker {
		kinds := stats.Kinds()
		switch key {
		case "up", "k":
			m.cursor = (m.cursor - 1 + len(kinds)) % len(kinds)
		case "down", "j":
			m.cursor = (m.cursor + 1) % len(kinds)
		case " ", "enter", "x":
			m.dispatch(banner.ToggleStat{Kind: kinds[m.cursor]})
		}
		return m, nil
	}

	if key == "enter" {
		switch m.focus.input() {
		case inputSkill:
			text := m.inputs[inputSkill].Value()
			if strings.TrimSpace(text) != "" && len(m.snap.State.Skills) < banner.MaxSkills {
				m.inputs[inputSkill].SetValue("")
			}
			m.dispatch(banner.AddSkill{Text: text})
			return m, nil
		case inputUser:
			cmd := m.startFetch()
			return m, cmd
		default:
			cmd := m.setFocus(m.step(focusTarget.next))
			return m, cmd
		}
	}

	return m.updateFocusedInput(msg)
}

// updateFocusedInput forwards msg to the focused text input and dispatches
// the edit when its value changed.
func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	idx := m.focus.input()
	if idx < 0 {
		return m, nil
	}
	before := m.inputs[idx].Value()
	var cmd tea.Cmd
	m.inputs[idx], cmd = m.inputs[idx].Update(msg)
	after := m.inputs[idx].Value()
	if after == before {
		return m, cmd
	}
	switch idx {
	case inputName:
		m.dispatch(banner.SetDisplayName{Value: after})
	case inputTitle:
		m.dispatch(banner.SetTitle{Value: after})
	case inputUser:
		m.dispatch(banner.SetGitHubUsername{Value: after})
	}
	return m, cmd
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.deps.Zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	hit := func(id string) bool {
		z := m.deps.Zones.Get(id)
		return z != nil && z.InBounds(msg)
	}
	for _, n := range theme.Names() {
		if hit(zoneTheme(n)) {
			m.dispatch(banner.SetTheme{Theme: n})
			return m, nil
		}
	}
	for i, k := range stats.Kinds() {
		if hit(zoneStat(k)) {
			m.cursor = i
			m.dispatch(banner.ToggleStat{Kind: k})
			cmd := m.setFocus(focusPicker)
			return m, cmd
		}
	}
	for i := range m.snap.State.Skills {
		if hit(zoneSkill(i)) {
			m.dispatch(banner.RemoveSkill{Index: i})
			return m, nil
		}
	}
	switch {
	case hit(zoneStatsToggle):
		m.dispatch(banner.SetStatsEnabled{Enabled: !m.snap.State.StatsEnabled})
	case hit(zoneFetch):
		cmd := m.startFetch()
		return m, cmd
	case hit(zoneExport):
		cmd := m.startExport()
		return m, cmd
	}
	return m, nil
}

// dispatch sends a to the store and redraws from the result.
func (m *Model) dispatch(a banner.Action) {
	m.applySnapshot(m.deps.Store.Dispatch(a))
}

func (m *Model) applySnapshot(s banner.Session) {
	if s.Version < m.snap.Version {
		return
	}
	m.snap = s
	m.refreshPlan()
}

// refreshPlan rebuilds the layout and the preview text. Both are kept
// when neither the plan nor the preview geometry changed.
func (m *Model) refreshPlan() {
	s := m.snap
	th := theme.Get(s.State.Theme)
	p := layout.Build(s.State, s.Stats, th.Geometry, m.deps.Fonts)
	cols := m.previewCols()
	key := p.Hash() + "|" + string(th.Name) + "|" + strconv.Itoa(cols)
	if key == m.planKey {
		return
	}
	m.plan, m.planKey = p, key
	m.rendered = preview.Render(p, th, cols)
}

func (m Model) previewCols() int {
	return terminal.PreviewCols(m.width, 2, m.deps.MinCols, m.deps.MaxCols)
}

// Run starts the editor on the terminal and blocks until the user quits
// or ctx is canceled.
func Run(ctx context.Context, d Deps) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if d.Zones == nil {
		d.Zones = zone.New()
		defer d.Zones.Close()
	}
	m := New(ctx, d)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
