package app

import tea "github.com/charmbracelet/bubbletea"

// Text inputs, in form order.
const (
	inputName = iota
	inputTitle
	inputSkill
	inputUser
	numInputs
)

// focusTarget is the form element receiving keys. The first numInputs
// values are the text inputs; focusPicker is the stat picker.
type focusTarget int

const (
	focusName   focusTarget = inputName
	focusTitle  focusTarget = inputTitle
	focusSkill  focusTarget = inputSkill
	focusUser   focusTarget = inputUser
	focusPicker focusTarget = numInputs

	numFocus = numInputs + 1
)

func (f focusTarget) next() focusTarget { return (f + 1) % numFocus }
func (f focusTarget) prev() focusTarget { return (f - 1 + numFocus) % numFocus }

// input returns the text input index for f, or -1 for the picker.
func (f focusTarget) input() int {
	if f < numInputs {
		return int(f)
	}
	return -1
}

// setFocus moves keyboard focus to f, blurring every other input.
func (m *Model) setFocus(f focusTarget) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == f.input() {
			cmd = m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	return cmd
}

// step moves focus with move, skipping the picker while it is hidden.
func (m Model) step(move func(focusTarget) focusTarget) focusTarget {
	f := move(m.focus)
	if f == focusPicker && !m.snap.State.StatsEnabled {
		f = move(f)
	}
	return f
}
