// Package terminal inspects the terminal the banner tool runs in: which
// emulator it is, whether it can show inline images, and how many cells
// the preview may occupy. Detection reads only the environment and the
// tty, so it is safe to call before the TUI starts.
package terminal

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Emulator identifies a terminal emulator family.
type Emulator int

const (
	Generic Emulator = iota
	Ghostty
	Kitty
	WezTerm
	ITerm2
	VSCode
	Alacritty
	Tmux
)

var emulatorNames = [...]string{
	Generic:   "generic",
	Ghostty:   "ghostty",
	Kitty:     "kitty",
	WezTerm:   "wezterm",
	ITerm2:    "iterm2",
	VSCode:    "vscode",
	Alacritty: "alacritty",
	Tmux:      "tmux",
}

func (e Emulator) String() string {
	if int(e) < len(emulatorNames) {
		return emulatorNames[e]
	}
	return "unknown"
}

// Detect identifies the emulator from TERM_PROGRAM, TERM and a few
// emulator-specific variables, in that order.
func Detect() Emulator {
	switch strings.ToLower(os.Getenv("TERM_PROGRAM")) {
	case "ghostty":
		return Ghostty
	case "kitty":
		return Kitty
	case "wezterm":
		return WezTerm
	case "iterm.app":
		return ITerm2
	case "vscode":
		return VSCode
	case "alacritty":
		return Alacritty
	case "tmux":
		return Tmux
	}

	switch term := os.Getenv("TERM"); {
	case term == "xterm-ghostty":
		return Ghostty
	case term == "xterm-kitty":
		return Kitty
	case strings.HasPrefix(term, "alacritty"):
		return Alacritty
	}

	switch {
	case os.Getenv("KITTY_WINDOW_ID") != "":
		return Kitty
	case os.Getenv("WEZTERM_EXECUTABLE") != "":
		return WezTerm
	case os.Getenv("ITERM_SESSION_ID") != "", os.Getenv("LC_TERMINAL") == "iTerm2":
		return ITerm2
	case os.Getenv("TMUX") != "":
		return Tmux
	}
	return Generic
}

// IsInteractive reports whether f is a terminal, including Cygwin and MSYS
// ptys.
func IsInteractive(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// isSSH reports whether the session runs over SSH.
func isSSH() bool {
	return os.Getenv("SSH_TTY") != "" || os.Getenv("SSH_CONNECTION") != "" || os.Getenv("SSH_CLIENT") != ""
}
