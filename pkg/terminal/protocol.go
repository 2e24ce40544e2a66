package terminal

import (
	"fmt"
	"strings"
)

// Protocol is the mechanism used to draw the exported PNG inline.
type Protocol int

const (
	ProtocolNone       Protocol = iota // print the path only
	ProtocolKitty                      // Kitty graphics (Ghostty, Kitty, WezTerm)
	ProtocolITerm2                     // iTerm2 inline images
	ProtocolSixel                      // DEC sixel
	ProtocolHalfblocks                 // "▀" cells with 24-bit color
)

var protocolNames = [...]string{
	ProtocolNone:       "none",
	ProtocolKitty:      "kitty",
	ProtocolITerm2:     "iterm2",
	ProtocolSixel:      "sixel",
	ProtocolHalfblocks: "halfblocks",
}

func (p Protocol) String() string {
	if int(p) < len(protocolNames) {
		return protocolNames[p]
	}
	return "unknown"
}

// ParseProtocol maps a configured protocol name to its value. "auto" and
// the empty string parse to ok=false with no error, meaning detect.
func ParseProtocol(s string) (p Protocol, ok bool, err error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "auto" {
		return ProtocolNone, false, nil
	}
	for i, name := range protocolNames {
		if name == s {
			return Protocol(i), true, nil
		}
	}
	return ProtocolNone, false, fmt.Errorf("terminal: unknown protocol %q", s)
}

// SelectProtocol picks the inline image protocol for e. A non-empty
// override other than "auto" wins; an invalid override falls back to
// detection. Sessions over SSH or inside tmux use half blocks, since
// passthrough of image escapes is unreliable there.
func SelectProtocol(e Emulator, override string) Protocol {
	if p, ok, err := ParseProtocol(override); err == nil && ok {
		return p
	}
	if isSSH() || e == Tmux {
		return ProtocolHalfblocks
	}
	switch e {
	case Ghostty, Kitty, WezTerm:
		return ProtocolKitty
	case ITerm2:
		return ProtocolITerm2
	default:
		return ProtocolHalfblocks
	}
}
