// Package theme holds the four banner palettes. A theme is pure data: the
// preview and export renderers read the same values, so a banner looks the
// same on screen and in the exported image.
package theme

import (
	"fmt"
	"strings"
	"sync"
)

// Name identifies a built-in theme.
type Name string

const (
	Gradient      Name = "gradient"
	Glassmorphism Name = "glassmorphism"
	Cyberpunk     Name = "cyberpunk"
	Minimal       Name = "minimal"
)

// order is the selector order shown to the user.
var order = []Name{Gradient, Glassmorphism, Cyberpunk, Minimal}

// Stop is one color stop of the background gradient. Offset runs from 0 at
// the top-left corner to 1 at the bottom-right corner.
type Stop struct {
	Offset float64
	Color  string // "#RRGGBB" or "#RRGGBBAA"
}

// Theme defines the complete palette of one banner style.
type Theme struct {
	Name  Name
	Label string

	// Background is a diagonal linear gradient. A solid background has
	// two stops of the same color.
	Background []Stop

	// Text colors
	Heading string // display name
	Title   string
	Caption string // "Stats for ..." line
	Stat    string // stat glyph text

	// Skill badges
	BadgeFill        string
	BadgeBorder      string
	BadgeText        string
	BadgeBorderWidth float64 // reference pixels

	// Profile photo placeholder
	PhotoFill   string
	PhotoBorder string
	PhotoLabel  string

	Geometry Geometry
}

// Geometry holds the fixed measurements the layout engine packs badges
// with, in reference pixels on the 1500x500 canvas.
type Geometry struct {
	BadgePadding float64 // horizontal padding inside a badge
	BadgeGap     float64 // space between adjacent badges
	BadgeHeight  float64
	BadgeRadius  float64
	BadgeAscent  float64 // distance from badge top to text baseline
	RowPitch     float64 // vertical advance between wrapped badge rows
}

// DefaultGeometry returns the badge geometry shared by all built-in themes.
func DefaultGeometry() Geometry {
	return Geometry{
		BadgePadding: 20,
		BadgeGap:     15,
		BadgeHeight:  50,
		BadgeRadius:  25,
		BadgeAscent:  35,
		RowPitch:     60,
	}
}

var (
	mu       sync.RWMutex
	registry = map[Name]Theme{}
)

func init() {
	thRegisterBuiltins()
}

// ParseName resolves s (case-insensitive) to a built-in theme name.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, o := range order {
		if o == n {
			return n, nil
		}
	}
	return "", fmt.Errorf("theme: unknown theme %q", s)
}

// Get returns a named theme, falling back to Gradient if not found.
func Get(name Name) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[name]; ok {
		return t
	}
	return registry[Gradient]
}

// Names returns the theme names in selector order.
func Names() []Name {
	out := make([]Name, len(order))
	copy(out, order)
	return out
}

// Next returns the theme after name in selector order, wrapping around.
func Next(name Name) Name {
	for i, o := range order {
		if o == name {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

// Override replaces the palette of a built-in theme. It fails for names
// outside the built-in set since the theme enumeration is closed.
func Override(t Theme) error {
	if _, err := ParseName(string(t.Name)); err != nil {
		return err
	}
	if err := thValidateTheme(t); err != nil {
		return err
	}
	thRegister(t)
	return nil
}

// Reset restores all built-in palettes.
func Reset() {
	thRegisterBuiltins()
}

// thRegister adds a theme to the registry.
func thRegister(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	if len(t.Background) > 0 {
		bg := make([]Stop, len(t.Background))
		copy(bg, t.Background)
		t.Background = bg
	}
	registry[t.Name] = t
}
