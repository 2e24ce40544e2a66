package theme

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses "#RRGGBB" or "#RRGGBBAA" into a non-premultiplied color.
func ParseHex(s string) (color.NRGBA, error) {
	if !thHexColorRegex.MatchString(s) {
		return color.NRGBA{}, fmt.Errorf("theme: invalid hex color %q (expected #RRGGBB or #RRGGBBAA)", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("theme: parse hex %q: %w", s, err)
	}
	if len(s) == 7 {
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustHex is ParseHex for palette values already validated at registration.
// Invalid input yields opaque magenta so a bad color is visible rather than
// silently transparent.
func MustHex(s string) color.NRGBA {
	c, err := ParseHex(s)
	if err != nil {
		return color.NRGBA{R: 0xff, B: 0xff, A: 0xff}
	}
	return c
}

// At samples the background gradient at position t in [0,1] along the
// diagonal. Colors are interpolated linearly in sRGB between stops.
func (t Theme) At(pos float64) color.NRGBA {
	stops := t.Background
	if len(stops) == 0 {
		return color.NRGBA{A: 0xff}
	}
	if pos <= stops[0].Offset {
		return MustHex(stops[0].Color)
	}
	for i := 1; i < len(stops); i++ {
		if pos <= stops[i].Offset {
			a, b := stops[i-1], stops[i]
			span := b.Offset - a.Offset
			f := 0.0
			if span > 0 {
				f = (pos - a.Offset) / span
			}
			return thLerp(MustHex(a.Color), MustHex(b.Color), f)
		}
	}
	return MustHex(stops[len(stops)-1].Color)
}

func thLerp(a, b color.NRGBA, f float64) color.NRGBA {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendRgb(cb, f).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*f
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}
