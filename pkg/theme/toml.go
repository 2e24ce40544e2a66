package theme

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// thTOMLTheme is the TOML-serializable representation of a Theme.
type thTOMLTheme struct {
	Name       string          `toml:"name"`
	Label      string          `toml:"label,omitempty"`
	Background []thTOMLStop    `toml:"background"`
	Text       thTOMLText      `toml:"text"`
	Badge      thTOMLBadge     `toml:"badge"`
	Photo      thTOMLPhoto     `toml:"photo"`
	Geometry   *thTOMLGeometry `toml:"geometry,omitempty"`
}

type thTOMLStop struct {
	Offset float64 `toml:"offset"`
	Color  string  `toml:"color"`
}

type thTOMLText struct {
	Heading string `toml:"heading"`
	Title   string `toml:"title"`
	Caption string `toml:"caption"`
	Stat    string `toml:"stat"`
}

type thTOMLBadge struct {
	Fill        string  `toml:"fill"`
	Border      string  `toml:"border"`
	Text        string  `toml:"text"`
	BorderWidth float64 `toml:"border_width"`
}

type thTOMLPhoto struct {
	Fill   string `toml:"fill"`
	Border string `toml:"border"`
	Label  string `toml:"label"`
}

type thTOMLGeometry struct {
	BadgePadding float64 `toml:"badge_padding"`
	BadgeGap     float64 `toml:"badge_gap"`
	BadgeHeight  float64 `toml:"badge_height"`
	BadgeRadius  float64 `toml:"badge_radius"`
	BadgeAscent  float64 `toml:"badge_ascent"`
	RowPitch     float64 `toml:"row_pitch"`
}

var thHexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}([0-9a-fA-F]{2})?$`)

// LoadFromTOML parses a TOML theme definition from raw bytes. A missing
// geometry table takes DefaultGeometry.
func LoadFromTOML(data []byte) (Theme, error) {
	var tt thTOMLTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:  Name(tt.Name),
		Label: tt.Label,

		Heading: tt.Text.Heading,
		Title:   tt.Text.Title,
		Caption: tt.Text.Caption,
		Stat:    tt.Text.Stat,

		BadgeFill:        tt.Badge.Fill,
		BadgeBorder:      tt.Badge.Border,
		BadgeText:        tt.Badge.Text,
		BadgeBorderWidth: tt.Badge.BorderWidth,

		PhotoFill:   tt.Photo.Fill,
		PhotoBorder: tt.Photo.Border,
		PhotoLabel:  tt.Photo.Label,

		Geometry: DefaultGeometry(),
	}
	for _, s := range tt.Background {
		t.Background = append(t.Background, Stop(s))
	}
	if g := tt.Geometry; g != nil {
		t.Geometry = Geometry(*g)
	}
	if t.Label == "" {
		t.Label = string(t.Name)
	}

	if err := thValidateTheme(t); err != nil {
		return Theme{}, err
	}

	return t, nil
}

// LoadFile reads a theme definition from path.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	return LoadFromTOML(data)
}

// SaveToTOML serializes a theme to TOML bytes.
func SaveToTOML(t Theme) ([]byte, error) {
	g := thTOMLGeometry(t.Geometry)
	tt := thTOMLTheme{
		Name:  string(t.Name),
		Label: t.Label,
		Text: thTOMLText{
			Heading: t.Heading,
			Title:   t.Title,
			Caption: t.Caption,
			Stat:    t.Stat,
		},
		Badge: thTOMLBadge{
			Fill:        t.BadgeFill,
			Border:      t.BadgeBorder,
			Text:        t.BadgeText,
			BorderWidth: t.BadgeBorderWidth,
		},
		Photo: thTOMLPhoto{
			Fill:   t.PhotoFill,
			Border: t.PhotoBorder,
			Label:  t.PhotoLabel,
		},
		Geometry: &g,
	}
	for _, s := range t.Background {
		tt.Background = append(tt.Background, thTOMLStop(s))
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	if err := enc.Encode(tt); err != nil {
		return nil, fmt.Errorf("theme: encode TOML: %w", err)
	}
	return buf.Bytes(), nil
}

// thValidateTheme checks that all required color fields are present and valid hex.
func thValidateTheme(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	if len(t.Background) == 0 {
		return fmt.Errorf("theme %s: background needs at least one stop", t.Name)
	}
	prev := -1.0
	for i, s := range t.Background {
		if s.Offset < 0 || s.Offset > 1 || s.Offset < prev {
			return fmt.Errorf("theme %s: background stop %d offset %v out of order or range", t.Name, i, s.Offset)
		}
		prev = s.Offset
		if !thHexColorRegex.MatchString(s.Color) {
			return fmt.Errorf("theme %s: invalid hex color %q for background stop %d", t.Name, s.Color, i)
		}
	}

	colorFields := []struct{ field, value string }{
		{"text.heading", t.Heading},
		{"text.title", t.Title},
		{"text.caption", t.Caption},
		{"text.stat", t.Stat},
		{"badge.fill", t.BadgeFill},
		{"badge.border", t.BadgeBorder},
		{"badge.text", t.BadgeText},
		{"photo.fill", t.PhotoFill},
		{"photo.border", t.PhotoBorder},
		{"photo.label", t.PhotoLabel},
	}
	for _, f := range colorFields {
		if f.value == "" {
			return fmt.Errorf("theme %s: missing required field %q", t.Name, f.field)
		}
		if !thHexColorRegex.MatchString(f.value) {
			return fmt.Errorf("theme %s: invalid hex color %q for field %q (expected #RRGGBB or #RRGGBBAA)", t.Name, f.value, f.field)
		}
	}
	if t.BadgeBorderWidth < 0 {
		return fmt.Errorf("theme %s: negative badge border width", t.Name)
	}
	if t.Geometry.BadgeHeight <= 0 || t.Geometry.RowPitch < t.Geometry.BadgeHeight {
		return fmt.Errorf("theme %s: badge row pitch must be at least the badge height", t.Name)
	}
	return nil
}
