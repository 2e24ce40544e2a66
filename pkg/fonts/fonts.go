// Package fonts loads the typefaces banners are drawn and measured with.
// The Go fonts are embedded, so a banner renders identically on every
// machine unless the user points the config at other font files.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
)

// Set is a regular and a bold typeface. Measuring through a Set is safe
// for concurrent use.
type Set struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	bold bool
	size float64
}

// Default returns a Set backed by the embedded Go fonts.
func Default() *Set {
	s, err := New(goregular.TTF, gobold.TTF)
	if err != nil {
		// The embedded fonts are known-good.
		panic(fmt.Sprintf("fonts: parse embedded Go fonts: %v", err))
	}
	return s
}

// New parses TTF/OTF data for the regular and bold faces.
func New(regular, bold []byte) (*Set, error) {
	r, err := opentype.Parse(regular)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse regular: %w", err)
	}
	b, err := opentype.Parse(bold)
	if err != nil {
		return nil, fmt.Errorf("fonts: parse bold: %w", err)
	}
	return &Set{regular: r, bold: b, faces: make(map[faceKey]font.Face)}, nil
}

// Load reads font files from disk. An empty path keeps the embedded Go
// font for that weight.
func Load(regularPath, boldPath string) (*Set, error) {
	regular, bold := goregular.TTF, gobold.TTF
	if regularPath != "" {
		data, err := os.ReadFile(regularPath)
		if err != nil {
			return nil, fmt.Errorf("fonts: read regular: %w", err)
		}
		regular = data
	}
	if boldPath != "" {
		data, err := os.ReadFile(boldPath)
		if err != nil {
			return nil, fmt.Errorf("fonts: read bold: %w", err)
		}
		bold = data
	}
	return New(regular, bold)
}

// NewFace returns a new face for a size class scaled by scale (surface
// width divided by the reference width). Name and caption text use the
// bold typeface. Faces are not safe for concurrent use; each renderer
// takes its own.
func (s *Set) NewFace(class layout.SizeClass, scale float64) (font.Face, error) {
	src := s.regular
	if IsBold(class) {
		src = s.bold
	}
	size := class.Pixels() * scale
	f, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: face %v at %.1fpx: %w", class, size, err)
	}
	return f, nil
}

// Measure implements layout.Measurer at the reference scale.
func (s *Set) Measure(text string, class layout.SizeClass) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := faceKey{bold: IsBold(class), size: class.Pixels()}
	f, ok := s.faces[key]
	if !ok {
		var err error
		if f, err = s.NewFace(class, 1); err != nil {
			return 0
		}
		s.faces[key] = f
	}
	return fixedToFloat(font.MeasureString(f, text))
}

// IsBold reports whether text of the given class is set in bold.
func IsBold(class layout.SizeClass) bool {
	return class == layout.SizeName || class == layout.SizeCaption
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
