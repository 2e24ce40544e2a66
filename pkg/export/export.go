// Package export rasterizes a layout.Plan into a PNG. It draws with an
// imperative 2D canvas at a fixed 1500x500 so exported banners have the
// proportions social profile headers expect.
package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"gitlab.com/tinyland/lab/profile-banner/pkg/fonts"
	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

const (
	Width  = 1500
	Height = 500
)

// Error is an export failure. Drawing, encoding and writing errors are all
// reported as *Error; the caller shows it and keeps the banner state.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Renderer draws plans onto a raster canvas.
type Renderer struct {
	fonts  *fonts.Set
	width  int
	height int
}

// New returns a renderer producing Width x Height images.
func New(fs *fonts.Set) *Renderer {
	if fs == nil {
		fs = fonts.Default()
	}
	return &Renderer{fonts: fs, width: Width, height: Height}
}

// WithSize returns a copy of r rendering at w x h. Text and geometry scale
// with the width.
func (r *Renderer) WithSize(w, h int) *Renderer {
	c := *r
	c.width, c.height = w, h
	return &c
}

// FileName returns the download name for a theme.
func FileName(name theme.Name) string {
	return "profile-banner-" + string(name) + ".png"
}

// Render draws p with th and returns the image.
func (r *Renderer) Render(p layout.Plan, th theme.Theme) (img image.Image, err error) {
	if r.width <= 0 || r.height <= 0 {
		return nil, &Error{Op: "render", Err: fmt.Errorf("invalid canvas size %dx%d", r.width, r.height)}
	}
	defer func() {
		if rec := recover(); rec != nil {
			img, err = nil, &Error{Op: "render", Err: fmt.Errorf("%v", rec)}
		}
	}()

	w, h := float64(r.width), float64(r.height)
	scale := w / layout.RefWidth

	faces, err := r.exFaces(scale)
	if err != nil {
		return nil, &Error{Op: "load fonts", Err: err}
	}
	defer func() {
		for _, f := range faces {
			_ = f.Close()
		}
	}()

	dc := gg.NewContext(r.width, r.height)
	exBackground(dc, th, w, h)

	for _, e := range p.Elements {
		switch e := e.(type) {
		case layout.PhotoZone:
			exPhoto(dc, e, th, faces[layout.SizeCaption], w, h, scale)
		case layout.TextRun:
			dc.SetFontFace(faces[e.Size])
			dc.SetColor(theme.MustHex(exRunColor(th, e.Role)))
			x, y := e.Anchor.X*w, e.Anchor.Y*h
			if e.Align == layout.AlignRight {
				dc.DrawStringAnchored(e.Content, x, y, 1, 0)
			} else {
				dc.DrawString(e.Content, x, y)
			}
		case layout.Badge:
			bx, by, bw, bh := e.Box.Scale(w, h)
			dc.DrawRoundedRectangle(bx, by, bw, bh, e.CornerRadius*h)
			dc.SetColor(theme.MustHex(th.BadgeFill))
			dc.FillPreserve()
			dc.SetColor(theme.MustHex(th.BadgeBorder))
			dc.SetLineWidth(th.BadgeBorderWidth * scale)
			dc.Stroke()

			dc.SetFontFace(faces[e.Size])
			dc.SetColor(theme.MustHex(th.BadgeText))
			dc.DrawString(e.Content, e.TextAnchor.X*w, e.TextAnchor.Y*h)
		case layout.StatGlyph:
			dc.SetFontFace(faces[e.Size])
			dc.SetColor(theme.MustHex(th.Stat))
			dc.DrawString(e.Text(), e.Anchor.X*w, e.Anchor.Y*h)
		}
	}
	return dc.Image(), nil
}

// Encode writes img as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return &Error{Op: "encode", Err: err}
	}
	return nil
}

// Export renders p, encodes it and writes it into dir under FileName. It
// returns the written path.
func (r *Renderer) Export(p layout.Plan, th theme.Theme, dir string) (string, error) {
	img, err := r.Render(p, th)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img); err != nil {
		return "", err
	}
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName(th.Name))
	if err := exAtomicWrite(dir, path, buf.Bytes()); err != nil {
		return "", &Error{Op: "write", Err: err}
	}
	return path, nil
}

// exFaces opens one face per size class at the given scale.
func (r *Renderer) exFaces(scale float64) (map[layout.SizeClass]font.Face, error) {
	faces := make(map[layout.SizeClass]font.Face, 5)
	for _, c := range []layout.SizeClass{layout.SizeName, layout.SizeTitle, layout.SizeBody, layout.SizeCaption, layout.SizeStat} {
		f, err := r.fonts.NewFace(c, scale)
		if err != nil {
			for _, open := range faces {
				_ = open.Close()
			}
			return nil, err
		}
		faces[c] = f
	}
	return faces, nil
}

// exBackground fills the canvas with the theme's diagonal gradient.
func exBackground(dc *gg.Context, th theme.Theme, w, h float64) {
	grad := gg.NewLinearGradient(0, 0, w, h)
	for _, s := range th.Background {
		grad.AddColorStop(s.Offset, theme.MustHex(s.Color))
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
}

// exPhoto draws the dashed circular placeholder with its centered label.
func exPhoto(dc *gg.Context, pz layout.PhotoZone, th theme.Theme, face font.Face, w, h, scale float64) {
	cx, cy := pz.Center.X*w, pz.Center.Y*h
	radius := pz.Diameter * w / 2

	dc.DrawCircle(cx, cy, radius)
	dc.SetColor(theme.MustHex(th.PhotoFill))
	dc.Fill()

	dc.SetDash(12*scale, 8*scale)
	dc.SetLineWidth(4 * scale)
	dc.SetColor(theme.MustHex(th.PhotoBorder))
	dc.DrawCircle(cx, cy, radius)
	dc.Stroke()
	dc.SetDash()

	dc.SetFontFace(face)
	dc.SetColor(theme.MustHex(th.PhotoLabel))
	dc.DrawStringAnchored(pz.Label, cx, cy, 0.5, 0.5)
}

func exRunColor(th theme.Theme, role layout.Role) string {
	switch role {
	case layout.RoleName:
		return th.Heading
	case layout.RoleTitle:
		return th.Title
	default:
		return th.Caption
	}
}

// exAtomicWrite writes data to path via a temporary file and rename,
// ensuring readers never see a partial image.
func exAtomicWrite(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".banner-tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}

	success = true
	return nil
}
