// Package inline shows an exported banner directly in the terminal. It
// hands Kitty, iTerm2 and sixel output to go-termimg and draws half-block
// cells itself for terminals with only 24-bit color.
package inline

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"

	"gitlab.com/tinyland/lab/profile-banner/pkg/terminal"
)

// ErrDisabled is returned when the selected protocol is ProtocolNone.
var ErrDisabled = errors.New("inline: image display disabled")

// Default cell pixel size when the tty does not report one.
const (
	defaultCellW = 8
	defaultCellH = 16
)

// Renderer turns images into terminal escape output.
type Renderer struct {
	protocol terminal.Protocol
	cellW    int
	cellH    int
}

// New returns a renderer for protocol p in a terminal of the given size.
func New(p terminal.Protocol, size terminal.Size) *Renderer {
	w, h := size.CellPixels()
	if w <= 0 {
		w = defaultCellW
	}
	if h <= 0 {
		h = defaultCellH
	}
	return &Renderer{protocol: p, cellW: w, cellH: h}
}

// Protocol returns the protocol r draws with.
func (r *Renderer) Protocol() terminal.Protocol {
	return r.protocol
}

// Rows returns how many cell rows an image of the given pixel size
// occupies at cols columns.
func (r *Renderer) Rows(imgW, imgH, cols int) int {
	if imgW <= 0 || imgH <= 0 || cols <= 0 {
		return 1
	}
	px := float64(cols*r.cellW) * float64(imgH) / float64(imgW)
	return max(1, int(math.Ceil(px/float64(r.cellH))))
}

// Render draws img cols cells wide, keeping its aspect ratio.
func (r *Renderer) Render(img image.Image, cols int) (string, error) {
	if img == nil {
		return "", errors.New("inline: nil image")
	}
	if cols <= 0 {
		return "", fmt.Errorf("inline: invalid width %d", cols)
	}
	b := img.Bounds()
	rows := r.Rows(b.Dx(), b.Dy(), cols)

	switch r.protocol {
	case terminal.ProtocolNone:
		return "", ErrDisabled
	case terminal.ProtocolKitty:
		return inTermimg(img, termimg.Kitty, cols, rows)
	case terminal.ProtocolITerm2:
		return inTermimg(img, termimg.ITerm2, cols, rows)
	case terminal.ProtocolSixel:
		return inTermimg(img, termimg.Sixel, cols, rows)
	default:
		return Halfblocks(Fit(img, cols, rows*2)), nil
	}
}

// RenderFile decodes the image at path and renders it.
func (r *Renderer) RenderFile(path string, cols int) (string, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return "", fmt.Errorf("inline: open %s: %w", path, err)
	}
	return r.Render(img, cols)
}

// Fit scales img to fit within w x h pixels, preserving aspect ratio. A
// smaller image is returned at its own size.
func Fit(img image.Image, w, h int) image.Image {
	return imaging.Fit(img, max(w, 1), max(h, 1), imaging.Lanczos)
}

// Halfblocks encodes img with one "▀" per pair of pixel rows: the upper
// pixel is the foreground, the lower one the background.
func Halfblocks(img image.Image) string {
	src := imaging.Clone(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if w == 0 || h == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(w * (h/2 + 1) * 40)
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteString("\x1b[0m\n")
		}
		for x := 0; x < w; x++ {
			top := src.NRGBAAt(x, y)
			if y+1 >= h {
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[49m▀", top.R, top.G, top.B)
				continue
			}
			bot := src.NRGBAAt(x, y+1)
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
	}
	sb.WriteString("\x1b[0m")
	return sb.String()
}

func inTermimg(img image.Image, p termimg.Protocol, cols, rows int) (string, error) {
	ti := termimg.New(img)
	if ti == nil {
		return "", errors.New("inline: go-termimg rejected image")
	}
	out, err := ti.Protocol(p).Size(cols, rows).Scale(termimg.ScaleFit).Render()
	if err != nil {
		return "", fmt.Errorf("inline: %v: %w", p, err)
	}
	return out, nil
}
