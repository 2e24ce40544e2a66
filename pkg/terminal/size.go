package terminal

import (
	"os"
	"strconv"
)

// Size is the terminal's dimensions in cells and, when the tty reports
// them, pixels.
type Size struct {
	Cols   int
	Rows   int
	PixelW int
	PixelH int
}

// CellPixels returns the pixel size of one cell, or zeros when unknown.
func (s Size) CellPixels() (w, h int) {
	if s.Cols > 0 && s.PixelW > 0 {
		w = s.PixelW / s.Cols
	}
	if s.Rows > 0 && s.PixelH > 0 {
		h = s.PixelH / s.Rows
	}
	return w, h
}

// GetSize queries stdout, then stderr, and falls back to COLUMNS/LINES
// and finally 80x24.
func GetSize() Size {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if s, ok := tmQuery(f.Fd()); ok {
			return s
		}
	}
	return Size{Cols: tmEnvInt("COLUMNS", 80), Rows: tmEnvInt("LINES", 24)}
}

// PreviewCols returns the preview width for a terminal cols wide: the
// terminal width less margin, clamped to [lo, hi]. A zero hi means no
// upper bound.
func PreviewCols(cols, margin, lo, hi int) int {
	w := cols - margin
	if hi > 0 && w > hi {
		w = hi
	}
	if w < lo {
		w = lo
	}
	return w
}

func tmEnvInt(name string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(name))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
