package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// cell is one terminal character position.
type cell struct {
	ch    string // grapheme drawn here; "" on the right half of a wide rune
	wide  bool
	cont  bool // right half of a wide rune
	fg    colorful.Color
	bg    colorful.Color
	bold  bool
	hasFg bool
}

// Canvas is a cols x rows grid of styled cells.
type Canvas struct {
	cols, rows int
	cells      [][]cell
}

func pvNewCanvas(cols, rows int) *Canvas {
	c := &Canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for y := range c.cells {
		row := make([]cell, cols)
		for x := range row {
			row[x].ch = " "
		}
		c.cells[y] = row
	}
	return c
}

// Size returns the grid dimensions in cells.
func (c *Canvas) Size() (cols, rows int) {
	return c.cols, c.rows
}

// Background returns the background color of the cell at (x, y).
func (c *Canvas) Background(x, y int) colorful.Color {
	return c.cells[y][x].bg
}

// Foreground returns the foreground color of the cell at (x, y) and whether
// one is set.
func (c *Canvas) Foreground(x, y int) (colorful.Color, bool) {
	cl := c.cells[y][x]
	return cl.fg, cl.hasFg
}

// Plain returns the grid as unstyled text, one string per row.
func (c *Canvas) Plain() []string {
	out := make([]string, c.rows)
	var b strings.Builder
	for y, row := range c.cells {
		b.Reset()
		for _, cl := range row {
			if cl.cont {
				continue
			}
			b.WriteString(cl.ch)
		}
		out[y] = b.String()
	}
	return out
}

// String renders the grid with the default lipgloss renderer.
func (c *Canvas) String() string {
	return c.StringWith(lipgloss.DefaultRenderer())
}

// StringWith renders the grid using r, which decides the color profile.
// Adjacent cells of one style are emitted as a single styled run.
func (c *Canvas) StringWith(r *lipgloss.Renderer) string {
	var out strings.Builder
	var run strings.Builder
	for y, row := range c.cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		start := 0
		flush := func(end int) {
			if run.Len() == 0 {
				return
			}
			out.WriteString(pvStyle(r, row[start]).Render(run.String()))
			run.Reset()
			start = end
		}
		for x, cl := range row {
			if cl.cont {
				continue
			}
			if run.Len() > 0 && !pvSameStyle(row[start], cl) {
				flush(x)
			}
			if run.Len() == 0 {
				start = x
			}
			run.WriteString(cl.ch)
		}
		flush(len(row))
	}
	return out.String()
}

func pvStyle(r *lipgloss.Renderer, cl cell) lipgloss.Style {
	st := r.NewStyle().Background(lipgloss.Color(cl.bg.Hex()))
	if cl.hasFg {
		st = st.Foreground(lipgloss.Color(cl.fg.Hex()))
	}
	if cl.bold {
		st = st.Bold(true)
	}
	return st
}

func pvSameStyle(a, b cell) bool {
	return a.bg.Hex() == b.bg.Hex() && a.hasFg == b.hasFg && a.bold == b.bold &&
		(!a.hasFg || a.fg.Hex() == b.fg.Hex())
}

// pvBlit writes s starting at column x of row y in fg. Runes beyond limit
// (exclusive) or the canvas edge are dropped, as are columns left of 0.
// It returns the column after the last written cell.
func (c *Canvas) pvBlit(x, y int, s string, fg colorful.Color, bold bool, limit int) int {
	if y < 0 || y >= c.rows {
		return x
	}
	if limit > c.cols {
		limit = c.cols
	}
	row := c.cells[y]
	last := -1
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			// Combining marks and variation selectors join the previous cell.
			if last >= 0 {
				row[last].ch += string(r)
			}
			continue
		}
		if x+w > limit {
			break
		}
		if x >= 0 {
			c.pvClear(y, x)
			if w == 2 {
				c.pvClear(y, x+1)
			}
			row[x].ch = string(r)
			row[x].wide = w == 2
			row[x].fg, row[x].hasFg, row[x].bold = fg, true, bold
			if w == 2 {
				row[x+1] = cell{cont: true, bg: row[x+1].bg}
			}
			last = x
		}
		x += w
	}
	return x
}

// pvClear resets the cell at (y, x) to a space, splitting any wide rune it
// is part of.
func (c *Canvas) pvClear(y, x int) {
	row := c.cells[y]
	if row[x].cont && x > 0 {
		row[x-1].ch, row[x-1].wide = " ", false
	}
	if row[x].wide && x+1 < c.cols {
		row[x+1].ch, row[x+1].cont = " ", false
	}
	row[x].ch, row[x].wide, row[x].cont = " ", false, false
}

// pvWidth is the cell width of s as pvBlit lays it out.
func pvWidth(s string) int {
	return runewidth.StringWidth(s)
}
