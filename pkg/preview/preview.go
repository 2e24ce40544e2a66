// Package preview draws a layout.Plan into a grid of terminal cells. The
// grid keeps the banner's 3:1 proportions at any terminal width, so the
// preview shows the same composition the raster export produces.
package preview

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"gitlab.com/tinyland/lab/profile-banner/pkg/layout"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// MinCols is the narrowest preview drawn; narrower requests are widened.
const MinCols = 24

// Rows returns the grid height that keeps cols wide cells at the banner
// aspect ratio.
func Rows(cols int) int {
	r := int(math.Round(float64(cols) / (layout.Aspect * CellAspect)))
	if r < 1 {
		r = 1
	}
	return r
}

// Render draws p with th at cols columns and returns styled text.
func Render(p layout.Plan, th theme.Theme, cols int) string {
	return Draw(p, th, cols).String()
}

// Draw draws p with th into a canvas cols columns wide.
func Draw(p layout.Plan, th theme.Theme, cols int) *Canvas {
	if cols < MinCols {
		cols = MinCols
	}
	rows := Rows(cols)
	c := pvNewCanvas(cols, rows)
	pvBackground(c, th)

	glyphs := p.Glyphs()
	gi := 0
	for _, e := range p.Elements {
		switch e := e.(type) {
		case layout.PhotoZone:
			pvPhoto(c, e, th)
		case layout.TextRun:
			fg := theme.MustHex(th.Heading)
			switch e.Role {
			case layout.RoleTitle:
				fg = theme.MustHex(th.Title)
			case layout.RoleCaption:
				fg = theme.MustHex(th.Caption)
			}
			y := pvRow(e.Anchor.Y, rows)
			x := pvCol(e.Anchor.X, cols)
			if e.Align == layout.AlignRight {
				x -= pvWidth(e.Content)
			}
			c.pvBlitOver(x, y, e.Content, fg, e.Role == layout.RoleName, cols)
		case layout.Badge:
			pvBadge(c, e, th)
		case layout.StatGlyph:
			x := pvCol(e.Anchor.X, cols)
			limit := cols
			if gi+1 < len(glyphs) {
				limit = pvCol(glyphs[gi+1].Anchor.X, cols) - 1
			}
			gi++
			text := runewidth.Truncate(e.Text(), limit-x, "…")
			c.pvBlitOver(x, pvRow(e.Anchor.Y, rows), text, theme.MustHex(th.Stat), false, limit)
		}
	}
	return c
}

// pvBackground samples the theme gradient along the canvas diagonal.
func pvBackground(c *Canvas, th theme.Theme) {
	w, h := layout.RefWidth, layout.RefHeight
	den := w*w + h*h
	for y := 0; y < c.rows; y++ {
		py := (float64(y) + 0.5) / float64(c.rows) * h
		for x := 0; x < c.cols; x++ {
			px := (float64(x) + 0.5) / float64(c.cols) * w
			t := (px*w + py*h) / den
			c.cells[y][x].bg = pvColor(th.At(t))
		}
	}
}

// pvPhoto fills the placeholder circle and dashes its outline.
func pvPhoto(c *Canvas, pz layout.PhotoZone, th theme.Theme) {
	cellW := layout.RefWidth / float64(c.cols)
	cellH := layout.RefHeight / float64(c.rows)
	cx, cy := pz.Center.X*layout.RefWidth, pz.Center.Y*layout.RefHeight
	radius := pz.Diameter * layout.RefWidth / 2
	if radius <= 0 {
		return
	}
	tol := math.Max(cellW, cellH) * 0.5 / radius

	fill := theme.MustHex(th.PhotoFill)
	border := theme.MustHex(th.PhotoBorder)
	for y := 0; y < c.rows; y++ {
		py := (float64(y) + 0.5) * cellH
		for x := 0; x < c.cols; x++ {
			px := (float64(x) + 0.5) * cellW
			d := math.Hypot(px-cx, py-cy) / radius
			switch {
			case math.Abs(d-1) <= tol:
				angle := math.Atan2(py-cy, px-cx)
				if int(math.Floor((angle+math.Pi)/(math.Pi/12)))%2 == 0 {
					c.cells[y][x].bg = pvBlend(c.cells[y][x].bg, border)
				}
			case d < 1:
				c.cells[y][x].bg = pvBlend(c.cells[y][x].bg, fill)
			}
		}
	}

	label := pz.Label
	if w := int(2 * radius / cellW * 0.9); pvWidth(label) > w {
		label = "Photo"
		if pvWidth(label) > w {
			return
		}
	}
	y := pvRow(pz.Center.Y, c.rows)
	x := pvCol(pz.Center.X, c.cols) - pvWidth(label)/2
	c.pvBlitOver(x, y, label, theme.MustHex(th.PhotoLabel), false, c.cols)
}

// pvBadge fills the cells covered by a badge and writes its label inside.
func pvBadge(c *Canvas, b layout.Badge, th theme.Theme) {
	x0 := pvCol(b.Box.X, c.cols)
	x1 := pvCol(b.Box.Right(), c.cols)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	textRow := pvRow(b.TextAnchor.Y, c.rows)

	fill := theme.MustHex(th.BadgeFill)
	for y := 0; y < c.rows; y++ {
		center := (float64(y) + 0.5) / float64(c.rows)
		if y != textRow && (center < b.Box.Y || center > b.Box.Bottom()) {
			continue
		}
		for x := max(x0, 0); x < min(x1, c.cols); x++ {
			c.cells[y][x].bg = pvBlend(c.cells[y][x].bg, fill)
		}
	}

	inner := x1 - x0 - 2
	if inner < 1 {
		inner = x1 - x0
	}
	label := runewidth.Truncate(b.Content, inner, "…")
	start := x0 + (x1-x0-pvWidth(label))/2
	c.pvBlitOver(start, textRow, label, theme.MustHex(th.BadgeText), false, x1)
}

// pvBlitOver writes text whose color may be translucent, blending each cell
// over the background already drawn there.
func (c *Canvas) pvBlitOver(x, y int, s string, fg color.NRGBA, bold bool, limit int) {
	if y < 0 || y >= c.rows {
		return
	}
	end := c.pvBlit(x, y, s, colorful.Color{}, bold, limit)
	for i := max(x, 0); i < min(end, c.cols); i++ {
		cl := &c.cells[y][i]
		if cl.hasFg && !cl.cont {
			cl.fg = pvBlend(cl.bg, fg)
		}
	}
}

func pvBlend(base colorful.Color, top color.NRGBA) colorful.Color {
	alpha := float64(top.A) / 255
	return base.BlendRgb(pvColor(top), alpha).Clamped()
}

func pvColor(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func pvCol(fx float64, cols int) int {
	return int(math.Round(fx * float64(cols)))
}

func pvRow(fy float64, rows int) int {
	r := int(fy * float64(rows))
	if r >= rows {
		r = rows - 1
	}
	if r < 0 {
		r = 0
	}
	return r
}
