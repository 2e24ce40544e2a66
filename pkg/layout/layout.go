// Package layout turns a banner state into a Plan: a flat list of drawable
// elements in normalized canvas coordinates. The interactive preview and the
// raster export both draw from the same Plan, so the two always agree on
// what goes where.
//
// The composition mirrors a 1500x500 reference canvas:
//   - a circular photo placeholder on the left
//   - a right-aligned column ending 80px from the right edge holding the
//     display name, the title, rows of skill badges and, optionally, a
//     caption and a row of stat glyphs
//
// Rows never shift to compensate for missing content: an empty skill list
// still reserves its row, and the stats block only ever adds below it.
package layout

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/profile-banner/pkg/banner"
	"gitlab.com/tinyland/lab/profile-banner/pkg/stats"
	"gitlab.com/tinyland/lab/profile-banner/pkg/theme"
)

// Reference metrics, in pixels on the reference canvas.
const (
	RightMargin    = 80.0
	MaxContentFrac = 0.55 // badge rows wrap beyond this share of the width

	NameBaseline  = 180.0
	TitleBaseline = 250.0
	BadgeBaseline = 310.0
	CaptionGap    = 70.0 // last badge baseline to caption baseline
	StatRowGap    = 35.0 // caption baseline to stat row baseline
	StatGap       = 40.0

	PhotoMarginFrac   = 0.03
	PhotoDiameterFrac = 0.13

	PhotoLabel = "Profile photo"
)

// Plan is the renderer-independent description of a banner.
type Plan struct {
	Aspect   float64
	Elements []Element
}

// Build computes the plan for s. record may be nil. Build is pure: the same
// inputs always produce an identical plan.
func Build(s banner.State, record *stats.Record, geo theme.Geometry, m Measurer) Plan {
	right := RefWidth - RightMargin
	p := Plan{Aspect: Aspect}

	p.Elements = append(p.Elements, PhotoZone{
		Center:   Point{X: PhotoMarginFrac + PhotoDiameterFrac/2, Y: 0.5},
		Diameter: PhotoDiameterFrac,
		Label:    PhotoLabel,
	})

	p.Elements = append(p.Elements,
		lyText(RoleName, s.DisplayName, SizeName, right, NameBaseline, m),
		lyText(RoleTitle, s.Title, SizeTitle, right, TitleBaseline, m),
	)

	badges, rows := lyPackBadges(s.Skills, geo, right, m)
	for _, b := range badges {
		p.Elements = append(p.Elements, b)
	}

	if !s.StatsEnabled || record == nil || len(s.SelectedStats) == 0 {
		return p
	}

	lastBadge := BadgeBaseline + float64(rows-1)*geo.RowPitch
	captionY := lastBadge + CaptionGap
	p.Elements = append(p.Elements,
		lyText(RoleCaption, "Stats for "+s.GitHubUsername, SizeCaption, right, captionY, m))

	statY := captionY + StatRowGap
	glyphs := make([]StatGlyph, 0, len(s.SelectedStats))
	total := 0.0
	for _, k := range s.SelectedStats {
		d := stats.Describe(k)
		g := StatGlyph{
			Kind:  k,
			Icon:  d.Icon,
			Value: stats.Format(k, record.Value(k)),
			Label: strings.ToLower(d.Label),
			Size:  SizeStat,
		}
		g.Width = m.Measure(g.Text(), SizeStat)
		total += g.Width
		glyphs = append(glyphs, g)
	}
	total += StatGap * float64(len(glyphs)-1)

	x := right - total
	for _, g := range glyphs {
		w := g.Width
		g.Anchor = Point{X: x / RefWidth, Y: statY / RefHeight}
		g.Width = w / RefWidth
		p.Elements = append(p.Elements, g)
		x += w + StatGap
	}
	return p
}

// lyText builds a right-aligned text run anchored at (right, baseline).
func lyText(role Role, content string, class SizeClass, right, baseline float64, m Measurer) TextRun {
	return TextRun{
		Role:    role,
		Content: content,
		Anchor:  Point{X: right / RefWidth, Y: baseline / RefHeight},
		Align:   AlignRight,
		Size:    class,
		Width:   m.Measure(content, class) / RefWidth,
	}
}

// lyPackBadges packs skills left to right into rows no wider than
// MaxContentFrac of the canvas and right-justifies each row at right. It
// returns the badges in reading order and the number of rows, which is at
// least one even with no skills.
func lyPackBadges(skills []string, geo theme.Geometry, right float64, m Measurer) ([]Badge, int) {
	if len(skills) == 0 {
		return nil, 1
	}
	limit := RefWidth * MaxContentFrac

	type item struct {
		text  string
		width float64
	}
	var rows [][]item
	var rowW []float64
	for _, sk := range skills {
		w := m.Measure(sk, SizeBody) + 2*geo.BadgePadding
		n := len(rows)
		if n > 0 && rowW[n-1]+geo.BadgeGap+w <= limit {
			rows[n-1] = append(rows[n-1], item{sk, w})
			rowW[n-1] += geo.BadgeGap + w
			continue
		}
		rows = append(rows, []item{{sk, w}})
		rowW = append(rowW, w)
	}

	badges := make([]Badge, 0, len(skills))
	for r, row := range rows {
		baseline := BadgeBaseline + float64(r)*geo.RowPitch
		top := baseline - geo.BadgeAscent
		x := right - rowW[r]
		for _, it := range row {
			badges = append(badges, Badge{
				Content: it.text,
				Box: Rect{
					X: x / RefWidth,
					Y: top / RefHeight,
					W: it.width / RefWidth,
					H: geo.BadgeHeight / RefHeight,
				},
				CornerRadius: geo.BadgeRadius / RefHeight,
				TextAnchor:   Point{X: (x + geo.BadgePadding) / RefWidth, Y: baseline / RefHeight},
				Size:         SizeBody,
				Row:          r,
			})
			x += it.width + geo.BadgeGap
		}
	}
	return badges, len(rows)
}

// Badges returns the badge elements in reading order.
func (p Plan) Badges() []Badge {
	var out []Badge
	for _, e := range p.Elements {
		if b, ok := e.(Badge); ok {
			out = append(out, b)
		}
	}
	return out
}

// Glyphs returns the stat glyphs in display order.
func (p Plan) Glyphs() []StatGlyph {
	var out []StatGlyph
	for _, e := range p.Elements {
		if g, ok := e.(StatGlyph); ok {
			out = append(out, g)
		}
	}
	return out
}

// Text returns the text run with the given role, if present.
func (p Plan) Text(role Role) (TextRun, bool) {
	for _, e := range p.Elements {
		if t, ok := e.(TextRun); ok && t.Role == role {
			return t, true
		}
	}
	return TextRun{}, false
}

// Hash returns a stable digest of the plan. Equal plans hash equally.
func (p Plan) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "aspect=%v\n", p.Aspect)
	for _, e := range p.Elements {
		fmt.Fprintf(h, "%T%+v\n", e, e)
	}
	return hex.EncodeToString(h.Sum(nil))
}
