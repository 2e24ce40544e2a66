package layout

import "gitlab.com/tinyland/lab/profile-banner/pkg/stats"

// Element is one drawable item of a Plan. The set of variants is closed:
// PhotoZone, TextRun, Badge and StatGlyph.
type Element interface {
	element()
}

// Role distinguishes the text runs of a banner.
type Role int

const (
	RoleName Role = iota
	RoleTitle
	RoleCaption
)

func (r Role) String() string {
	switch r {
	case RoleName:
		return "name"
	case RoleTitle:
		return "title"
	case RoleCaption:
		return "caption"
	default:
		return "unknown"
	}
}

// PhotoZone is the circular profile photo placeholder on the left.
type PhotoZone struct {
	Center   Point
	Diameter float64 // fraction of canvas width
	Label    string
}

// TextRun is a single line of text anchored at its baseline.
type TextRun struct {
	Role    Role
	Content string
	Anchor  Point
	Align   Align
	Size    SizeClass
	Width   float64 // measured width, fraction of canvas width
}

// Left returns the left edge of the run.
func (t TextRun) Left() float64 {
	if t.Align == AlignRight {
		return t.Anchor.X - t.Width
	}
	return t.Anchor.X
}

// Badge is a rounded, filled skill label.
type Badge struct {
	Content      string
	Box          Rect
	CornerRadius float64 // fraction of canvas height
	TextAnchor   Point   // left baseline of the label
	Size         SizeClass
	Row          int
}

// StatGlyph is one "{icon} {value} {label}" unit of the stats row.
type StatGlyph struct {
	Kind   stats.Kind
	Icon   string
	Value  string
	Label  string
	Anchor Point // left baseline
	Size   SizeClass
	Width  float64 // fraction of canvas width
}

// Text returns the glyph as drawn.
func (g StatGlyph) Text() string {
	return g.Icon + " " + g.Value + " " + g.Label
}

func (PhotoZone) element() {}
func (TextRun) element()   {}
func (Badge) element()     {}
func (StatGlyph) element() {}
