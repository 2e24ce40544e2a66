package layout

// Reference canvas. Layout runs in reference pixels and emits coordinates
// normalized against these dimensions.
const (
	RefWidth  = 1500.0
	RefHeight = 500.0
	Aspect    = RefWidth / RefHeight
)

// Point is a normalized position: X is a fraction of canvas width, Y a
// fraction of canvas height.
type Point struct {
	X, Y float64
}

// Rect is a normalized rectangle. X and W are fractions of canvas width,
// Y and H fractions of canvas height.
type Rect struct {
	X, Y, W, H float64
}

// Right returns the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Scale maps r onto a surface of w by h units.
func (r Rect) Scale(w, h float64) (x, y, rw, rh float64) {
	return r.X * w, r.Y * h, r.W * w, r.H * h
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// SizeClass is a font size bucket. Renderers scale the reference pixel size
// by surfaceWidth / RefWidth.
type SizeClass int

const (
	SizeName SizeClass = iota
	SizeTitle
	SizeBody
	SizeCaption
	SizeStat
)

var sizePixels = [...]float64{
	SizeName:    72,
	SizeTitle:   32,
	SizeBody:    24,
	SizeCaption: 20,
	SizeStat:    22,
}

var sizeNames = [...]string{
	SizeName:    "name",
	SizeTitle:   "title",
	SizeBody:    "body",
	SizeCaption: "caption",
	SizeStat:    "stat",
}

// Pixels returns the font size on the reference canvas.
func (s SizeClass) Pixels() float64 {
	if s >= 0 && int(s) < len(sizePixels) {
		return sizePixels[s]
	}
	return sizePixels[SizeBody]
}

func (s SizeClass) String() string {
	if s >= 0 && int(s) < len(sizeNames) {
		return sizeNames[s]
	}
	return "unknown"
}

// Align is the horizontal alignment of a text run relative to its anchor.
type Align int

const (
	AlignLeft  Align = iota // anchor is the left edge
	AlignRight              // anchor is the right edge
)
