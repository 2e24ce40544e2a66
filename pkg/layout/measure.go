package layout

import "unicode/utf8"

// Measurer reports the advance width of text set in a size class, in
// reference pixels. Implementations must be deterministic.
type Measurer interface {
	Measure(text string, class SizeClass) float64
}

// FixedMeasurer treats every rune as Advance em wide. It is used by tests
// and by callers that lay out without loading fonts.
type FixedMeasurer struct {
	Advance float64
}

// Measure implements Measurer.
func (f FixedMeasurer) Measure(text string, class SizeClass) float64 {
	adv := f.Advance
	if adv <= 0 {
		adv = 0.5
	}
	return float64(utf8.RuneCountInString(text)) * adv * class.Pixels()
}
