package theme

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/conneroisu/forge/internal/color"
)

// MinContrast is the WCAG AA ratio for body text.
const MinContrast = 4.5

// ContrastCheck is one foreground/background pair of one mode.
type ContrastCheck struct {
	Mode       Mode     `json:"mode" yaml:"mode"`
	Foreground ColorKey `json:"foreground" yaml:"foreground"`
	Background ColorKey `json:"background" yaml:"background"`
	Ratio      float64  `json:"ratio" yaml:"ratio"`
	Passes     bool     `json:"passes" yaml:"passes"`
	Skipped    bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// contrastPairs are checked against bgPrimary in every mode.
var contrastPairs = []ColorKey{TextPrimary, TextSecondary, TextMuted, BrandPrimary}

// Contrast checks readable pairs in both modes. Pairs involving a
// translucent value are reported as skipped.
func Contrast(d *Draft) []ContrastCheck {
	var checks []ContrastCheck
	for _, mode := range Modes {
		set, _ := d.Colors(mode)
		bg := set.Value(BgPrimary)
		for _, fg := range contrastPairs {
			check := ContrastCheck{Mode: mode, Foreground: fg, Background: BgPrimary}
			ratio, ok := ContrastRatio(set.Value(fg), bg)
			if !ok {
				check.Skipped = true
			} else {
				check.Ratio = ratio
				check.Passes = ratio >= MinContrast
			}
			checks = append(checks, check)
		}
	}
	return checks
}

// ContrastRatio returns the WCAG contrast ratio of two #RRGGBB colors,
// rounded to two decimals.
func ContrastRatio(fg, bg string) (float64, bool) {
	if !color.IsHex6(fg) || !color.IsHex6(bg) {
		return 0, false
	}
	a, err := colorful.Hex(fg)
	if err != nil {
		return 0, false
	}
	b, err := colorful.Hex(bg)
	if err != nil {
		return 0, false
	}

	la, lb := luminance(a), luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	ratio := (la + 0.05) / (lb + 0.05)
	return math.Round(ratio*100) / 100, true
}

func luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}
