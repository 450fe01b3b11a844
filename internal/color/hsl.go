// Package color converts between 6-digit hex RGB strings and HSL triples for
// the theme creator's slider picker.
//
// The integer API (HexToHSL, HSLToHex) is what the picker exchanges with its
// sliders. HSL values are rounded to whole degrees and percents, so a hex value
// pushed through both functions lands close to, but not always on, the input.
// The float API (ToHSL, FromHSL) keeps full precision and round-trips exactly.
package color

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// hex6Pattern matches #RRGGBB, case-insensitive, one capture group per channel.
var hex6Pattern = regexp.MustCompile(`^#([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// Alpha forms. Each is anchored so nothing can follow the closing paren.
var (
	hex8Pattern = regexp.MustCompile(`^#[0-9a-fA-F]{8}$`)
	rgbaPattern = regexp.MustCompile(`(?i)^rgba\(\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*\d{1,3}\s*,\s*(0|1|0?\.\d+)\s*\)$`)
	hslaPattern = regexp.MustCompile(`(?i)^hsla\(\s*\d{1,3}\s*,\s*\d{1,3}%\s*,\s*\d{1,3}%\s*,\s*(0|1|0?\.\d+)\s*\)$`)
)

// Fallback is returned by HexToHSL for input that is not #RRGGBB.
var Fallback = HSL{H: 0, S: 0, L: 50}

// HSL is an integer hue (0-360), saturation (0-100) and lightness (0-100).
type HSL struct {
	H int `json:"h" yaml:"h"`
	S int `json:"s" yaml:"s"`
	L int `json:"l" yaml:"l"`
}

// String renders the triple the way CSS spells it.
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// HSLf is an unrounded HSL triple in the same units as HSL.
type HSLf struct {
	H, S, L float64
}

// Round converts to the integer picker representation.
func (c HSLf) Round() HSL {
	return HSL{
		H: int(math.Round(c.H)),
		S: int(math.Round(c.S)),
		L: int(math.Round(c.L)),
	}
}

// IsHex6 reports whether s is a #RRGGBB color.
func IsHex6(s string) bool {
	return hex6Pattern.MatchString(s)
}

// IsAlpha reports whether s is a complete translucent color: #RRGGBBAA,
// rgba(r, g, b, a) or hsla(h, s%, l%, a). Such values are not editable
// through the HSL picker.
func IsAlpha(s string) bool {
	return hex8Pattern.MatchString(s) || rgbaPattern.MatchString(s) || hslaPattern.MatchString(s)
}

// RGB extracts the three channels of a #RRGGBB color.
func RGB(hex string) (r, g, b uint8, ok bool) {
	m := hex6Pattern.FindStringSubmatch(hex)
	if m == nil {
		return 0, 0, 0, false
	}
	channels := [3]uint8{}
	for i := range channels {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = uint8(v)
	}
	return channels[0], channels[1], channels[2], true
}

// ToHSL converts a #RRGGBB color to unrounded HSL.
func ToHSL(hex string) (HSLf, bool) {
	r8, g8, b8, ok := RGB(hex)
	if !ok {
		return HSLf{}, false
	}

	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	l := (maxC + minC) / 2

	var h, s float64
	if maxC != minC {
		d := maxC - minC
		if l > 0.5 {
			s = d / (2 - maxC - minC)
		} else {
			s = d / (maxC + minC)
		}

		switch maxC {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = (b-r)/d + 2
		default:
			h = (r-g)/d + 4
		}
		h /= 6
	}

	return HSLf{H: h * 360, S: s * 100, L: l * 100}, true
}

// HexToHSL converts a #RRGGBB color to the picker's integer HSL. Anything else
// yields Fallback; the input usually comes from a text box mid-keystroke.
func HexToHSL(hex string) HSL {
	c, ok := ToHSL(hex)
	if !ok {
		return Fallback
	}
	return c.Round()
}

// FromHSL converts unrounded HSL to a lowercase #rrggbb string.
func FromHSL(c HSLf) string {
	l := c.L / 100
	a := c.S * math.Min(l, 1-l) / 100

	channel := func(n float64) string {
		k := math.Mod(n+c.H/30, 12)
		if k < 0 {
			k += 12
		}
		v := l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
		return fmt.Sprintf("%02x", clampByte(math.Round(255*v)))
	}

	return "#" + channel(0) + channel(8) + channel(4)
}

// HSLToHex converts integer HSL to a lowercase #rrggbb string.
func HSLToHex(h, s, l int) string {
	return FromHSL(HSLf{H: float64(h), S: float64(s), L: float64(l)})
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}
