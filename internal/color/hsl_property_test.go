//go:build property
// +build property

package color

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func withinChannels(a, b string, tolerance int) bool {
	ar, ag, ab, ok1 := RGB(a)
	br, bg, bb, ok2 := RGB(b)
	if !ok1 || !ok2 {
		return false
	}
	return abs(int(ar)-int(br)) <= tolerance &&
		abs(int(ag)-int(bg)) <= tolerance &&
		abs(int(ab)-int(bb)) <= tolerance
}

// TestColorConversionProperties checks the converter over generated colors
func TestColorConversionProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 1000
	properties := gopter.NewProperties(parameters)

	hexGen := gen.SliceOfN(3, gen.IntRange(0, 255)).Map(func(c []int) string {
		return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
	})

	// Property: the precise path reproduces the input within one unit per channel
	properties.Property("precise round trip", prop.ForAll(
		func(hex string) bool {
			c, ok := ToHSL(hex)
			return ok && withinChannels(hex, FromHSL(c), 1)
		},
		hexGen,
	))

	// Property: the picker path stays inside the rounding bound
	properties.Property("picker round trip", prop.ForAll(
		func(hex string) bool {
			c := HexToHSL(hex)
			return withinChannels(hex, HSLToHex(c.H, c.S, c.L), 6)
		},
		hexGen,
	))

	// Property: HSL output is always in range
	properties.Property("hsl ranges", prop.ForAll(
		func(hex string) bool {
			c := HexToHSL(hex)
			return c.H >= 0 && c.H <= 360 && c.S >= 0 && c.S <= 100 && c.L >= 0 && c.L <= 100
		},
		hexGen,
	))

	// Property: every generated hex is lowercase #rrggbb
	properties.Property("hex shape", prop.ForAll(
		func(h, s, l int) bool {
			out := HSLToHex(h, s, l)
			return IsHex6(out) && out == strings.ToLower(out)
		},
		gen.IntRange(0, 360),
		gen.IntRange(0, 100),
		gen.IntRange(0, 100),
	))

	// Property: malformed input never panics and yields the fallback
	properties.Property("fallback", prop.ForAll(
		func(s string) bool {
			if IsHex6(s) {
				return true
			}
			return HexToHSL(s) == Fallback
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
