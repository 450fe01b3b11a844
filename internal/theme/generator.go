package theme

import (
	"github.com/conneroisu/forge/internal/errors"
)

// Changes is the difference between a draft and the defaults.
type Changes struct {
	Light   []ColorKey   `json:"light"`
	Dark    []ColorKey   `json:"dark"`
	Radius  []RadiusKey  `json:"radius"`
	Spacing []SpacingKey `json:"spacing"`
	Font    bool         `json:"font"`
	Shadows bool         `json:"shadows"`
}

// Diff compares d against the defaults. Colors, scales and the font compare as
// exact strings. Shadows count as changed only when disabled.
func Diff(d *Draft) Changes {
	return Changes{
		Light:   d.Light.Changed(DefaultColors(ModeLight)),
		Dark:    d.Dark.Changed(DefaultColors(ModeDark)),
		Radius:  d.Radius.Changed(DefaultRadius()),
		Spacing: d.Spacing.Changed(DefaultSpacing()),
		Font:    d.FontFamily != DefaultFontFamily,
		Shadows: !d.ShadowsEnabled,
	}
}

// TokensChanged reports whether anything other than shadows differs.
func (c Changes) TokensChanged() bool {
	return len(c.Light) > 0 || len(c.Dark) > 0 ||
		len(c.Radius) > 0 || len(c.Spacing) > 0 || c.Font
}

// Empty reports whether the draft equals the defaults.
func (c Changes) Empty() bool {
	return !c.TokensChanged() && !c.Shadows
}

// Count is the number of changed values, shadows included.
func (c Changes) Count() int {
	n := len(c.Light) + len(c.Dark) + len(c.Radius) + len(c.Spacing)
	if c.Font {
		n++
	}
	if c.Shadows {
		n++
	}
	return n
}

// Format selects the snippet language.
type Format string

const (
	FormatJSX Format = "jsx"
	FormatCSS Format = "css"
)

// Formats lists the supported snippet formats.
var Formats = []Format{FormatJSX, FormatCSS}

// ParseFormat validates a format name. Empty means jsx.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSX:
		return FormatJSX, nil
	case FormatCSS:
		return FormatCSS, nil
	default:
		return "", errors.ErrUnknownFormat(s)
	}
}

// Render produces the snippet for d in the requested format.
func Render(d *Draft, format Format) (string, error) {
	switch format {
	case "", FormatJSX:
		return Generate(d), nil
	case FormatCSS:
		return GenerateCSS(d), nil
	default:
		return "", errors.ErrUnknownFormat(string(format))
	}
}

// Provider names used in the generated application skeleton.
const (
	ProviderName    = "ForgeProvider"
	ProviderPackage = "@forge-ui/react"
)

// globalEntries lists radius, spacing and font overrides in that order.
func globalEntries(d *Draft, c Changes) []Entry {
	var entries []Entry
	for _, k := range c.Radius {
		entries = append(entries, Entry{Key: "radius" + capitalize(string(k)), Value: d.Radius.Value(k)})
	}
	for _, k := range c.Spacing {
		entries = append(entries, Entry{Key: "spacing" + capitalize(string(k)), Value: d.Spacing.Value(k)})
	}
	if c.Font {
		entries = append(entries, Entry{Key: "fontFamily", Value: d.FontFamily})
	}
	return entries
}

func colorEntries(set ColorSet, keys []ColorKey) []Entry {
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: string(k), Value: set.Value(k)})
	}
	return entries
}

// Generate renders the provider-wrapped application skeleton carrying only
// the values that differ from the defaults.
func Generate(d *Draft) string {
	c := Diff(d)

	var s snippet
	s.line(0, "import { "+ProviderName+" } from '"+ProviderPackage+"'")
	s.blank()
	s.line(0, "export default function App() {")
	s.line(1, "return (")

	switch {
	case c.Empty():
		s.line(2, "<"+ProviderName+">")
	case !c.TokensChanged():
		s.line(2, "<"+ProviderName+" shadows={false}>")
	default:
		s.line(2, "<"+ProviderName)
		if c.Shadows {
			s.line(3, "shadows={false}")
		}
		s.line(3, "theme={{")
		s.entries(4, globalEntries(d, c))
		s.block(4, string(ModeLight), colorEntries(d.Light, c.Light))
		s.block(4, string(ModeDark), colorEntries(d.Dark, c.Dark))
		s.line(3, "}}")
		s.line(2, ">")
	}

	s.line(3, "{/* your app */}")
	s.line(2, "</"+ProviderName+">")
	s.line(1, ")")
	s.line(0, "}")

	return s.String()
}
