package theme

import (
	"strings"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/errors"
)

// Markers remember which preset of each category is highlighted. They are
// display state only and may go stale after manual edits.
type Markers struct {
	Color   string `json:"color" yaml:"color"`
	Radius  string `json:"radius" yaml:"radius"`
	Spacing string `json:"spacing" yaml:"spacing"`
	Font    string `json:"font" yaml:"font"`
}

// DefaultMarkers returns the initial preset selection.
func DefaultMarkers() Markers {
	return Markers{
		Color:   DefaultColorPreset,
		Radius:  DefaultRadiusPreset,
		Spacing: DefaultSpacingPreset,
		Font:    DefaultFontPreset,
	}
}

// Draft is the theme being edited. It starts from the defaults and changes
// only through its named operations, so generation stays a pure function of
// its value.
type Draft struct {
	Light          ColorSet   `json:"light"`
	Dark           ColorSet   `json:"dark"`
	Radius         RadiusSet  `json:"radius"`
	Spacing        SpacingSet `json:"spacing"`
	FontFamily     string     `json:"fontFamily"`
	ShadowsEnabled bool       `json:"shadowsEnabled"`
	Markers        Markers    `json:"markers"`
}

// NewDraft returns a draft holding the defaults.
func NewDraft() *Draft {
	return &Draft{
		Light:          DefaultColors(ModeLight),
		Dark:           DefaultColors(ModeDark),
		Radius:         DefaultRadius(),
		Spacing:        DefaultSpacing(),
		FontFamily:     DefaultFontFamily,
		ShadowsEnabled: DefaultShadowsEnabled,
		Markers:        DefaultMarkers(),
	}
}

// Reset restores every bundle and every marker to the defaults in one step.
func (d *Draft) Reset() {
	*d = *NewDraft()
}

// Clone returns an independent copy of the draft.
func (d *Draft) Clone() *Draft {
	return &Draft{
		Light:          d.Light.Clone(),
		Dark:           d.Dark.Clone(),
		Radius:         d.Radius.Clone(),
		Spacing:        d.Spacing.Clone(),
		FontFamily:     d.FontFamily,
		ShadowsEnabled: d.ShadowsEnabled,
		Markers:        d.Markers,
	}
}

// Colors returns the color set for mode.
func (d *Draft) Colors(mode Mode) (ColorSet, error) {
	switch mode {
	case ModeLight:
		return d.Light, nil
	case ModeDark:
		return d.Dark, nil
	default:
		return ColorSet{}, errors.ErrUnknownMode(string(mode))
	}
}

func (d *Draft) colorSet(mode Mode) (*ColorSet, error) {
	switch mode {
	case ModeLight:
		return &d.Light, nil
	case ModeDark:
		return &d.Dark, nil
	default:
		return nil, errors.ErrUnknownMode(string(mode))
	}
}

// ApplyColorPreset writes the preset's brand pair into both modes and derives
// bgActive from the primary color. Unknown ids change nothing and return false.
func (d *Draft) ApplyColorPreset(id string) bool {
	p, ok := FindColorPreset(id)
	if !ok {
		return false
	}
	for _, set := range []*ColorSet{&d.Light, &d.Dark} {
		set.values[BrandPrimary] = p.Primary
		set.values[BrandSecondary] = p.Secondary
		set.values[ActiveColor] = p.Primary
		set.values[BgActive] = p.Primary + AlphaSuffix
	}
	d.Markers.Color = p.ID
	return true
}

// ApplyRadiusPreset overwrites the whole radius set.
func (d *Draft) ApplyRadiusPreset(id string) bool {
	p, ok := FindRadiusPreset(id)
	if !ok {
		return false
	}
	d.Radius = NewRadiusSet(p.Values)
	d.Markers.Radius = p.ID
	return true
}

// ApplySpacingPreset overwrites the whole spacing set.
func (d *Draft) ApplySpacingPreset(id string) bool {
	p, ok := FindSpacingPreset(id)
	if !ok {
		return false
	}
	d.Spacing = NewSpacingSet(p.Values)
	d.Markers.Spacing = p.ID
	return true
}

// ApplyFontPreset overwrites the font family.
func (d *Draft) ApplyFontPreset(id string) bool {
	p, ok := FindFontPreset(id)
	if !ok {
		return false
	}
	d.FontFamily = p.Family
	d.Markers.Font = p.ID
	return true
}

// ApplyPreset dispatches on category. Only an unknown category is an error.
func (d *Draft) ApplyPreset(category Category, id string) (bool, error) {
	switch category {
	case CategoryColor:
		return d.ApplyColorPreset(id), nil
	case CategoryRadius:
		return d.ApplyRadiusPreset(id), nil
	case CategorySpacing:
		return d.ApplySpacingPreset(id), nil
	case CategoryFont:
		return d.ApplyFontPreset(id), nil
	default:
		return false, errors.ErrUnknownCategory(string(category))
	}
}

// SetCustomFont sets a user-typed font stack and clears the font marker.
func (d *Draft) SetCustomFont(family string) {
	d.FontFamily = family
	d.Markers.Font = ""
}

// AcceptsColor reports whether value may be stored under key: #RRGGBB for
// every key, alpha forms only for the translucent keys.
func AcceptsColor(key ColorKey, value string) bool {
	if color.IsHex6(value) {
		return true
	}
	return alphaKeys[key] && color.IsAlpha(value)
}

// IsAlphaKey reports whether key holds a translucent value. Those keys are
// never edited through the HSL picker, whatever their current value.
func IsAlphaKey(key ColorKey) bool {
	return alphaKeys[key]
}

// PickerFor builds the picker state of one token.
func PickerFor(key ColorKey, value string) color.Picker {
	if alphaKeys[key] {
		return color.Picker{Enabled: false, Value: value, HSL: color.Fallback}
	}
	return color.NewPicker(value)
}

// UpdateColor sets one color of one mode. A malformed value is ignored and
// reported as false; an unknown mode or key is an error.
func (d *Draft) UpdateColor(mode Mode, key ColorKey, value string) (bool, error) {
	set, err := d.colorSet(mode)
	if err != nil {
		return false, err
	}
	if !set.Has(key) {
		return false, errors.ErrUnknownToken(string(key))
	}
	if !AcceptsColor(key, value) {
		return false, nil
	}
	return true, set.set(key, value)
}

// UpdateRadius sets one radius step. Blank values are ignored.
func (d *Draft) UpdateRadius(key RadiusKey, value string) (bool, error) {
	if !d.Radius.Has(key) {
		return false, errors.ErrUnknownToken(string(key))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	return true, d.Radius.set(key, value)
}

// UpdateSpacing sets one spacing step. Blank values are ignored.
func (d *Draft) UpdateSpacing(key SpacingKey, value string) (bool, error) {
	if !d.Spacing.Has(key) {
		return false, errors.ErrUnknownToken(string(key))
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return false, nil
	}
	return true, d.Spacing.set(key, value)
}

// SetShadows toggles provider shadows.
func (d *Draft) SetShadows(enabled bool) {
	d.ShadowsEnabled = enabled
}
