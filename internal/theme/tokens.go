package theme

import "github.com/conneroisu/forge/internal/errors"

// Mode selects the light or dark color set.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists both color modes in the order the generator emits them.
var Modes = []Mode{ModeLight, ModeDark}

// ParseMode validates a mode name.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLight, ModeDark:
		return Mode(s), nil
	default:
		return "", errors.ErrUnknownMode(s)
	}
}

// ColorKey names one of the 18 color tokens.
type ColorKey string

const (
	BrandPrimary    ColorKey = "brandPrimary"
	BrandSecondary  ColorKey = "brandSecondary"
	ActiveColor     ColorKey = "activeColor"
	BgPrimary       ColorKey = "bgPrimary"
	BgSecondary     ColorKey = "bgSecondary"
	BgTertiary      ColorKey = "bgTertiary"
	BgHover         ColorKey = "bgHover"
	BgActive        ColorKey = "bgActive"
	TextPrimary     ColorKey = "textPrimary"
	TextSecondary   ColorKey = "textSecondary"
	TextMuted       ColorKey = "textMuted"
	BorderPrimary   ColorKey = "borderPrimary"
	BorderSecondary ColorKey = "borderSecondary"
	SuccessColor    ColorKey = "success"
	WarningColor    ColorKey = "warning"
	ErrorColor      ColorKey = "error"
	InfoColor       ColorKey = "info"
	ShadowColor     ColorKey = "shadowColor"
)

// ColorKeys is the canonical declaration order of the color tokens.
var ColorKeys = []ColorKey{
	BrandPrimary, BrandSecondary, ActiveColor,
	BgPrimary, BgSecondary, BgTertiary, BgHover, BgActive,
	TextPrimary, TextSecondary, TextMuted,
	BorderPrimary, BorderSecondary,
	SuccessColor, WarningColor, ErrorColor, InfoColor,
	ShadowColor,
}

// alphaKeys hold translucent values and accept alpha forms on update.
var alphaKeys = map[ColorKey]bool{
	BgActive:    true,
	ShadowColor: true,
}

// RadiusKey names a corner radius step.
type RadiusKey string

const (
	RadiusXS   RadiusKey = "xs"
	RadiusSM   RadiusKey = "sm"
	RadiusMD   RadiusKey = "md"
	RadiusLG   RadiusKey = "lg"
	RadiusXL   RadiusKey = "xl"
	RadiusFull RadiusKey = "full"
)

// RadiusKeys is the canonical declaration order of the radius tokens.
var RadiusKeys = []RadiusKey{RadiusXS, RadiusSM, RadiusMD, RadiusLG, RadiusXL, RadiusFull}

// SpacingKey names a spacing step.
type SpacingKey string

const (
	SpacingXS  SpacingKey = "xs"
	SpacingSM  SpacingKey = "sm"
	SpacingMD  SpacingKey = "md"
	SpacingLG  SpacingKey = "lg"
	SpacingXL  SpacingKey = "xl"
	Spacing2XL SpacingKey = "2xl"
)

// SpacingKeys is the canonical declaration order of the spacing tokens.
var SpacingKeys = []SpacingKey{SpacingXS, SpacingSM, SpacingMD, SpacingLG, SpacingXL, Spacing2XL}

type (
	ColorSet   = Bundle[ColorKey]
	RadiusSet  = Bundle[RadiusKey]
	SpacingSet = Bundle[SpacingKey]
)

// AlphaSuffix is appended to the primary brand color to derive bgActive.
const AlphaSuffix = "20"

// NewColorSet builds a color set over ColorKeys. Missing keys are empty.
func NewColorSet(values map[ColorKey]string) ColorSet {
	return newBundle(ColorKeys, values)
}

// NewRadiusSet builds a radius set over RadiusKeys.
func NewRadiusSet(values map[RadiusKey]string) RadiusSet {
	return newBundle(RadiusKeys, values)
}

// NewSpacingSet builds a spacing set over SpacingKeys.
func NewSpacingSet(values map[SpacingKey]string) SpacingSet {
	return newBundle(SpacingKeys, values)
}

const (
	defaultPrimary   = "#8B5CF6"
	defaultSecondary = "#A78BFA"
)

var defaultLightColors = map[ColorKey]string{
	BrandPrimary:    defaultPrimary,
	BrandSecondary:  defaultSecondary,
	ActiveColor:     defaultPrimary,
	BgPrimary:       "#FFFFFF",
	BgSecondary:     "#F9FAFB",
	BgTertiary:      "#F3F4F6",
	BgHover:         "#E5E7EB",
	BgActive:        defaultPrimary + AlphaSuffix,
	TextPrimary:     "#111827",
	TextSecondary:   "#4B5563",
	TextMuted:       "#9CA3AF",
	BorderPrimary:   "#E5E7EB",
	BorderSecondary: "#D1D5DB",
	SuccessColor:    "#10B981",
	WarningColor:    "#F59E0B",
	ErrorColor:      "#EF4444",
	InfoColor:       "#3B82F6",
	ShadowColor:     "rgba(0, 0, 0, 0.1)",
}

var defaultDarkColors = map[ColorKey]string{
	BrandPrimary:    defaultPrimary,
	BrandSecondary:  defaultSecondary,
	ActiveColor:     defaultPrimary,
	BgPrimary:       "#0A0A0A",
	BgSecondary:     "#171717",
	BgTertiary:      "#262626",
	BgHover:         "#404040",
	BgActive:        defaultPrimary + AlphaSuffix,
	TextPrimary:     "#FAFAFA",
	TextSecondary:   "#A3A3A3",
	TextMuted:       "#737373",
	BorderPrimary:   "#262626",
	BorderSecondary: "#404040",
	SuccessColor:    "#34D399",
	WarningColor:    "#FBBF24",
	ErrorColor:      "#F87171",
	InfoColor:       "#60A5FA",
	ShadowColor:     "rgba(0, 0, 0, 0.5)",
}

var defaultRadius = map[RadiusKey]string{
	RadiusXS:   "2px",
	RadiusSM:   "4px",
	RadiusMD:   "8px",
	RadiusLG:   "12px",
	RadiusXL:   "16px",
	RadiusFull: "9999px",
}

var defaultSpacing = map[SpacingKey]string{
	SpacingXS:  "4px",
	SpacingSM:  "8px",
	SpacingMD:  "16px",
	SpacingLG:  "24px",
	SpacingXL:  "32px",
	Spacing2XL: "48px",
}

// DefaultFontFamily is the system font stack.
const DefaultFontFamily = "-apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif"

// DefaultShadowsEnabled is the provider default for shadows.
const DefaultShadowsEnabled = true

// DefaultColors returns a fresh copy of the default color set for mode.
func DefaultColors(mode Mode) ColorSet {
	if mode == ModeDark {
		return NewColorSet(defaultDarkColors)
	}
	return NewColorSet(defaultLightColors)
}

// DefaultRadius returns a fresh copy of the default radius set.
func DefaultRadius() RadiusSet {
	return NewRadiusSet(defaultRadius)
}

// DefaultSpacing returns a fresh copy of the default spacing set.
func DefaultSpacing() SpacingSet {
	return NewSpacingSet(defaultSpacing)
}
