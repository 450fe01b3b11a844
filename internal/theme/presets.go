package theme

import (
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/conneroisu/forge/internal/errors"
)

// Category groups presets by the part of the draft they write.
type Category string

const (
	CategoryColor   Category = "color"
	CategoryRadius  Category = "radius"
	CategorySpacing Category = "spacing"
	CategoryFont    Category = "font"
)

// Categories lists every preset category.
var Categories = []Category{CategoryColor, CategoryRadius, CategorySpacing, CategoryFont}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", errors.ErrUnknownCategory(s)
}

// ColorPreset is a brand color pair.
type ColorPreset struct {
	ID        string
	Primary   string
	Secondary string
}

// RadiusPreset is a full radius scale.
type RadiusPreset struct {
	ID     string
	Values map[RadiusKey]string
}

// SpacingPreset is a full spacing scale.
type SpacingPreset struct {
	ID     string
	Values map[SpacingKey]string
}

// FontPreset is a font stack.
type FontPreset struct {
	ID     string
	Family string
}

// ColorPresets in display order.
var ColorPresets = []ColorPreset{
	{ID: "purple", Primary: defaultPrimary, Secondary: defaultSecondary},
	{ID: "blue", Primary: "#3B82F6", Secondary: "#60A5FA"},
	{ID: "green", Primary: "#10B981", Secondary: "#34D399"},
	{ID: "orange", Primary: "#F97316", Secondary: "#FB923C"},
	{ID: "pink", Primary: "#EC4899", Secondary: "#F472B6"},
	{ID: "red", Primary: "#EF4444", Secondary: "#F87171"},
	{ID: "teal", Primary: "#14B8A6", Secondary: "#2DD4BF"},
	{ID: "indigo", Primary: "#6366F1", Secondary: "#818CF8"},
}

// RadiusPresets in display order.
var RadiusPresets = []RadiusPreset{
	{ID: "sharp", Values: map[RadiusKey]string{
		RadiusXS: "0px", RadiusSM: "0px", RadiusMD: "0px", RadiusLG: "0px", RadiusXL: "0px", RadiusFull: "0px",
	}},
	{ID: "subtle", Values: map[RadiusKey]string{
		RadiusXS: "1px", RadiusSM: "2px", RadiusMD: "4px", RadiusLG: "6px", RadiusXL: "8px", RadiusFull: "9999px",
	}},
	{ID: "rounded", Values: defaultRadius},
	{ID: "pill", Values: map[RadiusKey]string{
		RadiusXS: "4px", RadiusSM: "8px", RadiusMD: "16px", RadiusLG: "24px", RadiusXL: "32px", RadiusFull: "9999px",
	}},
}

// SpacingPresets in display order.
var SpacingPresets = []SpacingPreset{
	{ID: "compact", Values: map[SpacingKey]string{
		SpacingXS: "2px", SpacingSM: "4px", SpacingMD: "8px", SpacingLG: "12px", SpacingXL: "16px", Spacing2XL: "24px",
	}},
	{ID: "comfortable", Values: defaultSpacing},
	{ID: "spacious", Values: map[SpacingKey]string{
		SpacingXS: "6px", SpacingSM: "12px", SpacingMD: "24px", SpacingLG: "32px", SpacingXL: "48px", Spacing2XL: "64px",
	}},
}

// FontPresets in display order.
var FontPresets = []FontPreset{
	{ID: "system", Family: DefaultFontFamily},
	{ID: "inter", Family: "'Inter', sans-serif"},
	{ID: "mono", Family: "'JetBrains Mono', 'Fira Code', monospace"},
	{ID: "serif", Family: "Georgia, 'Times New Roman', serif"},
}

// Initial preset ids, matching the defaults.
const (
	DefaultColorPreset   = "purple"
	DefaultRadiusPreset  = "rounded"
	DefaultSpacingPreset = "comfortable"
	DefaultFontPreset    = "system"
)

// FindColorPreset looks id up in ColorPresets.
func FindColorPreset(id string) (ColorPreset, bool) {
	for _, p := range ColorPresets {
		if p.ID == id {
			return p, true
		}
	}
	return ColorPreset{}, false
}

// FindRadiusPreset looks id up in RadiusPresets.
func FindRadiusPreset(id string) (RadiusPreset, bool) {
	for _, p := range RadiusPresets {
		if p.ID == id {
			return p, true
		}
	}
	return RadiusPreset{}, false
}

// FindSpacingPreset looks id up in SpacingPresets.
func FindSpacingPreset(id string) (SpacingPreset, bool) {
	for _, p := range SpacingPresets {
		if p.ID == id {
			return p, true
		}
	}
	return SpacingPreset{}, false
}

// FindFontPreset looks id up in FontPresets.
func FindFontPreset(id string) (FontPreset, bool) {
	for _, p := range FontPresets {
		if p.ID == id {
			return p, true
		}
	}
	return FontPreset{}, false
}

// Entry is one named value of a preset, in display order.
type Entry struct {
	Key   string `json:"key" yaml:"key"`
	Value string `json:"value" yaml:"value"`
}

// PresetInfo describes a preset for listings.
type PresetInfo struct {
	Category Category `json:"category" yaml:"category"`
	ID       string   `json:"id" yaml:"id"`
	Label    string   `json:"label" yaml:"label"`
	Entries  []Entry  `json:"entries" yaml:"entries"`
}

var titleCaser = cases.Title(language.English)

// ListPresets describes every preset of a category in table order.
func ListPresets(category Category) ([]PresetInfo, error) {
	var out []PresetInfo
	add := func(id string, entries []Entry) {
		out = append(out, PresetInfo{
			Category: category,
			ID:       id,
			Label:    titleCaser.String(id),
			Entries:  entries,
		})
	}

	switch category {
	case CategoryColor:
		for _, p := range ColorPresets {
			add(p.ID, []Entry{{"primary", p.Primary}, {"secondary", p.Secondary}})
		}
	case CategoryRadius:
		for _, p := range RadiusPresets {
			add(p.ID, scaleEntries(RadiusKeys, p.Values))
		}
	case CategorySpacing:
		for _, p := range SpacingPresets {
			add(p.ID, scaleEntries(SpacingKeys, p.Values))
		}
	case CategoryFont:
		for _, p := range FontPresets {
			add(p.ID, []Entry{{"family", p.Family}})
		}
	default:
		return nil, errors.ErrUnknownCategory(string(category))
	}
	return out, nil
}

func scaleEntries[K ~string](keys []K, values map[K]string) []Entry {
	entries := make([]Entry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry{Key: string(k), Value: values[k]})
	}
	return entries
}

// PresetIDs lists the ids of a category in table order.
func PresetIDs(category Category) []string {
	infos, err := ListPresets(category)
	if err != nil {
		return nil
	}
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}

// SuggestPresets returns the ids of category that fuzzily match id, best
// match first. Applying an unknown id is a no-op; this only explains it.
func SuggestPresets(category Category, id string) []string {
	if id == "" {
		return nil
	}
	matches := fuzzy.Find(id, PresetIDs(category))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return out
}
