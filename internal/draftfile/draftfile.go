// Package draftfile reads theme drafts from YAML or TOML files. A draft file
// names presets and lists token overrides; it is input only and is never
// written back.
package draftfile

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/logging"
	"github.com/conneroisu/forge/internal/theme"
)

// Format is the encoding of a draft file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedSource,
			"draft files must end in .yml, .yaml or .toml").WithFile(path)
	}
}

// Presets selects one preset per category. Empty fields leave the category
// alone.
type Presets struct {
	Color   string `yaml:"color" toml:"color" validate:"omitempty,preset_id"`
	Radius  string `yaml:"radius" toml:"radius" validate:"omitempty,preset_id"`
	Spacing string `yaml:"spacing" toml:"spacing" validate:"omitempty,preset_id"`
	Font    string `yaml:"font" toml:"font" validate:"omitempty,preset_id"`
}

// File is the decoded content of a draft file.
type File struct {
	Presets Presets           `yaml:"presets" toml:"presets"`
	Light   map[string]string `yaml:"light" toml:"light" validate:"omitempty,dive,keys,color_key,endkeys,theme_color"`
	Dark    map[string]string `yaml:"dark" toml:"dark" validate:"omitempty,dive,keys,color_key,endkeys,theme_color"`
	Radius  map[string]string `yaml:"radius" toml:"radius" validate:"omitempty,dive,keys,radius_key,endkeys,required"`
	Spacing map[string]string `yaml:"spacing" toml:"spacing" validate:"omitempty,dive,keys,spacing_key,endkeys,required"`
	Font    string            `yaml:"font" toml:"font"`
	Shadows *bool             `yaml:"shadows" toml:"shadows"`
}

func (f *File) colors(mode theme.Mode) map[string]string {
	if mode == theme.ModeDark {
		return f.Dark
	}
	return f.Light
}

// Parse decodes and validates data. Unknown fields are rejected.
func Parse(data []byte, format Format) (*File, error) {
	var f File

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.NewValidationError(errors.ErrCodeValidationFailed, "invalid YAML: "+err.Error())
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, errors.NewValidationError(errors.ErrCodeValidationFailed, "invalid TOML: "+err.Error())
		}
	default:
		return nil, errors.NewValidationError(errors.ErrCodeUnsupportedSource, "unsupported draft format: "+string(format))
	}

	if err := Validate(&f); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads, decodes and validates the draft file at path.
func Load(path string) (*File, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodeFileNotFound, "cannot read draft file", err).WithFile(path)
	}

	f, err := Parse(data, format)
	if err != nil {
		if fe, ok := errors.AsForgeError(err); ok {
			return nil, fe.WithFile(path)
		}
		return nil, err
	}
	return f, nil
}

// SkippedPreset is a preset id that matched nothing.
type SkippedPreset struct {
	Category    theme.Category `json:"category"`
	ID          string         `json:"id"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// Result summarises what Apply did.
type Result struct {
	Applied int             `json:"applied"`
	Skipped []SkippedPreset `json:"skipped,omitempty"`
}

// Apply writes f into d through the draft's named operations. Presets go
// first in category order, then overrides, so a file can pick a preset and
// adjust single tokens on top of it. Unknown preset ids are no-ops and are
// reported in the result.
func Apply(ctx context.Context, d *theme.Draft, f *File, logger logging.Logger) (Result, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	var res Result

	presets := []struct {
		category theme.Category
		id       string
	}{
		{theme.CategoryColor, f.Presets.Color},
		{theme.CategoryRadius, f.Presets.Radius},
		{theme.CategorySpacing, f.Presets.Spacing},
		{theme.CategoryFont, f.Presets.Font},
	}
	for _, p := range presets {
		if p.id == "" {
			continue
		}
		applied, err := d.ApplyPreset(p.category, p.id)
		if err != nil {
			return res, err
		}
		if !applied {
			skipped := SkippedPreset{
				Category:    p.category,
				ID:          p.id,
				Suggestions: theme.SuggestPresets(p.category, p.id),
			}
			logger.Warn(ctx, nil, "Unknown preset ignored",
				"category", p.category,
				"id", p.id,
				"suggestions", skipped.Suggestions)
			res.Skipped = append(res.Skipped, skipped)
			continue
		}
		res.Applied++
	}

	if f.Font != "" {
		d.SetCustomFont(f.Font)
		res.Applied++
	}

	for _, mode := range theme.Modes {
		values := f.colors(mode)
		for _, key := range theme.ColorKeys {
			value, ok := values[string(key)]
			if !ok {
				continue
			}
			applied, err := d.UpdateColor(mode, key, value)
			if err != nil {
				return res, err
			}
			if !applied {
				return res, errors.ErrInvalidColor(string(key), value)
			}
			res.Applied++
		}
	}

	for _, key := range theme.RadiusKeys {
		if value, ok := f.Radius[string(key)]; ok {
			if applied, err := d.UpdateRadius(key, value); err != nil {
				return res, err
			} else if applied {
				res.Applied++
			}
		}
	}

	for _, key := range theme.SpacingKeys {
		if value, ok := f.Spacing[string(key)]; ok {
			if applied, err := d.UpdateSpacing(key, value); err != nil {
				return res, err
			} else if applied {
				res.Applied++
			}
		}
	}

	if f.Shadows != nil {
		d.SetShadows(*f.Shadows)
		res.Applied++
	}

	logger.Debug(ctx, "Draft file applied", "applied", res.Applied, "skipped", len(res.Skipped))
	return res, nil
}

// Build loads path into a fresh draft.
func Build(ctx context.Context, path string, logger logging.Logger) (*theme.Draft, Result, error) {
	f, err := Load(path)
	if err != nil {
		return nil, Result{}, err
	}
	d := theme.NewDraft()
	res, err := Apply(ctx, d, f, logger)
	if err != nil {
		return nil, res, err
	}
	return d, res, nil
}
