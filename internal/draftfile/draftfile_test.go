package draftfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/forge/internal/errors"
	"github.com/conneroisu/forge/internal/theme"
)

const yamlDraft = `presets:
  color: blue
  radius: pill
light:
  brandPrimary: "#111111"
dark:
  bgActive: "#11111180"
spacing:
  2xl: 60px
font: "Inter, sans-serif"
shadows: false
`

const tomlDraft = `font = "Inter, sans-serif"
shadows = false

[presets]
color = "blue"
radius = "pill"

[light]
brandPrimary = "#111111"

[dark]
bgActive = "#11111180"

[spacing]
"2xl" = "60px"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildFromYAMLAndTOML(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "theme.yml", yamlDraft},
		{"yaml long extension", "theme.yaml", yamlDraft},
		{"toml", "theme.toml", tomlDraft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			d, res, err := Build(context.Background(), path, nil)
			require.NoError(t, err)
			assert.Empty(t, res.Skipped)
			assert.Equal(t, 7, res.Applied)

			// The override wins over the preset in light mode only.
			assert.Equal(t, "#111111", d.Light.Value(theme.BrandPrimary))
			assert.Equal(t, "#3B82F6", d.Dark.Value(theme.BrandPrimary))
			assert.Equal(t, "#60A5FA", d.Light.Value(theme.BrandSecondary))
			assert.Equal(t, "#11111180", d.Dark.Value(theme.BgActive))
			assert.Equal(t, "#3B82F620", d.Light.Value(theme.BgActive))

			assert.Equal(t, "16px", d.Radius.Value(theme.RadiusMD))
			assert.Equal(t, "60px", d.Spacing.Value(theme.Spacing2XL))
			assert.Equal(t, "Inter, sans-serif", d.FontFamily)
			assert.False(t, d.ShadowsEnabled)

			assert.Equal(t, "blue", d.Markers.Color)
			assert.Equal(t, "pill", d.Markers.Radius)
			assert.Equal(t, "", d.Markers.Font)
		})
	}
}

func TestApplyUnknownPresetIsSkipped(t *testing.T) {
	f, err := Parse([]byte("presets:\n  color: blu\n  spacing: comfy\n"), FormatYAML)
	require.NoError(t, err)

	d := theme.NewDraft()
	res, err := Apply(context.Background(), d, f, nil)
	require.NoError(t, err)

	require.Len(t, res.Skipped, 2)
	assert.Equal(t, theme.CategoryColor, res.Skipped[0].Category)
	assert.Equal(t, "blu", res.Skipped[0].ID)
	assert.Contains(t, res.Skipped[0].Suggestions, "blue")
	assert.Equal(t, 0, res.Applied)
	assert.True(t, theme.Diff(d).Empty())
	assert.Equal(t, theme.DefaultMarkers(), d.Markers)
}

func TestParseEmptyFile(t *testing.T) {
	f, err := Parse(nil, FormatYAML)
	require.NoError(t, err)

	d := theme.NewDraft()
	_, err = Apply(context.Background(), d, f, nil)
	require.NoError(t, err)
	assert.Equal(t, theme.NewDraft(), d)
}

func TestValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bad hex", "light:\n  bgPrimary: \"#GGGGGG\"\n", "light[bgPrimary]"},
		{"short hex", "dark:\n  textMuted: \"#FFF\"\n", "dark[textMuted]"},
		{"alpha on opaque key", "light:\n  textPrimary: \"rgba(0, 0, 0, 0.5)\"\n", "light[textPrimary]"},
		{"rgba with trailing declaration", "dark:\n  shadowColor: \"rgba(0,0,0,0.5); background:url(x)\"\n", "dark[shadowColor]"},
		{"unknown color key", "light:\n  accent: \"#000000\"\n", "light[accent]"},
		{"unknown radius step", "radius:\n  xxl: 40px\n", "radius[xxl]"},
		{"blank spacing", "spacing:\n  md: \"\"\n", "spacing[md]"},
		{"bad preset id", "presets:\n  color: Blue!\n", "presets.color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content), FormatYAML)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))

			var fe *errors.ForgeError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, errors.ErrCodeValidationFailed, fe.Code)
			assert.Contains(t, fe.Context, tt.field)
		})
	}
}

func TestValidationCollectsEveryProblem(t *testing.T) {
	_, err := Parse([]byte("light:\n  bgPrimary: \"#XYZXYZ\"\n  textPrimary: \"nope\"\n"), FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "; ")
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("colour: blue\n"), FormatYAML)
	assert.Error(t, err)

	_, err = Parse([]byte("colour = \"blue\"\n"), FormatTOML)
	assert.Error(t, err)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
	var fe *errors.ForgeError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errors.ErrCodeFileNotFound, fe.Code)

	_, err = Load(writeFile(t, "theme.json", "{}"))
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, errors.ErrCodeUnsupportedSource, fe.Code)

	path := writeFile(t, "bad.yml", "light:\n  bgPrimary: \"#1\"\n")
	_, err = Load(path)
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, path, fe.FilePath)
}

func TestFormatFor(t *testing.T) {
	f, err := FormatFor("a/b/THEME.YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = FormatFor("theme.toml")
	require.NoError(t, err)
	assert.Equal(t, FormatTOML, f)
}
