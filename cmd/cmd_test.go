package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/forge/internal/theme"
)

// execute runs the root command with args after resetting flag state left
// over from earlier runs.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	generateDraft = draftOptions{}
	generateFormat = ""
	generateCopy = false
	contrastDraft = draftOptions{}
	contrastStrict = false
	contrastFlags.OutputFormat = "table"
	presetsFlags.OutputFormat = "table"
	versionFormat = "text"
	versionShort = false
	versionDetailed = false

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestThemeGenerateDefaults(t *testing.T) {
	out, _, err := execute(t, "theme", "generate")
	require.NoError(t, err)
	assert.Equal(t, theme.Generate(theme.NewDraft()), out)
}

func TestThemeGenerateWithFlags(t *testing.T) {
	out, _, err := execute(t, "theme", "generate",
		"--color-preset", "blue",
		"--radius-preset", "pill",
		"--font", "Inter, sans-serif",
		"--no-shadows")
	require.NoError(t, err)

	d := theme.NewDraft()
	d.ApplyColorPreset("blue")
	d.ApplyRadiusPreset("pill")
	d.SetCustomFont("Inter, sans-serif")
	d.SetShadows(false)
	assert.Equal(t, theme.Generate(d), out)
	assert.Contains(t, out, "      shadows={false}\n")
	assert.Contains(t, out, `radiusMd: "16px",`)
}

func TestThemeGenerateUnknownPreset(t *testing.T) {
	out, stderr, err := execute(t, "theme", "generate", "--color-preset", "blu")
	require.NoError(t, err)
	assert.Equal(t, theme.Generate(theme.NewDraft()), out)
	assert.Contains(t, stderr, `unknown color preset "blu"`)
	assert.Contains(t, stderr, "did you mean blue")
}

func TestThemeGenerateCSS(t *testing.T) {
	out, _, err := execute(t, "theme", "generate", "--format", "css", "--radius-preset", "sharp")
	require.NoError(t, err)
	assert.Contains(t, out, ":root {\n  --forge-radius-xs: 0px;\n")

	_, _, err = execute(t, "theme", "generate", "--format", "scss")
	require.Error(t, err)
}

func TestThemeGenerateFromDraft(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.toml")
	require.NoError(t, os.WriteFile(path, []byte("shadows = false\n\n[presets]\nspacing = \"compact\"\n"), 0o644))

	out, _, err := execute(t, "theme", "generate", "--draft", path, "--spacing-preset", "spacious")
	require.NoError(t, err)
	assert.Contains(t, out, `spacingMd: "24px",`)
	assert.Contains(t, out, "shadows={false}")

	_, _, err = execute(t, "theme", "generate", "--draft", filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}

func TestThemeGenerateCopy(t *testing.T) {
	var mu sync.Mutex
	var copied []string
	old := clipboardWriter
	t.Cleanup(func() { clipboardWriter = old })

	clipboardWriter = func(text string) error {
		mu.Lock()
		defer mu.Unlock()
		copied = append(copied, text)
		return nil
	}

	out, stderr, err := execute(t, "theme", "generate", "--copy", "--no-shadows")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Copied to clipboard")
	mu.Lock()
	assert.Equal(t, []string{out}, copied)
	mu.Unlock()

	clipboardWriter = func(string) error { return fmt.Errorf("no display") }
	_, stderr, err = execute(t, "theme", "generate", "--copy")
	require.NoError(t, err)
	assert.Contains(t, stderr, "snippet not copied")
}

func TestThemeContrast(t *testing.T) {
	out, _, err := execute(t, "theme", "contrast", "-o", "json")
	require.NoError(t, err)

	var checks []theme.ContrastCheck
	require.NoError(t, json.Unmarshal([]byte(out), &checks))
	assert.Len(t, checks, 8)

	out, _, err = execute(t, "theme", "contrast")
	require.NoError(t, err)
	assert.Contains(t, out, "MODE")
	assert.Contains(t, out, "textPrimary")

	_, _, err = execute(t, "theme", "contrast", "--strict")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "contrast checks below 4.5:1")
}

func TestPresets(t *testing.T) {
	out, _, err := execute(t, "presets", "radius")
	require.NoError(t, err)
	assert.Contains(t, out, "rounded*")
	assert.Contains(t, out, "sharp")
	assert.NotContains(t, out, "purple")

	out, _, err = execute(t, "presets", "color", "-o", "yaml")
	require.NoError(t, err)
	var infos []theme.PresetInfo
	require.NoError(t, yaml.Unmarshal([]byte(out), &infos))
	require.Len(t, infos, len(theme.ColorPresets))
	assert.Equal(t, "Purple", infos[0].Label)

	_, _, err = execute(t, "presets", "motion")
	require.Error(t, err)

	_, _, err = execute(t, "presets", "-o", "xml")
	require.Error(t, err)
}

func TestColorCommands(t *testing.T) {
	out, _, err := execute(t, "color", "hsl", "#3B82F6")
	require.NoError(t, err)
	assert.Equal(t, "hsl(217, 91%, 60%)\n", out)

	out, stderr, err := execute(t, "color", "hsl", "#3B8")
	require.NoError(t, err)
	assert.Equal(t, "hsl(0, 0%, 50%)\n", out)
	assert.Contains(t, stderr, "neutral fallback")

	out, _, err = execute(t, "color", "hex", "0", "0", "50")
	require.NoError(t, err)
	assert.Equal(t, "#808080\n", out)

	_, _, err = execute(t, "color", "hex", "red", "0", "50")
	require.Error(t, err)
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "forge ")

	out, _, err = execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var info map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Contains(t, info, "go_version")

	_, _, err = execute(t, "version", "--format", "xml")
	require.Error(t, err)
}

func TestFlagValidators(t *testing.T) {
	assert.NoError(t, ValidatePort("7331"))
	assert.Error(t, ValidatePort("0"))
	assert.Error(t, ValidatePort("http"))

	assert.NoError(t, ValidateFileExists(""))
	assert.Error(t, ValidateFileExists(filepath.Join(t.TempDir(), "nope.yml")))

	assert.NoError(t, ValidateFormatWithSuggestion("JSON", outputFormats))
	err := ValidateFormatWithSuggestion("jsn", outputFormats)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "json"?`)
}
