package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/forge/internal/draftfile"
	"github.com/conneroisu/forge/internal/logging"
	"github.com/conneroisu/forge/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:     "theme",
	Aliases: []string{"t"},
	Short:   "Generate and check theme configurations",
	Long: `Generate provider snippets and contrast reports without the theme
creator. A theme starts from the defaults, or from a draft file, and is
adjusted with preset and token flags.`,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

// draftOptions describe a draft on the command line.
type draftOptions struct {
	File          string
	ColorPreset   string
	RadiusPreset  string
	SpacingPreset string
	FontPreset    string
	Font          string
	NoShadows     bool
}

func addDraftFileFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVarP(target, "draft", "d", "", "Draft file to start from (.yml, .yaml or .toml)")
	AddFlagValidation(cmd, "draft", ValidateFileExists)
}

func addDraftOptionFlags(cmd *cobra.Command, o *draftOptions) {
	addDraftFileFlag(cmd, &o.File)
	cmd.Flags().StringVar(&o.ColorPreset, "color-preset", "", "Color preset ("+strings.Join(theme.PresetIDs(theme.CategoryColor), ", ")+")")
	cmd.Flags().StringVar(&o.RadiusPreset, "radius-preset", "", "Radius preset ("+strings.Join(theme.PresetIDs(theme.CategoryRadius), ", ")+")")
	cmd.Flags().StringVar(&o.SpacingPreset, "spacing-preset", "", "Spacing preset ("+strings.Join(theme.PresetIDs(theme.CategorySpacing), ", ")+")")
	cmd.Flags().StringVar(&o.FontPreset, "font-preset", "", "Font preset ("+strings.Join(theme.PresetIDs(theme.CategoryFont), ", ")+")")
	cmd.Flags().StringVar(&o.Font, "font", "", "Custom font stack, overrides --font-preset")
	cmd.Flags().BoolVar(&o.NoShadows, "no-shadows", false, "Disable provider shadows")
}

// build loads the draft file, if any, then applies the flags on top of it.
// Unknown preset ids leave the draft unchanged and are reported on warn.
func (o draftOptions) build(ctx context.Context, logger logging.Logger, warn io.Writer) (*theme.Draft, error) {
	d := theme.NewDraft()
	if o.File != "" {
		loaded, _, err := draftfile.Build(ctx, o.File, logger)
		if err != nil {
			return nil, err
		}
		d = loaded
	}

	presets := []struct {
		category theme.Category
		id       string
	}{
		{theme.CategoryColor, o.ColorPreset},
		{theme.CategoryRadius, o.RadiusPreset},
		{theme.CategorySpacing, o.SpacingPreset},
		{theme.CategoryFont, o.FontPreset},
	}
	for _, p := range presets {
		if p.id == "" {
			continue
		}
		applied, err := d.ApplyPreset(p.category, p.id)
		if err != nil {
			return nil, err
		}
		if !applied {
			fmt.Fprintf(warn, "Warning: unknown %s preset %q, ignored", p.category, p.id)
			if suggestions := theme.SuggestPresets(p.category, p.id); len(suggestions) > 0 {
				fmt.Fprintf(warn, " (did you mean %s?)", strings.Join(suggestions, ", "))
			}
			fmt.Fprintln(warn)
		}
	}

	if font := strings.TrimSpace(o.Font); font != "" {
		d.SetCustomFont(font)
	}
	if o.NoShadows {
		d.SetShadows(false)
	}

	return d, nil
}
