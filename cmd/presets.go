package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/conneroisu/forge/internal/color"
	"github.com/conneroisu/forge/internal/theme"
)

var presetsCmd = &cobra.Command{
	Use:     "presets [category]",
	Aliases: []string{"p"},
	Short:   "List theme presets",
	Long: `List the presets of every category, or of one category
(color, radius, spacing, font). Color presets show a swatch of their
primary and secondary colors on capable terminals.

Examples:
  forge presets                  # Every preset
  forge presets radius           # Radius presets only
  forge presets color -o yaml    # As YAML`,
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCategories,
	RunE:              runPresets,
}

var presetsFlags *StandardFlags

func init() {
	rootCmd.AddCommand(presetsCmd)

	presetsFlags = AddStandardFlags(presetsCmd, "output")
}

func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	out := make([]string, 0, len(theme.Categories))
	for _, c := range theme.Categories {
		out = append(out, string(c))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func runPresets(cmd *cobra.Command, args []string) error {
	categories := theme.Categories
	if len(args) == 1 {
		c, err := theme.ParseCategory(args[0])
		if err != nil {
			return err
		}
		categories = []theme.Category{c}
	}

	var infos []theme.PresetInfo
	for _, c := range categories {
		list, err := theme.ListPresets(c)
		if err != nil {
			return err
		}
		infos = append(infos, list...)
	}

	if strings.ToLower(presetsFlags.OutputFormat) != "table" {
		return writeStructured(cmd.OutOrStdout(), presetsFlags.OutputFormat, infos)
	}

	markers := theme.DefaultMarkers()
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tID\tLABEL\tVALUES")
	for _, info := range infos {
		id := info.ID
		if isDefaultPreset(markers, info) {
			id += "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", info.Category, id, info.Label, presetValues(info))
	}
	return w.Flush()
}

func isDefaultPreset(m theme.Markers, info theme.PresetInfo) bool {
	switch info.Category {
	case theme.CategoryColor:
		return m.Color == info.ID
	case theme.CategoryRadius:
		return m.Radius == info.ID
	case theme.CategorySpacing:
		return m.Spacing == info.ID
	case theme.CategoryFont:
		return m.Font == info.ID
	}
	return false
}

// presetValues renders entries as key=value pairs, prefixed with swatches
// for colors.
func presetValues(info theme.PresetInfo) string {
	parts := make([]string, 0, len(info.Entries))
	var swatches strings.Builder
	for _, e := range info.Entries {
		if color.IsHex6(e.Value) {
			swatches.WriteString(swatch(e.Value))
		}
		parts = append(parts, e.Key+"="+e.Value)
	}
	values := strings.Join(parts, " ")
	if swatches.Len() > 0 {
		return swatches.String() + " " + values
	}
	return values
}

func swatch(hex string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}
