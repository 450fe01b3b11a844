package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conneroisu/forge/internal/config"
	"github.com/conneroisu/forge/internal/theme"
)

var themeContrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Check text contrast of a theme",
	Long: fmt.Sprintf(`Check the contrast of text and brand colors against bgPrimary in
both modes. Pairs below %.1f:1 fail; translucent values are skipped.

Examples:
  forge theme contrast                         # Check the defaults
  forge theme contrast --draft theme.yml -o json
  forge theme contrast --color-preset teal --strict`, theme.MinContrast),
	RunE: runThemeContrast,
}

var (
	contrastDraft  draftOptions
	contrastFlags  *StandardFlags
	contrastStrict bool
)

func init() {
	themeCmd.AddCommand(themeContrastCmd)

	contrastFlags = AddStandardFlags(themeContrastCmd, "output")
	addDraftOptionFlags(themeContrastCmd, &contrastDraft)
	themeContrastCmd.Flags().BoolVar(&contrastStrict, "strict", false, "Fail when any pair is below the minimum")
}

func runThemeContrast(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	d, err := contrastDraft.build(cmd.Context(), cfg.Log.Logger(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	checks := theme.Contrast(d)

	switch strings.ToLower(contrastFlags.OutputFormat) {
	case "table":
		outputContrastTable(cmd, checks)
	default:
		if err := writeStructured(cmd.OutOrStdout(), contrastFlags.OutputFormat, checks); err != nil {
			return err
		}
	}

	if contrastStrict {
		if failed := failedChecks(checks); failed > 0 {
			return fmt.Errorf("%d contrast checks below %.1f:1", failed, theme.MinContrast)
		}
	}
	return nil
}

func outputContrastTable(cmd *cobra.Command, checks []theme.ContrastCheck) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tFOREGROUND\tBACKGROUND\tRATIO\tRESULT")
	for _, c := range checks {
		ratio, result := fmt.Sprintf("%.2f:1", c.Ratio), "pass"
		switch {
		case c.Skipped:
			ratio, result = "-", "skipped"
		case !c.Passes:
			result = "FAIL"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Mode, c.Foreground, c.Background, ratio, result)
	}
	w.Flush()
}

func failedChecks(checks []theme.ContrastCheck) int {
	n := 0
	for _, c := range checks {
		if !c.Skipped && !c.Passes {
			n++
		}
	}
	return n
}
