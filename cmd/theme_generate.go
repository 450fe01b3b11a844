package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/forge/internal/clipboard"
	"github.com/conneroisu/forge/internal/config"
	"github.com/conneroisu/forge/internal/theme"
)

var themeGenerateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"g", "gen"},
	Short:   "Print the provider snippet for a theme",
	Long: `Print the provider snippet for a theme. Only values that differ from
the defaults appear in the output.

Examples:
  forge theme generate                               # The default snippet
  forge theme generate --color-preset blue --no-shadows
  forge theme generate --draft theme.yml --format css
  forge theme generate --radius-preset pill --copy   # Also copy to the clipboard`,
	RunE: runThemeGenerate,
}

var (
	generateDraft  draftOptions
	generateFormat string
	generateCopy   bool

	// clipboardWriter is replaced in tests.
	clipboardWriter clipboard.WriteFunc = clipboard.SystemWrite
)

func init() {
	themeCmd.AddCommand(themeGenerateCmd)

	addDraftOptionFlags(themeGenerateCmd, &generateDraft)
	themeGenerateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "Snippet format (jsx|css), defaults to theme.format")
	themeGenerateCmd.Flags().BoolVarP(&generateCopy, "copy", "c", false, "Copy the snippet to the clipboard")
}

func runThemeGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := cfg.Log.Logger()
	ctx := cmd.Context()

	format := cfg.Theme.Format
	if generateFormat != "" {
		format = generateFormat
	}
	f, err := theme.ParseFormat(format)
	if err != nil {
		return err
	}

	d, err := generateDraft.build(ctx, logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	snippet, err := theme.Render(d, f)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), snippet)

	if !generateCopy {
		return nil
	}

	copier := clipboard.NewCopier(
		clipboard.NewIndicator(cfg.Theme.CopyReset),
		clipboard.WithWriter(clipboardWriter),
		clipboard.WithLogger(logger),
	)
	if err := <-copier.Copy(ctx, snippet); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: snippet not copied: %v\n", err)
		return nil
	}
	fmt.Fprintln(cmd.ErrOrStderr(), "Copied to clipboard")

	return nil
}
