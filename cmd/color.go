package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/conneroisu/forge/internal/color"
)

var colorCmd = &cobra.Command{
	Use:   "color",
	Short: "Convert colors between hex and HSL",
	Long: `Convert colors the way the theme creator's pickers do. Hex input must be
#RRGGBB; anything else converts to the neutral hsl(0, 0%, 50%).`,
}

var colorHSLCmd = &cobra.Command{
	Use:   "hsl <#RRGGBB>",
	Short: "Convert a hex color to integer HSL",
	Example: `  forge color hsl "#3B82F6"   # hsl(217, 91%, 60%)`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !color.IsHex6(args[0]) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %q is not #RRGGBB, using the neutral fallback\n", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.HexToHSL(args[0]))
		return nil
	},
}

var colorHexCmd = &cobra.Command{
	Use:   "hex <h> <s> <l>",
	Short: "Convert integer HSL to a hex color",
	Example: `  forge color hex 217 91 60   # #3c83f6`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var hsl [3]int
		for i, name := range []string{"hue", "saturation", "lightness"} {
			v, err := strconv.Atoi(args[i])
			if err != nil {
				return fmt.Errorf("%s must be an integer, got %q", name, args[i])
			}
			hsl[i] = v
		}
		fmt.Fprintln(cmd.OutOrStdout(), color.HSLToHex(hsl[0], hsl[1], hsl[2]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(colorCmd)
	colorCmd.AddCommand(colorHSLCmd, colorHexCmd)
}
