// Package cmd provides the forge command-line interface.
//
// Configuration is read with the following precedence:
//  1. Command-line flags (--config, --port, ...)
//  2. FORGE_CONFIG_FILE: path to a configuration file
//  3. Environment variables following FORGE_<SECTION>_<OPTION>
//     (FORGE_SERVER_PORT, FORGE_THEME_DRAFT, ...)
//  4. .forge.yml in the current directory
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "forge",
	Short: "Build and preview Forge UI themes",
	Long: `Forge builds theme configurations for the Forge UI provider.

Start from the defaults, pick presets, adjust individual tokens and copy
the generated provider snippet into your app.

Quick Start:
  forge serve                            Open the theme creator
  forge theme generate --color-preset blue
  forge theme contrast --draft theme.yml
  forge presets color                    List color presets
  forge color hsl "#3B82F6"              Convert a color for a picker`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .forge.yml, can also use FORGE_CONFIG_FILE env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
}

// initConfig points viper at the config file and the FORGE_ environment.
// A missing config file is not an error.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("FORGE_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".forge")
	}

	viper.SetEnvPrefix("FORGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
