package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/conneroisu/forge/internal/config"
	"github.com/conneroisu/forge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"s"},
	Short:   "Start the theme creator",
	Long: `Start the theme creator: a page with live preview of the generated
provider snippet. Every open page is kept in sync over a websocket.

Examples:
  forge serve                          # Start from the defaults
  forge serve --draft theme.yml        # Start from a draft file
  forge serve --draft theme.yml -w     # Reload when the draft file changes
  forge serve -p 8080 --host 0.0.0.0   # Listen elsewhere`,
	RunE: runServe,
}

var serveFlags *StandardFlags

func init() {
	rootCmd.AddCommand(serveCmd)

	serveFlags = AddStandardFlags(serveCmd, "server", "draft")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	viper.BindPFlag("theme.draft", serveCmd.Flags().Lookup("draft"))
	viper.BindPFlag("theme.watch", serveCmd.Flags().Lookup("watch"))
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := cfg.Log.Logger()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv, err := server.New(ctx, cfg, server.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "Shutting down server...")

		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error(shutdownCtx, shutdownErr, "Error during server shutdown")
		}
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Starting Forge theme creator at http://%s\n", cfg.Server.Address())
	if cfg.Theme.Draft != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Draft: %s (watch: %t)\n", cfg.Theme.Draft, cfg.Theme.Watch)
	}

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
