package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/nutritrack/internal/app"
	"github.com/mmynk/nutritrack/internal/config"
	"github.com/mmynk/nutritrack/pkg/logging"
)

var (
	configPath  string
	cfg         *config.Config
	application *app.Application
)

var rootCmd = &cobra.Command{
	Use:   "nutritrack",
	Short: "Nutrition and workout tracker",
	Long: `Nutritrack logs what you eat and how you train.

COMMANDS:

  serve         Run the HTTP API and web app
  mcp           Run the MCP server for one user over stdio
  user create   Register a user
  day           Print a day's meals and totals

CONFIGURATION:

  Settings come from an optional YAML file (--config), then .env, then the
  environment (APP_ENV, PORT, STORAGE_BACKEND, DATA_DIR, JWT_SECRET, ...).
  Later sources win.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logger := logging.Setup(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

		backend, err := cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		logger.Info("Storage initialized", "backend", cfg.Storage.Backend, "data_dir", cfg.Storage.DataDir)

		application, err = app.New(cfg, backend, app.Options{Logger: logger})
		if err != nil {
			backend.Close()
			return err
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if application == nil {
			return nil
		}
		if err := application.Close(); err != nil {
			slog.Error("Failed to close storage", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}
