package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/atelier"
	"github.com/aretw0/atelier/internal/config"
	"github.com/aretw0/atelier/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "atelier",
	Short: "Atelier hosts design-time component surfaces",
	Long: `Atelier loads form documents into a design host, where components are sited,
named, and edited through designers, transactions, and smart-tag actions.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("namespace", "", "Namespace of loaded root components")
}

// loadConfig reads --config over the defaults and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("namespace") {
		cfg.Namespace, _ = cmd.Flags().GetString("namespace")
	}
	return cfg, cfg.Validate()
}

func newLogger(cfg config.Config) *slog.Logger {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}

// newStudio creates a studio for the one-shot commands.
func newStudio(cmd *cobra.Command) (*atelier.Studio, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return atelier.New(
		atelier.WithLogger(newLogger(cfg)),
		atelier.WithNamespace(cfg.Namespace),
		atelier.WithAuditLog(cfg.AuditLog),
	)
}
