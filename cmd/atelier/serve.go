package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/atelier/internal/cli"
	"github.com/aretw0/atelier/internal/presentation/tui"
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]...",
	Short: "Start the HTTP design server",
	Long: `Starts the design server, exposing documents, components and actions as a JSON API
with server-sent change events and Prometheus metrics. Files given as arguments are
seeded into the store, in addition to the documents listed in the config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("listen") {
			cfg.Listen, _ = cmd.Flags().GetString("listen")
		}
		cfg.Documents = append(cfg.Documents, args...)
		logger := newLogger(cfg)

		if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
			tui.PrintBanner(cmd.ErrOrStderr())
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		app, err := cli.NewApp(ctx, cfg, logger)
		if err != nil {
			return err
		}
		if err := app.Serve(ctx); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Stopped by %v\n", sig)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("listen", "l", ":8080", "Address to listen on")
	serveCmd.Flags().BoolP("quiet", "q", false, "Do not print the banner")
}
