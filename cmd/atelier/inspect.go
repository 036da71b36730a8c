package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/atelier/internal/presentation/tui"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Load a document and describe its components and actions",
	Long: `Loads the document into a design surface, as the server would, and prints its
components, properties and smart-tag actions. Output is rendered for the terminal
unless --plain is given or stdout is not a terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, err := newStudio(cmd)
		if err != nil {
			return err
		}
		surface, err := studio.Open(args[0])
		if err != nil {
			return err
		}
		defer surface.Dispose()

		report, err := tui.Report(surface)
		if err != nil {
			return err
		}

		plain, _ := cmd.Flags().GetBool("plain")
		if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
			if rendered, err := tui.NewRenderer()(report); err == nil {
				report = rendered
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().Bool("plain", false, "Print raw Markdown")
}
