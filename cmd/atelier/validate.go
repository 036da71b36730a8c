package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/atelier/pkg/document"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check documents for consistency",
	Long:  `Parses each document and reports missing or unknown component types, invalid names and duplicate names.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studio, err := newStudio(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		failed := 0
		for _, path := range args {
			doc, err := document.ReadFile(path)
			if err == nil {
				err = studio.Validate(doc)
			}
			if err != nil {
				failed++
				fmt.Fprintf(out, "%s: %v\n", path, err)
				continue
			}
			fmt.Fprintf(out, "%s: valid ✅ (%d components)\n", path, doc.Count())
		}
		if failed > 0 {
			return errors.New("validation failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
