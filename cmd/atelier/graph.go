package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/atelier/internal/presentation/graph"
	"github.com/aretw0/atelier/pkg/document"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <file>",
	Short: "Export the component tree visualization",
	Long:  `Reads a document and outputs a Mermaid diagram (graph TD) of its component tree.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		doc, err := document.ReadFile(args[0])
		if err != nil {
			return err
		}

		var overlay *graph.GraphOverlay
		selected, _ := cmd.Flags().GetString("select")
		highlighted, _ := cmd.Flags().GetStringSlice("highlight")
		if selected != "" || len(highlighted) > 0 {
			overlay = &graph.GraphOverlay{Selected: selected, Highlighted: highlighted}
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(doc, overlay))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("select", "", "Dotted path of the component to mark as selected")
	graphCmd.Flags().StringSlice("highlight", nil, "Dotted paths of components to highlight")
}
