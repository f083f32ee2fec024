package main

import (
	"github.com/aretw0/kinetree/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <template|model>",
	Short: "Export the segment tree visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of a template, or of a stored model with --model.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		fromStore, _ := cmd.Flags().GetBool("model")
		return cli.RunGraph(cmd.Context(), app, args[0], fromStore, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("model", false, "Read a stored model instead of a template")
}
