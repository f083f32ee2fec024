package main

import (
	"os"

	"github.com/aretw0/kinetree/internal/cli"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <model>",
	Short: "Summarize a stored model",
	Long:  `Prints segments, global origins and markers of a stored model. Markdown is rendered when stdout is a terminal.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		raw, _ := cmd.Flags().GetBool("raw")
		render := !raw && term.IsTerminal(int(os.Stdout.Fd()))
		return cli.RunInspect(cmd.Context(), app, args[0], render, cmd.OutOrStdout())
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List stored models",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RunModels(cmd.Context(), app, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(modelsCmd)
	inspectCmd.Flags().Bool("raw", false, "Print markdown without rendering")
}
