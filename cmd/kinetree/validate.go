package main

import (
	"github.com/aretw0/kinetree/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <template>",
	Short: "Check the template tree for consistency",
	Long:  `Reports missing parents, cycles, root problems and malformed segments without needing a trial.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()
		return cli.RunValidate(cmd.Context(), app, args[0], cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
