package main

import (
	"github.com/aretw0/kinetree/internal/cli"
	"github.com/spf13/cobra"
)

var realizeCmd = &cobra.Command{
	Use:   "realize <template> <trial>",
	Short: "Realize a template against a static trial",
	Long: `Loads a template and a static marker trial (YAML or JSON, extension optional),
builds every segment frame and prints the resulting model.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, _, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		format, _ := cmd.Flags().GetString("format")
		save, _ := cmd.Flags().GetBool("save")
		quiet, _ := cmd.Flags().GetBool("quiet")
		return cli.RunRealize(cmd.Context(), app, cli.RealizeOptions{
			Template: args[0],
			Trial:    args[1],
			Format:   format,
			Save:     save,
			Quiet:    quiet,
			Status:   cmd.ErrOrStderr(),
		}, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(realizeCmd)
	realizeCmd.Flags().StringP("format", "f", cli.FormatBiomod, "Output format: biomod, json or yaml")
	realizeCmd.Flags().Bool("save", false, "Save the model to the configured store")
	realizeCmd.Flags().BoolP("quiet", "q", false, "Suppress system messages")
}
