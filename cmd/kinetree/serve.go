package main

import (
	"context"

	"github.com/aretw0/kinetree/internal/cli"
	"github.com/aretw0/kinetree/internal/presentation/tui"
	httpAdapter "github.com/aretw0/kinetree/pkg/adapters/http"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long:  `Exposes realization and the model store over a JSON API, with Prometheus metrics at /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, cfg, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer app.Close()

		addr := cfg.HTTP.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		handler := httpAdapter.NewHandler(app.Engine,
			httpAdapter.WithRegistry(app.Registry),
			httpAdapter.WithLogger(app.Logger),
		)

		tui.PrintBanner(cmd.OutOrStdout())
		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()
		return cli.Serve(ctx, addr, handler, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", ":8080", "Address to listen on")
}
