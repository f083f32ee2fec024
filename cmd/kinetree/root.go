package main

import (
	"fmt"
	"os"

	"github.com/aretw0/kinetree/internal/cli"
	"github.com/aretw0/kinetree/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kinetree",
	Short: "kinetree turns segment templates into subject-specific skeletal models",
	Long: `kinetree realizes a template of body segments against a static marker trial,
producing a model with numeric frames, local markers and meshes.`,
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
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Configuration file")
	rootCmd.PersistentFlags().String("dir", "", "Directory containing templates and trials (overrides config)")
	rootCmd.PersistentFlags().String("store", "", "Model store driver: memory, file, sqlite or redis (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}

// loadConfig reads the config file and applies the persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.Templates = dir
		cfg.Trials = dir
	}
	if store, _ := cmd.Flags().GetString("store"); store != "" {
		cfg.Store.Driver = store
	}
	return cfg, cfg.Validate()
}

// newApp builds the engine for a command.
func newApp(cmd *cobra.Command) (*cli.App, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return nil, cfg, err
	}
	hooks := metrics.Hooks().Merge(cli.DebugHooks(logger))
	app, err := cli.NewApp(cfg, logger, hooks)
	return app, cfg, err
}
