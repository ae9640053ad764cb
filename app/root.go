// Package app implements the artify commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/artify-go/artify/internal/config"
	"github.com/artify-go/artify/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Directory holding main.toml (default ./etc/)")
	rootCmd.PersistentFlags().BoolVar(&devMode, "dev", false, "Enable dev mode")
}

var (
	configPath string // Path to the configuration directory
	devMode    bool

	cfg config.Config

	rootCmd = &cobra.Command{
		Use:   "artify",
		Short: "artify scaffolds Laravel authorization from your roles",
		Long: `artify reads the permissions stored on the roles of a Laravel application
and generates the matching policies, gates and service provider.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			var err error

			if cfg, err = config.ReadConfig(configPath); err != nil {
				return err
			}

			if devMode {
				cfg.DevMode = true
				cfg.Log.LogLevel = "debug"
			}

			return logger.Init(cfg.Log)
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
