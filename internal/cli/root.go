// Package cli provides the sclera command line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sclera-app/sclera/internal/config"
	"github.com/sclera-app/sclera/internal/logging"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "sclera",
	Short: "Sclera study platform",
	Long:  "Sclera terminal client and API service for the Sclera study platform.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		logging.Setup(cfg.LogLevel)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// GetConfig returns the loaded configuration, or nil before PersistentPreRunE.
func GetConfig() *config.Config {
	return cfg
}
