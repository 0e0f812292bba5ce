package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/hotspot/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "hotspot",
	Short: "Test whether police activity concentrates around a location",
	Long: "Loads incident exports (CSV, XLSX, shapefile), counts incidents inside circular regions, " +
		"and compares their rates with a Poisson rate-ratio test.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
