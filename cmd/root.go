package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/riskindex-cli/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "riskindex",
	Short: "FEMA National Risk Index tract score exporter",
	Long:  "Converts the FEMA National Risk Index census tract table into GeoJSON risk scores, optionally joined onto tract boundary geometries.",
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
