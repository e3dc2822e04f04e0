package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/state-scatter/internal/config"
)

var (
	cfg      *config.Config
	dataPath string
)

var rootCmd = &cobra.Command{
	Use:   "state-scatter",
	Short: "Interactive scatter plot of state health and demographic indicators",
	Long:  "Loads per-state poverty, age, income, healthcare, smoking and obesity figures and plots any x/y pair, served as an interactive page or rendered to SVG, PNG, JSON or YAML.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c
		if dataPath != "" {
			cfg.Dataset.Path = dataPath
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "dataset path or URL (default from config)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
