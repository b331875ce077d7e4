package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/mediasense/internal/config"
	logpkg "github.com/kailas-cloud/mediasense/internal/logger"
)

var flagEnv string

var rootCmd = &cobra.Command{
	Use:          "mediasensectl",
	Short:        "Admin CLI for the mediasense API",
	SilenceUsage: true,
	Long: `mediasensectl runs administrative tasks against the same configuration
as the API server (config/{ENV}.yaml).`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnv, "env", config.GetEnv(), "Configuration environment (local, dev, prod)")
}

// loadConfig reads config and builds a logger that writes to stderr only on warnings.
func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(flagEnv)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := logpkg.New(flagEnv, "warn")
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, logger, nil
}
