package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/mediasense/internal/bootstrap"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the media and instruction search indexes (idempotent)",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	media, instructions := bootstrap.NewRepos(cfg, store)
	if err := bootstrap.Setup(cmd.Context(), media, instructions); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "indexes ready (dimensions=%d)\n", cfg.Embedding.Dimensions)
	return nil
}
