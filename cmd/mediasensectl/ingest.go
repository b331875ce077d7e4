package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/mediasense/internal/bootstrap"
	embeddinguc "github.com/kailas-cloud/mediasense/internal/usecase/embedding"
	searchuc "github.com/kailas-cloud/mediasense/internal/usecase/search"
)

var (
	flagIngestID   string
	flagIngestName string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <image-url>",
	Short: "Download, embed and store a media document",
	Args:  cobra.ExactArgs(1),
	RunE:  runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&flagIngestID, "id", "", "Document id (generated when empty)")
	ingestCmd.Flags().StringVar(&flagIngestName, "name", "", "Display name")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := bootstrap.OpenStore(cmd.Context(), cfg.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	backend, name, model, err := bootstrap.NewBackend(cfg.Embedding)
	if err != nil {
		return err
	}
	embedder := bootstrap.NewEmbedder(cfg.Embedding, backend, name, model, store, logger)

	media, instructions := bootstrap.NewRepos(cfg, store)
	if err := bootstrap.Setup(cmd.Context(), media, instructions); err != nil {
		return err
	}

	svc := searchuc.New(
		media,
		embeddinguc.New(embedder, bootstrap.NewFetcher(cfg.Embedding)),
		bootstrap.NewClassifier(cfg.Classify, embedder),
	)
	doc, err := svc.Ingest(cmd.Context(), flagIngestID, flagIngestName, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "stored %s (%d dims)\n", doc.ID(), len(doc.ImageEmbeddings()))
	return nil
}
