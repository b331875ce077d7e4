package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/mediasense/internal/bootstrap"
	"github.com/kailas-cloud/mediasense/internal/domain"
	embeddinguc "github.com/kailas-cloud/mediasense/internal/usecase/embedding"
)

var flagEmbedBackend string

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Compute an embedding with the configured backend",
}

var embedTextCmd = &cobra.Command{
	Use:   "text <text...>",
	Short: "Embed text",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newEmbeddingService()
		if err != nil {
			return err
		}
		res, err := svc.EmbedText(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		return writeEmbedding(cmd.OutOrStdout(), res)
	},
}

var embedImageCmd = &cobra.Command{
	Use:   "image <path|url>",
	Short: "Embed an image file or an http(s) URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newEmbeddingService()
		if err != nil {
			return err
		}

		var res domain.EmbeddingResult
		if src := args[0]; strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			res, err = svc.EmbedImageFromURL(cmd.Context(), src)
		} else {
			var data []byte
			if data, err = os.ReadFile(src); err != nil {
				return fmt.Errorf("read image: %w", err)
			}
			res, err = svc.EmbedImage(cmd.Context(), data)
		}
		if err != nil {
			return err
		}
		return writeEmbedding(cmd.OutOrStdout(), res)
	},
}

func init() {
	embedCmd.PersistentFlags().StringVar(&flagEmbedBackend, "backend", "", "Override embedding.backend (clip, local)")
	embedCmd.AddCommand(embedTextCmd, embedImageCmd)
	rootCmd.AddCommand(embedCmd)
}

// newEmbeddingService builds the backend chain without the store-backed cache.
func newEmbeddingService() (*embeddinguc.Service, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if flagEmbedBackend != "" {
		cfg.Embedding.Backend = flagEmbedBackend
	}

	backend, name, model, err := bootstrap.NewBackend(cfg.Embedding)
	if err != nil {
		return nil, err
	}
	embedder := bootstrap.NewEmbedder(cfg.Embedding, backend, name, model, nil, logger)
	return embeddinguc.New(embedder, bootstrap.NewFetcher(cfg.Embedding)), nil
}

func writeEmbedding(w io.Writer, res domain.EmbeddingResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Embeddings []float32 `json:"embeddings"`
		Dimensions int       `json:"dimensions"`
		Backend    string    `json:"backend"`
		Model      string    `json:"model,omitempty"`
	}{res.Embedding, res.Dimensions(), res.Backend, res.Model})
}
