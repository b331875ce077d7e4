package classify

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/mediasense/internal/domain"
	"github.com/kailas-cloud/mediasense/internal/domain/rank"
)

// DefaultParallelism caps concurrent label embeddings.
const DefaultParallelism = 4

// Config holds classification defaults.
type Config struct {
	Labels      []string
	Metric      rank.Metric
	TopK        int
	Parallelism int
}

// Service ranks embeddings against text labels and arbitrary candidates.
type Service struct {
	embedder TextEmbedder
	cfg      Config
}

// New creates a classification service.
func New(embedder TextEmbedder, cfg Config) *Service {
	if !cfg.Metric.IsValid() {
		cfg.Metric = rank.Euclidean
	}
	if cfg.TopK <= 0 {
		cfg.TopK = rank.DefaultTopK
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = DefaultParallelism
	}
	cfg.Labels = cleanLabels(cfg.Labels)
	return &Service{embedder: embedder, cfg: cfg}
}

// DefaultLabels returns the configured label set.
func (s *Service) DefaultLabels() []string {
	out := make([]string, len(s.cfg.Labels))
	copy(out, s.cfg.Labels)
	return out
}

// ClassifyAgainstLabels embeds every label as text and ranks them against embedding.
// Empty labels fall back to the configured set; an empty metric selects the configured default.
func (s *Service) ClassifyAgainstLabels(
	ctx context.Context, embedding []float32, labels []string, metric string,
) ([]rank.Result, error) {
	m, err := s.metric(metric)
	if err != nil {
		return nil, err
	}
	if len(embedding) == 0 {
		return nil, domain.Validationf("embedding is required")
	}

	labels = cleanLabels(labels)
	if len(labels) == 0 {
		labels = s.cfg.Labels
	}
	if len(labels) == 0 {
		return nil, domain.Validationf("no labels to classify against")
	}

	candidates, err := s.embedLabels(ctx, labels)
	if err != nil {
		return nil, err
	}

	results, err := rank.Rank(embedding, candidates, m, s.cfg.TopK)
	if err != nil {
		return nil, fmt.Errorf("rank labels: %w", err)
	}
	return results, nil
}

// Rank scores caller-supplied candidates against query.
func (s *Service) Rank(query []float32, candidates []rank.Candidate, metric string, topK int) ([]rank.Result, error) {
	m, err := s.metric(metric)
	if err != nil {
		return nil, err
	}
	return rank.Rank(query, candidates, m, topK)
}

func (s *Service) metric(name string) (rank.Metric, error) {
	m, ok := rank.ParseMetric(strings.ToLower(strings.TrimSpace(name)), s.cfg.Metric)
	if !ok {
		return "", domain.Validationf("unknown metric %q (expected cosine or euclidean)", name)
	}
	return m, nil
}

// embedLabels keeps candidate order equal to label order so ties stay stable.
func (s *Service) embedLabels(ctx context.Context, labels []string) ([]rank.Candidate, error) {
	candidates := make([]rank.Candidate, len(labels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Parallelism)
	for i, label := range labels {
		g.Go(func() error {
			res, err := s.embedder.EmbedText(gctx, label)
			if err != nil {
				return fmt.Errorf("embed label %q: %w", label, err)
			}
			candidates[i] = rank.Candidate{Key: label, Vector: res.Embedding}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return candidates, nil
}

func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, dup := seen[l]; dup {
			continue
		}
		seen[l] = struct{}{}
		out = append(out, l)
	}
	return out
}
