package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kailas-cloud/mediasense/internal/domain/rank"
	classifyuc "github.com/kailas-cloud/mediasense/internal/usecase/classify"
)

var (
	flagRankMetric string
	flagRankTopK   int
)

var rankCmd = &cobra.Command{
	Use:   "rank [file]",
	Short: "Rank candidate vectors against a query (reads JSON from file or stdin)",
	Long: `Input format:
  {"query":[...], "candidates":[{"key":"a","vector":[...]}, ...]}`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRank,
}

func init() {
	rankCmd.Flags().StringVar(&flagRankMetric, "metric", string(rank.Cosine), "Similarity metric (cosine, euclidean)")
	rankCmd.Flags().IntVarP(&flagRankTopK, "top-k", "k", rank.DefaultTopK, "Number of results to show")
	rootCmd.AddCommand(rankCmd)
}

type rankInput struct {
	Query      []float32 `json:"query"`
	Candidates []struct {
		Key    string    `json:"key"`
		Vector []float32 `json:"vector"`
	} `json:"candidates"`
}

func runRank(cmd *cobra.Command, args []string) error {
	var in io.Reader = cmd.InOrStdin()
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var req rankInput
	if err := json.NewDecoder(in).Decode(&req); err != nil {
		return fmt.Errorf("decode input: %w", err)
	}

	candidates := make([]rank.Candidate, len(req.Candidates))
	for i, c := range req.Candidates {
		candidates[i] = rank.Candidate{Key: c.Key, Vector: c.Vector}
	}

	// Ranking needs no embedder.
	results, err := classifyuc.New(nil, classifyuc.Config{}).Rank(req.Query, candidates, flagRankMetric, flagRankTopK)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tSCORE\tDISTANCE")
	for _, r := range results {
		dist := "-"
		if d, ok := r.Distance(); ok {
			dist = fmt.Sprintf("%.4f", d)
		}
		fmt.Fprintf(tw, "%s\t%.4f\t%s\n", r.Key(), r.Score(), dist)
	}
	return tw.Flush()
}
