package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/example/go-g2p-mix/internal/bench"
	"github.com/example/go-g2p-mix/internal/g2p"
	"github.com/example/go-g2p-mix/internal/token"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		text      string
		runs      int
		format    string
		threshold time.Duration
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Benchmark conversion latency and throughput",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if strings.TrimSpace(text) == "" {
				return fmt.Errorf("--text is required for bench")
			}
			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if format != "table" && format != "json" {
				return fmt.Errorf("--format must be 'table' or 'json'")
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			results, err := runBench(cmd.Context(), engine, benchOptions{
				Text: text,
				Runs: runs,
				Mode: g2p.Options{Jyut: cfg.G2P.Jyut, Sandhi: cfg.G2P.Sandhi, Strict: cfg.G2P.Strict},
			})
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch format {
			case "json":
				bench.FormatJSON(results, stats, os.Stdout)
			default:
				bench.FormatTable(results, stats, os.Stdout)
			}

			return bench.CheckLatencyThreshold(bench.WarmStats(results).Mean, threshold)
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Text to convert for each run (required)")
	cmd.Flags().IntVar(&runs, "runs", 5, "Number of conversion runs")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table|json")
	cmd.Flags().DurationVar(&threshold, "latency-threshold", 0, "Exit non-zero if mean warm latency exceeds this value (0 = disabled)")

	return cmd
}

type benchOptions struct {
	Text string
	Runs int
	Mode g2p.Options
}

func runBench(ctx context.Context, conv converter, opts benchOptions) ([]bench.RunResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	chars := token.RuneLen(opts.Text)
	results := make([]bench.RunResult, 0, opts.Runs)

	for i := 0; i < opts.Runs; i++ {
		start := time.Now()
		res, err := conv.ConvertText(ctx, opts.Text, opts.Mode)
		if err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:       i,
			Cold:        i == 0,
			Duration:    dur,
			Chars:       chars,
			Leaves:      len(res.Tokens),
			CharsPerSec: bench.CalcThroughput(chars, dur),
		})
	}

	return results, nil
}
