// Package bench provides benchmarking primitives for the g2pmix bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing and output size of a single conversion run.
type RunResult struct {
	Index       int
	Cold        bool // true for the first run (cold-start)
	Duration    time.Duration
	Chars       int // input length in runes
	Leaves      int // output leaf count
	CharsPerSec float64
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// Throughput
// ---------------------------------------------------------------------------

// CalcThroughput returns characters converted per second.
// Returns 0 if d is zero.
func CalcThroughput(chars int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(chars) / d.Seconds()
}

// WarmStats computes stats over the warm runs only, falling back to all runs
// when there is just the cold one.
func WarmStats(runs []RunResult) Stats {
	durations := make([]time.Duration, 0, len(runs))
	for _, r := range runs {
		if !r.Cold {
			durations = append(durations, r.Duration)
		}
	}
	if len(durations) == 0 {
		for _, r := range runs {
			durations = append(durations, r.Duration)
		}
	}
	return ComputeStats(durations)
}

// ---------------------------------------------------------------------------
// Latency threshold gate
// ---------------------------------------------------------------------------

// CheckLatencyThreshold returns an error if mean > threshold.
// A threshold of 0 disables the gate.
func CheckLatencyThreshold(mean, threshold time.Duration) error {
	if threshold <= 0 {
		return nil
	}
	if mean > threshold {
		return fmt.Errorf("mean latency %s exceeds threshold %s", mean, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

func ms(d time.Duration) float64 { return float64(d.Microseconds()) / 1000 }

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %8s  %8s  %12s\n", "Run", "Cold", "MS", "Chars", "Leaves", "Chars/s")
	fmt.Fprintln(sb, strings.Repeat("-", 58))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10.3f  %8d  %8d  %12.1f\n",
			r.Index+1,
			cold,
			ms(r.Duration),
			r.Chars,
			r.Leaves,
			r.CharsPerSec,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 58))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  (min)\n", "", "", ms(stats.Min))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  (mean)\n", "", "", ms(stats.Mean))
	fmt.Fprintf(sb, "%-5s  %-5s  %10.3f  (max)\n", "", "", ms(stats.Max))

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index       int     `json:"index"`
	Cold        bool    `json:"cold"`
	DurationMS  float64 `json:"duration_ms"`
	Chars       int     `json:"chars"`
	Leaves      int     `json:"leaves"`
	CharsPerSec float64 `json:"chars_per_sec"`
}

type jsonStats struct {
	MinMS  float64 `json:"min_ms"`
	MeanMS float64 `json:"mean_ms"`
	MaxMS  float64 `json:"max_ms"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinMS:  ms(stats.Min),
			MeanMS: ms(stats.Mean),
			MaxMS:  ms(stats.Max),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:       r.Index,
			Cold:        r.Cold,
			DurationMS:  ms(r.Duration),
			Chars:       r.Chars,
			Leaves:      r.Leaves,
			CharsPerSec: r.CharsPerSec,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
