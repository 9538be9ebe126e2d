package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/example/go-g2p-mix/internal/doctor"
	"github.com/example/go-g2p-mix/internal/g2p"
	"github.com/example/go-g2p-mix/internal/oracle"
	"github.com/spf13/cobra"
)

const smokeText = "你好，world。"

func newDoctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check dictionaries and run a smoke conversion",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			var (
				engine     converter
				unresolved []*oracle.UnresolvedError
			)

			dcfg := doctor.Config{
				Dicts: []doctor.DictFile{
					{Name: "segmenter", Paths: cfg.Dict.SegmenterPath},
					{Name: "jyutping", Paths: cfg.Dict.JyutpingPath},
					{Name: "cmudict", Paths: cfg.Dict.CMUDictPath},
				},
				LexiconDir: cfg.Dict.LexiconDir,
				LoadResources: func() error {
					engine, err = newEngine(cfg)
					return err
				},
				Smoke: func(text string) (string, error) {
					res, err := engine.ConvertText(context.Background(), text,
						g2p.Options{Jyut: cfg.G2P.Jyut, Sandhi: cfg.G2P.Sandhi, Strict: cfg.G2P.Strict})
					if err != nil {
						return "", err
					}
					unresolved = res.Unresolved
					return smokeSummary(renderText(res.Tokens)), nil
				},
				SmokeText: smokeText,
			}

			result := doctor.Run(dcfg, os.Stdout)
			reportUnresolved(&result, unresolved)

			if result.Failed() {
				for _, f := range result.Failures() {
					fmt.Fprintf(os.Stderr, "FAIL: %s\n", f)
				}

				return errors.New("doctor checks failed")
			}

			_, _ = fmt.Fprintln(os.Stdout, "doctor checks passed")

			return nil
		},
	}

	return cmd
}

// smokeSummary truncates a rendered smoke result for the doctor report.
func smokeSummary(rendered string) string {
	const limit = 60
	r := []rune(strings.TrimSpace(rendered))
	if len(r) <= limit {
		return string(r)
	}
	return string(r[:limit]) + "…"
}

// reportUnresolved fails the doctor run for every smoke character that had
// no reading.
func reportUnresolved(result *doctor.Result, unresolved []*oracle.UnresolvedError) {
	for _, u := range unresolved {
		result.AddFailure(fmt.Sprintf("smoke conversion: %v", u))
	}
}
