package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/example/go-g2p-mix/internal/config"
	"github.com/example/go-g2p-mix/internal/g2p"
	textpkg "github.com/example/go-g2p-mix/internal/text"
	"github.com/example/go-g2p-mix/internal/token"
	"github.com/spf13/cobra"
)

// converter is the part of g2p.Engine the CLI drives.
type converter interface {
	ConvertText(ctx context.Context, text string, opts g2p.Options) (g2p.Result, error)
	ConvertAll(ctx context.Context, sentences []string, opts g2p.Options) ([]g2p.Result, error)
}

// newEngine loads dictionaries and builds the engine. Tests replace it.
var newEngine = func(cfg config.Config) (converter, error) {
	res, err := g2p.LoadResources(cfg.Dict)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}

	engine, err := g2p.New(res, g2p.WithLogger(slog.Default()), g2p.WithWorkers(cfg.G2P.Workers))
	if err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}

	return engine, nil
}

const (
	formatJSON = "json"
	formatText = "text"
)

type convertOptions struct {
	Format         string
	SplitSentences bool
	NoSandhi       bool
}

func newConvertCmd() *cobra.Command {
	var opts convertOptions

	cmd := &cobra.Command{
		Use:   "convert [TEXT]",
		Short: "Convert text to phonemes (reads stdin when TEXT is empty)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if err := validateFormat(opts.Format); err != nil {
				return err
			}

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}

			input, err := readConvertText(arg, cmd.InOrStdin())
			if err != nil {
				return err
			}

			engine, err := newEngine(cfg)
			if err != nil {
				return err
			}

			return runConvert(cmd.Context(), engine, input, modeOptions(cfg, opts), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Format, "format", formatJSON, "Output format (json|text)")
	cmd.Flags().BoolVar(&opts.SplitSentences, "split-sentences", false, "Emit one result per sentence")
	cmd.Flags().BoolVar(&opts.NoSandhi, "no-sandhi", false, "Disable tone sandhi (same as --sandhi=false)")

	return cmd
}

func validateFormat(format string) error {
	switch format {
	case formatJSON, formatText:
		return nil
	default:
		return fmt.Errorf("unsupported format %q (want json|text)", format)
	}
}

func modeOptions(cfg config.Config, opts convertOptions) g2p.Options {
	return g2p.Options{
		Jyut:   cfg.G2P.Jyut,
		Sandhi: cfg.G2P.Sandhi && !opts.NoSandhi,
		Strict: cfg.G2P.Strict,
	}
}

func readConvertText(text string, stdin io.Reader) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	input := strings.TrimSpace(string(b))
	if input == "" {
		return "", fmt.Errorf("either provide TEXT or pipe text on stdin")
	}
	return input, nil
}

func runConvert(ctx context.Context, conv converter, input string, mode g2p.Options, opts convertOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var results []g2p.Result
	if opts.SplitSentences {
		normalized, err := textpkg.Normalize(input)
		if err != nil {
			return err
		}

		results, err = conv.ConvertAll(ctx, textpkg.SplitSentences(normalized), mode)
		if err != nil {
			return err
		}
	} else {
		res, err := conv.ConvertText(ctx, input, mode)
		if err != nil {
			return err
		}
		results = []g2p.Result{res}
	}

	for _, r := range results {
		for _, u := range r.Unresolved {
			slog.Warn("unresolved character", "char", u.Char, "offset", u.Offset)
		}
	}

	if opts.Format == formatText {
		for _, r := range results {
			if _, err := fmt.Fprintln(w, renderText(r.Tokens)); err != nil {
				return err
			}
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if opts.SplitSentences {
		return enc.Encode(results)
	}
	return enc.Encode(results[0])
}

// renderText writes each leaf as word{phones}, skipping whitespace symbols.
func renderText(leaves []token.Leaf) string {
	parts := make([]string, 0, len(leaves))
	for _, l := range leaves {
		if strings.TrimSpace(l.Word) == "" {
			continue
		}
		if l.Lang == token.ZH || l.Lang == token.EN {
			parts = append(parts, l.Word+"{"+strings.Join(l.Phones, " ")+"}")
			continue
		}
		parts = append(parts, l.Word)
	}
	return strings.Join(parts, " ")
}
