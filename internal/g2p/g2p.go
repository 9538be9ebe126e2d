// Package g2p converts mixed Mandarin, Cantonese and English text into
// per-character phoneme leaves.
//
// A conversion tags language spans, segments and romanizes Chinese runs,
// optionally applies Mandarin tone sandhi, and splits every Chinese
// syllable into its initial, final and tone.
package g2p

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/example/go-g2p-mix/internal/assemble"
	"github.com/example/go-g2p-mix/internal/oracle"
	"github.com/example/go-g2p-mix/internal/phoneme"
	"github.com/example/go-g2p-mix/internal/sandhi"
	"github.com/example/go-g2p-mix/internal/text"
	"github.com/example/go-g2p-mix/internal/token"
)

// Options selects the conversion mode for one request.
type Options struct {
	// Jyut romanizes Chinese as Cantonese jyutping. Sandhi does not apply.
	Jyut bool `json:"jyut"`
	// Sandhi applies Mandarin merge and tone rules.
	Sandhi bool `json:"sandhi"`
	// Strict decomposes pinyin with the strict initial/final tables.
	Strict bool `json:"strict"`
}

// Result is the output of one conversion.
type Result struct {
	Tokens     []token.Leaf              `json:"tokens"`
	Unresolved []*oracle.UnresolvedError `json:"unresolved,omitempty"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for recovered conditions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithWorkers bounds how many sentences ConvertAll converts at once.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// Engine runs conversions. It is safe for concurrent use.
type Engine struct {
	mandarin  *assemble.Assembler
	cantonese *assemble.Assembler
	sandhi    *sandhi.Engine
	logger    *slog.Logger
	workers   int
}

func New(res *Resources, opts ...Option) (*Engine, error) {
	if res == nil || res.Segmenter == nil || res.Pinyin == nil || res.English == nil || res.Lexicon == nil {
		return nil, errors.New("g2p: incomplete resources")
	}

	e := &Engine{
		mandarin: assemble.New(res.Segmenter, res.Pinyin, res.English),
		sandhi:   sandhi.New(res.Lexicon, res.Subwords),
		logger:   slog.Default(),
		workers:  4,
	}

	if res.Jyutping != nil {
		e.cantonese = assemble.New(res.Segmenter, res.Jyutping, res.English)
	}

	for _, opt := range opts {
		opt(e)
	}

	return e, nil
}

// Convert processes one sentence. Concatenating the words of the returned
// leaves reproduces sentence.
func (e *Engine) Convert(sentence string, opts Options) (Result, error) {
	asm := e.mandarin
	if opts.Jyut {
		if e.cantonese == nil {
			return Result{}, errors.New("g2p: jyutping table not loaded")
		}

		asm = e.cantonese
	}

	assembled, err := asm.Assemble(sentence)
	if err != nil {
		return Result{}, fmt.Errorf("assemble: %w", err)
	}

	for _, u := range assembled.Unresolved {
		e.logger.Debug("unresolved syllable", "char", u.Char, "offset", u.Offset)
	}

	tokens := assembled.Tokens
	if opts.Sandhi && !opts.Jyut {
		tokens = e.sandhi.Run(tokens)
	}

	splitter := phoneme.Splitter{Scheme: scheme(opts)}

	leaves, err := splitter.Split(tokens)
	if err != nil {
		return Result{}, fmt.Errorf("split phonemes: %w", err)
	}

	return Result{Tokens: leaves, Unresolved: assembled.Unresolved}, nil
}

func scheme(opts Options) phoneme.Scheme {
	switch {
	case opts.Jyut:
		return phoneme.Jyutping
	case opts.Strict:
		return phoneme.StrictPinyin
	default:
		return phoneme.Pinyin
	}
}

// ConvertAll converts sentences in parallel and returns results in input
// order. The first failure cancels the remaining work.
func (e *Engine) ConvertAll(ctx context.Context, sentences []string, opts Options) ([]Result, error) {
	results := make([]Result, len(sentences))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, s := range sentences {
		i, s := i, s
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			r, err := e.Convert(s, opts)
			if err != nil {
				return fmt.Errorf("sentence %d: %w", i, err)
			}

			results[i] = r

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// ConvertText normalizes text, splits it into sentences and converts them,
// concatenating the leaves in order. The whitespace between two sentences
// becomes a SYM leaf, so the leaf text equals the normalized input.
// Unresolved offsets are relative to the sentence they occur in.
func (e *Engine) ConvertText(ctx context.Context, raw string, opts Options) (Result, error) {
	normalized, err := text.Normalize(raw)
	if err != nil {
		return Result{}, err
	}

	sentences := text.SplitSentences(normalized)

	results, err := e.ConvertAll(ctx, sentences, opts)
	if err != nil {
		return Result{}, err
	}

	var out Result

	cursor := 0
	for i, r := range results {
		at := cursor + strings.Index(normalized[cursor:], sentences[i])
		if gap := normalized[cursor:at]; i > 0 && gap != "" {
			out.Tokens = append(out.Tokens, token.Leaf{Word: gap, Lang: token.SYM, Phones: []string{gap}})
		}
		cursor = at + len(sentences[i])

		out.Tokens = append(out.Tokens, r.Tokens...)
		out.Unresolved = append(out.Unresolved, r.Unresolved...)
	}

	return out, nil
}
