// Package assemble turns a sentence into the initial token list: language
// spans from the tagger, Chinese words from the segmenter with one syllable
// per character from the romanizer, English words with their phonemes, and
// single-character symbol tokens.
package assemble

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/example/go-g2p-mix/internal/oracle"
	"github.com/example/go-g2p-mix/internal/tagger"
	"github.com/example/go-g2p-mix/internal/token"
)

// Pronouncer resolves an English word to ARPAbet phonemes.
type Pronouncer interface {
	Pronounce(word string) []string
}

// Contraction suffixes re-joined across a typographic apostrophe.
var contractionSuffixes = map[string]struct{}{
	"d": {}, "s": {}, "m": {}, "re": {}, "ve": {}, "t": {},
	"clock": {}, "em": {}, "cause": {},
}

// Assembler builds tokens from raw sentences. It holds no per-sentence
// state and is safe for concurrent use when its oracles are.
type Assembler struct {
	seg oracle.Segmenter
	rom oracle.Romanizer
	en  Pronouncer
}

func New(seg oracle.Segmenter, rom oracle.Romanizer, en Pronouncer) *Assembler {
	return &Assembler{seg: seg, rom: rom, en: en}
}

// Result is the assembled token list plus the characters the romanizer
// could not resolve. Those characters appear in Tokens as symbols.
type Result struct {
	Tokens     []token.Token
	Unresolved []*oracle.UnresolvedError
}

// Assemble tokenizes one sentence. Concatenating the words of the returned
// tokens reproduces sentence.
func (a *Assembler) Assemble(sentence string) (Result, error) {
	var res Result

	offset := 0
	for _, span := range tagger.Split(sentence) {
		switch span.Lang {
		case token.ZH:
			if err := a.assembleHan(span.Text, offset, &res); err != nil {
				return Result{}, err
			}
		case token.EN:
			res.Tokens = append(res.Tokens, token.NewEn(span.Text, a.en.Pronounce(span.Text)))
		case token.NUM:
			res.Tokens = append(res.Tokens, token.NewNum(span.Text))
		default:
			for _, r := range span.Text {
				res.Tokens = append(res.Tokens, token.NewSym(string(r)))
			}
		}

		offset += utf8.RuneCountInString(span.Text)
	}

	res.Tokens = a.joinContractions(res.Tokens)

	return res, nil
}

func (a *Assembler) assembleHan(text string, offset int, res *Result) error {
	words := a.seg.Segment(text)

	var covered strings.Builder
	for _, w := range words {
		covered.WriteString(w.Word)
	}

	if covered.String() != text {
		return fmt.Errorf("segmenter output %q does not cover %q", covered.String(), text)
	}

	for _, w := range words {
		n, err := a.assembleWord(w, offset, res)
		if err != nil {
			return err
		}

		offset += n
	}

	return nil
}

// assembleWord romanizes one segmented word. Characters without a syllable
// become symbol tokens and split the word around them. It returns the number
// of characters consumed.
func (a *Assembler) assembleWord(w oracle.WordPOS, offset int, res *Result) (int, error) {
	chars := []rune(w.Word)
	syls := a.rom.Romanize(w.Word)

	var (
		run    []rune
		phones []string
	)

	flush := func() error {
		if len(run) == 0 {
			return nil
		}

		tok, err := token.NewZh(string(run), w.POS, phones)
		if err != nil {
			return err
		}

		res.Tokens = append(res.Tokens, tok)
		run, phones = nil, nil

		return nil
	}

	for i, c := range chars {
		syl := ""
		if i < len(syls) {
			syl = syls[i]
		}

		if syl != "" {
			run = append(run, c)
			phones = append(phones, syl)

			continue
		}

		if err := flush(); err != nil {
			return 0, err
		}

		res.Tokens = append(res.Tokens, token.NewSym(string(c)))
		res.Unresolved = append(res.Unresolved, &oracle.UnresolvedError{Char: string(c), Offset: offset + i})
	}

	if err := flush(); err != nil {
		return 0, err
	}

	return len(chars), nil
}

// joinContractions merges EN, apostrophe, EN-suffix triples such as
// "he", "’", "ve" into one English token.
func (a *Assembler) joinContractions(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]

		if isApostrophe(t) && len(out) > 0 && out[len(out)-1].Lang() == token.EN &&
			i+1 < len(tokens) && tokens[i+1].Lang() == token.EN {
			if _, ok := contractionSuffixes[tokens[i+1].Word()]; ok {
				word := out[len(out)-1].Word() + t.Word() + tokens[i+1].Word()
				out[len(out)-1] = token.NewEn(word, a.en.Pronounce(word))
				i++

				continue
			}
		}

		out = append(out, t)
	}

	return out
}

func isApostrophe(t token.Token) bool {
	if t.Lang() != token.SYM {
		return false
	}

	w := t.Word()

	return w == "'" || w == "’"
}
