// Package sandhi applies Mandarin tone sandhi to an assembled token list.
//
// Merge joins adjacent Chinese tokens into prosodic words. Apply then
// rewrites tones inside each Chinese token with four ordered rules:
// negator, numeral one, neutral tone and third-tone sandhi. Each rule reads
// the tones left by the rules before it. Running the engine twice over its
// own output gives the same result.
package sandhi

import (
	"github.com/example/go-g2p-mix/internal/lexicon"
	"github.com/example/go-g2p-mix/internal/oracle"
	"github.com/example/go-g2p-mix/internal/token"
)

const (
	negator    = '不'
	numeralOne = '一'
	diminutive = '儿'
	pluralMark = '们'
)

// Standalone modifiers that absorb the following word.
var modifiers = map[string]struct{}{"不": {}, "很": {}, "一": {}}

// Characters after which 一 keeps its first tone as a digit or ordinal.
var ordinalContext = runeSet("零一二三四五六七八九十万月第初")

// Characters before which 一 keeps its first tone.
var ordinalContinuation = runeSet("月班连楼")

var aspectMarkers = map[string]struct{}{"了": {}, "着": {}, "过": {}}

func runeSet(s string) map[rune]struct{} {
	m := make(map[rune]struct{})
	for _, r := range s {
		m[r] = struct{}{}
	}

	return m
}

// Engine holds the read-only tables the rules consult.
type Engine struct {
	lex *lexicon.Tables
	sub oracle.SubwordSegmenter
}

func New(lex *lexicon.Tables, sub oracle.SubwordSegmenter) *Engine {
	return &Engine{lex: lex, sub: sub}
}

// Run merges tokens and applies the tone rules.
func (e *Engine) Run(tokens []token.Token) []token.Token {
	return e.Apply(e.Merge(tokens))
}
