// Package oracle wraps the external linguistic resources the pipeline
// consults: a Chinese word segmenter with part-of-speech tags, a sub-word
// segmenter for compound splitting, and per-character romanizers.
//
// All implementations are safe for concurrent use once constructed.
package oracle

import (
	"errors"
	"fmt"
)

// WordPOS is one segmented word with its part-of-speech tag. Tags follow the
// ICTCLAS/jieba convention ("v", "n", "m", ...); unknown words are "x".
type WordPOS struct {
	Word string
	POS  string
}

// Segmenter splits a run of Chinese text into words. Concatenating the
// returned words reproduces the input.
type Segmenter interface {
	Segment(text string) []WordPOS
}

// SubwordSegmenter returns search-mode candidates for a word: dictionary
// sub-words of length two and three followed by the containing words.
type SubwordSegmenter interface {
	Subwords(word string) []string
}

// Romanizer returns one syllable per character of text, each ending in a
// tone digit. Characters it cannot resolve yield "".
type Romanizer interface {
	Romanize(text string) []string
}

// ErrUnresolvedSyllable marks a character a romanizer could not resolve.
var ErrUnresolvedSyllable = errors.New("unresolved syllable")

// UnresolvedError records an unresolved character and its rune offset in
// the sentence.
type UnresolvedError struct {
	Char   string `json:"char"`
	Offset int    `json:"offset"`
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("unresolved syllable for %q at offset %d", e.Char, e.Offset)
}

func (e *UnresolvedError) Unwrap() error { return ErrUnresolvedSyllable }
