package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Full-width terminators end a sentence wherever they appear.
var cjkTerminators = map[rune]bool{'。': true, '！': true, '？': true, '；': true}

// ASCII terminators end a sentence only before whitespace or end of text,
// so "3.14" and "e.g" stay intact.
var asciiTerminators = map[rune]bool{'.': true, '!': true, '?': true, ';': true}

// Closing marks that belong to the sentence they follow.
var closers = map[rune]bool{'”': true, '’': true, '"': true, '」': true, '』': true, '）': true, ')': true}

// SplitSentences splits text after sentence-ending punctuation, keeping
// terminators and any closing quotes attached to their sentence.
// Sentences are trimmed and empty segments are skipped.
func SplitSentences(text string) []string {
	var sentences []string

	emit := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	start := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		i += size

		if !cjkTerminators[r] && !asciiTerminators[r] {
			continue
		}

		// Absorb runs of terminators and closers: "真的吗？！」"
		for i < len(text) {
			next, n := utf8.DecodeRuneInString(text[i:])
			if !cjkTerminators[next] && !asciiTerminators[next] && !closers[next] {
				break
			}

			i += n
		}

		if asciiTerminators[r] && i < len(text) {
			next, _ := utf8.DecodeRuneInString(text[i:])
			if !unicode.IsSpace(next) {
				continue
			}
		}

		emit(text[start:i])
		start = i
	}

	if start < len(text) {
		emit(text[start:])
	}

	return sentences
}
