package text

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Horizontal blanks folded to a single ASCII space.
var blanks = map[rune]bool{'\t': true, '\u3000': true, '\u00a0': true, '\u2009': true, '\u202f': true}

// Normalize prepares raw input text for conversion: zero-width format
// characters are dropped, the text is composed to NFC, line endings become
// \n, runs of horizontal blanks collapse to one space, and surrounding
// whitespace is trimmed. Empty or whitespace-only input is rejected.
func Normalize(s string) (string, error) {
	t := transform.Chain(runes.Remove(runes.In(unicode.Cf)), norm.NFC)

	s, _, err := transform.String(t, s)
	if err != nil {
		return "", fmt.Errorf("normalize: %w", err)
	}

	// CRLF → LF, then bare CR → LF.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.TrimSpace(collapseBlanks(s))

	if s == "" {
		return "", ErrEmptyText
	}

	return s, nil
}

func collapseBlanks(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	prevBlank := false
	for _, r := range s {
		if r == ' ' || blanks[r] {
			if !prevBlank {
				b.WriteByte(' ')
			}
			prevBlank = true
			continue
		}
		prevBlank = false
		b.WriteRune(r)
	}

	return b.String()
}
