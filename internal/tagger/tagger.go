// Package tagger splits raw text into maximal same-script spans and assigns
// each span a language.
package tagger

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"

	"github.com/example/go-g2p-mix/internal/token"
)

// Span is a run of characters sharing one script class.
type Span struct {
	Text string
	Lang token.Language
}

type class uint8

const (
	classOther class = iota
	classHan
	classDigit
	classLetter
)

// fold maps fullwidth forms to their narrow equivalents so that "ＡＢＣ" and
// "１２" classify like their ASCII counterparts.
func fold(r rune) rune {
	p := width.LookupRune(r)
	if p.Kind() == width.EastAsianFullwidth {
		if n := p.Narrow(); n != 0 {
			return n
		}
	}

	return r
}

func classify(r rune) class {
	if unicode.Is(unicode.Han, r) {
		return classHan
	}

	r = fold(r)

	switch {
	case r >= '0' && r <= '9':
		return classDigit
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return classLetter
	default:
		return classOther
	}
}

// Split partitions text into spans. Concatenating the span texts reproduces
// text exactly. An ASCII apostrophe between two letters stays inside the
// letter run so that contractions like "don't" form one span.
func Split(text string) []Span {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	classes := make([]class, len(runes))
	for i, r := range runes {
		classes[i] = classify(r)
	}

	for i, r := range runes {
		if r == '\'' && i > 0 && i+1 < len(runes) &&
			classes[i-1] == classLetter && classes[i+1] == classLetter {
			classes[i] = classLetter
		}
	}

	var spans []Span

	start := 0
	for i := 1; i <= len(runes); i++ {
		if i < len(runes) && classes[i] == classes[start] {
			continue
		}

		s := string(runes[start:i])
		spans = append(spans, Span{Text: s, Lang: Classify(s)})
		start = i
	}

	return spans
}

// Classify assigns a language to a whole span. Chinese wins over numerals,
// numerals over English, and anything else is a symbol.
func Classify(s string) token.Language {
	if s == "" {
		return token.SYM
	}

	switch {
	case all(s, func(r rune) bool { return unicode.Is(unicode.Han, r) }):
		return token.ZH
	case all(s, func(r rune) bool { return unicode.IsDigit(fold(r)) }):
		return token.NUM
	}

	stripped := strings.ReplaceAll(s, "'", "")
	if stripped != "" && all(stripped, isASCIIAlnum) {
		return token.EN
	}

	return token.SYM
}

func isASCIIAlnum(r rune) bool {
	r = unicode.ToLower(fold(r))

	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func all(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}

	return true
}
