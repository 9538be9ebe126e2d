package sandhi

import (
	"unicode/utf8"

	"github.com/example/go-g2p-mix/internal/token"
)

// Apply rewrites tones inside every Chinese token of two or more
// characters. Other tokens pass through unchanged.
func (e *Engine) Apply(tokens []token.Token) []token.Token {
	out := make([]token.Token, len(tokens))

	for i, t := range tokens {
		zh, ok := t.(token.ZhToken)
		if !ok || zh.Len() < 2 {
			out[i] = t
			continue
		}

		parts := e.split(zh.Word())

		zh = negatorTone(zh)
		zh = numeralOneTone(zh)
		zh = e.neutralTone(zh, parts)
		zh = thirdTone(zh, parts)

		out[i] = zh
	}

	return out
}

// negatorTone: 不 in the middle of a three-character word is neutral
// (看不懂); elsewhere 不 before a fourth tone becomes second tone (不怕).
func negatorTone(zh token.ZhToken) token.ZhToken {
	if zh.Len() == 3 && zh.Char(1) == negator {
		return zh.WithTone(1, '5')
	}

	for i := 0; i < zh.Len()-1; i++ {
		if zh.Char(i) == negator && zh.Tone(i+1) == '4' {
			zh = zh.WithTone(i, '2')
		}
	}

	return zh
}

// numeralOneTone: 一 between a reduplicated character is neutral (看一看).
// Otherwise each 一 keeps first tone as a numeral or ordinal, becomes second
// tone before a fourth tone and fourth tone before anything else.
func numeralOneTone(zh token.ZhToken) token.ZhToken {
	if zh.Len() == 3 && zh.Char(1) == numeralOne && zh.Char(0) == zh.Char(2) {
		return zh.WithTone(1, '5')
	}

	n := zh.Len()
	for i := 0; i < n; i++ {
		if zh.Char(i) != numeralOne {
			continue
		}

		_, afterDigit := ordinalContext[zh.Char(i-1)]
		_, beforeOrdinal := ordinalContinuation[zh.Char(i+1)]

		switch {
		case i > 0 && afterDigit:
			zh = zh.WithTone(i, '1')
		case i == n-1 || beforeOrdinal:
			// Ordinal or cardinal cannot be told apart; keep the citation tone.
			zh = zh.WithTone(i, '1')
		case zh.Tone(i+1) == '4':
			zh = zh.WithTone(i, '2')
		case isNeutral(zh.Tone(i+1)) && (zh.Tone(i) == '2' || zh.Tone(i) == '4'):
			// The next syllable was neutralized after 一 was already sandhied.
		default:
			zh = zh.WithTone(i, '4')
		}
	}

	return zh
}

// neutralTone marks the last syllable of a sub-word neutral when the
// sub-word is listed as inherently neutral, ends in 儿, 们 or a sentence
// particle, or is an aspect marker inside a content word.
func (e *Engine) neutralTone(zh token.ZhToken, parts [2]string) token.ZhToken {
	end := 0
	for _, sub := range parts {
		end += utf8.RuneCountInString(sub)
		if sub == "" || e.lex.IsNotNeutralWord(sub) {
			continue
		}

		last, _ := utf8.DecodeLastRuneInString(sub)
		_, aspect := aspectMarkers[sub]

		if e.lex.IsNeutralWord(sub) ||
			last == diminutive || last == pluralMark ||
			e.lex.IsParticle(last) ||
			(aspect && isContentPOS(zh.POS())) {
			zh = zh.WithTone(end-1, '5')
		}
	}

	return zh
}

func isNeutral(tone byte) bool { return tone == '5' || tone == '0' }

func isContentPOS(pos string) bool {
	if pos == "" {
		return false
	}

	switch pos[0] {
	case 'n', 'v', 'a':
		return true
	}

	return false
}

// thirdTone rewrites the first of two adjacent third tones to second tone,
// choosing the pairs by the word's sub-word structure.
func thirdTone(zh token.ZhToken, parts [2]string) token.ZhToken {
	n := zh.Len()

	if n == 2 {
		if allThird(zh, 0, 2) {
			zh = zh.WithTone(0, '2')
		}

		return zh
	}

	if utf8.RuneCountInString(parts[0]) == 1 {
		switch {
		case allThird(zh, 1, 3):
			zh = zh.WithTone(1, '2')
		case allThird(zh, 0, 2):
			zh = zh.WithTone(0, '2')
		}

		return zh
	}

	if allThird(zh, 0, 2) {
		zh = zh.WithTone(0, '2')
	}

	if allThird(zh, 1, 3) && (n <= 3 || !allThird(zh, 2, 4)) {
		zh = zh.WithTone(1, '2')
	}

	if n > 3 && allThird(zh, 2, 4) {
		zh = zh.WithTone(2, '2')
	}

	return zh
}

// allThird reports whether syllables [from, to) are all third tone. The
// range is clipped to the token.
func allThird(zh token.ZhToken, from, to int) bool {
	if to > zh.Len() {
		to = zh.Len()
	}

	for i := from; i < to; i++ {
		if zh.Tone(i) != '3' {
			return false
		}
	}

	return true
}
