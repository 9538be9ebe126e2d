// Package token defines the units carried through the g2p pipeline.
//
// Chinese tokens keep their characters, part-of-speech tag and syllables
// together so the one-syllable-per-character invariant can only be changed
// atomically. Tokens are values: the tone-edit helpers return a new token
// rather than mutating the receiver.
package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Language identifies the script class of a token.
type Language string

const (
	ZH  Language = "ZH"
	EN  Language = "EN"
	NUM Language = "NUM"
	SYM Language = "SYM"
)

// ErrInvariantViolation marks a Chinese token whose character and syllable
// counts disagree. It indicates a programming defect, not bad input.
var ErrInvariantViolation = errors.New("token invariant violation")

// Token is implemented by ZhToken, EnToken and OtherToken.
type Token interface {
	Word() string
	Lang() Language
	Phones() []string
	isToken()
}

// ZhToken is a Chinese word with one romanized syllable per character.
// A syllable is a romanization with a trailing tone digit, e.g. "hao3".
type ZhToken struct {
	chars  []rune
	pos    string
	phones []string
}

// NewZh builds a Chinese token. The number of syllables must match the
// number of characters in word.
func NewZh(word, pos string, phones []string) (ZhToken, error) {
	chars := []rune(word)
	if len(chars) != len(phones) {
		return ZhToken{}, fmt.Errorf("%w: %q has %d characters but %d syllables",
			ErrInvariantViolation, word, len(chars), len(phones))
	}

	return ZhToken{
		chars:  chars,
		pos:    pos,
		phones: append([]string(nil), phones...),
	}, nil
}

func (ZhToken) isToken() {}

func (t ZhToken) Word() string   { return string(t.chars) }
func (t ZhToken) Lang() Language { return ZH }
func (t ZhToken) POS() string    { return t.pos }
func (t ZhToken) Len() int       { return len(t.chars) }

// Phones returns a copy of the token's syllables.
func (t ZhToken) Phones() []string { return append([]string(nil), t.phones...) }

// Char returns the i-th character, or 0 when i is out of range.
func (t ZhToken) Char(i int) rune {
	if i < 0 || i >= len(t.chars) {
		return 0
	}

	return t.chars[i]
}

// Phone returns the i-th syllable, or "" when i is out of range.
func (t ZhToken) Phone(i int) string {
	if i < 0 || i >= len(t.phones) {
		return ""
	}

	return t.phones[i]
}

// Tone returns the trailing tone digit of the i-th syllable, or 0 when i is
// out of range or the syllable carries no digit.
func (t ZhToken) Tone(i int) byte {
	p := t.Phone(i)
	if p == "" {
		return 0
	}

	last := p[len(p)-1]
	if last < '0' || last > '9' {
		return 0
	}

	return last
}

// WithTone returns a copy of t with the tone digit of syllable i replaced.
// Out-of-range indexes return t unchanged.
func (t ZhToken) WithTone(i int, tone byte) ZhToken {
	p := t.Phone(i)
	if p == "" || t.Tone(i) == tone {
		return t
	}

	phones := t.Phones()
	if t.Tone(i) != 0 {
		p = p[:len(p)-1]
	}

	phones[i] = p + string(tone)
	t.phones = phones

	return t
}

// Join concatenates next onto t, keeping characters and syllables aligned,
// and tags the result with pos.
func (t ZhToken) Join(next ZhToken, pos string) ZhToken {
	chars := make([]rune, 0, len(t.chars)+len(next.chars))
	chars = append(chars, t.chars...)
	chars = append(chars, next.chars...)

	phones := make([]string, 0, len(t.phones)+len(next.phones))
	phones = append(phones, t.phones...)
	phones = append(phones, next.phones...)

	return ZhToken{chars: chars, pos: pos, phones: phones}
}

// Validate reports whether the token still satisfies its alignment invariant.
// The zero value is valid.
func (t ZhToken) Validate() error {
	if len(t.chars) != len(t.phones) {
		return fmt.Errorf("%w: %q has %d characters but %d syllables",
			ErrInvariantViolation, string(t.chars), len(t.chars), len(t.phones))
	}

	return nil
}

func (t ZhToken) String() string {
	return fmt.Sprintf("%s/%s[%s]", t.Word(), t.pos, strings.Join(t.phones, " "))
}

// EnToken is an English word with its ARPAbet phoneme sequence.
type EnToken struct {
	word   string
	phones []string
}

func NewEn(word string, phones []string) EnToken {
	return EnToken{word: word, phones: append([]string(nil), phones...)}
}

func (EnToken) isToken() {}

func (t EnToken) Word() string     { return t.word }
func (t EnToken) Lang() Language   { return EN }
func (t EnToken) Phones() []string { return append([]string(nil), t.phones...) }

// OtherToken is a numeral run or a single symbol character. Its phone
// sequence is the word itself.
type OtherToken struct {
	word string
	lang Language
}

// NewNum builds a numeral token from a run of digits.
func NewNum(word string) OtherToken { return OtherToken{word: word, lang: NUM} }

// NewSym builds a symbol token. Callers pass a single character.
func NewSym(word string) OtherToken { return OtherToken{word: word, lang: SYM} }

func (OtherToken) isToken() {}

func (t OtherToken) Word() string     { return t.word }
func (t OtherToken) Lang() Language   { return t.lang }
func (t OtherToken) Phones() []string { return []string{t.word} }

// Leaf is one entry of the final output: a single character for Chinese
// with its [initial, final, tone] triple, or a whole English, numeral or
// symbol token with its phones. POS is set only on the first leaf of a
// Chinese word.
type Leaf struct {
	Word   string   `json:"word"`
	Lang   Language `json:"lang"`
	POS    string   `json:"pos,omitempty"`
	Phones []string `json:"phones"`
}

// Text concatenates the words of tokens.
func Text(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Word())
	}

	return b.String()
}

// LeafText concatenates the words of leaves.
func LeafText(leaves []Leaf) string {
	var b strings.Builder
	for _, l := range leaves {
		b.WriteString(l.Word)
	}

	return b.String()
}

// RuneLen is a shorthand for utf8.RuneCountInString.
func RuneLen(s string) int { return utf8.RuneCountInString(s) }
