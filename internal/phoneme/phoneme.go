// Package phoneme flattens tokens into per-character output leaves.
package phoneme

import (
	"fmt"

	"github.com/example/go-g2p-mix/internal/syllable"
	"github.com/example/go-g2p-mix/internal/token"
)

// Scheme selects how Chinese syllables are decomposed.
type Scheme int

const (
	Pinyin Scheme = iota
	StrictPinyin
	Jyutping
)

// Splitter turns tokens into leaves. Each Chinese token yields one leaf per
// character carrying its [initial, final, tone] triple; the token's tag is
// kept on the first leaf only. Other tokens map to a single leaf.
type Splitter struct {
	Scheme Scheme
}

func (s Splitter) Split(tokens []token.Token) ([]token.Leaf, error) {
	leaves := make([]token.Leaf, 0, len(tokens))

	for _, t := range tokens {
		zh, ok := t.(token.ZhToken)
		if !ok {
			leaves = append(leaves, token.Leaf{Word: t.Word(), Lang: t.Lang(), Phones: t.Phones()})
			continue
		}

		if err := zh.Validate(); err != nil {
			return nil, err
		}

		for i := 0; i < zh.Len(); i++ {
			syl, err := s.decompose(zh.Phone(i))
			if err != nil {
				return nil, fmt.Errorf("%q in %q: %w", string(zh.Char(i)), zh.Word(), err)
			}

			leaf := token.Leaf{Word: string(zh.Char(i)), Lang: token.ZH, Phones: syl.Phones()}
			if i == 0 {
				leaf.POS = zh.POS()
			}

			leaves = append(leaves, leaf)
		}
	}

	return leaves, nil
}

func (s Splitter) decompose(phone string) (syllable.Syllable, error) {
	switch s.Scheme {
	case Jyutping:
		return syllable.ParseJyutping(phone)
	case StrictPinyin:
		return syllable.ParsePinyin(phone, true)
	default:
		return syllable.ParsePinyin(phone, false)
	}
}
