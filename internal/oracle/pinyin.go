package oracle

import (
	"github.com/mozillazg/go-pinyin"
)

// PinyinRomanizer resolves Mandarin readings with go-pinyin. Neutral-tone
// readings come back without a digit and are given tone 5.
type PinyinRomanizer struct {
	args pinyin.Args
}

func NewPinyinRomanizer() *PinyinRomanizer {
	args := pinyin.NewArgs()
	args.Style = pinyin.Tone3
	args.Fallback = func(rune, pinyin.Args) []string { return nil }

	return &PinyinRomanizer{args: args}
}

func (p *PinyinRomanizer) Romanize(text string) []string {
	out := make([]string, 0, len(text)/3)

	for _, r := range text {
		pys := pinyin.SinglePinyin(r, p.args)
		if len(pys) == 0 || pys[0] == "" {
			out = append(out, "")
			continue
		}

		out = append(out, WithNeutralTone(pys[0]))
	}

	return out
}

// WithNeutralTone appends tone 5 to a syllable that carries no tone digit.
func WithNeutralTone(syl string) string {
	if syl == "" {
		return syl
	}

	if last := syl[len(syl)-1]; last >= '0' && last <= '9' {
		return syl
	}

	return syl + "5"
}
