package sandhi

import (
	"strings"

	"github.com/example/go-g2p-mix/internal/token"
)

// Merge joins adjacent Chinese tokens. Each incoming token is compared with
// the last token already emitted, so merges chain: 也/很/好 becomes 也很好.
//
//  1. A standalone 不, 很 or 一 absorbs the next word and takes its tag.
//  2. A lone 儿 joins the word before it.
//  3. A word ending in third tone absorbs a following word starting in
//     third tone when the result has at most four characters.
//  4. A verb, 一 and the same verb again become one word (听/一/听).
//
// Only rule 1 changes the tag of the merged token.
func (e *Engine) Merge(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens))

	for i := 0; i < len(tokens); i++ {
		cur, ok := tokens[i].(token.ZhToken)
		if !ok || len(out) == 0 {
			out = append(out, tokens[i])
			continue
		}

		last, ok := out[len(out)-1].(token.ZhToken)
		if !ok {
			out = append(out, cur)
			continue
		}

		switch {
		case isModifier(last):
			out[len(out)-1] = last.Join(cur, cur.POS())
		case cur.Word() == string(diminutive):
			out[len(out)-1] = last.Join(cur, last.POS())
		case last.Tone(last.Len()-1) == '3' && cur.Tone(0) == '3' && last.Len()+cur.Len() <= 4:
			out[len(out)-1] = last.Join(cur, last.POS())
		case cur.Word() == string(numeralOne) && strings.HasPrefix(last.POS(), "v") && i+1 < len(tokens):
			next, ok := tokens[i+1].(token.ZhToken)
			if !ok || next.Word() != last.Word() {
				out = append(out, cur)
				continue
			}

			out[len(out)-1] = last.Join(cur, last.POS()).Join(next, last.POS())
			i++
		default:
			out = append(out, cur)
		}
	}

	return out
}

func isModifier(t token.ZhToken) bool {
	_, ok := modifiers[t.Word()]
	return ok
}
