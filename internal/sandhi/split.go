package sandhi

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// splitWord partitions word into two parts using its search-mode candidates.
// The shortest candidate is taken; if it is a prefix of word it becomes the
// first part, otherwise the trailing characters of that length form the
// second part. The parts always concatenate back to word, and the second is
// "" when the candidate spans the whole word.
func splitWord(word string, candidates []string) [2]string {
	if len(candidates) == 0 {
		return [2]string{word, ""}
	}

	sorted := append([]string(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return utf8.RuneCountInString(sorted[i]) < utf8.RuneCountInString(sorted[j])
	})

	first := sorted[0]
	if first == "" {
		return [2]string{word, ""}
	}

	if strings.HasPrefix(word, first) {
		return [2]string{first, word[len(first):]}
	}

	runes := []rune(word)

	k := utf8.RuneCountInString(first)
	if k > len(runes) {
		k = len(runes)
	}

	return [2]string{string(runes[:len(runes)-k]), string(runes[len(runes)-k:])}
}

func (e *Engine) split(word string) [2]string {
	if e.sub == nil {
		return [2]string{word, ""}
	}

	return splitWord(word, e.sub.Subwords(word))
}
