package oracle

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/huichen/sego"
)

//go:embed data/segmenter_dict.txt
var segmenterDict []byte

// SegoSegmenter is a dictionary segmenter backed by sego.
type SegoSegmenter struct {
	seg *sego.Segmenter
}

// NewSegoSegmenter loads the given dictionary files. With no paths the
// embedded dictionary is used. Dictionary lines are "word frequency pos".
func NewSegoSegmenter(paths ...string) (*SegoSegmenter, error) {
	files := make([]string, 0, len(paths))
	for _, p := range paths {
		if p = strings.TrimSpace(p); p == "" {
			continue
		}

		// sego exits the process on a missing file, so check first.
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("segmenter dictionary: %w", err)
		}

		files = append(files, p)
	}

	if len(files) == 0 {
		tmp, err := writeEmbeddedDict()
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp)

		files = append(files, tmp)
	}

	s := &SegoSegmenter{seg: new(sego.Segmenter)}
	s.seg.LoadDictionary(strings.Join(files, ","))

	return s, nil
}

func writeEmbeddedDict() (string, error) {
	f, err := os.CreateTemp("", "g2pmix-dict-*.txt")
	if err != nil {
		return "", fmt.Errorf("segmenter dictionary: %w", err)
	}

	if _, err := f.Write(segmenterDict); err != nil {
		f.Close()
		os.Remove(f.Name())

		return "", fmt.Errorf("segmenter dictionary: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("segmenter dictionary: %w", err)
	}

	return f.Name(), nil
}

// Segment splits text into tagged words. Words are sliced from text by byte
// offset so the output always covers the input exactly.
func (s *SegoSegmenter) Segment(text string) []WordPOS {
	if text == "" {
		return nil
	}

	segs := s.seg.Segment([]byte(text))
	out := make([]WordPOS, 0, len(segs))

	for _, seg := range segs {
		pos := seg.Token().Pos()
		if pos == "" {
			pos = "x"
		}

		out = append(out, WordPOS{Word: text[seg.Start():seg.End()], POS: pos})
	}

	return out
}

// Subwords returns search-mode candidates for word. For every segmented
// word longer than two characters, its dictionary bigrams are listed, then
// for words longer than three its dictionary trigrams, then the word itself.
func (s *SegoSegmenter) Subwords(word string) []string {
	var out []string

	for _, wp := range s.Segment(word) {
		runes := []rune(wp.Word)
		for _, n := range []int{2, 3} {
			if len(runes) <= n {
				continue
			}

			for i := 0; i+n <= len(runes); i++ {
				if gram := string(runes[i : i+n]); s.known(gram) {
					out = append(out, gram)
				}
			}
		}

		out = append(out, wp.Word)
	}

	return out
}

// known reports whether the dictionary holds word as a single entry.
func (s *SegoSegmenter) known(word string) bool {
	if utf8.RuneCountInString(word) < 2 {
		return false
	}

	segs := s.seg.Segment([]byte(word))

	return len(segs) == 1 && segs[0].Token().Text() == word
}
