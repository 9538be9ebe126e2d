// Package english pronounces English words as ARPAbet phoneme sequences
// using a CMUdict-format dictionary.
package english

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/width"
)

//go:embed data/cmudict.txt
var embeddedDict []byte

// DefaultCacheSize bounds the pronunciation cache when none is configured.
const DefaultCacheSize = 2048

var headword = regexp.MustCompile(`^[A-Z']+$`)

// Entries in CMUdict that are wrong for the abbreviation reading.
var badEntries = map[string]struct{}{
	"AI":  {},
	"HUD": {},
}

// Dict maps upper-case headwords to phonemes.
type Dict map[string][]string

// LoadDict reads a CMUdict file, or the embedded subset when path is empty.
func LoadDict(path string) (Dict, error) {
	if path == "" {
		return ParseDict(bytes.NewReader(embeddedDict))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cmudict: %w", err)
	}
	defer f.Close()

	return ParseDict(f)
}

// ParseDict reads "WORD  PH1 PH2 ..." lines. Lines starting with ";;;" are
// comments; alternate pronunciations ("WORD(1)") and non-ASCII headwords
// are skipped.
func ParseDict(r io.Reader) (Dict, error) {
	dict := make(Dict)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";;;") {
			continue
		}

		word, phones, ok := strings.Cut(line, "  ")
		if !ok {
			continue
		}

		if !headword.MatchString(word) {
			continue
		}

		if _, bad := badEntries[word]; bad {
			continue
		}

		dict[word] = strings.Fields(phones)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cmudict: %w", err)
	}

	return dict, nil
}

// Pronouncer resolves words against a dictionary with an LRU in front.
type Pronouncer struct {
	dict  Dict
	cache *lru.Cache[string, []string]
}

// NewPronouncer builds a pronouncer. A non-positive cacheSize uses
// DefaultCacheSize.
func NewPronouncer(dict Dict, cacheSize int) (*Pronouncer, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, []string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("pronouncer cache: %w", err)
	}

	return &Pronouncer{dict: dict, cache: cache}, nil
}

// Pronounce returns the phonemes for word. Dictionary words use their
// entry. Anything else, abbreviations included, is spelled letter by letter
// with "A" read as EY1. Digits inside a word pass through unchanged.
func (p *Pronouncer) Pronounce(word string) []string {
	if cached, ok := p.cache.Get(word); ok {
		return append([]string(nil), cached...)
	}

	phones := p.pronounce(word)
	p.cache.Add(word, phones)

	return append([]string(nil), phones...)
}

func (p *Pronouncer) pronounce(word string) []string {
	// Fullwidth letters and digits reach here as EN from the tagger.
	word = width.Narrow.String(word)

	key := strings.ToUpper(strings.ReplaceAll(word, "’", "'"))
	if phones, ok := p.dict[key]; ok {
		return append([]string(nil), phones...)
	}

	return p.spell(word)
}

func (p *Pronouncer) spell(word string) []string {
	var phones []string

	for _, r := range word {
		r = unicode.ToUpper(r)
		switch {
		case r == 'A':
			phones = append(phones, "EY1")
		case r >= 'B' && r <= 'Z':
			if letter, ok := p.dict[string(r)]; ok {
				phones = append(phones, letter...)
			} else {
				phones = append(phones, string(r))
			}
		case r >= '0' && r <= '9':
			phones = append(phones, string(r))
		}
	}

	return phones
}
