// Package lexicon holds the word lists consulted by the tone-sandhi rules.
//
// The default tables are embedded in the binary. Load reads a directory of
// override files with the same names; any file that is absent falls back to
// the embedded copy. Tables are immutable once built and safe for concurrent
// use.
package lexicon

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// File names recognised in an override directory.
const (
	NeutralWordsFile    = "neutral_words.txt"
	NotNeutralWordsFile = "not_neutral_words.txt"
	ParticlesFile       = "particles.txt"
)

//go:embed data/*.txt
var embedded embed.FS

// Tables is the set of lexicon lists.
type Tables struct {
	neutral    map[string]struct{}
	notNeutral map[string]struct{}
	particles  map[rune]struct{}
}

// Default returns the embedded tables. It panics only if the binary was
// built without its data files.
func Default() *Tables {
	t, err := build(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded tables: %v", err))
	}

	return t
}

// Load builds tables from dir, using the embedded copy for any list the
// directory does not provide. An empty dir returns the defaults.
func Load(dir string) (*Tables, error) {
	if dir == "" {
		return Default(), nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("lexicon dir: %w", err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("lexicon dir %q is not a directory", dir)
	}

	return build(overlay{dir: os.DirFS(dir)}, ".")
}

// overlay serves files from dir and falls back to the embedded data.
type overlay struct {
	dir fs.FS
}

func (o overlay) Open(name string) (fs.File, error) {
	f, err := o.dir.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return embedded.Open(filepath.ToSlash(filepath.Join("data", name)))
	}

	return f, err
}

func build(fsys fs.FS, root string) (*Tables, error) {
	neutral, err := readWords(fsys, root, NeutralWordsFile)
	if err != nil {
		return nil, err
	}

	notNeutral, err := readWords(fsys, root, NotNeutralWordsFile)
	if err != nil {
		return nil, err
	}

	particleWords, err := readWords(fsys, root, ParticlesFile)
	if err != nil {
		return nil, err
	}

	particles := make(map[rune]struct{}, len(particleWords))
	for w := range particleWords {
		if utf8.RuneCountInString(w) != 1 {
			return nil, fmt.Errorf("%s: particle %q must be a single character", ParticlesFile, w)
		}

		r, _ := utf8.DecodeRuneInString(w)
		particles[r] = struct{}{}
	}

	return &Tables{neutral: neutral, notNeutral: notNeutral, particles: particles}, nil
}

func readWords(fsys fs.FS, root, name string) (map[string]struct{}, error) {
	f, err := fsys.Open(filepath.ToSlash(filepath.Join(root, name)))
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	words, err := parseWords(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return words, nil
}

// parseWords reads whitespace-separated entries. Text after '#' is ignored.
func parseWords(r io.Reader) (map[string]struct{}, error) {
	words := make(map[string]struct{})

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		for _, w := range strings.Fields(line) {
			words[w] = struct{}{}
		}
	}

	return words, scanner.Err()
}

// IsNeutralWord reports whether word's last syllable is inherently neutral.
func (t *Tables) IsNeutralWord(word string) bool {
	_, ok := t.neutral[word]
	return ok
}

// IsNotNeutralWord reports whether word is exempt from neutralisation.
func (t *Tables) IsNotNeutralWord(word string) bool {
	_, ok := t.notNeutral[word]
	return ok
}

// IsParticle reports whether r is a sentence-final particle.
func (t *Tables) IsParticle(r rune) bool {
	_, ok := t.particles[r]
	return ok
}

// Stats reports the size of each list.
func (t *Tables) Stats() (neutral, notNeutral, particles int) {
	return len(t.neutral), len(t.notNeutral), len(t.particles)
}
