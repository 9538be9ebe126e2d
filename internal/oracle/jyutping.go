package oracle

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

//go:embed data/jyutping.txt
var jyutpingTable []byte

// JyutpingRomanizer resolves Cantonese readings from a character table.
type JyutpingRomanizer struct {
	readings map[rune]string
}

// LoadJyutping reads a table from path, or the embedded table when path is
// empty.
func LoadJyutping(path string) (*JyutpingRomanizer, error) {
	if path == "" {
		return ParseJyutping(bytes.NewReader(jyutpingTable))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("jyutping table: %w", err)
	}
	defer f.Close()

	return ParseJyutping(f)
}

// ParseJyutping reads lines of "character reading[,reading...]". The first
// reading of a character wins; '#' starts a comment.
func ParseJyutping(r io.Reader) (*JyutpingRomanizer, error) {
	readings := make(map[rune]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if len(fields) < 2 || utf8.RuneCountInString(fields[0]) != 1 {
			return nil, fmt.Errorf("jyutping table line %d: want \"character reading\"", lineNo)
		}

		ch, _ := utf8.DecodeRuneInString(fields[0])
		if _, seen := readings[ch]; seen {
			continue
		}

		reading, _, _ := strings.Cut(fields[1], ",")
		readings[ch] = reading
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("jyutping table: %w", err)
	}

	return &JyutpingRomanizer{readings: readings}, nil
}

func (j *JyutpingRomanizer) Romanize(text string) []string {
	out := make([]string, 0, len(text)/3)
	for _, r := range text {
		out = append(out, j.readings[r])
	}

	return out
}

// Len reports the number of characters in the table.
func (j *JyutpingRomanizer) Len() int { return len(j.readings) }
