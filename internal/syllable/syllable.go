// Package syllable decomposes romanized syllables into an initial, a final
// and a tone digit.
package syllable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedSyllable is wrapped by every decomposition failure.
var ErrMalformedSyllable = errors.New("malformed syllable")

// Error reports a syllable that cannot be decomposed against the tables.
type Error struct {
	Syllable string
	Reason   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("malformed syllable %q: %s", e.Syllable, e.Reason)
}

func (e *Error) Unwrap() error { return ErrMalformedSyllable }

// Syllable is a decomposed syllable. For Cantonese, Initial holds the onset
// and Final the rime.
type Syllable struct {
	Initial string
	Final   string
	Tone    int
}

// Phones returns the [initial, final, tone] triple used in leaf output.
func (s Syllable) Phones() []string {
	return []string{s.Initial, s.Final, strconv.Itoa(s.Tone)}
}

func splitTone(s string, tones map[string]struct{}) (string, int, error) {
	if s == "" {
		return "", 0, &Error{Syllable: s, Reason: "empty"}
	}

	body, digit := s[:len(s)-1], s[len(s)-1:]
	if _, ok := tones[digit]; !ok {
		return "", 0, &Error{Syllable: s, Reason: "missing or invalid tone digit"}
	}

	if body == "" {
		return "", 0, &Error{Syllable: s, Reason: "no body before tone"}
	}

	tone, _ := strconv.Atoi(digit)

	return body, tone, nil
}

// ParsePinyin decomposes a numbered pinyin syllable such as "zhong1". With
// strict set, y and w are folded into the final and contracted spellings are
// expanded (you -> iou, jun -> vn, gui -> uei). Otherwise y and w stay as
// initials and the written final is kept.
func ParsePinyin(s string, strict bool) (Syllable, error) {
	body, tone, err := splitTone(strings.ToLower(s), Tones)
	if err != nil {
		return Syllable{}, err
	}

	if f, ok := PostNasals[body]; ok {
		return Syllable{Final: f, Tone: tone}, nil
	}

	var initial, final string
	if strict {
		initial, final = strictSplit(body)
	} else {
		initial, final = looseSplit(body)
	}

	if f, ok := PostNasals[final]; ok {
		final = f
	}

	initials, finals := Initials, Finals
	if strict {
		initials, finals = StrictInitials, StrictFinals
	}

	if _, ok := initials[initial]; !ok {
		return Syllable{}, &Error{Syllable: s, Reason: fmt.Sprintf("unknown initial %q", initial)}
	}

	if _, ok := finals[final]; !ok {
		return Syllable{}, &Error{Syllable: s, Reason: fmt.Sprintf("unknown final %q", final)}
	}

	return Syllable{Initial: initial, Final: final, Tone: tone}, nil
}

func looseSplit(body string) (string, string) {
	for _, in := range initialOrder {
		if strings.HasPrefix(body, in) && len(body) > len(in) {
			return in, body[len(in):]
		}
	}

	return "", body
}

func strictSplit(body string) (string, string) {
	if f, ok := zeroInitial[body]; ok {
		return "", f
	}

	initial, final := looseSplit(body)
	switch initial {
	case "y", "w":
		// Unlisted y/w spelling; leave it for the table check to reject.
		return initial, final
	case "j", "q", "x":
		if strings.HasPrefix(final, "u") {
			final = "v" + final[1:]
		}
	}

	if f, ok := contracted[final]; ok {
		final = f
	}

	return initial, final
}

// ParseJyutping decomposes a jyutping syllable such as "gwong2" into onset,
// rime and tone.
func ParseJyutping(s string) (Syllable, error) {
	body, tone, err := splitTone(strings.ToLower(s), JyutTones)
	if err != nil {
		return Syllable{}, err
	}

	for _, onset := range onsetOrder {
		if !strings.HasPrefix(body, onset) {
			continue
		}

		rime := body[len(onset):]
		if validRime(rime) {
			return Syllable{Initial: onset, Final: rime, Tone: tone}, nil
		}
	}

	return Syllable{}, &Error{Syllable: s, Reason: "no onset/rime decomposition"}
}

func validRime(rime string) bool {
	if rime == "m" || rime == "ng" {
		return true
	}

	for _, n := range nucleusOrder {
		if !strings.HasPrefix(rime, n) {
			continue
		}

		if _, ok := Codas[rime[len(n):]]; ok {
			return true
		}
	}

	return false
}
