package english

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPronouncer(t *testing.T) *Pronouncer {
	t.Helper()

	dict, err := LoadDict("")
	require.NoError(t, err)

	p, err := NewPronouncer(dict, 8)
	require.NoError(t, err)

	return p
}

func TestParseDictFilters(t *testing.T) {
	in := strings.Join([]string{
		";;; comment",
		"HELLO  HH AH0 L OW1",
		"HELLO(1)  HH EH0 L OW1",
		"CAFÉ  K AE0 F EY1",
		"AI  AY1",
		"HUD  HH AH1 D",
		"DON'T  D OW1 N T",
		"broken-line",
	}, "\n")

	dict, err := ParseDict(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, Dict{
		"HELLO": {"HH", "AH0", "L", "OW1"},
		"DON'T": {"D", "OW1", "N", "T"},
	}, dict)
}

func TestPronounce(t *testing.T) {
	p := defaultPronouncer(t)

	tests := []struct {
		word string
		want []string
	}{
		{"hello", []string{"HH", "AH0", "L", "OW1"}},
		{"Hello", []string{"HH", "AH0", "L", "OW1"}},
		{"I'm", []string{"AY1", "M"}},
		{"he’ve", []string{"HH", "IY1", "V"}},
		{"AI", []string{"EY1", "AY1"}},
		{"abc", []string{"EY1", "B", "IY1", "S", "IY1"}},
		{"mp3", []string{"EH1", "M", "P", "IY1", "3"}},
		{"ｈｅｌｌｏ", []string{"HH", "AH0", "L", "OW1"}},
		{"ＡＢＣ", []string{"EY1", "B", "IY1", "S", "IY1"}},
		{"ｍｐ３", []string{"EH1", "M", "P", "IY1", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Pronounce(tt.word))
		})
	}
}

func TestPronounceReturnsCopy(t *testing.T) {
	p := defaultPronouncer(t)

	first := p.Pronounce("world")
	first[0] = "XX"

	assert.Equal(t, []string{"W", "ER1", "L", "D"}, p.Pronounce("world"))
}
