package tagger

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/example/go-g2p-mix/internal/token"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		in   string
		want token.Language
	}{
		{"你好", token.ZH},
		{"123", token.NUM},
		{"１２３", token.NUM},
		{"hello", token.EN},
		{"Don't", token.EN},
		{"ＡＢＣ", token.EN},
		{"mp3", token.EN},
		{"，", token.SYM},
		{" ", token.SYM},
		{"'", token.SYM},
		{"", token.SYM},
		{"你a", token.SYM},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.in))
		})
	}
}

func TestSplit(t *testing.T) {
	got := Split("我爱Python编程123！")

	want := []Span{
		{"我爱", token.ZH},
		{"Python", token.EN},
		{"编程", token.ZH},
		{"123", token.NUM},
		{"！", token.SYM},
	}
	assert.Equal(t, want, got)
}

func TestSplitKeepsInternalApostrophe(t *testing.T) {
	got := Split("I'm ok'")

	want := []Span{
		{"I'm", token.EN},
		{" ", token.SYM},
		{"ok", token.EN},
		{"'", token.SYM},
	}
	assert.Equal(t, want, got)
}

func TestSplitReproducesInput(t *testing.T) {
	inputs := []string{
		"",
		"Hello, 世界! 2024年",
		"他说：“OK，没问题。”",
		"  spaced   out  ",
		"ＡＢＣ１２３中文",
	}

	for _, in := range inputs {
		var b strings.Builder
		for _, s := range Split(in) {
			b.WriteString(s.Text)
		}
		assert.Equal(t, in, b.String())
	}
}

func TestSplitEmpty(t *testing.T) {
	assert.Empty(t, Split(""))
}
