package g2p

import (
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/go-g2p-mix/internal/config"
	"github.com/example/go-g2p-mix/internal/token"
)

var (
	embeddedOnce sync.Once
	embeddedRes  *Resources
	embeddedErr  error
)

// embeddedResources loads the default dictionaries once per test binary.
func embeddedResources(t *testing.T) *Resources {
	t.Helper()

	embeddedOnce.Do(func() {
		embeddedRes, embeddedErr = LoadResources(config.DictConfig{CacheSize: 64})
	})
	require.NoError(t, embeddedErr)

	return embeddedRes
}

func TestLoadResourcesMissingPaths(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")

	for _, cfg := range []config.DictConfig{
		{SegmenterPath: missing, CacheSize: 8},
		{JyutpingPath: missing, CacheSize: 8},
		{CMUDictPath: missing, CacheSize: 8},
		{LexiconDir: missing, CacheSize: 8},
	} {
		_, err := LoadResources(cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}

func TestEmbeddedResourcesThirdTone(t *testing.T) {
	e, err := New(embeddedResources(t))
	require.NoError(t, err)

	res, err := e.Convert("你好", Options{Sandhi: true})
	require.NoError(t, err)

	require.Len(t, res.Tokens, 2)
	assert.Equal(t, []string{"n", "i", "2"}, res.Tokens[0].Phones)
	assert.Equal(t, []string{"h", "ao", "3"}, res.Tokens[1].Phones)
}

func TestEmbeddedResourcesMixedText(t *testing.T) {
	e, err := New(embeddedResources(t))
	require.NoError(t, err)

	in := "我爱Python编程，hello world！"

	res, err := e.Convert(in, Options{Sandhi: true})
	require.NoError(t, err)
	assert.Equal(t, in, token.LeafText(res.Tokens))
	assert.Empty(t, res.Unresolved)

	for _, l := range res.Tokens {
		if l.Lang == token.ZH {
			assert.Len(t, l.Phones, 3, l.Word)
		}
	}
}

func TestEmbeddedResourcesJyut(t *testing.T) {
	e, err := New(embeddedResources(t))
	require.NoError(t, err)

	res, err := e.Convert("你好", Options{Jyut: true})
	require.NoError(t, err)

	require.Len(t, res.Tokens, 2)
	assert.Equal(t, []string{"n", "ei", "5"}, res.Tokens[0].Phones)
	assert.Equal(t, []string{"h", "ou", "2"}, res.Tokens[1].Phones)
}

func phonesOf(leaves []token.Leaf, word string) []string {
	for _, l := range leaves {
		if l.Word == word {
			return l.Phones
		}
	}

	return nil
}

func TestEmbeddedResourcesSandhi(t *testing.T) {
	e, err := New(embeddedResources(t))
	require.NoError(t, err)

	tests := []struct {
		in   string
		char string
		want []string
	}{
		{"看不懂", "不", []string{"b", "u", "5"}},
		{"看一看", "一", []string{"y", "i", "5"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			res, err := e.Convert(tt.in, Options{Sandhi: true})
			require.NoError(t, err)

			require.Len(t, res.Tokens, 3)
			assert.Equal(t, tt.want, phonesOf(res.Tokens, tt.char))
		})
	}
}

func TestEmbeddedResourcesFullwidthEnglish(t *testing.T) {
	e, err := New(embeddedResources(t))
	require.NoError(t, err)

	res, err := e.Convert("说ｈｅｌｌｏ，ＡＢＣ", Options{Sandhi: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"HH", "AH0", "L", "OW1"}, phonesOf(res.Tokens, "ｈｅｌｌｏ"))
	assert.Equal(t, []string{"EY1", "B", "IY1", "S", "IY1"}, phonesOf(res.Tokens, "ＡＢＣ"))
}

func TestEmbeddedResourcesJyutCoverage(t *testing.T) {
	e, err := New(embeddedResources(t))
	require.NoError(t, err)

	res, err := e.Convert("绿色老虎好难懂", Options{Jyut: true})
	require.NoError(t, err)

	assert.Empty(t, res.Unresolved)
	assert.Equal(t, []string{"l", "uk", "6"}, phonesOf(res.Tokens, "绿"))
	assert.Equal(t, []string{"s", "ik", "1"}, phonesOf(res.Tokens, "色"))
	assert.Equal(t, []string{"d", "ung", "2"}, phonesOf(res.Tokens, "懂"))
}
