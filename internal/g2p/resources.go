package g2p

import (
	"fmt"
	"strings"

	"github.com/example/go-g2p-mix/internal/assemble"
	"github.com/example/go-g2p-mix/internal/config"
	"github.com/example/go-g2p-mix/internal/english"
	"github.com/example/go-g2p-mix/internal/lexicon"
	"github.com/example/go-g2p-mix/internal/oracle"
)

// Resources bundles the dictionaries and oracles an Engine consults. They
// are loaded once and shared read-only by every conversion.
type Resources struct {
	Segmenter oracle.Segmenter
	Subwords  oracle.SubwordSegmenter
	Pinyin    oracle.Romanizer
	Jyutping  oracle.Romanizer
	English   assemble.Pronouncer
	Lexicon   *lexicon.Tables
}

// LoadResources builds the default resource set, reading any dictionary
// paths set in cfg and falling back to the embedded data otherwise.
func LoadResources(cfg config.DictConfig) (*Resources, error) {
	seg, err := oracle.NewSegoSegmenter(splitPaths(cfg.SegmenterPath)...)
	if err != nil {
		return nil, fmt.Errorf("load segmenter: %w", err)
	}

	subwords, err := oracle.NewCachedSubwords(seg, cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("sub-word cache: %w", err)
	}

	jyut, err := oracle.LoadJyutping(cfg.JyutpingPath)
	if err != nil {
		return nil, fmt.Errorf("load jyutping: %w", err)
	}

	dict, err := english.LoadDict(cfg.CMUDictPath)
	if err != nil {
		return nil, fmt.Errorf("load cmudict: %w", err)
	}

	en, err := english.NewPronouncer(dict, cfg.CacheSize)
	if err != nil {
		return nil, err
	}

	lex, err := lexicon.Load(cfg.LexiconDir)
	if err != nil {
		return nil, fmt.Errorf("load lexicon: %w", err)
	}

	return &Resources{
		Segmenter: seg,
		Subwords:  subwords,
		Pinyin:    oracle.NewPinyinRomanizer(),
		Jyutping:  jyut,
		English:   en,
		Lexicon:   lex,
	}, nil
}

func splitPaths(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	return strings.Split(raw, ",")
}
