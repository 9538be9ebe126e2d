package syllable

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}

	return m
}

// Pinyin tones. 5 marks the neutral tone; 0 is accepted for sources that
// number it that way.
var Tones = set("0", "1", "2", "3", "4", "5")

// StrictInitials are the pinyin initials when y and w are treated as part of
// the final. The empty string is the zero initial.
var StrictInitials = set("b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "zh", "ch", "sh", "r", "z", "s", "c", "")

// Initials adds y and w, which non-strict decomposition keeps as initials.
var Initials = set("b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "h",
	"j", "q", "x", "zh", "ch", "sh", "r", "z", "s", "c", "y", "w", "")

// Finals are the finals produced by non-strict decomposition.
var Finals = set("a", "o", "e", "i", "u", "v", "er", "ai", "ei", "ao", "ou",
	"ia", "ie", "ua", "uo", "ve", "iao", "iu", "uai", "ui", "an", "ian", "uan",
	"en", "in", "ang", "un", "iang", "uang", "eng", "ing", "ong", "iong", "ê",
	"ng", "mg", "ue")

// StrictFinals are the finals produced by strict decomposition.
var StrictFinals = set("a", "o", "e", "i", "u", "v", "er", "ai", "ei", "ao",
	"ou", "ia", "ie", "ua", "uo", "ve", "iao", "iou", "uai", "uei", "an", "ian",
	"uan", "van", "en", "in", "uen", "vn", "ang", "iang", "uang", "eng", "ing",
	"ueng", "ong", "iong", "ê", "ng", "mg", "io")

// PostNasals maps syllabic nasal finals to their table spelling.
var PostNasals = map[string]string{
	"n":  "ng",
	"ng": "ng",
	"m":  "mg",
}

// zeroInitial rewrites y/w spellings to their strict finals.
var zeroInitial = map[string]string{
	"yi": "i", "ya": "ia", "yo": "io", "ye": "ie", "yao": "iao", "you": "iou",
	"yan": "ian", "yin": "in", "yang": "iang", "ying": "ing", "yong": "iong",
	"yu": "v", "yue": "ve", "yuan": "van", "yun": "vn",
	"wu": "u", "wa": "ua", "wo": "uo", "wai": "uai", "wei": "uei", "wan": "uan",
	"wen": "uen", "wang": "uang", "weng": "ueng",
}

// contracted finals spelled short after a consonant initial.
var contracted = map[string]string{
	"iu": "iou",
	"ui": "uei",
	"un": "uen",
}

// Jyutping inventory.
var (
	JyutTones = set("1", "2", "3", "4", "5", "6")
	Onsets    = set("b", "p", "m", "f", "d", "t", "n", "l", "g", "k", "ng", "h",
		"gw", "kw", "w", "z", "c", "s", "j", "")
	Nuclei = set("aa", "a", "i", "yu", "u", "oe", "e", "eo", "o", "m", "ng")
	Codas  = set("p", "t", "k", "m", "n", "ng", "i", "u", "")
)

// pinyin initials ordered so two-letter initials are tried first.
var initialOrder = []string{"zh", "ch", "sh", "b", "p", "m", "f", "d", "t", "n",
	"l", "g", "k", "h", "j", "q", "x", "r", "z", "c", "s", "y", "w"}

var onsetOrder = []string{"gw", "kw", "ng", "b", "p", "m", "f", "d", "t", "n",
	"l", "g", "k", "h", "w", "z", "c", "s", "j", ""}

var nucleusOrder = []string{"aa", "yu", "oe", "eo", "a", "i", "u", "e", "o"}
