package doctor_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-g2p-mix/internal/doctor"
)

// ---------------------------------------------------------------------------
// all-pass scenario
// ---------------------------------------------------------------------------

func TestRun_AllChecksPass(t *testing.T) {
	cfg := doctor.Config{
		Dicts: []doctor.DictFile{
			{Name: "segmenter"},
			{Name: "cmudict", Paths: writeFile(t, "cmudict.txt", "HELLO  HH AH0 L OW1\n")},
		},
		LoadResources: func() error { return nil },
		Smoke:         func(string) (string, error) { return "n i 2 h ao 3", nil },
		SmokeText:     "你好",
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if result.Failed() {
		t.Errorf("expected all checks to pass; failures: %v", result.Failures())
	}

	body := out.String()
	for _, want := range []string{"segmenter dictionary: embedded", "cmudict dictionary:", "lexicon tables: embedded", "你好 -> n i 2 h ao 3"} {
		if !strings.Contains(body, want) {
			t.Errorf("output missing %q:\n%s", want, body)
		}
	}
}

// ---------------------------------------------------------------------------
// dictionary files
// ---------------------------------------------------------------------------

func TestRun_MissingDictionaryFails(t *testing.T) {
	good := writeFile(t, "a.txt", "你好 10 l\n")
	cfg := doctor.Config{
		Dicts: []doctor.DictFile{{Name: "segmenter", Paths: good + ",/nonexistent/b.txt"}},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !result.Failed() {
		t.Fatal("expected failure for missing dictionary")
	}

	if len(result.Failures()) != 1 {
		t.Errorf("want exactly one failure, got %v", result.Failures())
	}

	if !hasFailureContaining(result.Failures(), "segmenter") {
		t.Errorf("expected failure mentioning segmenter, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// lexicon directory
// ---------------------------------------------------------------------------

func TestRun_LexiconDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "neutral_words.txt"), []byte("东西\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var out strings.Builder
	result := doctor.Run(doctor.Config{LexiconDir: dir}, &out)

	if result.Failed() {
		t.Fatalf("unexpected failures: %v", result.Failures())
	}

	if !strings.Contains(out.String(), "overrides: neutral_words.txt") {
		t.Errorf("output should list overrides; got:\n%s", out.String())
	}
}

func TestRun_MissingLexiconDirFails(t *testing.T) {
	var out strings.Builder
	result := doctor.Run(doctor.Config{LexiconDir: "/nonexistent/lexicon"}, &out)

	if !hasFailureContaining(result.Failures(), "lexicon") {
		t.Errorf("expected failure mentioning lexicon, got: %v", result.Failures())
	}
}

// ---------------------------------------------------------------------------
// resource load and smoke conversion
// ---------------------------------------------------------------------------

func TestRun_LoadFailureSkipsSmoke(t *testing.T) {
	smoked := false
	cfg := doctor.Config{
		LoadResources: func() error { return sentinelError("bad jyutping line 3") },
		Smoke: func(string) (string, error) {
			smoked = true
			return "x", nil
		},
	}

	var out strings.Builder
	result := doctor.Run(cfg, &out)

	if !hasFailureContaining(result.Failures(), "resource load") {
		t.Errorf("expected failure mentioning resource load, got: %v", result.Failures())
	}

	if smoked {
		t.Error("smoke conversion should not run after a failed load")
	}
}

func TestRun_SmokeFailures(t *testing.T) {
	tests := []struct {
		name  string
		smoke func(string) (string, error)
	}{
		{"error", func(string) (string, error) { return "", sentinelError("malformed syllable") }},
		{"empty output", func(string) (string, error) { return "  ", nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			result := doctor.Run(doctor.Config{Smoke: tt.smoke, SmokeText: "你好"}, &out)

			if !hasFailureContaining(result.Failures(), "smoke") {
				t.Errorf("expected failure mentioning smoke, got: %v", result.Failures())
			}
		})
	}
}

// ---------------------------------------------------------------------------
// colour-coded output
// ---------------------------------------------------------------------------

func TestRun_OutputContainsPassAndFailMarkers(t *testing.T) {
	cfg := doctor.Config{
		Dicts: []doctor.DictFile{{Name: "jyutping", Paths: "/nonexistent/jyutping.txt"}},
	}

	var out strings.Builder
	doctor.Run(cfg, &out)

	body := out.String()
	if !strings.Contains(body, doctor.PassMark) {
		t.Errorf("output missing pass marker %q:\n%s", doctor.PassMark, body)
	}

	if !strings.Contains(body, doctor.FailMark) {
		t.Errorf("output missing fail marker %q:\n%s", doctor.FailMark, body)
	}
}

func TestResult_AddFailure(t *testing.T) {
	var r doctor.Result
	r.AddFailure("config: bad")

	if !r.Failed() {
		t.Fatal("Failed() = false after AddFailure")
	}

	got := r.Failures()
	got[0] = "mutated"

	if r.Failures()[0] != "config: bad" {
		t.Error("Failures() should return a copy")
	}
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

type sentinelError string

func (e sentinelError) Error() string { return string(e) }

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return p
}

func hasFailureContaining(failures []string, substr string) bool {
	substr = strings.ToLower(substr)
	for _, f := range failures {
		if strings.Contains(strings.ToLower(f), substr) {
			return true
		}
	}

	return false
}
