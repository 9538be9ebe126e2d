// Package doctor provides environment preflight checks for g2pmix.
package doctor

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// lexiconFiles are the override files a lexicon directory may carry.
var lexiconFiles = []string{"neutral_words.txt", "not_neutral_words.txt", "particles.txt"}

// DictFile names a dictionary and the configured path list. An empty Paths
// means the embedded copy is used.
type DictFile struct {
	Name string
	// Paths is a comma-separated list, as accepted by the segmenter.
	Paths string
}

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Dicts are the dictionary files to verify on disk.
	Dicts []DictFile
	// LexiconDir is the optional lexicon override directory.
	LexiconDir string
	// LoadResources loads every dictionary. Nil skips the check.
	LoadResources func() error
	// Smoke converts SmokeText and returns the rendered phones. Nil skips the check.
	Smoke     func(text string) (string, error)
	SmokeText string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- dictionary files -------------------------------------------------
	for _, d := range cfg.Dicts {
		paths := splitPaths(d.Paths)
		if len(paths) == 0 {
			fmt.Fprintf(w, "%s %s dictionary: embedded\n", PassMark, d.Name)
			continue
		}

		for _, p := range paths {
			if err := checkFile(p); err != nil {
				res.fail(fmt.Sprintf("%s dictionary %q: %v", d.Name, p, err))
				fmt.Fprintf(w, "%s %s dictionary %s: %v\n", FailMark, d.Name, p, err)
			} else {
				fmt.Fprintf(w, "%s %s dictionary: %s\n", PassMark, d.Name, p)
			}
		}
	}

	// ---- lexicon directory ------------------------------------------------
	if cfg.LexiconDir == "" {
		fmt.Fprintf(w, "%s lexicon tables: embedded\n", PassMark)
	} else if info, err := os.Stat(cfg.LexiconDir); err != nil || !info.IsDir() {
		res.fail(fmt.Sprintf("lexicon dir %q: not a readable directory", cfg.LexiconDir))
		fmt.Fprintf(w, "%s lexicon dir %s: not a readable directory\n", FailMark, cfg.LexiconDir)
	} else {
		found := overrides(cfg.LexiconDir)
		fmt.Fprintf(w, "%s lexicon dir: %s (overrides: %s)\n", PassMark, cfg.LexiconDir, describe(found))
	}

	// ---- resource load ----------------------------------------------------
	if cfg.LoadResources == nil {
		fmt.Fprintf(w, "%s resource load: skipped\n", PassMark)
	} else if err := cfg.LoadResources(); err != nil {
		res.fail(fmt.Sprintf("resource load: %v", err))
		fmt.Fprintf(w, "%s resource load: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s resource load: ok\n", PassMark)
	}

	// ---- smoke conversion -------------------------------------------------
	if cfg.Smoke == nil || res.Failed() {
		fmt.Fprintf(w, "%s smoke conversion: skipped\n", PassMark)
		return res
	}

	out, err := cfg.Smoke(cfg.SmokeText)
	switch {
	case err != nil:
		res.fail(fmt.Sprintf("smoke conversion: %v", err))
		fmt.Fprintf(w, "%s smoke conversion: %v\n", FailMark, err)
	case strings.TrimSpace(out) == "":
		res.fail("smoke conversion: empty output")
		fmt.Fprintf(w, "%s smoke conversion: empty output\n", FailMark)
	default:
		fmt.Fprintf(w, "%s smoke conversion: %s -> %s\n", PassMark, cfg.SmokeText, out)
	}

	return res
}

func checkFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("not found")
	}
	if info.IsDir() {
		return fmt.Errorf("is a directory")
	}
	if info.Size() == 0 {
		return fmt.Errorf("empty file")
	}
	return nil
}

// overrides lists the lexicon files present in dir.
func overrides(dir string) []string {
	var found []string
	for _, name := range lexiconFiles {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			found = append(found, name)
		}
	}
	return found
}

func describe(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}

func splitPaths(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
