// Package testutil provides shared skip helpers for integration tests.
//
// Each helper calls t.Skip with a clear human-readable reason when the named
// prerequisite is absent, so integration tests remain runnable in partial
// environments without failing noisily.
//
// Typical usage:
//
//	func TestFullDictionary(t *testing.T) {
//	    path := testutil.RequireDictionary(t, testutil.EnvSegmenterDict)
//	    ...
//	}
package testutil

import (
	"os"
	"testing"
)

// Environment variables naming full dictionaries for integration tests. They
// share names with the config keys so one export serves both.
const (
	EnvSegmenterDict = "G2PMIX_DICT_SEGMENTER_PATH"
	EnvJyutpingDict  = "G2PMIX_DICT_JYUTPING_PATH"
	EnvCMUDict       = "G2PMIX_DICT_CMUDICT_PATH"
	EnvLexiconDir    = "G2PMIX_DICT_LEXICON_DIR"
)

// RequireFile skips the test if path does not name a readable, non-empty file.
func RequireFile(tb testing.TB, path string) {
	tb.Helper()

	info, err := os.Stat(path)
	if err != nil {
		tb.Skipf("file %q not available: %v", path, err)
		return
	}

	if info.IsDir() || info.Size() == 0 {
		tb.Skipf("file %q is not a non-empty regular file", path)
	}
}

// RequireDictionary skips the test unless the environment variable env names
// an existing dictionary file, and returns that path.
func RequireDictionary(tb testing.TB, env string) string {
	tb.Helper()

	path := os.Getenv(env)
	if path == "" {
		tb.Skipf("full dictionary not configured; set %s", env)
		return ""
	}

	RequireFile(tb, path)

	return path
}

// RequireDir skips the test unless the environment variable env names an
// existing directory, and returns that path.
func RequireDir(tb testing.TB, env string) string {
	tb.Helper()

	path := os.Getenv(env)
	if path == "" {
		tb.Skipf("directory not configured; set %s", env)
		return ""
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		tb.Skipf("%s=%q is not a directory", env, path)
	}

	return path
}
