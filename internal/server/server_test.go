package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/go-g2p-mix/internal/g2p"
	"github.com/example/go-g2p-mix/internal/server"
	"github.com/example/go-g2p-mix/internal/token"
)

// stubConverter implements server.Converter for tests and records the
// options of the last call.
type stubConverter struct {
	res      g2p.Result
	err      error
	lastText string
	lastOpts g2p.Options
}

func (s *stubConverter) ConvertText(_ context.Context, text string, opts g2p.Options) (g2p.Result, error) {
	s.lastText = text
	s.lastOpts = opts
	return s.res, s.err
}

func sampleResult() g2p.Result {
	return g2p.Result{Tokens: []token.Leaf{
		{Word: "你", Lang: token.ZH, POS: "l", Phones: []string{"n", "i", "2"}},
		{Word: "好", Lang: token.ZH, Phones: []string{"h", "ao", "3"}},
	}}
}

func postG2P(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/g2p", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)

	return rec
}

// ---------------------------------------------------------------------------
// GET /health
// ---------------------------------------------------------------------------

func TestHealth_Returns200WithStatusOK(t *testing.T) {
	h := server.NewHandler(&stubConverter{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("want status=ok, got %q", body["status"])
	}

	if _, ok := body["version"]; !ok {
		t.Error("want version field in response")
	}
}

// ---------------------------------------------------------------------------
// POST /g2p
// ---------------------------------------------------------------------------

func TestG2P_ReturnsTokens(t *testing.T) {
	conv := &stubConverter{res: sampleResult()}
	h := server.NewHandler(conv)

	rec := postG2P(t, h, `{"text":"你好"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("want 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("want Content-Type application/json, got %q", ct)
	}

	var got g2p.Result
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode body: %v", err)
	}

	if len(got.Tokens) != 2 {
		t.Fatalf("want 2 tokens, got %d", len(got.Tokens))
	}

	if got.Tokens[0].POS != "l" || got.Tokens[1].POS != "" {
		t.Errorf("unexpected POS fields: %+v", got.Tokens)
	}

	if conv.lastText != "你好" {
		t.Errorf("converter got text %q; want 你好", conv.lastText)
	}
}

func TestG2P_OptionsDefaultAndOverride(t *testing.T) {
	tests := []struct {
		name string
		body string
		want g2p.Options
	}{
		{"defaults", `{"text":"你好"}`, g2p.Options{Sandhi: true}},
		{"disable sandhi", `{"text":"你好","sandhi":false}`, g2p.Options{}},
		{"jyut", `{"text":"你好","jyut":true}`, g2p.Options{Jyut: true, Sandhi: true}},
		{"strict", `{"text":"你好","strict":true}`, g2p.Options{Sandhi: true, Strict: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conv := &stubConverter{res: sampleResult()}
			h := server.NewHandler(conv, server.WithDefaults(g2p.Options{Sandhi: true}))

			rec := postG2P(t, h, tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("want 200, got %d", rec.Code)
			}

			if conv.lastOpts != tt.want {
				t.Errorf("options = %+v; want %+v", conv.lastOpts, tt.want)
			}
		})
	}
}

func TestG2P_RejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", `{"text":`, http.StatusBadRequest},
		{"missing text", `{"jyut":true}`, http.StatusBadRequest},
		{"whitespace text", `{"text":"   "}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := server.NewHandler(&stubConverter{})

			rec := postG2P(t, h, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("want %d, got %d", tt.want, rec.Code)
			}

			var errBody map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&errBody); err != nil {
				t.Fatalf("decode error body: %v", err)
			}

			if errBody["error"] == "" {
				t.Error("want non-empty error field")
			}
		})
	}
}

func TestG2P_MethodNotAllowed(t *testing.T) {
	h := server.NewHandler(&stubConverter{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/g2p", nil)
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("want 405, got %d", rec.Code)
	}
}

func TestG2P_ConverterErrorReturns500(t *testing.T) {
	h := server.NewHandler(&stubConverter{err: errors.New("malformed syllable \"hao\"")})

	rec := postG2P(t, h, `{"text":"好"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("want 500, got %d", rec.Code)
	}
}
