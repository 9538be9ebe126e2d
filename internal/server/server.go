package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/example/go-g2p-mix/internal/config"
	"github.com/example/go-g2p-mix/internal/g2p"
	"github.com/example/go-g2p-mix/internal/text"
)

// ParseLogLevel converts a case-insensitive level string to slog.Level.
// An empty string returns slog.LevelInfo. Unknown strings return an error.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q (want debug|info|warn|error)", s)
	}
}

// Converter turns text into phoneme leaves.
type Converter interface {
	ConvertText(ctx context.Context, text string, opts g2p.Options) (g2p.Result, error)
}

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxTextBytes   int
	workers        int
	requestTimeout time.Duration
	defaults       g2p.Options
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextBytes:   4096,
		workers:        8,
		requestTimeout: 10 * time.Second,
		defaults:       g2p.Options{Sandhi: true},
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxTextBytes sets the maximum allowed text length in bytes for POST /g2p.
func WithMaxTextBytes(n int) Option {
	return func(o *options) { o.maxTextBytes = n }
}

// WithWorkers sets the maximum number of concurrent conversions.
// Zero disables throttling.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request conversion deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithDefaults sets the conversion options used for fields a request omits.
func WithDefaults(opts g2p.Options) Option {
	return func(o *options) { o.defaults = opts }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

// handler holds the dependencies needed to serve HTTP requests.
type handler struct {
	conv Converter
	opts options
	sem  chan struct{} // semaphore for worker pool
	log  *slog.Logger
}

// NewHandler returns an http.Handler that serves /health and POST /g2p.
func NewHandler(conv Converter, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		conv: conv,
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/g2p", h.handleG2P)
	return mux
}

func buildVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func (h *handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildVersion(),
	})
}

// g2pRequest carries optional mode flags; nil falls back to the server
// defaults.
type g2pRequest struct {
	Text   string `json:"text"`
	Jyut   *bool  `json:"jyut"`
	Sandhi *bool  `json:"sandhi"`
	Strict *bool  `json:"strict"`
}

func (r g2pRequest) options(defaults g2p.Options) g2p.Options {
	opts := defaults
	if r.Jyut != nil {
		opts.Jyut = *r.Jyut
	}
	if r.Sandhi != nil {
		opts.Sandhi = *r.Sandhi
	}
	if r.Strict != nil {
		opts.Strict = *r.Strict
	}
	return opts
}

func (h *handler) handleG2P(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	var req g2pRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text field is required")
		return
	}

	if len(req.Text) > h.opts.maxTextBytes {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("text exceeds maximum size of %d bytes", h.opts.maxTextBytes))
		return
	}

	// Acquire a worker slot, honouring cancellation while waiting.
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
		defer func() { <-h.sem }()
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.opts.requestTimeout)
	defer cancel()

	opts := req.options(h.opts.defaults)

	start := time.Now()
	res, err := h.conv.ConvertText(ctx, req.Text, opts)
	durationMS := time.Since(start).Milliseconds()

	if err != nil {
		attrs := []any{
			slog.Int("text_len", len(req.Text)),
			slog.Bool("jyut", opts.Jyut),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", err.Error()),
		}

		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
			h.log.WarnContext(r.Context(), "conversion timed out", attrs...)
			writeError(w, http.StatusGatewayTimeout, "conversion timed out")
		case errors.Is(err, text.ErrEmptyText):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.ErrorContext(r.Context(), "conversion failed", attrs...)
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.log.InfoContext(r.Context(), "conversion complete",
		slog.Int("text_len", len(req.Text)),
		slog.Bool("jyut", opts.Jyut),
		slog.Int64("duration_ms", durationMS),
		slog.Int("tokens", len(res.Tokens)),
		slog.Int("unresolved", len(res.Unresolved)),
	)

	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server: wires handler into net/http.Server with graceful shutdown
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	conv            Converter
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

// New builds a server. A nil conv loads the engine from cfg on Start.
func New(cfg config.Config, conv Converter) *Server {
	return &Server{
		cfg:             cfg,
		conv:            conv,
		logger:          slog.Default(),
		shutdownTimeout: time.Duration(cfg.Server.ShutdownTimeout) * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// WithLogger sets the logger passed to the handler and engine.
func (s *Server) WithLogger(l *slog.Logger) *Server {
	if l != nil {
		s.logger = l
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	conv, err := s.converter()
	if err != nil {
		return err
	}

	h := NewHandler(conv,
		WithWorkers(s.cfg.Server.Workers),
		WithMaxTextBytes(s.cfg.Server.MaxTextBytes),
		WithRequestTimeout(time.Duration(s.cfg.Server.RequestTimeout)*time.Second),
		WithDefaults(g2p.Options{Jyut: s.cfg.G2P.Jyut, Sandhi: s.cfg.G2P.Sandhi, Strict: s.cfg.G2P.Strict}),
		WithLogger(s.logger),
	)

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.Info("listening", "addr", s.cfg.Server.ListenAddr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

func (s *Server) converter() (Converter, error) {
	if s.conv != nil {
		return s.conv, nil
	}

	res, err := g2p.LoadResources(s.cfg.Dict)
	if err != nil {
		return nil, fmt.Errorf("load resources: %w", err)
	}

	engine, err := g2p.New(res, g2p.WithLogger(s.logger), g2p.WithWorkers(s.cfg.G2P.Workers))
	if err != nil {
		return nil, fmt.Errorf("initialize engine: %w", err)
	}

	return engine, nil
}

// ProbeHTTP checks GET /health on addr and returns the reported version.
// A zero timeout means no client deadline.
func ProbeHTTP(addr string, timeout time.Duration) (string, error) {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get("http://" + addr + "/health") //nolint:noctx
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected health status: %s", resp.Status)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode health response: %w", err)
	}
	if body["status"] != "ok" {
		return "", fmt.Errorf("unexpected health body status %q", body["status"])
	}
	return body["version"], nil
}
