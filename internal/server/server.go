// Package server serves the portfolio page, its assets and crawler files over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path"
	"strings"
	"sync/atomic"
	"time"

	"github.com/ragibsmajic/portfolio/internal/rendering"
	"github.com/ragibsmajic/portfolio/internal/server/middleware"
	"github.com/ragibsmajic/portfolio/internal/server/ratelimit"
	build "github.com/ragibsmajic/portfolio/internal/site"
	"github.com/ragibsmajic/portfolio/internal/ui"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	site        atomic.Pointer[rendering.Site]
	static      fs.FS
	rateLimiter *ratelimit.Limiter
	metrics     *Metrics
	logger      *slog.Logger
	handler     http.Handler
	shutdown    time.Duration
}

// Config holds server configuration
type Config struct {
	Port            int
	Host            string
	StaticDir       string
	RateLimit       *ratelimit.Config
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	Logger          *slog.Logger
}

// New creates a new server instance. site may be nil until the first SetSite;
// page routes answer 503 in the meantime.
func New(cfg Config, site *rendering.Site) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = 15 * time.Second
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 30 * time.Second
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = 60 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
		metrics:     NewMetrics(),
		logger:      logger,
		shutdown:    cfg.ShutdownTimeout,
	}
	if site != nil {
		s.SetSite(site)
	}

	if cfg.StaticDir != "" {
		info, err := os.Stat(cfg.StaticDir)
		if err != nil {
			return nil, fmt.Errorf("static directory: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("static directory %s is not a directory", cfg.StaticDir)
		}
		s.static = os.DirFS(cfg.StaticDir)
	}

	mux := http.NewServeMux()
	s.handle(mux, "GET /{$}", s.handlePage)
	s.handle(mux, "GET /projects/{id}", s.handleProject)
	s.handle(mux, "GET /structured-data.json", s.handleStructuredData)
	s.handle(mux, "GET /robots.txt", s.handleRobots)
	s.handle(mux, "GET /sitemap.xml", s.handleSitemap)
	s.handle(mux, "GET /health", s.handleHealth)
	s.handle(mux, "GET /", s.handleStatic)
	mux.Handle("GET /assets/", s.instrument("GET /assets/",
		http.StripPrefix("/assets/", http.FileServerFS(rendering.Assets()))))
	mux.Handle("GET /metrics", s.instrument("GET /metrics", s.metrics.Handler()))

	s.handler = s.withRateLimit(s.withLogging(middleware.RequestID(mux)))
	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port)),
		Handler:           s.handler,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	return s, nil
}

// Handler returns the full middleware chain.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Site returns the site currently served, or nil.
func (s *Server) Site() *rendering.Site {
	return s.site.Load()
}

// SetSite atomically swaps the served site.
func (s *Server) SetSite(site *rendering.Site) {
	s.site.Store(site)
	s.metrics.siteLoaded.SetToCurrentTime()
}

// Reload builds a new site with load and swaps it in. On failure the
// current site keeps being served.
func (s *Server) Reload(load func() (*rendering.Site, error)) error {
	site, err := load()
	s.metrics.ObserveReload(err)
	if err != nil {
		s.logger.Error("Reload failed, keeping current site", slog.String("error", err.Error()))
		return err
	}
	s.SetSite(site)
	s.logger.Info("Site reloaded")
	return nil
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server starting", slog.String("addr", ln.Addr().String()))
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("Server stopped")
	return nil
}

func (s *Server) handle(mux *http.ServeMux, pattern string, h func(http.ResponseWriter, *http.Request) error) {
	mux.Handle(pattern, s.instrument(pattern, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := h(w, r); err != nil {
			s.writeError(w, r, err)
		}
	})))
}

// instrument records request metrics under the route pattern.
func (s *Server) instrument(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		s.metrics.ObserveRequest(route, r.Method, rec.status, time.Since(start))
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(clientID(r), r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			s.metrics.rateLimited.Inc()
			s.rateLimitResponse(w, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)
		s.logger.Info("Request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", rec.status),
			slog.Int("bytes", rec.bytes),
			slog.Duration("duration", time.Since(start)),
			slog.String("remote", r.RemoteAddr),
			slog.String("request_id", rec.Header().Get(middleware.RequestIDHeader)))
	})
}

func (s *Server) current() (*rendering.Site, error) {
	site := s.site.Load()
	if site == nil {
		return nil, &ErrSiteUnavailable{}
	}
	return site, nil
}

// handlePage renders the page for the UI state in the query string.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) error {
	site, err := s.current()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := site.Render(&buf, ui.ParseState(r.URL.Query())); err != nil {
		return err
	}
	return s.htmlResponse(w, http.StatusOK, buf.Bytes())
}

// handleProject renders one project card, used when a card is toggled.
func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) error {
	site, err := s.current()
	if err != nil {
		return err
	}
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		return &ErrBadRequest{Field: "id", Message: "project id is required"}
	}
	var buf bytes.Buffer
	if err := site.RenderProject(&buf, id, ui.ParseState(r.URL.Query())); err != nil {
		return err
	}
	return s.htmlResponse(w, http.StatusOK, buf.Bytes())
}

func (s *Server) handleStructuredData(w http.ResponseWriter, _ *http.Request) error {
	site, err := s.current()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/ld+json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(site.StructuredData()); err != nil {
		s.logger.Error("Error encoding structured data", slog.String("error", err.Error()))
	}
	return nil
}

func (s *Server) handleRobots(w http.ResponseWriter, _ *http.Request) error {
	site, err := s.current()
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = w.Write(build.Robots(site.Options().SEO))
	return err
}

func (s *Server) handleSitemap(w http.ResponseWriter, r *http.Request) error {
	site, err := s.current()
	if err != nil {
		return err
	}
	opts := site.Options()
	if opts.SEO.SiteURL == "" {
		return &ErrNotFound{Path: r.URL.Path}
	}
	data, err := build.Sitemap(opts.SEO.SiteURL, opts.Now())
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, err = w.Write(data)
	return err
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) error {
	if s.site.Load() == nil {
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return nil
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}

// handleStatic serves files from the static directory; anything else is the
// not-found page.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) error {
	if s.static != nil {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if fs.ValidPath(name) {
			if info, err := fs.Stat(s.static, name); err == nil && !info.IsDir() {
				http.ServeFileFS(w, r, s.static, name)
				return nil
			}
		}
	}
	return &ErrNotFound{Path: r.URL.Path}
}

// writeError maps err to a status. Not-found errors render the 404 page.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed",
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.GetRequestID(r)),
			slog.String("error", err.Error()))
	}

	if status == http.StatusNotFound {
		if site := s.site.Load(); site != nil {
			var buf bytes.Buffer
			if renderErr := site.RenderNotFound(&buf); renderErr == nil {
				_ = s.htmlResponse(w, status, buf.Bytes())
				return
			}
		}
	}
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "1")
	}
	http.Error(w, http.StatusText(status), status)
}

func (s *Server) htmlResponse(w http.ResponseWriter, status int, body []byte) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(status)
	_, err := w.Write(body)
	return err
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Error encoding JSON response", slog.String("error", err.Error()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":   "rate_limit_exceeded",
		"message": "Rate limit exceeded. Please try again later.",
		"limit":   info.Limit,
	}
	if info.RetryAfter > 0 {
		seconds := max(1, int(info.RetryAfter.Round(time.Second).Seconds()))
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", fmt.Sprintf("%d", seconds))
	}
	s.logger.Warn("Rate limit exceeded", slog.Int("limit", info.Limit), slog.Duration("retry_after", info.RetryAfter))
	s.jsonResponse(w, http.StatusTooManyRequests, response)
}

// clientID is the remote IP without its port.
func clientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (r *statusRecorder) WriteHeader(code int) {
	if !r.wroteHeader {
		r.status = code
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	n, err := r.ResponseWriter.Write(b)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
