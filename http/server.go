package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/newsgenie"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is closed.
const ShutdownTimeout = 10 * time.Second

// maxRequestBytes caps JSON request bodies. Supplied article content is
// truncated before summarization anyway.
const maxRequestBytes = 1 << 20

// Server serves the JSON API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router

	// Addr is the bind address, e.g. ":7300".
	Addr string

	// Services used by the routes. A nil service makes its routes respond
	// with 503.
	NewsService       newsgenie.NewsService
	ArticleSummarizer newsgenie.ArticleSummarizer

	// SummarizeLimiter throttles POST /api/summarize per client. Optional.
	SummarizeLimiter *ClientLimiter

	// TrustProxy takes the client address from X-Forwarded-For, X-Real-IP
	// or True-Client-IP. Enable only behind a proxy that sets them.
	TrustProxy bool

	Logger *slog.Logger

	// Now returns the current time; overridable in tests.
	Now func() time.Time
}

// NewServer returns a new Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: chi.NewRouter(),
		Logger: slog.New(slog.DiscardHandler),
		Now:    time.Now,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(s.realIP)
	s.router.Use(s.recoverPanic)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/news", s.handleNews)
		r.Get("/search", s.handleSearch)
		r.With(s.limitSummarize).Post("/summarize", s.handleSummarize)
		r.NotFound(s.handleNotFound)
		r.MethodNotAllowed(s.handleNotFound)
	})

	s.server.Handler = s.router
	return s
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open binds Addr and starts serving in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("serve", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

type healthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	HasNewsAPIKey bool   `json:"hasNewsApiKey"`
	HasSummarizer bool   `json:"hasSummarizer"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		Timestamp:     s.Now().UTC().Format(time.RFC3339),
		HasNewsAPIKey: s.NewsService != nil,
		HasSummarizer: s.ArticleSummarizer != nil,
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.NewsService == nil {
		s.Error(w, r, newsgenie.Errorf(newsgenie.EUNAVAILABLE, "NEWSAPI_KEY missing"))
		return
	}

	category := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("category")))
	if category != "" && !newsgenie.ValidCategory(category) {
		s.Error(w, r, newsgenie.Errorf(newsgenie.EINVALID, "unknown category %q", category))
		return
	}

	list, err := s.NewsService.TopHeadlines(r.Context(), category)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		s.Error(w, r, newsgenie.Errorf(newsgenie.EINVALID, "Missing q"))
		return
	}
	if s.NewsService == nil {
		s.Error(w, r, newsgenie.Errorf(newsgenie.EUNAVAILABLE, "NEWSAPI_KEY missing"))
		return
	}

	list, err := s.NewsService.Search(r.Context(), q)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

type summarizeRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	if s.ArticleSummarizer == nil {
		s.Error(w, r, newsgenie.Errorf(newsgenie.EUNAVAILABLE, "summarizer not configured"))
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		s.Error(w, r, newsgenie.Errorf(newsgenie.EINVALID, "invalid JSON body"))
		return
	}

	summary, err := s.ArticleSummarizer.SummarizeArticle(r.Context(), newsgenie.SummarizeRequest{
		URL:     strings.TrimSpace(req.URL),
		Content: req.Content,
	})
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.Error(w, r, newsgenie.Errorf(newsgenie.ENOTFOUND, "API endpoint not found"))
}

// limitSummarize rejects clients that exceed SummarizeLimiter.
func (s *Server) limitSummarize(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.SummarizeLimiter != nil && !s.SummarizeLimiter.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", "1")
			s.Error(w, r, newsgenie.Errorf(newsgenie.ERATELIMIT, "Rate limit exceeded. Please try again later."))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// realIP rewrites RemoteAddr from forwarding headers when TrustProxy is set.
func (s *Server) realIP(next http.Handler) http.Handler {
	forwarded := middleware.RealIP(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.TrustProxy {
			forwarded.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				s.Logger.Error("panic", "method", r.Method, "path", r.URL.Path, "panic", rec)
				s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged and
// their details hidden from the client.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := newsgenie.ErrorCode(err), newsgenie.ErrorMessage(err)
	if code == newsgenie.EINTERNAL {
		s.Logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	s.writeJSON(w, ErrorStatusCode(code), errorResponse{Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Debug("write response", "err", err)
	}
}

var codes = map[string]int{
	newsgenie.EINVALID:     http.StatusBadRequest,
	newsgenie.ENOTFOUND:    http.StatusNotFound,
	newsgenie.ERATELIMIT:   http.StatusTooManyRequests,
	newsgenie.EUNAVAILABLE: http.StatusServiceUnavailable,
	newsgenie.EINTERNAL:    http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// clientKey identifies the caller for rate limiting. With TrustProxy set,
// RemoteAddr already holds the forwarded address.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
