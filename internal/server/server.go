// Package server provides the HTTP API for study plans, resume analyses and
// interview question banks.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skillscan/internal/config"
	"github.com/jonathan/skillscan/internal/db"
	"github.com/jonathan/skillscan/internal/fetch"
	"github.com/jonathan/skillscan/internal/interview"
	"github.com/jonathan/skillscan/internal/scoring"
	"github.com/jonathan/skillscan/internal/server/middleware"
	"github.com/jonathan/skillscan/internal/server/ratelimit"
	"github.com/jonathan/skillscan/internal/types"
)

// Store persists generated documents. *db.DB implements it.
type Store interface {
	CreateDocument(ctx context.Context, input *db.DocumentCreateInput) (*db.Document, error)
	GetDocument(ctx context.Context, id uuid.UUID) (*db.Document, error)
	ListDocuments(ctx context.Context, opts db.ListOptions) ([]db.Document, error)
	DeleteDocument(ctx context.Context, id uuid.UUID) error
}

// Generator produces study plans and analyses. *llm.Generator implements it.
type Generator interface {
	StudyPlan(ctx context.Context, role string, weeks int) (string, error)
	Analysis(ctx context.Context, resumeText, jobDescription string, analysisType types.AnalysisType) (string, error)
}

// QuestionSource loads the interview question bank of a role.
type QuestionSource func(ctx context.Context, role string) (*types.InterviewQuestions, error)

// Config holds server configuration
type Config struct {
	Port int
	// JitterPolicy is used for every derived sub-score. Empty means additive.
	JitterPolicy string
	// RateLimit nil reads the RATE_LIMIT_* environment.
	RateLimit *ratelimit.Config
	// JWT, when set, requires a bearer token on the generation routes.
	JWT *config.JWTConfig
	// UseBrowser lets the interview scraper fall back to a headless browser.
	UseBrowser bool
	Logger     *zap.Logger
}

// Deps are the collaborators of the server. Every field is optional: a
// route whose collaborator is missing answers 503.
type Deps struct {
	Store     Store
	Generator Generator
	Questions QuestionSource
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	store       Store
	generator   Generator
	questions   QuestionSource
	policy      scoring.JitterPolicy
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	logger      *zap.Logger
}

// New creates a server. It does not listen until Start or Run.
func New(cfg Config, deps Deps) (*Server, error) {
	policy, err := scoring.ParsePolicy(cfg.JitterPolicy)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		store:     deps.Store,
		generator: deps.Generator,
		questions: deps.Questions,
		policy:    policy,
		logger:    logger,
	}

	if cfg.JWT != nil {
		if err := cfg.JWT.Validate(); err != nil {
			return nil, fmt.Errorf("invalid JWT config: %w", err)
		}
		s.jwtService = NewJWTService(cfg.JWT)
	}

	if s.questions == nil {
		s.questions = cachedQuestionSource(&interview.Options{UseBrowser: cfg.UseBrowser, Logger: logger})
	}

	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}
	s.rateLimiter = ratelimit.NewLimiter(rateConfig)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /classify", s.handleClassify)
	mux.HandleFunc("POST /score", s.handleScore)

	mux.Handle("POST /study-plan", s.protect(s.handleStudyPlan))
	mux.Handle("POST /analyze", s.protect(s.handleAnalyze))

	mux.HandleFunc("GET /interview-questions/roles", s.handleInterviewRoles)
	mux.HandleFunc("POST /interview-questions", s.handleInterviewQuestions)

	mux.HandleFunc("GET /documents", s.handleListDocuments)
	mux.HandleFunc("GET /documents/{id}", s.handleGetDocument)
	mux.Handle("DELETE /documents/{id}", s.protect(s.handleDeleteDocument))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      middleware.RequestID(s.withRateLimit(s.withLogging(s.withCORS(mux)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 180 * time.Second, // generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// cachedQuestionSource scrapes question banks through an in-memory cache
// shared by every request.
func cachedQuestionSource(opts *interview.Options) QuestionSource {
	opts.Cache = fetch.NewCachedFetcher(interview.Loader(opts), fetch.DefaultCacheTTL)
	return func(ctx context.Context, role string) (*types.InterviewQuestions, error) {
		return interview.Fetch(ctx, role, opts)
	}
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start serves until SIGINT or SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Run(ctx)
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.Close()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(shutdownCtx)
	s.Close()
	if err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources. The store is owned by the caller.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}

// protect requires a bearer token on h when JWT is configured.
func (s *Server) protect(h http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return h
	}
	return middleware.RequireBearer(s.jwtService.AsTokenValidator())(h)
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+middleware.RequestIDHeader)
		w.Header().Set("Access-Control-Expose-Headers",
			middleware.RequestIDHeader+", X-RateLimit-Limit, X-RateLimit-Remaining, X-RateLimit-Reset, Retry-After")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit rejects clients over their budget with 429.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowed, info := s.rateLimiter.Allow(s.extractClientID(r), r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, r, info)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder remembers the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// withLogging logs every request once it completes.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
			zap.String("request_id", middleware.RequestIDFrom(r.Context())),
		}
		if rec.status >= http.StatusInternalServerError {
			s.logger.Warn("request failed", fields...)
			return
		}
		s.logger.Info("request", fields...)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status and writes it. Server-side failures are
// logged with the full error.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request error",
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.String("request_id", middleware.RequestIDFrom(r.Context())),
			zap.Error(err))
	}
	s.errorResponse(w, status, errorMessage(err))
}

// extractClientID identifies the caller by its remote IP.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 with the limit that was hit.
func (s *Server) rateLimitResponse(w http.ResponseWriter, r *http.Request, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}
	if info.RetryAfter > 0 {
		seconds := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = seconds
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
	}

	s.logger.Info("rate limit exceeded",
		zap.String("client", s.extractClientID(r)),
		zap.String("path", r.URL.Path),
		zap.Int("limit", info.Limit))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
