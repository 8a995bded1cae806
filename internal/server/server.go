package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/parsing"
	"github.com/jonathan/skill-matcher/internal/server/middleware"
	"github.com/jonathan/skill-matcher/internal/server/ratelimit"
	"github.com/jonathan/skill-matcher/internal/skillgap"
	"github.com/jonathan/skill-matcher/internal/types"
)

// Store is the persistence the HTTP API needs: stored resumes and the job catalog.
// *db.DB implements it.
type Store interface {
	skillgap.ResumeStore
	skillgap.JobCatalog
	CreateResume(ctx context.Context, input *db.ResumeCreateInput) (*types.StoredResume, error)
	GetResumeByOwner(ctx context.Context, ownerID uuid.UUID) (*types.StoredResume, error)
	ListResumesByOwner(ctx context.Context, ownerID uuid.UUID) ([]types.ResumeSummary, error)
	DeleteResume(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	store       Store
	closeStore  func()
	rateLimiter *ratelimit.Limiter
	extractor   *parsing.Extractor
	skillGap    *skillgap.Service

	maxUploadBytes int64
	uploadDir      string
}

// New connects to the database named in cfg and creates a server backed by it.
// JWT settings are read from the environment.
func New(cfg config.Config) (*Server, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.EnsureSchema(ctx); err != nil {
		database.Close()
		return nil, err
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	jwtService := NewJWTService(jwtConfig)

	s, err := NewWithStore(cfg, database, jwtService.AsTokenValidator(), nil)
	if err != nil {
		database.Close()
		return nil, err
	}
	s.closeStore = database.Close
	return s, nil
}

// NewWithStore creates a server over an existing store. A nil rlConfig loads
// rate limits from the environment, taking the default rate from cfg unless
// RATE_LIMIT_RPS is set.
func NewWithStore(cfg config.Config, store Store, tokens middleware.TokenValidator, rlConfig *ratelimit.Config) (*Server, error) {
	cfg = cfg.MergeWithDefaults(config.Defaults())

	extractor, err := parsing.NewDefaultExtractor()
	if err != nil {
		return nil, fmt.Errorf("failed to build extractor: %w", err)
	}

	if rlConfig == nil {
		rlConfig = ratelimit.LoadConfig()
		if os.Getenv("RATE_LIMIT_RPS") == "" {
			rlConfig.ApplyRate(cfg.RateLimitRPS, cfg.RateLimitBurst)
		}
	}

	s := &Server{
		store:       store,
		rateLimiter: ratelimit.NewLimiter(rlConfig),
		extractor:   extractor,
		skillGap: skillgap.NewService(store, store, skillgap.Limits{
			DefaultJobs:        cfg.DefaultJobLimit,
			MaxJobs:            config.MaxJobLimit,
			RecommendationJobs: cfg.RecommendationJobLimit,
		}),
		maxUploadBytes: cfg.MaxUploadBytes,
		uploadDir:      cfg.UploadDir,
	}

	requireAuth := middleware.AuthMiddleware(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Resumes belong to the authenticated user
	mux.Handle("POST /resumes", requireAuth(http.HandlerFunc(s.handleUploadResume)))
	mux.Handle("GET /resumes", requireAuth(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("GET /resumes/{id}", requireAuth(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("DELETE /resumes/{id}", requireAuth(http.HandlerFunc(s.handleDeleteResume)))

	// Matching
	mux.Handle("GET /matches/{resume_id}", requireAuth(http.HandlerFunc(s.handleMatches)))
	mux.HandleFunc("POST /match", s.handleMatch)

	// Skill-gap analysis
	mux.Handle("GET /skill-gap/resume/{resume_id}/job/{job_id}", optionalAuth(http.HandlerFunc(s.handleSkillGapJob)))
	mux.Handle("GET /skill-gap/resume/{resume_id}/multi-job", optionalAuth(http.HandlerFunc(s.handleSkillGapMultiJob)))
	mux.Handle("POST /skill-gap/resume/{resume_id}/jobs", optionalAuth(http.HandlerFunc(s.handleSkillGapJobs)))
	mux.Handle("GET /skill-gap/resume/{resume_id}/recommendations", optionalAuth(http.HandlerFunc(s.handleRecommendations)))

	// Job catalog
	mux.HandleFunc("GET /jobs", s.handleListJobs)

	s.handler = s.withRateLimit(s.withLogging(s.withCORS(mux)))
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close stops background work and releases the store.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.closeStore != nil {
		s.closeStore()
	}
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
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
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth reports whether the server and its database are usable
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		log.Printf("[health] database ping failed: %v", err)
		s.jsonResponse(w, http.StatusServiceUnavailable, map[string]string{
			"status":   "unavailable",
			"database": "unreachable",
		})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// writeError maps err to a status code and writes it. Server-side failures are
// logged and reported without detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[%s] %s failed: %v", r.Method, r.URL.Path, err)
	}
	s.errorResponse(w, status, errorMessage(err, status))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr: rate limiting runs before
// authentication, and the white and black lists hold addresses.
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
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retryAfter := max(1, int(info.RetryAfter.Round(time.Second).Seconds()))
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retryAfter))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
