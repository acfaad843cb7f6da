// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, CORS, security headers, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/setrep/go-workout-backend/internal/config"
	"github.com/setrep/go-workout-backend/internal/domain"
	"github.com/setrep/go-workout-backend/internal/http/handlers"
	"github.com/setrep/go-workout-backend/internal/http/middleware"
	"github.com/setrep/go-workout-backend/internal/repo"
	"github.com/setrep/go-workout-backend/internal/services"
)

// userRepoShim adapts the repository free functions to the services.UserRepo
// interface expected by the AccountService. This keeps services decoupled
// from the concrete repo package while reusing existing functions.
type userRepoShim struct{}

// CreateUser proxies repo.CreateUser.
func (userRepoShim) CreateUser(ctx context.Context, db *gorm.DB, email, passwordHash, name string) (*domain.User, error) {
	return repo.CreateUser(ctx, db, email, passwordHash, name)
}

// GetUserByEmail proxies repo.GetUserByEmail.
func (userRepoShim) GetUserByEmail(ctx context.Context, db *gorm.DB, email string) (*domain.User, error) {
	return repo.GetUserByEmail(ctx, db, email)
}

// routineRepoShim adapts the repository free functions to services.RoutineRepo.
type routineRepoShim struct{}

// CreateRoutine proxies repo.CreateRoutine.
func (routineRepoShim) CreateRoutine(ctx context.Context, db *gorm.DB, userID uint, name string, description *string) (*domain.Routine, error) {
	return repo.CreateRoutine(ctx, db, userID, name, description)
}

// CreateExercise proxies repo.CreateExercise.
func (routineRepoShim) CreateExercise(ctx context.Context, db *gorm.DB, routineID uint, name string, orderIndex int) (*domain.Exercise, error) {
	return repo.CreateExercise(ctx, db, routineID, name, orderIndex)
}

// ListRoutines proxies repo.ListRoutines.
func (routineRepoShim) ListRoutines(ctx context.Context, db *gorm.DB, userID uint) ([]domain.Routine, error) {
	return repo.ListRoutines(ctx, db, userID)
}

// ListExercisesByRoutines proxies repo.ListExercisesByRoutines.
func (routineRepoShim) ListExercisesByRoutines(ctx context.Context, db *gorm.DB, routineIDs []uint) ([]domain.Exercise, error) {
	return repo.ListExercisesByRoutines(ctx, db, routineIDs)
}

// workoutRepoShim adapts the repository free functions to services.WorkoutRepo.
type workoutRepoShim struct{}

// CreateSession proxies repo.CreateSession.
func (workoutRepoShim) CreateSession(ctx context.Context, db *gorm.DB, userID, routineID uint, name string) (*domain.Session, error) {
	return repo.CreateSession(ctx, db, userID, routineID, name)
}

// CreateSet proxies repo.CreateSet.
func (workoutRepoShim) CreateSet(ctx context.Context, db *gorm.DB, sessionID uint, exerciseName string, setNumber, reps int, weight float64) (*domain.WorkoutSet, error) {
	return repo.CreateSet(ctx, db, sessionID, exerciseName, setNumber, reps, weight)
}

// GetSession proxies repo.GetSession.
func (workoutRepoShim) GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.Session, error) {
	return repo.GetSession(ctx, db, id)
}

// ListSessions proxies repo.ListSessions.
func (workoutRepoShim) ListSessions(ctx context.Context, db *gorm.DB, userID uint) ([]domain.Session, error) {
	return repo.ListSessions(ctx, db, userID)
}

// ListSetsBySessions proxies repo.ListSetsBySessions.
func (workoutRepoShim) ListSetsBySessions(ctx context.Context, db *gorm.DB, sessionIDs []uint) ([]domain.WorkoutSet, error) {
	return repo.ListSetsBySessions(ctx, db, sessionIDs)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), compression and rate
// limiting, CORS and security headers, health and metrics endpoints, and then
// mounts the versioned public API under /api/v*.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Gzip compression for list-shaped responses
//  7. Metrics
//  8. Rate limiter (per client IP)
//  9. CORS and Security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (registration/login carry emails)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Compress responses; history payloads grow with every logged set
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per client IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByClientIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even for requests without an Origin header (helps tests and simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		// Echo ACAO with the request Origin when it is in the allowlist (in addition to gin-contrib/cors).
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "If-None-Match"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// API docs (opt-in; off by default in production)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db
	accountSvc := services.NewAccountService(db, userRepoShim{})
	routineSvc := services.NewRoutineService(db, routineRepoShim{})
	workoutSvc := services.NewWorkoutService(db, workoutRepoShim{})
	h := handlers.New(accountSvc, routineSvc, workoutSvc)

	// Public API
	apiBase := cfg.APIBasePath // e.g. "/api/v1"
	api := groupWithPrefix(r, apiBase)
	{
		// Accounts
		api.POST("/users", h.CreateUser)
		api.POST("/login", h.Login)

		// Routines
		api.POST("/routines", h.CreateRoutine)
		api.POST("/exercises", h.CreateExercise)
		api.GET("/users/:id/routines", h.ListRoutines)

		// Workouts
		api.POST("/sessions", h.CreateSession)
		api.POST("/sets", h.CreateSet)
		api.GET("/users/:id/history", h.History)
		api.GET("/sessions/:id", h.SessionDetails)
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
