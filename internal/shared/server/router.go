package server

import (
	"context"
	"database/sql"
	"time"

	"github.com/gin-gonic/gin"

	"fitscan-backend/internal/analyses"
	"fitscan-backend/internal/credits"
	"fitscan-backend/internal/llm"
	"fitscan-backend/internal/llm/openai"
	"fitscan-backend/internal/resumes"
	"fitscan-backend/internal/services/health"
	"fitscan-backend/internal/shared/config"
	"fitscan-backend/internal/shared/metrics"
	"fitscan-backend/internal/shared/server/middleware"
	"fitscan-backend/internal/shared/storage/db"
	"fitscan-backend/internal/shared/telemetry"
	"fitscan-backend/internal/users"
)

// NewRouter assembles the HTTP server: storage, services and routes.
// Without DATABASE_URL everything falls back to in-memory stores so the
// server stays usable for local development.
func NewRouter(ctx context.Context, cfg config.Config) (*gin.Engine, *sql.DB) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	var database *sql.DB
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			telemetry.Error("db.connect_failed", map[string]any{"error": err.Error()})
		} else {
			database = conn
		}
	}
	if database == nil {
		telemetry.Warn("db.disabled", map[string]any{"fallback": "memory stores"})
	}

	var (
		userRepo     users.Repo
		resumeRepo   resumes.Repo
		analysisRepo analyses.Repo
		creditsSvc   *credits.Service
	)
	if database != nil {
		userRepo = &users.PGRepo{DB: database}
		resumeRepo = &resumes.PGRepo{DB: database}
		analysisRepo = &analyses.PGRepo{DB: database}
		creditsSvc = credits.NewPostgresService(credits.NewPGStore(database))
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		analysisRepo = analyses.NewMemoryRepo()
		creditsSvc = credits.NewService()
	}

	userSvc := &users.Service{
		Repo:           userRepo,
		Credits:        creditsSvc,
		JWTSecret:      cfg.JWTSecret,
		JWTTTL:         cfg.JWTTTL,
		InitialCredits: cfg.InitialCredits,
	}
	resumeSvc := &resumes.Service{Repo: resumeRepo}

	var client llm.Client = llm.PlaceholderClient{}
	if cfg.LLMProvider == "openai" && cfg.OpenAIAPIKey != "" {
		openaiClient, err := openai.NewClient(cfg.OpenAIAPIKey)
		if err != nil {
			telemetry.Error("llm.init_failed", map[string]any{"error": err.Error()})
		} else {
			client = openaiClient
		}
	}

	orchestrator := analyses.NewOrchestrator(client, cfg.LLMModel, analysisRepo, resumeRepo, creditsSvc, analyses.Options{
		MaxAttempts: cfg.LLMMaxAttempts,
		RetryDelay:  cfg.LLMRetryDelay,
	})

	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigins),
	)

	health.NewHandler(database).RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler())

	limiter := middleware.NewRateLimiter(time.Now)
	api := router.Group("/api/v1")
	api.Use(
		middleware.Auth(cfg.JWTSecret),
		middleware.RateLimit(limiter, middleware.RateLimitRule{Rate: 10, Burst: 20}),
	)

	users.NewHandler(userSvc).RegisterRoutes(api)
	resumes.NewHandler(resumeSvc).RegisterRoutes(api)
	credits.NewHandler(creditsSvc).RegisterRoutes(api)
	analyses.NewHandler(orchestrator).RegisterRoutes(api)

	return router, database
}

// Addr formats the listen address for a port.
func Addr(port string) string {
	return ":" + port
}
