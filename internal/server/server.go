// Package server contains the HTTP handlers and routing for the job board API.
package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "jobboard/docs" // swagger docs
	"jobboard/internal/auth"
	"jobboard/internal/cache"
	"jobboard/internal/chat"
	"jobboard/internal/config"
	"jobboard/internal/database"
	"jobboard/internal/featureflags"
	"jobboard/internal/middleware"
	"jobboard/internal/models"
	"jobboard/internal/repository"
	"jobboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// globalRateLimit is the number of requests one IP may make per minute.
const globalRateLimit = 100

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	featureFlags   *featureflags.Manager

	authService        *service.AuthService
	userService        *service.UserService
	jobService         *service.JobService
	applicationService *service.ApplicationService
	caseStudyService   *service.CaseStudyService
	reviewService      *service.ReviewService
	assistant          *chat.Assistant
}

// NewServer connects to the database and Redis and builds a server over them.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
// redisClient may be nil.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}

	userRepo := repository.NewUserRepository(db)
	jobRepo := repository.NewJobRepository(db)
	appRepo := repository.NewApplicationRepository(db)
	caseStudyRepo := repository.NewCaseStudyRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	flags := featureflags.NewManager(cfg.FeatureFlags)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL())

	return &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("jobboard-api"),
		featureFlags:   flags,

		authService:        service.NewAuthService(userRepo, tokens),
		userService:        service.NewUserService(userRepo),
		jobService:         service.NewJobService(jobRepo),
		applicationService: service.NewApplicationService(appRepo, jobRepo),
		caseStudyService:   service.NewCaseStudyService(caseStudyRepo),
		reviewService:      service.NewReviewService(reviewRepo, jobRepo),
		assistant: chat.New(chat.Config{
			OpenAIAPIKey:      cfg.OpenAIAPIKey,
			OpenAIModel:       cfg.OpenAIModel,
			HuggingFaceAPIKey: cfg.HuggingFaceAPIKey,
			HuggingFaceModel:  cfg.HFModelID,
			SystemPrompt:      cfg.HFSystemPrompt,
			OllamaBaseURL:     cfg.OllamaBaseURL,
			OllamaModel:       cfg.OllamaModel,
			Flags:             flags,
		}),
	}, nil
}

// NewApp builds the Fiber application with middleware and routes installed.
func (s *Server) NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:       "One-Day Job Board API",
		StrictRouting: false,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return models.RespondWithError(c, fe.Code, errors.New(fe.Message))
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.TracingMiddleware())
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before anything that can short-circuit so error responses
	// still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
		MaxAge:           86400,
	}))

	// Global rate limiting per IP. The chat endpoint answers every request,
	// so it is never throttled.
	app.Use(limiter.New(limiter.Config{
		Max:        globalRateLimit,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test" || isChatPath(c.Path())
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/", s.Welcome)

	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	app.Get("/swagger/*", swagger.HandlerDefault)

	authRequired := middleware.Authenticate(s.authService.ResolveToken)
	adminOnly := middleware.RoleRequired(models.RoleAdmin)

	// Auth
	authGroup := app.Group("/auth")
	authGroup.Post("/signup", middleware.RateLimit(s.redis, 5, 10*time.Minute, "signup"), s.Signup)
	authGroup.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Get("/user", authRequired, s.GetCurrentUser)
	authGroup.Put("/promote/:username", authRequired, adminOnly, s.PromoteUser)

	// Jobs: /my-jobs before the generic /:id route
	jobs := app.Group("/jobs")
	jobs.Get("/", s.ListJobs)
	jobs.Post("/", authRequired, middleware.RoleRequired(models.RolePoster), s.CreateJob)
	jobs.Get("/my-jobs", authRequired, s.ListMyJobs)
	jobs.Get("/:id", s.GetJob)
	jobs.Put("/:id", authRequired, s.UpdateJob)
	jobs.Delete("/:id", authRequired, s.DeleteJob)

	caseStudies := app.Group("/case-studies")
	caseStudies.Get("/", s.ListCaseStudies)
	caseStudies.Post("/", authRequired, adminOnly, s.CreateCaseStudy)
	caseStudies.Get("/:id", s.GetCaseStudy)

	reviews := app.Group("/reviews")
	reviews.Get("/", s.ListReviews)
	reviews.Post("/", authRequired, s.CreateReview)

	applications := app.Group("/applications", authRequired)
	applications.Post("/", middleware.RateLimit(s.redis, 30, time.Minute, "apply"), s.Apply)
	applications.Get("/my", s.ListMyApplications)
	applications.Get("/earnings/my", s.GetMyEarnings)
	applications.Get("/job/:job_id", s.ListJobApplications)
	applications.Put("/:id/status", s.UpdateApplicationStatus)

	admin := app.Group("/admin", authRequired, adminOnly)
	admin.Get("/users", s.AdminListUsers)
	admin.Delete("/users/:id", s.AdminDeleteUser)
	admin.Put("/users/:username/role", s.AdminUpdateUserRole)
	admin.Get("/jobs", s.AdminListJobs)
	admin.Delete("/jobs/:id", s.AdminDeleteJob)
	admin.Put("/jobs/:id/status", s.AdminSetJobStatus)
	admin.Get("/feature-flags", s.GetFeatureFlags)

	app.Post("/chat", s.Chat)
}

func isChatPath(path string) bool {
	return strings.TrimSuffix(path, "/") == "/chat"
}

// Welcome handles GET /
func (s *Server) Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "Welcome to One-Day Job Board API"})
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck reports database and Redis health. Redis is optional: a
// missing client is reported but does not fail readiness.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	if err := database.Ping(ctx, s.db); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || redisStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the app and listens on the configured port.
func (s *Server) Start() error {
	s.app = s.NewApp()
	middleware.Logger.Info("server starting", "port", s.config.Port)
	return s.app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
