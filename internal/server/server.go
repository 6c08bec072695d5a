// Package server contains the HTTP handlers and routing for the commons API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	_ "commons/docs" // swagger docs
	"commons/internal/auth"
	"commons/internal/cache"
	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/middleware"
	"commons/internal/models"
	"commons/internal/repository"
	"commons/internal/service"
	"commons/internal/transcription"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const sessionPurgeInterval = 15 * time.Minute

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	sessionPurger interface {
		PurgeExpired(ctx context.Context) (int64, error)
	}

	authService          *service.AuthService
	adminService         *service.AdminService
	videoService         *service.VideoService
	liveEventService     *service.LiveEventService
	discussionService    *service.DiscussionService
	engagementService    *service.EngagementService
	transcriptionService *service.TranscriptionService
}

// Option overrides a dependency NewServerWithDeps would otherwise build from config.
type Option func(*deps)

type deps struct {
	transcriber transcription.Transcriber
	identity    service.IdentityVerifier
}

// WithTranscriber replaces the Whisper client.
func WithTranscriber(t transcription.Transcriber) Option {
	return func(d *deps) { d.transcriber = t }
}

// WithIdentityVerifier replaces the identity provider client used by the bearer strategy.
func WithIdentityVerifier(v service.IdentityVerifier) Option {
	return func(d *deps) { d.identity = v }
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and
// optionally performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, opts ...Option) (*Server, error) {
	d := deps{}
	for _, opt := range opts {
		opt(&d)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	eventRepo := repository.NewLiveEventRepository(db)
	discussionRepo := repository.NewDiscussionRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	answerRepo := repository.NewGuideAnswerRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("commons-api"),
	}

	authCfg := service.AuthServiceConfig{
		Users:  userRepo,
		Signer: auth.NewCookieSigner(cfg.SessionSecret),
	}
	switch cfg.AuthStrategy {
	case config.AuthStrategyBearer:
		authCfg.Identity = d.identity
		if authCfg.Identity == nil {
			authCfg.Identity = auth.NewIdentityVerifier(cfg.IDPURL, cfg.IDPServiceKey, nil)
		}
	default:
		if cfg.SessionStore == config.SessionStoreRedis {
			if redisClient == nil {
				return nil, fmt.Errorf("SESSION_STORE=redis requires a reachable redis at %s", cfg.RedisURL)
			}
			authCfg.Sessions = auth.NewRedisSessionStore(redisClient)
		} else {
			store := auth.NewDBSessionStore(db)
			authCfg.Sessions = store
			server.sessionPurger = store
		}
	}

	transcriber := d.transcriber
	if transcriber == nil {
		transcriber = transcription.NewClient(transcription.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Timeout: time.Duration(cfg.TranscriptionTimeoutSeconds) * time.Second,
		})
	}

	server.authService = service.NewAuthService(authCfg)
	server.adminService = service.NewAdminService(userRepo)
	server.videoService = service.NewVideoService(videoRepo)
	server.liveEventService = service.NewLiveEventService(eventRepo, activityRepo)
	server.discussionService = service.NewDiscussionService(discussionRepo, videoRepo, eventRepo)
	server.engagementService = service.NewEngagementService(activityRepo, reminderRepo, answerRepo, videoRepo, eventRepo)
	server.transcriptionService = service.NewTranscriptionService(transcriber)

	return server, nil
}

// NewApp builds the Fiber app with middleware and routes attached.
func (s *Server) NewApp() *fiber.App {
	bodyLimit := s.config.BodyLimitMB
	if bodyLimit <= 0 {
		bodyLimit = 25
	}

	app := fiber.New(fiber.Config{
		AppName:      "Commons API",
		BodyLimit:    bodyLimit * 1024 * 1024,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: s.errorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)
	return app
}

func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	if fe, ok := err.(*fiber.Error); ok && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(models.ErrorResponse{Message: fe.Message})
	}
	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		slog.String("path", c.Path()),
		slog.String("error", err.Error()),
	)
	return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
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

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/swagger/*", swagger.HandlerDefault)
	api.Get("/metrics/dashboard", s.AdminRequired(), monitor.New(monitor.Config{
		Title: "Commons Metrics Dashboard",
	}))

	// Accounts
	if s.config.AuthStrategy != config.AuthStrategyBearer {
		api.Post("/register", middleware.RateLimit(s.redis, 5, 10*time.Minute, "register"), s.Register)
		api.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
		api.Post("/logout", s.Logout)
	}
	api.Get("/user", s.AuthRequired(), s.GetCurrentUser)

	// Videos
	videos := api.Group("/videos")
	videos.Get("/", s.GetVideos)
	videos.Post("/", s.AdminRequired(), s.CreateVideo)
	videos.Get("/:id/discussions", s.GetVideoDiscussions)
	videos.Get("/:id", s.GetVideo)
	videos.Put("/:id", s.AdminRequired(), s.UpdateVideo)
	videos.Delete("/:id", s.AdminRequired(), s.DeleteVideo)

	api.Get("/admin/videos", s.AdminRequired(), s.GetAllVideos)

	// Live events
	events := api.Group("/live-events")
	events.Get("/", s.GetCurrentLiveEvent)
	events.Post("/", s.AdminRequired(), s.CreateLiveEvent)
	events.Get("/:id/discussions", s.GetLiveEventDiscussions)
	events.Get("/:id/rsvps", s.GetLiveEventRSVPs)
	events.Get("/:id", s.GetLiveEvent)
	events.Put("/:id", s.AdminRequired(), s.UpdateLiveEvent)

	// Discussions
	discussions := api.Group("/discussions")
	discussions.Get("/", s.GetDiscussions)
	discussions.Post("/", s.AuthRequired(), s.CreateDiscussion)
	discussions.Get("/:id", s.GetDiscussion)
	discussions.Delete("/:id", s.AdminRequired(), s.DeleteDiscussion)

	api.Post("/transcribe", s.AuthRequired(),
		middleware.RateLimit(s.redis, 20, 10*time.Minute, "transcribe"), s.Transcribe)

	// Per-user engagement. Gates are attached per route so unknown /api
	// paths still fall through to 404.
	api.Post("/user-activities", s.AuthRequired(), s.CreateUserActivity)
	api.Get("/user-activities", s.AuthRequired(), s.GetUserActivities)
	api.Post("/reminders", s.AuthRequired(), s.CreateReminder)
	api.Get("/reminders", s.AuthRequired(), s.GetReminders)
	api.Post("/guide-answers", s.AuthRequired(), s.CreateGuideAnswer)
	api.Get("/guide-answers", s.AuthRequired(), s.GetGuideAnswers)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	// Redis is only required when sessions live there.
	redisRequired := s.config.AuthStrategy == config.AuthStrategySession && s.config.SessionStore == config.SessionStoreRedis
	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" || (redisRequired && redisStatus != "healthy") {
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

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := s.NewApp()

	if s.sessionPurger != nil {
		go s.purgeSessions(ctx)
	}

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	if err := app.Listen(":" + s.config.Port); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) purgeSessions(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.sessionPurger.PurgeExpired(ctx)
			if err != nil {
				middleware.Logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			if n > 0 {
				middleware.Logger.Info("purged expired sessions", slog.Int64("count", n))
			}
		}
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
