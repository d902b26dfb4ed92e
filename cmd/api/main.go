// @title Lingo Days API
// @version 1.0
// @description Thirty-day language course: accounts, daily lessons, progress and the order webhook.
// @host localhost:5000
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize. Browsers send the session cookie instead.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "lingo-days/cmd/api/docs"
	"lingo-days/internal/adapter"
	"lingo-days/internal/cache"
	"lingo-days/internal/config"
	"lingo-days/internal/database"
	"lingo-days/internal/domain"
	"lingo-days/internal/handler"
	"lingo-days/internal/logger"
	"lingo-days/internal/middleware"
	"lingo-days/internal/repository"
	"lingo-days/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)
		return err
	}
}

// newCache connects to Redis when an address is configured. Lessons are served from the
// database alone otherwise.
func newCache(cfg *config.Config) domain.Cache {
	appLogger := logger.Get()
	if cfg.Redis.Address == "" {
		appLogger.Info("No Redis address configured, lesson cache disabled")
		return adapter.NewNoopCache()
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Warn("Redis unreachable at startup, lesson cache disabled", zap.Error(err))
		return adapter.NewNoopCache()
	}
	appLogger.Info("Successfully connected to Redis", zap.String("address", cfg.Redis.Address))
	return adapter.NewRedisCacheAdapter(redisClient)
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	startCtx, cancelStart := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.NewSQLXPostgresDB(startCtx, cfg)
	cancelStart()
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	cacheAdapter := newCache(cfg)
	lessonCache := service.NewLessonCache(cacheAdapter, cfg.Cache.LessonTTL)

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	profileRepository := repository.NewSQLXProfileRepository(db)
	lessonRepository := repository.NewSQLXLessonRepository(db)
	progressRepository := repository.NewSQLXProgressRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(userRepository, profileRepository, txManager, cfg.JWT, cfg.GoogleOAuth)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	if !cfg.GoogleOAuth.Enabled() {
		appLogger.Info("Google sign-in is not configured")
	}
	lessonService := service.NewLessonService(lessonRepository, progressRepository, profileRepository, txManager, lessonCache)

	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg),
		Lessons: handler.NewLessonHandler(lessonService),
		Webhook: handler.NewWebhookHandler(authService, cfg.Webhook.SallaSecret),
		Health:  handler.NewHealthHandler(db, cacheAdapter),
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(cfg.IsDevelopment()),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: cfg.Server.AllowedOrigins != "*",
		MaxAge:           300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	handler.RegisterRoutes(app, handlers, authService, cfg.JWT.CookieName)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
