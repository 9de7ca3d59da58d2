package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"quiz-league/internal/adapter"
	"quiz-league/internal/cache"
	"quiz-league/internal/config"
	"quiz-league/internal/database"
	"quiz-league/internal/domain"
	"quiz-league/internal/handler"
	"quiz-league/internal/logger"
	"quiz-league/internal/middleware"
	"quiz-league/internal/repository"
	"quiz-league/internal/service"
	"quiz-league/internal/week"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	calc, err := week.NewCalculatorForZone(cfg.Week.Timezone, nil)
	if err != nil {
		appLogger.Fatal("Invalid week timezone", zap.String("timezone", cfg.Week.Timezone), zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.GetDSN(), cfg.DB.MaxOpenConns)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	checks := map[string]handler.CheckFunc{"postgres": db.PingContext}

	// Redis is optional: without it questions are served straight from Postgres.
	var store domain.Cache
	if cfg.Cache.Enabled {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		cancel()
		if err != nil {
			appLogger.Warn("Redis unavailable, question cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			store = adapter.NewRedisCacheAdapter(redisClient)
			checks["redis"] = store.Ping
			appLogger.Info("RedisCacheAdapter initialized")
		}
	}

	// Repositories
	questionRepo := repository.NewQuestionDatabaseAdapter(db)
	userRepo := repository.NewUserDatabaseAdapter(db)
	answerRepo := repository.NewAnswerDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	questionCache := service.NewQuestionCache(store, cfg.CacheSettings())
	sweeper := service.NewArchivalSweeper(questionRepo, calc, questionCache)
	questionService := service.NewQuestionService(questionRepo, calc, questionCache, sweeper)
	ledger := service.NewScoreLedger(userRepo, calc, service.RandomTeam)
	achievementService := service.NewAchievementService(userRepo, nil, calc)
	answerService := service.NewAnswerService(questionService, answerRepo, ledger, achievementService, txManager, calc, cfg.Scoring)
	leaderboardService := service.NewLeaderboardService(userRepo, answerRepo, calc, cfg.Scoring.AnswersPerQuiz)
	tokenService, err := service.NewTokenService(cfg.JWT, nil)
	if err != nil {
		appLogger.Fatal("Failed to create TokenService", zap.Error(err))
	}
	appLogger.Info("Services initialized", zap.String("timezone", calc.Location().String()), zap.Bool("cache", questionCache.Settings().Enabled))

	validator := middleware.NewValidationMiddleware()

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    1 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))

	handler.SetupRoutes(app, handler.Handlers{
		Questions:   handler.NewQuestionHandler(questionService, calc, validator),
		Answers:     handler.NewAnswerHandler(answerService, validator),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		Users:       handler.NewUserHandler(ledger, questionCache, validator),
		Health:      handler.NewHealthHandler(checks, 2*time.Second),
		Tokens:      tokenService,
		Validator:   validator,
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
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
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
