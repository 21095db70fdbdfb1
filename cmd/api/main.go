package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"coursecraft/internal/adapter"
	"coursecraft/internal/adapter/llmgen"
	"coursecraft/internal/cache"
	"coursecraft/internal/config"
	"coursecraft/internal/database"
	"coursecraft/internal/handler"
	"coursecraft/internal/logger"
	"coursecraft/internal/middleware"
	"coursecraft/internal/repository"
	"coursecraft/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
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

	// Database
	db, err := database.NewSQLXPostgresDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	appLogger.Info("Connected to Postgres")

	// Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// External generator
	generator, err := llmgen.NewGenerator(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create content generator", zap.Error(err))
	}
	appLogger.Info("Content generator initialized",
		zap.String("base_url", cfg.LLM.BaseURL),
		zap.String("model", cfg.LLM.Model),
	)

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	courseRepository := repository.NewSQLXCourseRepository(db)
	progressRepository := repository.NewSQLXProgressRepository(db)
	quizResultRepository := repository.NewSQLXQuizResultRepository(db)

	// Services
	pendingStore := service.NewPendingQuizStore(cfg.Cache.PendingQuizTTL)
	quizService := service.NewQuizService(generator, pendingStore, quizResultRepository)
	courseService := service.NewCourseService(generator, courseRepository, progressRepository, cacheAdapter, cfg.Cache.CourseListTTL)
	authService, err := service.NewAuthService(userRepository, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	// Handlers
	quizHandler := handler.NewQuizHandler(quizService)
	courseHandler := handler.NewCourseHandler(courseService)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
		MaxAge:       300,
	}))
	app.Use(recover.New())

	apiGroup := app.Group("/api")

	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	protected := middleware.Protected(authService)

	apiGroup.Post("/courses", protected, courseHandler.SaveCourse)
	apiGroup.Get("/courses", protected, courseHandler.ListCourses)

	courseGroup := apiGroup.Group("/course", protected)
	courseGroup.Post("/generate", courseHandler.GenerateCourse)
	courseGroup.Get("/:courseId/progress", courseHandler.GetProgress)
	courseGroup.Post("/:courseId/progress", courseHandler.UpdateProgress)
	courseGroup.Post("/:courseId/quiz", quizHandler.GenerateQuiz)
	courseGroup.Post("/:courseId/submit-quiz", quizHandler.SubmitQuiz)

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
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		appLogger.Warn("Failed to close database", zap.Error(err))
	}
	if err := redisClient.Close(); err != nil {
		appLogger.Warn("Failed to close Redis client", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
