// @title Neolingo API
// @version 1.0
// @description Community dictionary for constructed and emerging languages.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"neolingo/internal/adapter"
	"neolingo/internal/cache"
	"neolingo/internal/config"
	"neolingo/internal/database"
	"neolingo/internal/domain"
	"neolingo/internal/handler"
	"neolingo/internal/logger"
	"neolingo/internal/middleware"
	"neolingo/internal/repository"
	"neolingo/internal/service"

	_ "neolingo/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger logs every HTTP request after it completes.
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

	db, err := database.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	roleRepository := repository.NewSQLXRoleRepository(db)
	languageRepository := repository.NewSQLXLanguageRepository(db)
	wordRepository := repository.NewSQLXWordRepository(db)
	suggestionRepository := repository.NewSQLXSuggestionRepository(db)
	voteRepository := repository.NewSQLXVoteRepository(db)
	questionRepository := repository.NewSQLXQuizQuestionRepository(db)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Services
	authService, err := service.NewAuthService(userRepository, roleRepository, languageRepository, txManager, cacheAdapter, cfg.JWT)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, roleRepository, languageRepository, cacheAdapter, cfg.Cache)
	dictionaryService := service.NewDictionaryService(languageRepository, wordRepository, suggestionRepository, voteRepository, cacheAdapter, cfg.Cache)
	curatorService := service.NewCuratorService(userRepository, roleRepository, questionRepository, attemptRepository, txManager, cacheAdapter, cfg.CuratorQuiz)
	adminService := service.NewAdminService(questionRepository, languageRepository)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dictionaryHandler := handler.NewDictionaryHandler(dictionaryService)
	curatorHandler := handler.NewCuratorHandler(curatorService)
	adminHandler := handler.NewAdminHandler(adminService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")
	protected := middleware.Protected(authService)
	reviewerOnly := middleware.RequireRole(roleRepository, domain.RoleContributor, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(roleRepository, domain.RoleAdmin)

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/onboarding", protected, authHandler.CompleteOnboarding)

	// User routes
	userGroup := apiGroup.Group("/users", protected)
	userGroup.Get("/me", userHandler.GetMyProfile)
	userGroup.Patch("/me", userHandler.UpdateMyProfile)

	// Dictionary routes
	apiGroup.Get("/languages", dictionaryHandler.ListLanguages)
	apiGroup.Get("/languages/:languageId/words", dictionaryHandler.ListWords)
	apiGroup.Post("/words", protected, reviewerOnly, dictionaryHandler.CreateWord)
	apiGroup.Get("/words/:wordId/suggestions", dictionaryHandler.ListSuggestions)
	apiGroup.Post("/words/:wordId/suggestions", protected, dictionaryHandler.SuggestTranslation)
	apiGroup.Put("/suggestions/:suggestionId/votes", protected, dictionaryHandler.Vote)
	apiGroup.Post("/suggestions/:suggestionId/review", protected, reviewerOnly, dictionaryHandler.ReviewSuggestion)

	// Curator promotion routes
	curatorGroup := apiGroup.Group("/curator", protected)
	curatorGroup.Get("/eligibility", curatorHandler.CheckEligibility)
	curatorGroup.Get("/quiz", curatorHandler.GetQuizQuestions)
	curatorGroup.Post("/attempts", curatorHandler.SubmitAttempt)
	curatorGroup.Get("/attempts", curatorHandler.GetAttemptHistory)

	// Admin routes
	adminGroup := apiGroup.Group("/admin", protected, adminOnly)
	adminGroup.Post("/questions", adminHandler.CreateQuestion)
	adminGroup.Put("/questions/:questionId", adminHandler.UpdateQuestion)
	adminGroup.Patch("/questions/:questionId/active", adminHandler.SetQuestionActive)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
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
