package integration

import (
	"fmt"
	"os"
	"testing"

	"neolingo/internal/adapter"
	"neolingo/internal/cache"
	"neolingo/internal/config"
	dblogic "neolingo/internal/database"
	"neolingo/internal/domain"
	"neolingo/internal/handler"
	"neolingo/internal/logger"
	"neolingo/internal/middleware"
	"neolingo/internal/repository"
	"neolingo/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Integration tests need a live Oracle and Redis. They are skipped unless
// NEOLINGO_INTEGRATION=1 is set and ENV=test points config loading at the
// test configuration.
var (
	integrationEnabled bool

	app         *fiber.App
	logInstance *zap.Logger
	db          *sqlx.DB
	redisClient *redis.Client
	cfg         *config.Config

	authService service.AuthService
)

func requireIntegration(t *testing.T) {
	t.Helper()
	if !integrationEnabled {
		t.Skip("integration environment not configured; set NEOLINGO_INTEGRATION=1")
	}
}

func TestMain(m *testing.M) {
	if os.Getenv("NEOLINGO_INTEGRATION") != "1" {
		os.Exit(m.Run())
	}
	integrationEnabled = true
	os.Setenv("ENV", "test")

	loadedCfg, err := config.LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	cfg = loadedCfg

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logInstance = logger.Get()
	defer func() {
		if logInstance != nil {
			_ = logInstance.Sync()
		}
	}()

	logInstance.Info("Starting integration tests")

	db, err = dblogic.NewSQLXOracleDB(cfg.GetDSN())
	if err != nil {
		logInstance.Fatal("Failed to connect to database", zap.Error(err))
	}

	redisClient, err = cache.NewRedisClient(cfg.Redis)
	if err != nil {
		logInstance.Fatal("Failed to connect to test Redis", zap.Error(err))
	}

	app = buildApp()

	code := m.Run()

	_ = db.Close()
	_ = redisClient.Close()
	os.Exit(code)
}

// buildApp wires the full application the same way cmd/api does.
func buildApp() *fiber.App {
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	userRepository := repository.NewSQLXUserRepository(db)
	roleRepository := repository.NewSQLXRoleRepository(db)
	languageRepository := repository.NewSQLXLanguageRepository(db)
	wordRepository := repository.NewSQLXWordRepository(db)
	suggestionRepository := repository.NewSQLXSuggestionRepository(db)
	voteRepository := repository.NewSQLXVoteRepository(db)
	questionRepository := repository.NewSQLXQuizQuestionRepository(db)
	attemptRepository := repository.NewSQLXQuizAttemptRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	var err error
	authService, err = service.NewAuthService(userRepository, roleRepository, languageRepository, txManager, cacheAdapter, cfg.JWT)
	if err != nil {
		logInstance.Fatal("Failed to create AuthService", zap.Error(err))
	}
	userService := service.NewUserService(userRepository, roleRepository, languageRepository, cacheAdapter, cfg.Cache)
	dictionaryService := service.NewDictionaryService(languageRepository, wordRepository, suggestionRepository, voteRepository, cacheAdapter, cfg.Cache)
	curatorService := service.NewCuratorService(userRepository, roleRepository, questionRepository, attemptRepository, txManager, cacheAdapter, cfg.CuratorQuiz)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	dictionaryHandler := handler.NewDictionaryHandler(dictionaryService)
	curatorHandler := handler.NewCuratorHandler(curatorService)

	a := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})

	apiGroup := a.Group("/api")
	protected := middleware.Protected(authService)
	reviewerOnly := middleware.RequireRole(roleRepository, domain.RoleContributor, domain.RoleAdmin)

	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.RefreshToken)
	authGroup.Post("/onboarding", protected, authHandler.CompleteOnboarding)

	userGroup := apiGroup.Group("/users", protected)
	userGroup.Get("/me", userHandler.GetMyProfile)

	apiGroup.Get("/languages", dictionaryHandler.ListLanguages)
	apiGroup.Get("/languages/:languageId/words", dictionaryHandler.ListWords)
	apiGroup.Post("/words", protected, reviewerOnly, dictionaryHandler.CreateWord)
	apiGroup.Post("/words/:wordId/suggestions", protected, dictionaryHandler.SuggestTranslation)
	apiGroup.Put("/suggestions/:suggestionId/votes", protected, dictionaryHandler.Vote)

	curatorGroup := apiGroup.Group("/curator", protected)
	curatorGroup.Get("/eligibility", curatorHandler.CheckEligibility)
	curatorGroup.Get("/quiz", curatorHandler.GetQuizQuestions)
	curatorGroup.Post("/attempts", curatorHandler.SubmitAttempt)

	return a
}
