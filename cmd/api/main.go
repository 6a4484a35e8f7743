package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/suggestion-box/internal/api/http"
	"github.com/spec-kit/suggestion-box/internal/api/http/handlers"
	"github.com/spec-kit/suggestion-box/internal/auth"
	"github.com/spec-kit/suggestion-box/internal/config"
	"github.com/spec-kit/suggestion-box/internal/events"
	"github.com/spec-kit/suggestion-box/internal/observability"
	"github.com/spec-kit/suggestion-box/internal/persistence"
	"github.com/spec-kit/suggestion-box/internal/repository"
	"github.com/spec-kit/suggestion-box/internal/service"
	"github.com/spec-kit/suggestion-box/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	var (
		userRepo       repository.UserRepository
		suggestionRepo repository.SuggestionRepository
		roadmapRepo    repository.RoadmapRepository
	)
	if pool := pg.PoolHandle(); pool != nil {
		userRepo = repository.NewUserRepository(pool)
		suggestionRepo = repository.NewSuggestionRepository(pool)
		roadmapRepo = repository.NewRoadmapRepository(pool)
	} else {
		userRepo = repository.NewMemoryUserRepository()
		suggestionRepo = repository.NewMemorySuggestionRepository()
		roadmapRepo = repository.NewMemoryRoadmapRepository()
		if cfg.App.SeedFixtures {
			if err := repository.SeedFixtures(ctx, userRepo, suggestionRepo, roadmapRepo, cfg.Auth.BcryptCost); err != nil {
				logger.Fatal("failed to seed fixtures", zap.Error(err))
			}
			logger.Info("seeded in-memory fixtures")
		}
	}

	dispatcher := events.NewInMemoryDispatcher()
	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)

	tagService := service.NewTagService(suggestionRepo, redis, cfg.Redis.TagCacheTTL(), logger)
	suggestionService := service.NewSuggestionService(service.SuggestionDependencies{
		SuggestionRepo: suggestionRepo,
		Dispatcher:     dispatcher,
		Tags:           tagService,
	})
	roadmapService := service.NewRoadmapService(service.RoadmapDependencies{
		RoadmapRepo:    roadmapRepo,
		SuggestionRepo: suggestionRepo,
		Dispatcher:     dispatcher,
	})
	userService := service.NewUserService(userRepo, cfg.Auth.BcryptCost)
	authService := service.NewAuthService(cfg.Auth, userRepo)
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Suggestions:    handlers.NewSuggestionsHandler(suggestionService),
		Roadmap:        handlers.NewRoadmapHandler(roadmapService),
		Users:          handlers.NewUsersHandler(userService),
		Tags:           handlers.NewTagsHandler(tagService),
		AuthMiddleware: authMiddleware,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
