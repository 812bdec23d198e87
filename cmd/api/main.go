package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/bloodlink-service/internal/api/http"
	"github.com/spec-kit/bloodlink-service/internal/api/http/handlers"
	"github.com/spec-kit/bloodlink-service/internal/auth"
	"github.com/spec-kit/bloodlink-service/internal/config"
	"github.com/spec-kit/bloodlink-service/internal/events"
	"github.com/spec-kit/bloodlink-service/internal/observability"
	"github.com/spec-kit/bloodlink-service/internal/persistence"
	"github.com/spec-kit/bloodlink-service/internal/repository"
	"github.com/spec-kit/bloodlink-service/internal/service"
	"github.com/spec-kit/bloodlink-service/internal/worker"
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

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	bankRepo := repository.NewBloodBankRepository(pool)
	requestRepo := repository.NewBloodRequestRepository(pool)
	campRepo := repository.NewCampRepository(pool)
	eventRepo := repository.NewEventRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:      userRepo,
		BloodBankRepo: bankRepo,
	})
	requestService := service.NewRequestService(service.RequestDependencies{
		RequestRepo: requestRepo,
		Dispatcher:  dispatcher,
	})
	donorService := service.NewDonorService(userRepo)
	bankService := service.NewBankService(bankRepo)
	campService := service.NewCampService(campRepo, dispatcher)
	eventService := service.NewEventService(eventRepo)
	exportService := service.NewExportService(service.ExportDependencies{
		UserRepo:      userRepo,
		BloodBankRepo: bankRepo,
		RequestRepo:   requestRepo,
		CampRepo:      campRepo,
		EventRepo:     eventRepo,
	})

	notificationService := service.NewNotificationService(dispatcher, logger)
	worker.StartNotificationWorker(notificationService)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), userRepo, bankRepo)
	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: cfg.App.BodyLimitBytes,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, redis, cfg)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Users:          handlers.NewUsersHandler(donorService),
		Requests:       handlers.NewRequestsHandler(requestService),
		Banks:          handlers.NewBanksHandler(bankService),
		Camps:          handlers.NewCampsHandler(campService, exportService),
		Events:         handlers.NewEventsHandler(eventService),
		Admin:          handlers.NewAdminHandler(exportService),
		AuthMiddleware: authMiddleware,
		Metrics:        metrics,
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
