package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/groundops/crew-portal/internal/api/http"
	"github.com/groundops/crew-portal/internal/api/http/handlers"
	"github.com/groundops/crew-portal/internal/config"
	"github.com/groundops/crew-portal/internal/events"
	"github.com/groundops/crew-portal/internal/identity"
	"github.com/groundops/crew-portal/internal/observability"
	"github.com/groundops/crew-portal/internal/persistence"
	"github.com/groundops/crew-portal/internal/realtime"
	"github.com/groundops/crew-portal/internal/repository"
	"github.com/groundops/crew-portal/internal/service"
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

	rdb := persistence.NewRedis(cfg.Redis, logger)
	defer rdb.Close()

	registry := prometheus.NewRegistry()
	metrics := observability.NewMetrics(registry)

	pool := pg.PoolHandle()
	agentRepo := repository.NewAgentRepository(pool)
	assignmentRepo := repository.NewAssignmentRepository(pool)
	notificationRepo := repository.NewNotificationRepository(pool)
	shiftRepo := repository.NewShiftRepository(pool)
	flightRepo := repository.NewFlightRepository(pool)
	principalRepo := repository.NewPrincipalRepository(pool)
	resetRepo := repository.NewPasswordResetRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	feed := realtime.NewRedisFeed(rdb.Client, cfg.Realtime.ChannelPrefix, logger, metrics)

	provider := identity.NewLocalProvider(identity.ProviderDependencies{
		Principals: principalRepo,
		Resets:     resetRepo,
		Sessions:   rdb.Client,
		Tokens:     identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL()),
		Dispatcher: dispatcher,
		Logger:     logger,
		BcryptCost: cfg.Auth.BcryptCost,
		ResetTTL:   cfg.Auth.ResetTokenTTL(),
	})
	authMiddleware := identity.NewAuthMiddleware(provider, agentRepo)

	notificationService := service.NewNotificationService(notificationRepo, feed, logger)
	profileService := service.NewProfileService(agentRepo, feed)
	enrollmentService := service.NewEnrollmentService(service.EnrollmentDependencies{
		Provider:   provider,
		AgentRepo:  agentRepo,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	assignmentService := service.NewAssignmentService(service.AssignmentDependencies{
		AssignmentRepo: assignmentRepo,
		AgentRepo:      agentRepo,
		ShiftRepo:      shiftRepo,
		Notifications:  notificationService,
		Feed:           feed,
	})
	dashboardService := service.NewDashboardService(service.DashboardDependencies{
		AgentRepo:      agentRepo,
		AssignmentRepo: assignmentRepo,
		FlightRepo:     flightRepo,
		Feed:           feed,
		Logger:         logger,
	})

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(pg, rdb),
		Auth:           handlers.NewAuthHandler(provider, enrollmentService),
		Profile:        handlers.NewProfileHandler(profileService),
		Navigation:     handlers.NewNavigationHandler(),
		Assignments:    handlers.NewAssignmentHandler(assignmentService),
		Notifications:  handlers.NewNotificationHandler(notificationService),
		Dashboard:      handlers.NewDashboardHandler(dashboardService),
		Shifts:         handlers.NewShiftHandler(shiftRepo),
		Stream:         handlers.NewStreamHandler(provider, agentRepo, feed, dashboardService, logger),
		AuthMiddleware: authMiddleware,
		Registry:       registry,
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
