package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/http"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/api/http/handlers"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/auth"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/config"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/events"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/observability"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/persistence"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/repository"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/service"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/whatsapp"
	"github.com/jtalmeidaAdvir/WhatsappTimeTracker/internal/worker"
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
	employeeRepo := repository.NewEmployeeRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)
	messageRepo := repository.NewMessageRepository(pool)
	settingRepo := repository.NewSettingRepository(pool)
	statusCache := repository.NewRedisStatusCache(redis.Client, time.Minute)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	attendanceService := service.NewAttendanceService(service.AttendanceDependencies{
		EmployeeRepo:   employeeRepo,
		AttendanceRepo: attendanceRepo,
		MessageRepo:    messageRepo,
		StatusCache:    statusCache,
		Dispatcher:     dispatcher,
		Logger:         logger,
		Metrics:        metrics,
	})
	rosterService := service.NewRosterService(employeeRepo)
	settingsService := service.NewSettingsService(settingRepo)

	authService, err := service.NewAuthService(cfg.Auth)
	if err != nil {
		logger.Fatal("failed to init auth service", zap.Error(err))
	}
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager())

	sender := whatsapp.NewClient(cfg.WhatsApp, nil, logger)
	notificationService := service.NewNotificationService(dispatcher, sender, settingsService, logger)
	notificationService.RegisterHandlers()

	messageWorker := worker.NewMessageWorker(attendanceService, cfg.Worker, logger)
	messageWorker.Start(ctx)
	defer messageWorker.Stop()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Webhook:        handlers.NewWebhookHandler(attendanceService),
		Dashboard:      handlers.NewDashboardHandler(attendanceService),
		Employees:      handlers.NewEmployeesHandler(rosterService),
		Settings:       handlers.NewSettingsHandler(settingsService),
		Auth:           handlers.NewAuthHandler(authService),
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
