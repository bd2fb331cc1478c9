package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/audyningrum27/simtrendi/internal/config"
	"github.com/audyningrum27/simtrendi/internal/fixtures"
	appHTTP "github.com/audyningrum27/simtrendi/internal/handler/http"
	"github.com/audyningrum27/simtrendi/internal/pkg/cron"
	"github.com/audyningrum27/simtrendi/internal/pkg/database"
	"github.com/audyningrum27/simtrendi/internal/pkg/jwt"
	"github.com/audyningrum27/simtrendi/internal/pkg/sse"
	"github.com/audyningrum27/simtrendi/internal/repository/postgresql"
	serviceAuth "github.com/audyningrum27/simtrendi/internal/service/auth"
	"github.com/audyningrum27/simtrendi/internal/service/leave"
	notificationService "github.com/audyningrum27/simtrendi/internal/service/notification"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.App.LogLevel),
	})))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	tiers, err := fixtures.LoadTierTable(cfg.Leave.ApprovalTiersFile)
	if err != nil {
		return fmt.Errorf("load approval tiers: %w", err)
	}

	JWTService, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	if err != nil {
		return fmt.Errorf("create JWT service: %w", err)
	}

	transactor := postgresql.NewTransactor(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	hub := sse.NewHub()
	notifSvc := notificationService.NewNotificationService(notificationRepo, hub, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.Workers,
		QueueSize:     cfg.Notification.QueueSize,
	})

	requestService := leave.NewRequestService(transactor, leaveRequestRepo, employeeRepo, notifSvc, cfg.App.Location)
	workflow := leave.NewApprovalWorkflow(transactor, leaveRequestRepo, employeeRepo, leave.NewRoleClassifier(tiers), notifSvc)
	leaveService := leave.NewLeaveService(leaveRequestRepo, requestService, workflow)
	authService := serviceAuth.NewAuthService(employeeRepo, JWTService)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.CORS.AllowedOrigins,
		},
		JWTService,
		appHTTP.NewAuthHandler(authService),
		appHTTP.NewLeaveHandler(leaveService),
		appHTTP.NewNotificationHandler(notifSvc, JWTService),
	)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(requestService, cfg.Leave.ExpirySweepInterval).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "env", cfg.App.Env, "version", version)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case runErr = <-serverErr:
	case <-ctx.Done():
		slog.Info("Shutting down")
	}

	// Close SSE streams first so Shutdown does not wait on them
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}

	scheduler.Stop()
	notifSvc.Stop()

	return runErr
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
