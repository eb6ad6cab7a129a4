package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/medrota/clinicrota-backend/api/routes"
	"github.com/medrota/clinicrota-backend/internal/assignments"
	"github.com/medrota/clinicrota-backend/internal/auth"
	"github.com/medrota/clinicrota-backend/internal/branches"
	"github.com/medrota/clinicrota-backend/internal/branchstaff"
	"github.com/medrota/clinicrota-backend/internal/doctors"
	"github.com/medrota/clinicrota-backend/internal/positions"
	"github.com/medrota/clinicrota-backend/internal/schedules"
	"github.com/medrota/clinicrota-backend/internal/staff"
	"github.com/medrota/clinicrota-backend/internal/users"
	"github.com/medrota/clinicrota-backend/pkg/auth/session"
	"github.com/medrota/clinicrota-backend/pkg/config"
	"github.com/medrota/clinicrota-backend/pkg/db"
	"github.com/medrota/clinicrota-backend/pkg/logger"
	"github.com/medrota/clinicrota-backend/pkg/metrics"
	"github.com/medrota/clinicrota-backend/pkg/migrate"
	"github.com/medrota/clinicrota-backend/pkg/redis"
)

const shutdownTimeout = 15 * time.Second

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	rotationMetrics := metrics.NewRotationMetrics(registry)

	gormDB := dbClient.DB()
	userRepo := users.NewRepository(gormDB)
	branchRepo := branches.NewRepository(gormDB)
	positionRepo := positions.NewRepository(gormDB)
	doctorRepo := doctors.NewRepository(gormDB)
	branchStaffRepo := branchstaff.NewRepository(gormDB)
	staffRepo := staff.NewRepository(gormDB)
	scheduleRepo := schedules.NewRepository(gormDB)
	assignmentRepo := assignments.NewRepository(gormDB)

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       userRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	userService, err := users.NewService(userRepo, cfg.Password)
	if err != nil {
		logg.Error(context.Background(), "failed to create user service", err)
		os.Exit(1)
	}

	branchService, err := branches.NewService(branchRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create branch service", err)
		os.Exit(1)
	}

	positionService, err := positions.NewService(positionRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create position service", err)
		os.Exit(1)
	}

	doctorService, err := doctors.NewService(doctorRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create doctor service", err)
		os.Exit(1)
	}

	branchStaffService, err := branchstaff.NewService(branchStaffRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create branch staff service", err)
		os.Exit(1)
	}

	staffService, err := staff.NewService(staffRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create rotation staff service", err)
		os.Exit(1)
	}

	scheduleService, err := schedules.NewService(scheduleRepo, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create schedule service", err)
		os.Exit(1)
	}

	assignmentService, err := assignments.NewService(
		assignmentRepo,
		staffRepo,
		scheduleRepo,
		staffRepo,
		logg,
		assignments.WithSnapshotCache(redisClient),
		assignments.WithMetrics(rotationMetrics),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create assignment service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:             cfg,
			Logger:             logg,
			DB:                 dbClient,
			Redis:              redisClient,
			SessionChecker:     sessionManager,
			Registry:           registry,
			AuthService:        authService,
			UserService:        userService,
			BranchService:      branchService,
			PositionService:    positionService,
			DoctorService:      doctorService,
			BranchStaffService: branchStaffService,
			StaffService:       staffService,
			ScheduleService:    scheduleService,
			AssignmentService:  assignmentService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down api server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
