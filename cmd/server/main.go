package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/haneulsoft/studio-scheduler/internal/app"
	"github.com/haneulsoft/studio-scheduler/internal/cache"
	"github.com/haneulsoft/studio-scheduler/internal/config"
	httpapi "github.com/haneulsoft/studio-scheduler/internal/controller/http"
	"github.com/haneulsoft/studio-scheduler/internal/model"
	"github.com/haneulsoft/studio-scheduler/internal/repository"
	"github.com/haneulsoft/studio-scheduler/internal/service"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)

	defer logger.Sync()

	logger.Sugar().Infow("Starting studio scheduler",
		"environment", cfg.Environment,
		"http_addr", cfg.HTTPAddr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if version, err := migrator.Version(ctx); err == nil {
		logger.Info("Database migrated", zap.Int64("version", version))
	}
	if err := migrator.Close(); err != nil {
		logger.Warn("Failed to close migrator", zap.Error(err))
	}

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Fatal("Failed to load timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}
	now := func() time.Time { return time.Now().In(location) }

	templateRepo := repository.NewTemplateRepository(pool)
	dailyRepo := repository.NewDailyScheduleRepository(pool)
	statusRepo := repository.NewMonthlyStatusRepository(pool)
	backupRepo := repository.NewBackupRepository(pool)

	dailyCache := cache.New(cfg.CacheTTL, now,
		func(ctx context.Context, branchID string, date time.Time) ([]model.ClassInstance, error) {
			day, err := dailyRepo.GetByDate(ctx, branchID, date)
			if err != nil {
				return nil, err
			}
			if day == nil {
				return []model.ClassInstance{}, nil
			}
			return day.Classes, nil
		},
		logger)

	scheduleService := service.NewScheduleService(templateRepo, dailyRepo, statusRepo, dailyCache, logger)
	backupService := service.NewBackupService(dailyRepo, statusRepo, backupRepo, dailyCache, logger)
	checkinService := service.NewCheckinService(dailyCache, now, logger)

	refresher := app.NewRefresher(dailyCache, cfg.CacheTTL, logger)
	refresher.Start(ctx)
	defer refresher.Stop()

	fiberApp := fiber.New(fiber.Config{
		AppName:      "studio-scheduler",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	httpapi.NewHandler(scheduleService, backupService, checkinService, logger).Register(fiberApp)

	go func() {
		if err := fiberApp.Listen(cfg.HTTPAddr); err != nil {
			logger.Fatal("HTTP server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down")
	if err := fiberApp.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
}
