package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"attendance-tracker/config"
	"attendance-tracker/pkg/attendance"
	"attendance-tracker/repository"
	"attendance-tracker/seeder"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := config.MongoConnect(cfg); err != nil {
		logger.Fatal("mongo connect failed", zap.Error(err))
	}
	defer config.DisconnectDB()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := config.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes failed", zap.Error(err))
	}

	if err := seeder.SeedDepartments(ctx, repository.NewDepartmentRepository(), logger); err != nil {
		logger.Fatal("seeding departments failed", zap.Error(err))
	}
	users, err := seeder.SeedUsers(ctx, repository.NewUserRepository(), logger)
	if err != nil {
		logger.Fatal("seeding users failed", zap.Error(err))
	}

	now := attendance.SystemClock{Location: cfg.Location}.Now()
	if err := seeder.SeedAttendance(ctx, repository.NewAttendanceRepository(), users, now, logger); err != nil {
		logger.Fatal("seeding attendance failed", zap.Error(err))
	}

	logger.Info("database seeded", zap.String("password", seeder.DefaultPassword))
}
