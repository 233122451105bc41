package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"attendance-tracker/config"
	"attendance-tracker/pkg/attendance"
	"attendance-tracker/pkg/paseto"
	"attendance-tracker/repository"
	"attendance-tracker/router"
)

// @title Attendance Tracker API
// @version 1.0
// @description Employee check-in/check-out, attendance history and manager reporting.
//
// @host localhost:5000
// @BasePath /api/v1
// @schemes http https
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the PASETO token.
//
// @tag.name Auth
// @tag.name Users
// @tag.name Departments
// @tag.name Attendance
// @tag.name Reports
// @tag.name Dashboard
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zl.Sync()

	if cfg.GeneratedSecret {
		zl.Warn("PASETO_SECRET is not set; using a random key, tokens will not survive a restart")
	}

	if err := config.MongoConnect(cfg); err != nil {
		zl.Fatal("database connection failed", zap.Error(err))
	}
	defer config.DisconnectDB()

	idxCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = config.EnsureIndexes(idxCtx)
	cancel()
	if err != nil {
		zl.Fatal("index setup failed", zap.Error(err))
	}

	key, err := config.DecodeSecret(cfg.PasetoSecret)
	if err != nil {
		zl.Fatal("invalid token secret", zap.Error(err))
	}
	tokens, err := paseto.NewMaker(key, cfg.TokenTTL)
	if err != nil {
		zl.Fatal("token maker init failed", zap.Error(err))
	}

	app := fiber.New(fiber.Config{
		AppName:      "Attendance Tracker",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})
	app.Use(recover.New())
	config.SetupCORS(app, cfg.AllowedOrigins)
	app.Use(logger.New())

	router.SetupRoutes(app, router.Dependencies{
		Users:       repository.NewUserRepository(),
		Departments: repository.NewDepartmentRepository(),
		Attendance:  repository.NewAttendanceRepository(),
		QRCodes:     repository.NewQRCodeRepository(),
		Tokens:      tokens,
		Clock:       attendance.SystemClock{Location: cfg.Location},
		Logger:      zl,
	})

	go func() {
		zl.Info("server starting",
			zap.String("port", cfg.Port),
			zap.String("timezone", cfg.Location.String()),
			zap.String("docs", "http://localhost:"+cfg.Port+"/docs/index.html"),
			zap.Strings("cors_origins", cfg.AllowedOrigins),
		)
		if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, context.Canceled) {
			zl.Error("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := app.ShutdownWithContext(ctx); err != nil {
		zl.Error("graceful shutdown failed", zap.Error(err))
	}
}
