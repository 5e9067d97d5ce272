package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bakery-api/internal/config"
	"bakery-api/internal/database"
	"bakery-api/internal/logger"
	"bakery-api/internal/router"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Loading configuration: %v", err)
	}

	level, _ := logrus.ParseLevel(cfg.LogLevel)
	logger.InitLogger(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Init(ctx, cfg)
	if err != nil {
		logrus.Fatalf("Database setup failed: %v", err)
	}

	app := router.New(cfg, db)

	go func() {
		<-ctx.Done()
		logrus.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logrus.WithError(err).Error("Shutdown failed")
		}
	}()

	logrus.WithField("port", cfg.HTTPPort).Info("Server listening")
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logrus.Fatal(err)
	}

	if err := database.Close(db); err != nil {
		logrus.WithError(err).Error("Closing database failed")
	}
}
