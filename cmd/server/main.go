package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"gayo/internal/config"
	"gayo/internal/diagnostic"
	"gayo/internal/infrastructure/database"
	"gayo/internal/infrastructure/logger"
	"gayo/internal/menu"
	"gayo/internal/menu/seed"
	"gayo/internal/order"
	"gayo/internal/server"
	"gayo/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.App.Name)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	// A missing or unreachable database leaves the service up in degraded mode.
	conn := database.Connect(context.Background(), cfg.Database, zapLogger)
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			zapLogger.Warn("closing database connection", zap.Error(err))
		}
	}()

	acc := store.NewAccessor(conn, cfg.Database.OperationTimeout, zapLogger)

	catalogue, err := seed.DefaultCatalogue()
	if err != nil {
		zapLogger.Fatal("loading seed catalogue", zap.Error(err))
	}

	menuModule := menu.NewModule(acc, catalogue, zapLogger)
	if cfg.Seed.Enabled {
		if _, err := menuModule.Seeder.Seed(context.Background()); err != nil {
			zapLogger.Warn("seeding menu failed", zap.Error(err))
		}
	}

	orderCtrl := order.NewModule(acc, zapLogger)
	diagCtrl := diagnostic.NewModule(acc, cfg, zapLogger)

	router := server.NewRouter(menuModule.Controller, orderCtrl, diagCtrl, cfg.Server.AllowedOrigins, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("server shutdown failed", zap.Error(err))
		return
	}

	zapLogger.Info("server stopped gracefully")
}
