package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"chatrelay-be/internal/bootstrap"
	"chatrelay-be/internal/config"
	"chatrelay-be/internal/model"
	"chatrelay-be/internal/pkg/logger"
	"chatrelay-be/internal/server"
	"chatrelay-be/internal/tracer"
	"chatrelay-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. Logger and Tracer
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	shutdownTracer := tracer.InitTracer(cfg.Telemetry.Enabled, cfg.Telemetry.OTLPEndpoint)

	// 3. Initialize Database
	gormDB, err := database.NewGormDB(database.GormConfig{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.Connection,
	})
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	// sqlite is the zero-setup store, so create its tables on boot
	if cfg.Database.Driver == database.DriverSQLite {
		if err := gormDB.AutoMigrate(model.All()...); err != nil {
			log.Fatalf("AutoMigrate failed: %v", err)
		}
	}

	// 4. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(context.Background(), gormDB, cfg, sysLogger)
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		if err := srv.Run(); err != nil {
			log.Printf("Server stopped: %v", err)
		}
	}()

	// 6. Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sysLogger.Info("MAIN", "Shutting down", nil)

	if err := srv.Shutdown(cfg.App.ShutdownTimeout); err != nil {
		sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err})
	}
	if err := database.Close(gormDB); err != nil {
		sysLogger.Error("MAIN", "Database close failed", map[string]interface{}{"error": err})
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := shutdownTracer(ctx); err != nil {
		sysLogger.Error("MAIN", "Tracer shutdown failed", map[string]interface{}{"error": err})
	}
	_ = sysLogger.Sync()
}
