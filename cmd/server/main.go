package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	syncapp "github.com/akib4796/omnishop-manager-sub002/internal/application/sync"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/auth"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/config"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/logger"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/persistence"
	"github.com/akib4796/omnishop-manager-sub002/internal/infrastructure/scheduler"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting omnishop sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// GORM logger backed by zap, shared by both stores
	gormLog := logger.NewGormLogger(log, gormlogger.Warn)

	// Open the durable local queue/cache
	localDB, err := persistence.OpenLocalDatabase(cfg.LocalDB, gormLog)
	if err != nil {
		log.Fatal("Failed to open local database", zap.Error(err))
	}
	localStore := persistence.NewSQLiteLocalStore(localDB)
	log.Info("Local database ready", zap.String("path", cfg.LocalDB.Path))

	// Connect to the authoritative backend
	remoteDB, err := persistence.OpenRemoteDatabase(cfg.RemoteDB, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to remote database", zap.Error(err))
	}
	remoteStore := persistence.NewGormRemoteStore(remoteDB)
	defer func() {
		if sqlDB, err := remoteDB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()
	log.Info("Remote database connected",
		zap.String("host", cfg.RemoteDB.Host),
		zap.String("database", cfg.RemoteDB.DBName),
	)

	// Session verification for the current device
	sessions := auth.NewSessionService(cfg.Auth, nil)

	// Sync engine
	notifier := syncapp.NewNotifier(log)
	manager := syncapp.NewManager(localStore, remoteStore, sessions, notifier, log)

	// Surface sync status transitions in the service log
	unsubscribe := manager.Subscribe(func(status syncapp.Status, message string) {
		if message != "" {
			log.Info("Sync status", zap.String("status", status.String()), zap.String("message", message))
			return
		}
		log.Info("Sync status", zap.String("status", status.String()))
	})
	defer unsubscribe()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Sync.Enabled {
		sched := scheduler.NewSyncScheduler(cfg.Sync.Interval, manager, log)
		if err := sched.Start(ctx); err != nil {
			log.Fatal("Failed to start sync scheduler", zap.Error(err))
		}
		defer func() {
			stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if err := sched.Stop(stopCtx); err != nil {
				log.Error("Sync scheduler did not stop cleanly", zap.Error(err))
			}
		}()
	} else {
		log.Warn("Background sync disabled; only manual passes will run")
	}

	<-ctx.Done()
	log.Info("Shutting down...")
}
