package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/mazid79/MemoraTodoApp/api"
	"github.com/mazid79/MemoraTodoApp/api/server"
	"github.com/mazid79/MemoraTodoApp/config"
	"github.com/mazid79/MemoraTodoApp/logger"
	"github.com/mazid79/MemoraTodoApp/tasks/notify"
	"github.com/mazid79/MemoraTodoApp/tasks/persist"
	"github.com/mazid79/MemoraTodoApp/tasks/store"
)

func main() {
	// Local development convenience; a missing .env is fine
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// Create logger
	lg := logger.New(cfg.LogLevel, nil)

	lg.Info("Starting memora", map[string]any{
		"version":   cfg.Version,
		"port":      cfg.ServerPort,
		"log_level": cfg.LogLevel,
		"storage":   cfg.Storage,
	})

	// Persistence gateway per configuration
	gateway, closeGateway, err := newGateway(cfg)
	if err != nil {
		log.Fatalf("failed to create persistence gateway: %v", err)
	}
	defer closeGateway()

	// Notification gateway; reminders are optional capability
	notifyGateway, local := newNotifyGateway(cfg, lg)

	scheduler := notify.NewScheduler(notifyGateway, lg)

	// Write-behind persistence
	writer := persist.NewWriter(gateway, lg, cfg.SaveRetries, cfg.SaveBackoff)
	writer.Start()

	// Load the task list; a corrupt blob is fatal at startup
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	st, err := store.New(loadCtx, gateway, scheduler, writer, lg)
	cancel()
	if err != nil {
		log.Fatalf("failed to initialize task store: %v", err)
	}

	// In-process timers were lost on restart; re-arm them
	st.Rearm(context.Background())

	// Create and start server
	handler := api.NewRouter(st, cfg, lg)
	srv := server.New(handler, cfg, lg)
	if err := srv.Start(); err != nil {
		log.Fatalf("server failed: %v", err)
	}

	// Drain pending saves and disarm timers before exiting
	writer.Flush()
	writer.Stop()
	if local != nil {
		local.Stop()
	}
}

// newGateway selects the persistence backend from configuration.
func newGateway(cfg *config.Config) (persist.Gateway, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		gw, err := persist.NewRedisGateway(cfg.RedisURL, cfg.StorageKey)
		if err != nil {
			return nil, nil, err
		}
		return gw, func() { gw.Close() }, nil

	case config.StorageSQLite:
		gw, err := persist.NewSQLiteGateway(cfg.SQLitePath, cfg.StorageKey)
		if err != nil {
			return nil, nil, err
		}
		return gw, func() { gw.Close() }, nil

	case config.StorageMemory:
		return persist.NewMemoryGateway(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

// newNotifyGateway picks the local timer gateway, or a noop one when
// notification capability is disabled. The warning fires once, at
// startup; due dates are still stored either way.
func newNotifyGateway(cfg *config.Config, lg *logger.Logger) (notify.Gateway, *notify.LocalGateway) {
	if !cfg.Notifications {
		lg.Warn("notifications disabled; reminders will never fire")
		return notify.NewNoopGateway(), nil
	}

	local := notify.NewLocalGateway(lg, nil)
	return local, local
}
