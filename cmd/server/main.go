// Package main - Entry point for the proposal-cost API server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"proposal-cost/adapters/storage"
	"proposal-cost/api"
	"proposal-cost/core/rates"
	"proposal-cost/db"
	"proposal-cost/internal/config"
	"proposal-cost/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "config file path")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg := config.Get()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			logging.Fatal("failed to load config", zap.Error(err))
		}
		config.Set(loaded)
		cfg = loaded
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("failed to initialize logging", zap.Error(err))
	}
	defer logging.Sync()

	store, err := storage.NewStore(storage.Config{
		Backend: storage.Backend(cfg.Storage.Backend),
		BaseURL: cfg.Storage.BaseURL,
		APIKey:  cfg.Storage.APIKey,
		Path:    cfg.Storage.Path,
		Timeout: time.Duration(cfg.Storage.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		logging.Fatal("failed to create proposal store", zap.Error(err))
	}
	defer store.Close()

	table := loadRateTable(cfg)

	server := api.NewServer(version, store, table)

	listen := cfg.Server.Address
	if *addr != "" {
		listen = *addr
	}

	httpServer := &http.Server{
		Addr:         listen,
		Handler:      server,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	fmt.Printf("proposal-cost server v%s listening on %s\n", version, listen)
	if err := httpServer.ListenAndServe(); err != nil {
		logging.Fatal("server stopped", zap.Error(err))
	}
}

// loadRateTable fetches the hourly-rate table once at startup. The
// engine treats the table as read-only from here on; restart the
// server to pick up new rates.
func loadRateTable(cfg *config.Config) *rates.Table {
	if cfg.Rates.DatabaseURL == "" || !cfg.Rates.RefreshOnStart {
		logging.Warn("no rate database configured, hourly rate resolution disabled")
		return rates.NewTable(nil)
	}

	rateStore, err := db.Open(cfg.Rates.DatabaseURL)
	if err != nil {
		logging.Fatal("failed to open rate database", zap.Error(err))
	}
	defer rateStore.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rows, err := rateStore.LoadRates(ctx)
	if err != nil {
		logging.Fatal("failed to load rate table", zap.Error(err))
	}

	table := rates.NewTable(rows)
	logging.Info("rate table loaded", zap.Int("rates", table.Size()))
	return table
}
