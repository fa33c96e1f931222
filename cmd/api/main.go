package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"realty-catalog/internal/adapters/storage/document"
	"realty-catalog/internal/adapters/storage/postgres"
	"realty-catalog/internal/config"
	"realty-catalog/internal/platform/logger"
	"realty-catalog/internal/router"
	"realty-catalog/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	var store storage.Factory
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres: %v", err)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = postgres.EnsureSchema(ctx, db)
		cancel()
		if err != nil {
			log.Fatalf("postgres schema: %v", err)
		}

		store = postgres.NewFactory(db)
		lg.Info("using postgres backend", nil)
	} else {
		docs, err := document.Open(cfg.DocStorePath)
		if err != nil {
			log.Fatalf("document store: %v", err)
		}
		defer docs.Close()

		store = docs
		lg.Info("using embedded document backend", map[string]any{"path": cfg.DocStorePath})
	}

	r := router.NewRouter(router.Options{Store: store, Log: lg})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	lg.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
