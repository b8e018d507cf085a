package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/atelier-north/studio-backend/config"
	"github.com/atelier-north/studio-backend/internal/bootstrap"
	"github.com/atelier-north/studio-backend/internal/storage/postgres"
	"github.com/atelier-north/studio-backend/internal/uploads"
)

const serviceName = "studio-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewConnection(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer db.Close()

	rdb := bootstrap.OpenRedis(ctx, cfg.Redis)
	if rdb != nil {
		defer rdb.Close()
	}

	var store *uploads.Store
	if cfg.Storage.AccessKey != "" {
		store, err = uploads.NewStore(&cfg.Storage)
		if err != nil {
			log.Fatalf("object storage: %v", err)
		}
		if err := store.EnsureBucket(ctx); err != nil {
			log.Fatalf("object storage bucket: %v", err)
		}
	} else {
		log.Println("S3_ACCESS_KEY not set, uploads disabled")
	}

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: serviceName,
		Version:     cfg.App.Version,
		Config:      cfg,
		DB:          db,
		Redis:       rdb,
		Uploads:     store,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("%s listening on :%s", serviceName, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
