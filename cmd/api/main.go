package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recipehub/internal/config"
	"recipehub/internal/db"
	httpx "recipehub/internal/http"
	"recipehub/internal/observability"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional, real deployments set the environment directly
	_ = godotenv.Load()

	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)

	if cfg.JWTSecret == "" {
		log.Warn("JWT_SECRET is not set; protected routes will fail with 500")
	}

	pool, err := db.NewPool(cfg.DBURL)

	if err != nil {
		log.Error("could not connect to database", "err", err)
		os.Exit(1)
	}

	defer pool.Close()

	seedCtx, seedCancel := config.WithTimeout(5 * time.Second)

	err = db.EnsureCategories(seedCtx, pool)

	seedCancel()

	if err != nil {
		log.Error("could not seed categories", "err", err)
		os.Exit(1)
	}

	if cfg.TracingEnabled {
		shutdownTracer, err := observability.InitTracer(context.Background(), "recipehub", cfg.OTELEndpoint)

		if err != nil {
			log.Error("could not init tracer", "err", err)
			os.Exit(1)
		}

		defer func() {
			ctx, cancel := config.WithTimeout(3 * time.Second)
			defer cancel()
			_ = shutdownTracer(ctx)
		}()
	}

	router := httpx.NewRouter(log, pool, cfg)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctx, cancel := config.WithTimeout(10 * time.Second)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}
