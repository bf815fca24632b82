// Command dexserver is the read-only HTTP query surface over the Asset
// Ledger and Swap Engine, generalizing the teacher's cmd/dexserver/main.go
// (a single http.HandleFunc("/api/pools", ...) with no middleware, no
// graceful shutdown, no metrics) into a chi-routed server with request
// tracing, structured access logging, a separate Prometheus listener, and
// a JSON state snapshot loaded at boot and flushed on shutdown, using the
// same internal/appstate.Env both dexcli builds commands against.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appconfig "zlkdex/cmd/config"
	"zlkdex/internal/appstate"
)

var appEnv *appstate.Env

func main() {
	_ = godotenv.Load()

	appconfig.LoadConfig(os.Getenv("ZLKDEX_ENV"))
	cfg := appconfig.AppConfig

	logger := log.StandardLogger()
	if cfg.Logging.Level != "" {
		if lvl, err := log.ParseLevel(cfg.Logging.Level); err == nil {
			logger.SetLevel(lvl)
		}
	}

	statePath := os.Getenv("ZLKDEX_STATE_PATH")

	var err error
	appEnv, err = appstate.Load(statePath, cfg.Ledger.ExistentialDeposit, logger)
	if err != nil {
		logger.Fatalf("state init: %v", err)
	}

	addr := cfg.DexServer.Addr
	if addr == "" {
		addr = "127.0.0.1:8081"
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handleHealthz)
	r.Get("/api/pools", handlePoolsList)
	r.Get("/api/pools/{id}", handlePoolByID)
	r.Get("/api/assets/{id}", handleAssetByID)
	r.Get("/api/balances/{asset}/{account}", handleBalance)
	r.Get("/api/quote", handleQuote)

	srv := &http.Server{Addr: addr, Handler: r}
	metrics := newMetricsServer(cfg.DexServer.MetricsAddr)

	go func() {
		logger.Printf("dexserver listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("dexserver: %v", err)
		}
	}()

	if metrics != nil {
		go func() {
			logger.Printf("dexserver metrics listening on %s", cfg.DexServer.MetricsAddr)
			if err := metrics.start(); err != nil && err != http.ErrServerClosed {
				logger.Fatalf("metrics server: %v", err)
			}
		}()
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_ = srv.Shutdown(ctx)
	_ = metrics.stop(ctx)

	if err := appEnv.Save(statePath); err != nil {
		logger.Errorf("state save: %v", err)
	}
}
