package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"ops-backend/internal/config"
	"ops-backend/internal/store"
	"ops-backend/internal/store/jsonfile"
	"ops-backend/internal/store/postgres"
	"ops-backend/pkg/logger"
)

func main() {
	backend := flag.String("backend", "", "Storage backend: jsonfile or postgres (overrides config)")
	dataFile := flag.String("data", "", "JSON document path for the jsonfile backend (overrides config)")
	flag.Parse()

	cfg := config.Load()
	if *backend != "" {
		cfg.Storage.Backend = *backend
	}
	if *dataFile != "" {
		cfg.Storage.DataFile = *dataFile
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		st  store.Store
		err error
	)
	switch cfg.Storage.Backend {
	case "jsonfile":
		st, err = jsonfile.New(cfg.Storage.DataFile, store.Deps{}, log)
	case "postgres":
		openCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		st, err = postgres.New(openCtx, cfg.DSN(), store.Deps{}, log)
		cancel()
	default:
		log.Fatal().Str("backend", cfg.Storage.Backend).Msg("unknown storage backend")
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Storage.Backend).Msg("failed to open store")
	}
	defer st.Close()

	// Prometheus metrics listener; op counters and durations for both backends
	if cfg.Metrics.Addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			log.Info().Str("addr", cfg.Metrics.Addr).Msg("metrics listener up")
			if err := http.ListenAndServe(cfg.Metrics.Addr, mux); err != nil {
				log.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}

	log.Info().Str("backend", cfg.Storage.Backend).Msg("store ready")

	<-ctx.Done()
	log.Info().Msg("shutting down")
}
