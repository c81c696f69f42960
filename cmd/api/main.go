package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"rental_dashboard/internal/adapters/fetch"
	server "rental_dashboard/internal/adapters/http_server"
	"rental_dashboard/internal/adapters/observability"
	redisad "rental_dashboard/internal/adapters/redis"
	"rental_dashboard/internal/app"
	"rental_dashboard/internal/domain"
	"rental_dashboard/internal/shared"
	"rental_dashboard/internal/storage/csvstore"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "api")

	observability.Serve(cfg.MetricsAddr)

	// dataset: download when a URL is configured and no local copy exists
	if cfg.DatasetURL != "" {
		if _, err := os.Stat(cfg.DatasetPath); os.IsNotExist(err) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			if err := fetch.New(cfg.FetchRPS).Download(ctx, cfg.DatasetURL, cfg.DatasetPath); err != nil {
				log.Fatal().Err(err).Str("url", cfg.DatasetURL).Msg("dataset download failed")
			}
			cancel()
			log.Info().Str("url", cfg.DatasetURL).Str("path", cfg.DatasetPath).Msg("dataset downloaded")
		}
	}

	store, err := csvstore.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	observability.SetDatasetRows(len(store.Rows()))

	// cache is optional; an unreachable Redis downgrades to uncached serving
	var cache domain.Cache
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; caching disabled")
		} else {
			cache = rc
		}
		cancel()
	}

	q := app.NewDashboardService(store, cache, cfg.CacheTTL)

	// http
	srv := server.New(cfg.RateRPS, cfg.RateBurst)
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Q: q})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
