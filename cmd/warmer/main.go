package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"rental_dashboard/internal/adapters/observability"
	redisad "rental_dashboard/internal/adapters/redis"
	"rental_dashboard/internal/app"
	"rental_dashboard/internal/domain"
	"rental_dashboard/internal/shared"
	"rental_dashboard/internal/storage/csvstore"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, "warmer")

	log.Info().
		Str("dataset", cfg.DatasetPath).
		Int("workers", cfg.Workers).
		Msg("warmer starting")

	if cfg.RedisAddr == "" {
		log.Fatal().Msg("REDIS_ADDR is required; there is no cache to warm without it")
	}

	store, err := csvstore.Load(cfg.DatasetPath)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}

	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err := cache.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("redis ping failed")
	}

	q := app.NewDashboardService(store, cache, cfg.CacheTTL)
	warm := app.NewWarmService(q)

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, sel := range warm.Plan() {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, int64(1)); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(sel domain.FilterSelection) {
			defer wg.Done()
			defer sem.Release(int64(1))

			if err := warm.Warm(ctx, sel); err != nil {
				log.Warn().
					Strs("room_types", sel.RoomTypes).
					Strs("time_periods", sel.TimePeriods).
					Str("satisfaction", sel.Satisfaction).
					Err(err).
					Msg("warm failed")
				return
			}
			log.Info().
				Strs("room_types", sel.RoomTypes).
				Strs("time_periods", sel.TimePeriods).
				Str("satisfaction", sel.Satisfaction).
				Msg("warm ok")
		}(sel)
	}

	wg.Wait()
	log.Info().Msg("warming completed")
}
