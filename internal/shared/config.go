package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	DatasetPath string
	DatasetURL  string
	RedisAddr   string
	RedisPass   string
	RedisDB     int
	Workers     int
	RateRPS     int
	RateBurst   int
	FetchRPS    int
	CacheTTL    time.Duration
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ""),
		DatasetPath: env("DATASET_PATH", "london_airbnb_clean.csv"),
		DatasetURL:  env("DATASET_URL", ""),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		Workers:     atoi("WARM_WORKERS", 8),
		RateRPS:     atoi("RATE_LIMIT_RPS", 50),
		RateBurst:   atoi("RATE_LIMIT_BURST", 100),
		FetchRPS:    atoi("FETCH_RPS", 5),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.RedisAddr == "" {
		log.Warn().Msg("REDIS_ADDR is empty; response caching disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
