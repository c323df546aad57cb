package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is the full application configuration.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"local"`

	Database DatabaseConfig
	Redis    RedisConfig
	Bucket   BucketConfig
	Feed     FeedConfig
	Limits   LimitsConfig
	Fetcher  FetcherConfig
	API      APIConfig
}

// Database configuration struct.
type DatabaseConfig struct {
	DSN            string        `env:"DATABASE_URL"`
	Database       string        `env:"POSTGRES_DB" envDefault:"rugbyrank"`
	MigrationsPath string        `env:"MIGRATIONS_PATH" envDefault:"pkg/database/migrations"`
	MaxOpenConns   int           `env:"DATABASE_MAX_OPEN_CONNS" envDefault:"20"`
	MaxIdleConns   int           `env:"DATABASE_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLife    time.Duration `env:"DATABASE_CONN_MAX_LIFETIME" envDefault:"1h"`
}

// Redis configuration struct.
type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

// Bucket where the job logs are uploaded.
type BucketConfig struct {
	Region       string `env:"BUCKET_REGION" envDefault:"auto"`
	Endpoint     string `env:"BUCKET_ENDPOINT"`
	AccessKey    string `env:"BUCKET_ACCESS_KEY"`
	AccessSecret string `env:"BUCKET_ACCESS_SECRET"`
	LogBucket    string `env:"BUCKET_LOG_NAME"`
}

// Feed is the World Rugby rankings feed.
type FeedConfig struct {
	BaseURL            string        `env:"FEED_BASE_URL" envDefault:"https://api.wr-rims-prod.pulselive.com"`
	Timeout            time.Duration `env:"FEED_TIMEOUT" envDefault:"10s"`
	DetectNeutralVenue bool          `env:"FEED_DETECT_NEUTRAL_VENUE" envDefault:"false"`
	CacheTTL           time.Duration `env:"FEED_CACHE_TTL" envDefault:"1h"`
}

// Single rate limit window.
type LimitWindow struct {
	Count         int
	ResetInterval time.Duration
}

// Limits for the feed requests.
type LimitsConfig struct {
	LowerCount    int           `env:"LIMIT_LOWER_COUNT" envDefault:"10"`
	LowerInterval time.Duration `env:"LIMIT_LOWER_INTERVAL" envDefault:"1s"`
	UpperCount    int           `env:"LIMIT_UPPER_COUNT" envDefault:"300"`
	UpperInterval time.Duration `env:"LIMIT_UPPER_INTERVAL" envDefault:"1m"`
	// Slowest interval between background job requests.
	SlowInterval time.Duration `env:"LIMIT_SLOW_INTERVAL" envDefault:"100ms"`
}

// Windows returns the configured windows, fastest first.
func (l LimitsConfig) Windows() []LimitWindow {
	return []LimitWindow{
		{Count: l.LowerCount, ResetInterval: l.LowerInterval},
		{Count: l.UpperCount, ResetInterval: l.UpperInterval},
	}
}

// Fetcher gRPC server.
type FetcherConfig struct {
	ListenAddress string `env:"FETCHER_LISTEN_ADDRESS" envDefault:":50051"`
	Address       string `env:"FETCHER_ADDRESS" envDefault:"fetcher:50051"`
}

// HTTP API.
type APIConfig struct {
	ListenAddress string `env:"API_LISTEN_ADDRESS" envDefault:":8080"`
}

// Load the .env file when not running on Docker and parse the variables.
func Load() (*Config, error) {
	if os.Getenv("ENVIRONMENT") != "docker" {
		// The file is optional, the variables may come from the shell.
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("couldn't load .env file: %w", err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("couldn't parse the environment: %w", err)
	}

	return cfg, nil
}
