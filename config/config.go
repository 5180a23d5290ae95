package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Listing defaults
const DEFAULT_PAGE_SIZE = 12
const DEFAULT_ENRICH_CONCURRENCY = 4

// MAX_TARGET_PAGES caps a requested target count at this many pages' worth.
const MAX_TARGET_PAGES = 5

// Holidaze API
const HOLIDAZE_ENDPOINT_BASE_V2 = "https://v2.api.noroff.dev"
const HOLIDAZE_REQUEST_TIMEOUT = 10 * time.Second

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const VENUES_RESOURCE = "venues.json"

const ENV_PROD = "prod"

// Config is read from the environment.
type Config struct {
	Env string `env:"APP_ENV, default=dev"`

	HTTP struct {
		Addr            string        `env:"ADDR, default=:8080"`
		ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=5s"`
	} `env:", prefix=HTTP_"`

	Holidaze struct {
		BaseURL        string        `env:"API_BASE"`
		APIKey         string        `env:"API_KEY"`
		Account        string        `env:"ACCOUNT, default=default"`
		RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
	} `env:", prefix=HOLIDAZE_"`

	Redis struct {
		Addr     string `env:"ADDR, default=redis:6379"`
		Password string `env:"PASSWORD"`
		DB       int    `env:"DB, default=0"`
	} `env:", prefix=REDIS_"`

	Listing struct {
		PageSize          int           `env:"PAGE_SIZE, default=12"`
		EnrichConcurrency int           `env:"ENRICH_CONCURRENCY, default=4"`
		VenueCacheTTL     time.Duration `env:"VENUE_CACHE_TTL, default=10m"`
		CursorTTL         time.Duration `env:"CURSOR_TTL, default=30m"`
	}

	Refresh struct {
		Schedule string `env:"SCHEDULE, default=@every 30m"`
		Pages    int    `env:"PAGES, default=3"`
	} `env:", prefix=REFRESH_"`
}

func GetConfig(ctx context.Context) (*Config, error) {
	var c Config
	if err := envconfig.Process(ctx, &c); err != nil {
		return nil, err
	}
	if c.Holidaze.BaseURL == "" {
		c.Holidaze.BaseURL = HOLIDAZE_ENDPOINT_BASE_V2
	}
	if c.Holidaze.RequestTimeout <= 0 {
		c.Holidaze.RequestTimeout = HOLIDAZE_REQUEST_TIMEOUT
	}
	if c.Listing.PageSize < 1 {
		c.Listing.PageSize = DEFAULT_PAGE_SIZE
	}
	if c.Listing.EnrichConcurrency < 1 {
		c.Listing.EnrichConcurrency = DEFAULT_ENRICH_CONCURRENCY
	}
	return &c, nil
}

// IsProd reports whether real Redis and the real Holidaze API should be used.
func (c *Config) IsProd() bool {
	return c.Env == ENV_PROD
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resourceFile string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resourceFile)
}
