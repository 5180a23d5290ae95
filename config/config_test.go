package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig_Defaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "HOLIDAZE_API_BASE", "HOLIDAZE_REQUEST_TIMEOUT", "PAGE_SIZE", "ENRICH_CONCURRENCY", "VENUE_CACHE_TTL", "REFRESH_SCHEDULE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := GetConfig(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.False(t, cfg.IsProd())
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, HOLIDAZE_ENDPOINT_BASE_V2, cfg.Holidaze.BaseURL)
	assert.Equal(t, HOLIDAZE_REQUEST_TIMEOUT, cfg.Holidaze.RequestTimeout)
	assert.Equal(t, DEFAULT_PAGE_SIZE, cfg.Listing.PageSize)
	assert.Equal(t, DEFAULT_ENRICH_CONCURRENCY, cfg.Listing.EnrichConcurrency)
	assert.Equal(t, 10*time.Minute, cfg.Listing.VenueCacheTTL)
	assert.Equal(t, "@every 30m", cfg.Refresh.Schedule)
}

func TestGetConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("HOLIDAZE_API_KEY", "key-1")
	t.Setenv("REDIS_ADDR", "localhost:6380")
	t.Setenv("ENRICH_CONCURRENCY", "0")
	t.Setenv("CURSOR_TTL", "1h")
	t.Setenv("HOLIDAZE_REQUEST_TIMEOUT", "3s")

	cfg, err := GetConfig(context.Background())
	require.NoError(t, err)

	assert.True(t, cfg.IsProd())
	assert.Equal(t, "key-1", cfg.Holidaze.APIKey)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
	assert.Equal(t, DEFAULT_ENRICH_CONCURRENCY, cfg.Listing.EnrichConcurrency)
	assert.Equal(t, time.Hour, cfg.Listing.CursorTTL)
	assert.Equal(t, 3*time.Second, cfg.Holidaze.RequestTimeout)
}

func TestGetResourcePath(t *testing.T) {
	t.Setenv("PROJECT_ROOT", "/srv/app")
	assert.Equal(t, filepath.Join("/srv/app", "resources", "venues.json"), GetResourcePath(VENUES_RESOURCE))
}
