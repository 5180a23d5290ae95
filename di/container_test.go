package di

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holidaze-server/config"
	services "holidaze-server/service"
)

func devConfig(t *testing.T) *config.Config {
	t.Helper()
	root, err := filepath.Abs("..")
	require.NoError(t, err)
	t.Setenv("PROJECT_ROOT", root)
	t.Setenv("APP_ENV", "dev")

	cfg, err := config.GetConfig(context.Background())
	require.NoError(t, err)
	return cfg
}

func TestNewContainer_Dev(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(ctx, devConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, container.HolidazeHttpServer)
	assert.NoError(t, container.RedisClient.Ping(ctx))

	rs, err := container.VenueService.Search(ctx, "", services.SearchParams{
		DateFrom: "2025-06-10",
		DateTo:   "2025-06-15",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, rs.Venues)
	for _, v := range rs.Venues {
		assert.NotContains(t, []string{"venue-003", "venue-006", "venue-009"}, v.ID)
	}

	ids, err := container.VenuesRefresherService.RefreshVenuesData(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, ids)
}

func TestNewContainer_DevLogin(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(ctx, devConfig(t))
	require.NoError(t, err)

	_, err = container.AuthService.Login(ctx, "kari@stud.noroff.no", "password")
	require.NoError(t, err)
	token, err := container.TokenStore.GetToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "mock-token-kari", token)
}
