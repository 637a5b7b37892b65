package server

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/JakeFAU/govbills-crawler/internal/config"
	"github.com/JakeFAU/govbills-crawler/internal/policy/ratelimit"
	"github.com/JakeFAU/govbills-crawler/internal/sites"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Storage.Path = filepath.Join(t.TempDir(), "bills.db")
	return cfg
}

func TestBuildWithSQLite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	app, err := Build(ctx, testConfig(t), zap.NewNop())
	require.NoError(t, err)

	st, err := app.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Bills)
	assert.Zero(t, st.Actions)

	require.NoError(t, app.Close(ctx))
}

func TestOpenStoreRejectsBadBackends(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Storage.Driver = "mysql"
	_, err := OpenStore(context.Background(), cfg, zap.NewNop())
	require.ErrorIs(t, err, config.ErrInvalid)

	cfg.Storage.Driver = config.DriverPostgres
	cfg.Storage.DSN = "postgres://bills@localhost:notaport/bills"
	_, err = OpenStore(context.Background(), cfg, zap.NewNop())
	require.ErrorContains(t, err, "postgres store init failed")
}

func TestLimiterConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.Sites.Delays["govtrack"] = 0.25
	reg, err := sites.NewRegistry(sites.Options{}, sites.CongressID, sites.GovTrackID)
	require.NoError(t, err)

	limits := LimiterConfig(cfg, reg)
	assert.Equal(t, time.Second, limits.DefaultDelay)
	assert.Equal(t, []ratelimit.Rule{
		{Domain: "congress.gov", Delay: 3 * time.Second},
		{Domain: "govtrack.us", Delay: 250 * time.Millisecond},
	}, limits.Rules)
}

func TestCrawlRequiresReachableSeeds(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := testConfig(t)
	cfg.Sites.Enabled = []string{sites.WhiteHouseID}
	app, err := Build(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close(context.Background()) })

	summary, err := app.Crawl(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{sites.WhiteHouseID}, summary.Sites)
	assert.Zero(t, summary.Records)
}
