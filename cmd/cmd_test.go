package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/govbills-crawler/internal/config"
)

func TestStatsCommandCreatesEmptyStore(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "bills.db")
	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"stats", "--db-path", dbPath}, &out, &errOut)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Database statistics")
	assert.Contains(t, out.String(), "Executive actions")
	assert.NotContains(t, out.String(), "Recent bills")
	_, statErr := os.Stat(dbPath)
	assert.NoError(t, statErr)
}

func TestCrawlStatsFlagSkipsCrawl(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "bills.db")
	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"crawl", "--stats", "--db-path", dbPath}, &out, &errOut)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Database statistics")
	assert.NotContains(t, out.String(), "Crawl summary")
}

func TestCrawlRejectsUnknownSite(t *testing.T) {
	t.Parallel()

	dbPath := filepath.Join(t.TempDir(), "bills.db")
	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"crawl", "-s", "senate", "--db-path", dbPath}, &out, &errOut)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.Contains(t, errOut.String(), "unknown site")
	assert.Empty(t, out.String())
}

func TestPostgresRequiresDSN(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	err := run(context.Background(), []string{"stats", "--driver", "postgres"}, &out, &errOut)
	require.ErrorIs(t, err, config.ErrInvalid)
	assert.ErrorContains(t, err, "storage.dsn is required")
}

func TestRootCommandWiring(t *testing.T) {
	t.Parallel()

	root := newRootCmd()
	for _, name := range []string{"crawl", "stats"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}
	for _, flag := range []string{"config", "driver", "db-path", "dsn"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
	crawl, _, err := root.Find([]string{"crawl"})
	require.NoError(t, err)
	site := crawl.Flags().Lookup("site")
	require.NotNil(t, site)
	assert.Equal(t, "s", site.Shorthand)
	assert.Equal(t, "[all]", site.DefValue)
}
