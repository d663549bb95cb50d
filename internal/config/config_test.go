package config

import (
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestWithDefault_AppliesSpecDefaults(t *testing.T) {
	cfg, err := WithDefault(mustParse(t, "https://example.com")).Build()
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.MaxPages())
	assert.Equal(t, 5, cfg.Concurrency())
	assert.Equal(t, 100*time.Millisecond, cfg.RequestDelay())
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 3, cfg.MaxRetries())
	assert.True(t, cfg.DownloadFiles())

	depth, hasDepth := cfg.MaxDepth()
	assert.False(t, hasDepth)
	assert.Equal(t, 0, depth)
}

func TestBuild_RejectsMissingHost(t *testing.T) {
	_, err := WithDefault(url.URL{}).Build()
	assert.Error(t, err)
}

func TestBuild_RejectsZeroConcurrency(t *testing.T) {
	_, err := WithDefault(mustParse(t, "https://example.com")).WithConcurrency(0).Build()
	assert.Error(t, err)
}

func TestWithMaxDepth_SetsHasMaxDepth(t *testing.T) {
	cfg, err := WithDefault(mustParse(t, "https://example.com")).WithMaxDepth(2).Build()
	require.NoError(t, err)

	depth, hasDepth := cfg.MaxDepth()
	assert.True(t, hasDepth)
	assert.Equal(t, 2, depth)
}

func TestWithConfigFile_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"base_url": "https://example.com",
		"max_pages": 50,
		"concurrent_requests": 2,
		"request_delay": 0.5,
		"max_retries": 5,
		"download_files": false,
		"max_depth": 3
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := WithConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxPages())
	assert.Equal(t, 2, cfg.Concurrency())
	assert.Equal(t, 500*time.Millisecond, cfg.RequestDelay())
	assert.Equal(t, 5, cfg.MaxRetries())
	assert.False(t, cfg.DownloadFiles())

	depth, hasDepth := cfg.MaxDepth()
	assert.True(t, hasDepth)
	assert.Equal(t, 3, depth)
}

func TestWithConfigFile_MissingFile(t *testing.T) {
	_, err := WithConfigFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorIs(t, err, ErrFileDoesNotExist)
}
