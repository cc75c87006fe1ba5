package mcpserver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// clearOASDOCSEnv clears all OASDOCS_* env vars to isolate tests from the ambient environment.
func clearOASDOCSEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"OASDOCS_MAX_INLINE_SIZE", "OASDOCS_MAX_FILE_SIZE",
		"OASDOCS_MAX_REF_DEPTH", "OASDOCS_FETCH_TIMEOUT",
		"OASDOCS_ALLOW_PRIVATE_IPS", "OASDOCS_OPERATIONS_LIMIT",
		"OASDOCS_MAX_LIMIT", "OASDOCS_CACHE_ENABLED",
		"OASDOCS_CACHE_MAX_SIZE", "OASDOCS_CACHE_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearOASDOCSEnv(t)

	c := loadConfig()

	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, int64(10*1024*1024), c.MaxFileSize)
	assert.Equal(t, 100, c.MaxRefDepth)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
	assert.False(t, c.AllowPrivateIPs)
	assert.Equal(t, 100, c.OperationsLimit)
	assert.Equal(t, 1000, c.MaxLimit)
	assert.True(t, c.CacheEnabled)
	assert.Equal(t, 10, c.CacheMaxSize)
	assert.Equal(t, 15*time.Minute, c.CacheTTL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	clearOASDOCSEnv(t)
	t.Setenv("OASDOCS_MAX_INLINE_SIZE", "2048")
	t.Setenv("OASDOCS_MAX_REF_DEPTH", "12")
	t.Setenv("OASDOCS_FETCH_TIMEOUT", "5s")
	t.Setenv("OASDOCS_ALLOW_PRIVATE_IPS", "true")
	t.Setenv("OASDOCS_OPERATIONS_LIMIT", "20")
	t.Setenv("OASDOCS_CACHE_ENABLED", "false")
	t.Setenv("OASDOCS_CACHE_MAX_SIZE", "3")
	t.Setenv("OASDOCS_CACHE_TTL", "1m")

	c := loadConfig()

	assert.Equal(t, int64(2048), c.MaxInlineSize)
	assert.Equal(t, 12, c.MaxRefDepth)
	assert.Equal(t, 5*time.Second, c.FetchTimeout)
	assert.True(t, c.AllowPrivateIPs)
	assert.Equal(t, 20, c.OperationsLimit)
	assert.False(t, c.CacheEnabled)
	assert.Equal(t, 3, c.CacheMaxSize)
	assert.Equal(t, time.Minute, c.CacheTTL)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	clearOASDOCSEnv(t)
	t.Setenv("OASDOCS_MAX_INLINE_SIZE", "-1")
	t.Setenv("OASDOCS_MAX_REF_DEPTH", "deep")
	t.Setenv("OASDOCS_FETCH_TIMEOUT", "soon")
	t.Setenv("OASDOCS_ALLOW_PRIVATE_IPS", "maybe")

	c := loadConfig()

	assert.Equal(t, int64(10*1024*1024), c.MaxInlineSize)
	assert.Equal(t, 100, c.MaxRefDepth)
	assert.Equal(t, 30*time.Second, c.FetchTimeout)
	assert.False(t, c.AllowPrivateIPs)
}
