package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadFromFullConfig(t *testing.T) {
	path := writeConfig(t, `
address = "/run/gics/gics.sock"
token = "secret"
max_retries = 5
retry_delay_ms = 250
request_timeout_ms = 2000
pool_size = 8
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "/run/gics/gics.sock", cfg.Address)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 5, cfg.MaxRetries)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay())
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 8, cfg.PoolSize)
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := writeConfig(t, `address = [broken`)
	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestLoadFromEnvExpansion(t *testing.T) {
	t.Setenv("GICS_TEST_TOKEN", "from-env")
	path := writeConfig(t, `
token = "${GICS_TEST_TOKEN}"
address = "${GICS_TEST_UNSET_VAR}"
`)

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Token)
	// Unresolved placeholders stay verbatim.
	assert.Equal(t, "${GICS_TEST_UNSET_VAR}", cfg.Address)
}

func TestRetryDelayZeroWhenUnset(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, time.Duration(0), cfg.RetryDelay())
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout())
}
