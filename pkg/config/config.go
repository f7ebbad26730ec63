// Package config loads optional client settings from a TOML file.
// Everything here is overridable programmatically; the file exists so
// operators can tune retry and pool behavior without a rebuild.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultConfigFile is the config path relative to the user home directory.
const DefaultConfigFile = ".gics/config.toml"

var envVarRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Config holds the file-level client settings. Zero values mean
// "use the built-in default".
type Config struct {
	// Address is the daemon socket path (or pipe name on Windows)
	Address string `toml:"address"`
	// Token authenticates calls to the daemon
	Token string `toml:"token"`
	// MaxRetries is the number of retry attempts after the first try
	MaxRetries int `toml:"max_retries"`
	// RetryDelayMS is the fixed delay between attempts, in milliseconds
	RetryDelayMS int `toml:"retry_delay_ms"`
	// RequestTimeoutMS bounds each connect/write/read, in milliseconds
	RequestTimeoutMS int `toml:"request_timeout_ms"`
	// PoolSize caps the idle connection pool
	PoolSize int `toml:"pool_size"`
}

// RetryDelay returns the configured delay, or zero when unset.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelayMS) * time.Millisecond
}

// RequestTimeout returns the configured timeout, or zero when unset.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// DefaultPath returns the default config file location under the user
// home directory, or empty when the home directory cannot be resolved.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultConfigFile)
}

// Load reads the config from the default location.
// A missing file returns an empty Config (no error).
func Load() (*Config, error) {
	path := DefaultPath()
	if path == "" {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads and parses a config file at the given path.
// ${ENV_VAR} placeholders in string fields are expanded from the
// process environment; unresolved placeholders are left as-is.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.Address = expandEnvVars(cfg.Address)
	cfg.Token = expandEnvVars(cfg.Token)
	return &cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} with the value of the environment variable.
func expandEnvVars(s string) string {
	return envVarRe.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarRe.FindStringSubmatch(match)[1]
		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match // leave unresolved vars as-is
	})
}
