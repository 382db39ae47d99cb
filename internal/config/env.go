package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable, as in PACKVIEW_ADDR.
const EnvPrefix = "PACKVIEW"

// EnvConfig holds the environment overrides. Unset variables leave the
// lower layers untouched.
type EnvConfig struct {
	// Env: PACKVIEW_ADDR
	Addr string `envconfig:"ADDR"`

	// Env: PACKVIEW_DATA_FILE
	DataFile string `envconfig:"DATA_FILE"`

	// Env: PACKVIEW_STATIC_DIR
	StaticDir string `envconfig:"STATIC_DIR"`

	// Env: PACKVIEW_TITLE
	Title string `envconfig:"TITLE"`

	// Env: PACKVIEW_METRICS_ADDR
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	// Env: PACKVIEW_LOG_LEVEL
	LogLevel string `envconfig:"LOG_LEVEL"`

	// CORSOrigins is a comma-separated list.
	// Env: PACKVIEW_CORS_ORIGINS
	CORSOrigins []string `envconfig:"CORS_ORIGINS"`

	// Env: PACKVIEW_CACHE_URL
	CacheURL string `envconfig:"CACHE_URL"`

	// Env: PACKVIEW_SHUTDOWN_TIMEOUT (e.g. 15s)
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
}

// LoadFromEnv reads the PACKVIEW_* variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

func (e EnvConfig) apply(cfg *Config) {
	setString(&cfg.Addr, e.Addr)
	setString(&cfg.DataFile, e.DataFile)
	setString(&cfg.StaticDir, e.StaticDir)
	setString(&cfg.Title, e.Title)
	setString(&cfg.MetricsAddr, e.MetricsAddr)
	setString(&cfg.LogLevel, e.LogLevel)
	setString(&cfg.CacheURL, e.CacheURL)
	if len(e.CORSOrigins) > 0 {
		cfg.CORSOrigins = e.CORSOrigins
	}
	if e.ShutdownTimeout != 0 {
		cfg.ShutdownTimeout = e.ShutdownTimeout
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
