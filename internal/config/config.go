// Package config provides the serve command's configuration.
//
// Values are layered, later sources winning:
//
//  1. built-in defaults ([Default])
//  2. a TOML file (packview.toml in the working directory, or --config)
//  3. a .env file in the working directory
//  4. PACKVIEW_* environment variables
//  5. command-line flags, applied by the CLI
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/packview/pkg/errors"
)

// DefaultFile is the config file read when no path is given.
const DefaultFile = "packview.toml"

// Config holds the data provider settings.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `toml:"addr"`

	// DataFile is the hierarchy JSON served on /data.
	DataFile string `toml:"data_file"`

	// StaticDir holds the browser assets mounted under /static/.
	// It is skipped when the directory does not exist.
	StaticDir string `toml:"static_dir"`

	// Title is the landing page title.
	Title string `toml:"title"`

	// MetricsAddr enables the Prometheus listener when non-empty.
	MetricsAddr string `toml:"metrics_addr"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// CORSOrigins enables CORS for the listed origins.
	CORSOrigins []string `toml:"cors_origins"`

	// CacheURL selects the artifact cache for render: empty for the file
	// cache, "none" to disable, or a redis:// URL.
	CacheURL string `toml:"cache_url"`

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `toml:"shutdown_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:            ":3000",
		DataFile:        "data.json",
		StaticDir:       "public",
		Title:           "packview",
		LogLevel:        "info",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load builds the configuration from defaults, the TOML file at path, a
// .env file and the environment. An empty path reads DefaultFile if it
// exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	file := path
	if file == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			file = DefaultFile
		}
	}
	if file != "" {
		if err := cfg.decodeFile(file); err != nil {
			return Config{}, err
		}
	}

	if err := LoadDotEnv(""); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load .env")
	}
	env, err := LoadFromEnv()
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read environment")
	}
	env.apply(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s not found", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return nil
}

// Validate checks that the configuration can be served.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "addr cannot be empty")
	}
	if err := errors.ValidateDataPath(c.DataFile); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "shutdown_timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if c.MetricsAddr != "" && c.MetricsAddr == c.Addr {
		return errors.New(errors.ErrCodeInvalidConfig, "metrics_addr must differ from addr")
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, errors.Wrap(errors.ErrCodeInvalidConfig, err, "log_level")
	}
	return lvl, nil
}
