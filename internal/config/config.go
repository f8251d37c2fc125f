// Package config loads the server configuration from a TOML file.
//
// A configuration file is optional; every setting has a default. A minimal
// file looks like:
//
//	[logging]
//	level = "debug"
//	logfile = "/var/log/image-mcp.log"
//	max_log_size = 100 # megabytes
//	max_log_age = 30   # days
//
//	[mosaic]
//	random_seed = 42   # 0 seeds from the clock
//
//	[codec]
//	jpeg_quality = 90
//
// The environment variable IMAGE_MCP_LOG_LEVEL overrides logging.level.
package config

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/ironsheep/image-transform-mcp/internal/codec"
)

const (
	// EnvConfig names the configuration file when --config is not given.
	EnvConfig = "IMAGE_MCP_CONFIG"

	// EnvLogLevel overrides the configured log level.
	EnvLogLevel = "IMAGE_MCP_LOG_LEVEL"
)

// Config is the parsed TOML configuration.
type Config struct {
	Logging LogConfig
	Mosaic  MosaicConfig
	Codec   CodecConfig
}

// MosaicConfig seeds mosaic seed placement.
type MosaicConfig struct {
	RandomSeed int64 `toml:"random_seed"`
}

// CodecConfig tunes files written by save.
type CodecConfig struct {
	JPEGQuality int `toml:"jpeg_quality"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: LogConfig{Level: "info"},
		Codec:   CodecConfig{JPEGQuality: codec.DefaultJPEGQuality},
	}
}

// Load reads the TOML file at filename over the defaults and applies
// environment overrides. An empty filename yields the defaults.
func Load(filename string) (*Config, error) {
	c := Default()
	if filename != "" {
		if _, err := toml.DecodeFile(filename, c); err != nil {
			return nil, fmt.Errorf("could not decode TOML config %s: %w", filename, err)
		}
		if err := c.convertPathsToAbsolute(filename); err != nil {
			return nil, err
		}
	}
	if level := os.Getenv(EnvLogLevel); level != "" {
		c.Logging.Level = level
	}
	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return c, nil
}

// Path returns flagValue if set, otherwise the IMAGE_MCP_CONFIG environment variable.
func Path(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(EnvConfig)
}

func (c *Config) validate() error {
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "":
	default:
		return fmt.Errorf("unknown log level %q, want debug or info", c.Logging.Level)
	}
	if c.Codec.JPEGQuality < 0 || c.Codec.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be 0-100 (0 means default), got %d", c.Codec.JPEGQuality)
	}
	if c.Logging.MaxSize < 0 || c.Logging.MaxAge < 0 {
		return fmt.Errorf("max_log_size and max_log_age must not be negative")
	}
	return nil
}

// The logfile setting may be relative to the TOML file's own directory.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	if c.Logging.Logfile == "" || filepath.IsAbs(c.Logging.Logfile) {
		return nil
	}
	abs, err := filepath.Abs(filepath.Join(filepath.Dir(configPath), c.Logging.Logfile))
	if err != nil {
		return fmt.Errorf("error converting logfile setting to absolute path: %w", err)
	}
	c.Logging.Logfile = abs
	return nil
}

// CodecOptions returns the encoder options for save.
func (c *Config) CodecOptions() codec.Options {
	return codec.Options{JPEGQuality: c.Codec.JPEGQuality}
}

// RandomSource returns the random source for mosaic seed placement: seeded
// with random_seed if set, otherwise with the current time.
func (c *Config) RandomSource() *rand.Rand {
	seed := c.Mosaic.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
