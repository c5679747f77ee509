package api

import (
	"time"

	"github.com/BurntSushi/toml"

	"github.com/graphtint/graphtint/pkg/errors"
)

// Config holds server configuration, loaded from a TOML file.
//
//	listen = ":8080"
//	redis_url = "redis://localhost:6379/0"
//	cache_ttl = "1h"
//
//	[snapshots]
//	mongo_uri = "mongodb://localhost:27017"
//	database = "graphtint"
//	ttl = "24h"
type Config struct {
	Listen   string   `toml:"listen"`
	CacheDir string   `toml:"cache_dir"` // file cache; ignored when redis_url is set
	RedisURL string   `toml:"redis_url"`
	CacheTTL Duration `toml:"cache_ttl"`

	Snapshots SnapshotConfig `toml:"snapshots"`
}

// SnapshotConfig configures the snapshot store. An empty MongoURI selects
// the in-memory store.
type SnapshotConfig struct {
	MongoURI   string   `toml:"mongo_uri"`
	Database   string   `toml:"database"`
	Collection string   `toml:"collection"`
	TTL        Duration `toml:"ttl"`
}

// Duration wraps time.Duration for TOML decoding ("24h", "90s").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Listen:   ":8080",
		CacheTTL: Duration{time.Hour},
		Snapshots: SnapshotConfig{
			Database:   "graphtint",
			Collection: "snapshots",
			TTL:        Duration{24 * time.Hour},
		},
	}
}

// LoadConfig reads a TOML config file, filling unset fields with defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load config %s", path)
	}
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	return cfg, nil
}
