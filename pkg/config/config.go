// Package config loads dxd's run defaults from an optional TOML file and
// layers built-in defaults, file contents and CLI flag overrides into one
// explicit Config value. There is no package-level global: every
// constructor that needs configuration takes a Config by value or pointer.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"

	pkgerrors "github.com/dxdlab/dxd/pkg/errors"
)

// Duration wraps time.Duration so TOML's string values ("30s", "5m") decode
// straight into it via encoding.TextUnmarshaler, the way BurntSushi/toml
// expects custom scalar types to be represented.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds every tunable the CLI, engine and cache layers read at
// startup. Zero values are never used directly; call Default() and layer
// a file and flags on top of it.
type Config struct {
	TimeBudget         Duration `toml:"time_budget"`
	DefaultThreads     int      `toml:"default_threads"`
	DefaultDetector    string   `toml:"default_detector"`
	DecomposeThreshold int      `toml:"decompose_threshold"`
	CacheBackend       string   `toml:"cache_backend"`
	RedisAddr          string   `toml:"redis_addr"`
	MongoURI           string   `toml:"mongo_uri"`
}

// Detector kinds accepted by DefaultDetector.
const (
	DetectorETT       = "ett"
	DetectorUnionFind = "unionfind"
)

// Cache backends accepted by CacheBackend.
const (
	CacheBackendNone  = "none"
	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

// Default returns dxd's built-in defaults, the base of the layering chain.
func Default() Config {
	return Config{
		TimeBudget:         Duration(1200 * time.Second),
		DefaultThreads:     0, // 0 means GOMAXPROCS
		DefaultDetector:    DetectorETT,
		DecomposeThreshold: 2,
		CacheBackend:       CacheBackendNone,
	}
}

// Load starts from Default(), overlays a TOML file at path if it exists,
// and returns the result. A missing file is not an error; a malformed one
// is reported as ErrCodeInvalidInput.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "config: reading %s", path)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidInput, err, "config: parsing %s", path)
	}
	return cfg, nil
}

// Merge returns a copy of c with every field in over that is non-nil
// substituted in, implementing the file-then-flags precedence layer. The
// caller builds over from only the flags the user actually set.
func (c Config) Merge(over Overrides) Config {
	if over.TimeBudget != nil {
		c.TimeBudget = *over.TimeBudget
	}
	if over.DefaultThreads != nil {
		c.DefaultThreads = *over.DefaultThreads
	}
	if over.DefaultDetector != nil {
		c.DefaultDetector = *over.DefaultDetector
	}
	if over.DecomposeThreshold != nil {
		c.DecomposeThreshold = *over.DecomposeThreshold
	}
	if over.CacheBackend != nil {
		c.CacheBackend = *over.CacheBackend
	}
	if over.RedisAddr != nil {
		c.RedisAddr = *over.RedisAddr
	}
	if over.MongoURI != nil {
		c.MongoURI = *over.MongoURI
	}
	return c
}

// Overrides carries only the fields a caller explicitly set (e.g. via CLI
// flags), so Merge can distinguish "flag not passed" from "flag set to the
// zero value".
type Overrides struct {
	TimeBudget         *Duration
	DefaultThreads     *int
	DefaultDetector    *string
	DecomposeThreshold *int
	CacheBackend       *string
	RedisAddr          *string
	MongoURI           *string
}
