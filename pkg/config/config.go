// Package config loads the guestree configuration file.
//
// Configuration lives in TOML, looked up as ./guestree.toml first and
// ~/.config/guestree/config.toml second. Every field has a working default,
// so no file is required; flags override whatever the file says.
//
//	data_file = "guestree.json"
//
//	[render]
//	format = "svg"
//
//	[serve]
//	addr = ":8417"
//
//	[cache]
//	disabled = false
//	ttl_hours = 720
//	redis_addr = ""
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const appName = "guestree"

// Config is the full configuration tree.
type Config struct {
	// DataFile is the snapshot file commands operate on by default.
	DataFile string `toml:"data_file"`

	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
	Cache  CacheConfig  `toml:"cache"`
}

// RenderConfig controls tree rendering output.
type RenderConfig struct {
	// Format is the default output format: svg, png or dot.
	Format string `toml:"format"`
}

// ServeConfig controls the read-only HTTP viewer.
type ServeConfig struct {
	// Addr is the listen address for `guestree serve`.
	Addr string `toml:"addr"`
}

// CacheConfig controls the render artifact cache.
type CacheConfig struct {
	// Disabled turns caching off entirely.
	Disabled bool `toml:"disabled"`
	// Dir overrides the XDG cache directory.
	Dir string `toml:"dir"`
	// TTLHours is the artifact lifetime; 0 means no expiration.
	TTLHours int `toml:"ttl_hours"`
	// RedisAddr switches the backend to Redis when non-empty.
	RedisAddr string `toml:"redis_addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DataFile: "guestree.json",
		Render:   RenderConfig{Format: "svg"},
		Serve:    ServeConfig{Addr: ":8417"},
		Cache:    CacheConfig{TTLHours: 720},
	}
}

// Load reads the configuration from path. An empty path searches the
// standard locations; a missing file in either case yields [Default].
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfigFile()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing standard config path, or "".
func findConfigFile() string {
	local := appName + ".toml"
	if _, err := os.Stat(local); err == nil {
		return local
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	global := filepath.Join(home, ".config", appName, "config.toml")
	if _, err := os.Stat(global); err == nil {
		return global
	}
	return ""
}

// CacheDir returns the artifact cache directory: the configured override,
// or the XDG standard location (~/.cache/guestree/).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
