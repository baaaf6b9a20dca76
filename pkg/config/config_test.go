package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DataFile != "guestree.json" {
		t.Errorf("DataFile = %q, want guestree.json", cfg.DataFile)
	}
	if cfg.Render.Format != "svg" {
		t.Errorf("Render.Format = %q, want svg", cfg.Render.Format)
	}
	if cfg.Serve.Addr != ":8417" {
		t.Errorf("Serve.Addr = %q, want :8417", cfg.Serve.Addr)
	}
	if cfg.Cache.Disabled {
		t.Error("Cache.Disabled = true, want false")
	}
	if cfg.Cache.TTLHours != 720 {
		t.Errorf("Cache.TTLHours = %d, want 720", cfg.Cache.TTLHours)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guestree.toml")
	content := `
data_file = "wedding.json"

[render]
format = "png"

[cache]
disabled = true
redis_addr = "localhost:6379"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataFile != "wedding.json" {
		t.Errorf("DataFile = %q, want wedding.json", cfg.DataFile)
	}
	if cfg.Render.Format != "png" {
		t.Errorf("Render.Format = %q, want png", cfg.Render.Format)
	}
	if !cfg.Cache.Disabled {
		t.Error("Cache.Disabled = false, want true")
	}
	if cfg.Cache.RedisAddr != "localhost:6379" {
		t.Errorf("Cache.RedisAddr = %q", cfg.Cache.RedisAddr)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Serve.Addr != ":8417" {
		t.Errorf("Serve.Addr = %q, want default :8417", cfg.Serve.Addr)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("data_file = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load(invalid) error = nil, want error")
	}
}

func TestCacheDir_Override(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/custom-cache"

	dir, err := cfg.CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if dir != "/tmp/custom-cache" {
		t.Errorf("CacheDir() = %q, want override", dir)
	}
}

func TestCacheDir_XDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")

	dir, err := Default().CacheDir()
	if err != nil {
		t.Fatalf("CacheDir() error = %v", err)
	}
	if dir != filepath.Join("/tmp/xdg", "guestree") {
		t.Errorf("CacheDir() = %q", dir)
	}
}
