package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	// run from an empty directory so no default config file is found
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != defaultWorkers {
		t.Errorf("expected %d workers, got %d", defaultWorkers, cfg.Workers)
	}
	if cfg.CacheDir != defaultCacheDir {
		t.Errorf("expected cache dir %s, got %s", defaultCacheDir, cfg.CacheDir)
	}
	if cfg.OutDir != defaultOutDir {
		t.Errorf("expected out dir %s, got %s", defaultOutDir, cfg.OutDir)
	}
	if cfg.IndexURL != "" {
		t.Errorf("expected empty index URL, got %s", cfg.IndexURL)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected info level, got %s", cfg.Logging.Level)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `workers: 8
cacheDir: /tmp/pw-cache
indexUrl: https://index.example
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if cfg.CacheDir != "/tmp/pw-cache" {
		t.Errorf("unexpected cache dir: %s", cfg.CacheDir)
	}
	if cfg.IndexURL != "https://index.example" {
		t.Errorf("unexpected index URL: %s", cfg.IndexURL)
	}
	// unset fields still get defaults
	if cfg.OutDir != defaultOutDir {
		t.Errorf("expected default out dir, got %s", cfg.OutDir)
	}

	helpers := NewConfigHelpers(cfg)
	if !helpers.IsDebugMode() {
		t.Error("expected debug mode")
	}
	if helpers.Workers() != 8 {
		t.Errorf("helpers disagree on workers: %d", helpers.Workers())
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for explicitly named missing config")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("workers: [not a number"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Fatalf("expected parse error, got: %v", err)
	}
}

func TestHelpersCreateDirs(t *testing.T) {
	dir := t.TempDir()
	cfg := &GlobalConfig{CacheDir: filepath.Join(dir, "cache"), OutDir: filepath.Join(dir, "out")}
	cfg.applyDefaults()

	helpers := NewConfigHelpers(cfg)
	if err := helpers.CreateCacheDir(); err != nil {
		t.Fatalf("CreateCacheDir failed: %v", err)
	}
	if err := helpers.CreateOutDir(); err != nil {
		t.Fatalf("CreateOutDir failed: %v", err)
	}
	for _, p := range []string{cfg.CacheDir, cfg.OutDir} {
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			t.Errorf("expected directory at %s", p)
		}
	}
}
