// Package config holds the tool-wide configuration read from an optional
// pinwrap.yaml next to the descriptor or in the user's config directory.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GlobalConfig is the tool configuration. Zero values fall back to the
// defaults below.
type GlobalConfig struct {
	Workers  int    `yaml:"workers"`
	CacheDir string `yaml:"cacheDir"`
	OutDir   string `yaml:"outDir"`
	IndexURL string `yaml:"indexUrl"`
	Logging  struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`
}

const (
	defaultWorkers  = 4
	defaultCacheDir = ".pinwrap-cache"
	defaultOutDir   = "dist"
)

// DefaultConfigFile is looked up in the working directory when Load is
// called without an explicit path.
const DefaultConfigFile = "pinwrap.config.yaml"

// Load reads the config file at path, or the default file if path is empty.
// A missing default file is not an error; defaults apply.
func Load(path string) (*GlobalConfig, error) {
	cfg := &GlobalConfig{}

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			cfg.applyDefaults()
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *GlobalConfig) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = defaultWorkers
	}
	if c.CacheDir == "" {
		c.CacheDir = defaultCacheDir
	}
	if c.OutDir == "" {
		c.OutDir = defaultOutDir
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}
