// Package config loads the optional repo2prompt.yaml settings file. Flags
// override file values; file values override defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/martinmagala/repo2prompt/internal/cache"
	"github.com/martinmagala/repo2prompt/internal/collect"
)

// DefaultFile is the settings file looked up in the working directory.
const DefaultFile = "repo2prompt.yaml"

// Config holds run settings shared by the repo and folder commands.
type Config struct {
	CacheDir   string   `yaml:"cache_dir"`
	Workers    int      `yaml:"workers"`
	Branch     string   `yaml:"branch"`
	APIBaseURL string   `yaml:"api_base_url"`
	Excludes   []string `yaml:"excludes"` // directory names joined to the scanned root
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CacheDir: cache.DefaultDir,
		Excludes: collect.DefaultExclusions,
	}
}

// Load reads path, or DefaultFile when path is empty. A missing file is not
// an error; defaults are returned.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = cache.DefaultDir
	}
	return cfg, nil
}
