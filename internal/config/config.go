// Package config loads the small runtime configuration: an optional
// YAML file with environment overrides on top. The application runs
// with no configuration at all.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

type Config struct {
	Port     string `yaml:"port"`
	DataPath string `yaml:"data_path"`
	Backend  string `yaml:"backend"`
}

func defaults() Config {
	return Config{
		Port:     "8080",
		DataPath: "insight-hrm.db",
		Backend:  BackendSQLite,
	}
}

// Load reads path when it exists, then applies env overrides. An empty
// path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, errors.Wrapf(err, "reading config %s", path)
		}
		if err == nil {
			if err := yaml.Unmarshal(raw, &cfg); err != nil {
				return cfg, errors.Wrapf(err, "parsing config %s", path)
			}
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("HRM_DATA_PATH"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("HRM_BACKEND"); v != "" {
		cfg.Backend = v
	}

	if cfg.Backend != BackendSQLite && cfg.Backend != BackendMemory {
		return cfg, errors.Errorf("unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}
