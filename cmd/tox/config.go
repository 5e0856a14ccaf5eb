package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	defaultPrompt      = "tox> "
	defaultHistoryName = ".tox_history"
	defaultConfigName  = ".tox.yaml"
)

// replConfig controls the interactive session. Fields absent from the
// config file keep their defaults.
type replConfig struct {
	HistoryFile string `yaml:"history_file"`
	Plain       bool   `yaml:"plain"`
	Prompt      string `yaml:"prompt"`
}

func defaultReplConfig() replConfig {
	cfg := replConfig{Prompt: defaultPrompt}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.HistoryFile = filepath.Join(home, defaultHistoryName)
	}
	return cfg
}

// loadConfig reads the session config from path. An empty path falls back
// to ~/.tox.yaml, which is allowed to be missing or broken; an explicit
// path is not.
func loadConfig(path string) (replConfig, error) {
	cfg := defaultReplConfig()

	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, defaultConfigName)
		if _, err := os.Stat(path); err != nil {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if explicit {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		fmt.Fprintf(os.Stderr, "ignoring config %s: %v\n", path, err)
		return defaultReplConfig(), nil
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		if explicit {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
		fmt.Fprintf(os.Stderr, "ignoring config %s: %v\n", path, err)
		return defaultReplConfig(), nil
	}
	if cfg.Prompt == "" {
		cfg.Prompt = defaultPrompt
	}
	return cfg, nil
}
