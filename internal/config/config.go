package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"tandem/internal/logger"
)

// Config holds all tandem configuration.
type Config struct {
	Editor     string `json:"editor"`      // text editor; falls back to $EDITOR, then nano
	Shell      string `json:"shell"`       // command interpreter; falls back to $SHELL, then sh
	ShowHidden bool   `json:"show_hidden"` // list dotfiles
	RightPath  string `json:"right_path"`  // right panel start directory
}

func defaults() *Config {
	return &Config{
		Editor:     "",
		Shell:      "",
		ShowHidden: true,
		RightPath:  "/",
	}
}

// Load reads config from ~/.config/tandem/config.json. It never fails: a
// missing or broken file yields defaults (and writes them back so the user
// has something to edit).
func Load() *Config {
	path, err := Path()
	if err != nil {
		logger.Error("failed to locate config: %v", err)
		return defaults()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("failed to create config directory: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		cfg := defaults()
		if err := Save(cfg); err != nil {
			logger.Warn("failed to save default config: %v", err)
		}
		return cfg
	}

	cfg := defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("failed to parse config %s: %v, using defaults", path, err)
		return defaults()
	}

	if cfg.RightPath == "" {
		cfg.RightPath = "/"
	}
	return cfg
}

// Save writes config to ~/.config/tandem/config.json.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Path returns the config file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tandem", "config.json"), nil
}
