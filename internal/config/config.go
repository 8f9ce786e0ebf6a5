// Package config provides YAML-based configuration loading for the patrol
// simulator: search strategy, run storage, viewer, SSH server and logging.
package config

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// Config is the full application configuration.
type Config struct {
	Search    SearchConfig    `yaml:"search"`
	Storage   StorageConfig   `yaml:"storage"`
	Viewer    ViewerConfig    `yaml:"viewer"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Scenarios ScenariosConfig `yaml:"scenarios"`
}

// SearchConfig selects how candidate placements are tried.
type SearchConfig struct {
	Strategy string `yaml:"strategy"`
	Workers  int    `yaml:"workers"`
}

// StorageConfig controls the run history database.
type StorageConfig struct {
	Path string `yaml:"path"`
	Save bool   `yaml:"save"`
}

// ViewerConfig controls the terminal patrol viewer.
type ViewerConfig struct {
	TickRate  int  `yaml:"tick_rate"`
	ShowLoops bool `yaml:"show_loops"`
}

// ServerConfig controls the SSH viewer server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// ScenariosConfig points at the scenario library.
type ScenariosConfig struct {
	Dir string `yaml:"dir"`
}

// ParseLevel converts the configured level name into a log level.
func (c LogConfig) ParseLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: invalid log level %q: %w", c.Level, err)
	}
	return lvl, nil
}

// Validate checks values that would otherwise fail later at run time.
func (c Config) Validate() error {
	if c.Search.Strategy == "" {
		return fmt.Errorf("config: search.strategy must be set")
	}
	if c.Search.Workers < 0 {
		return fmt.Errorf("config: search.workers must be >= 0, got %d", c.Search.Workers)
	}
	if c.Viewer.TickRate <= 0 {
		return fmt.Errorf("config: viewer.tick_rate must be > 0, got %d", c.Viewer.TickRate)
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	if _, err := c.Log.ParseLevel(); err != nil {
		return err
	}
	return nil
}
