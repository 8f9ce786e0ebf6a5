package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/patrol.yaml
var defaultPatrolYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultPatrolYAML
}

// Default returns the hardcoded default configuration.
// Kept in sync with defaults/patrol.yaml.
func Default() Config {
	return Config{
		Search: SearchConfig{
			Strategy: "parallel",
			Workers:  0,
		},
		Storage: StorageConfig{
			Path: "~/.patrol/runs.db",
			Save: true,
		},
		Viewer: ViewerConfig{
			TickRate:  30,
			ShowLoops: true,
		},
		Server: ServerConfig{
			Address:     ":23235",
			HostKey:     "",
			IdleTimeout: 30 * time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Scenarios: ScenariosConfig{
			Dir: "./scenarios",
		},
	}
}
