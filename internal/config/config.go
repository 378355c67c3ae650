package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	// TrackList is a path to a custom track list; empty means the
	// embedded default list.
	TrackList string `koanf:"track_list"`
	// BufferSize is how many tracks are downloaded ahead of playback.
	BufferSize int `koanf:"buffer_size"`
	// FetchWorkers is the number of concurrent downloaders. More than
	// one relaxes playback order to fetch-completion order.
	FetchWorkers int `koanf:"fetch_workers"`
	// TimeoutSecs bounds a single fetch attempt.
	TimeoutSecs int `koanf:"timeout_secs"`
	// Paused starts playback paused.
	Paused bool `koanf:"paused"`
	// Debug enables debug logging.
	Debug bool `koanf:"debug"`
	// Mpris exposes the player on D-Bus (linux only).
	Mpris bool `koanf:"mpris"`

	UI UIConfig `koanf:"ui"`
}

// UIConfig holds terminal presentation settings.
type UIConfig struct {
	// Width is the inner width of the player window.
	Width int `koanf:"width"`
	// Borderless drops the window frame.
	Borderless bool `koanf:"borderless"`
	// Minimalist hides the control hint line.
	Minimalist bool `koanf:"minimalist"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		BufferSize:   5,
		FetchWorkers: 1,
		TimeoutSecs:  3,
		Mpris:        true,
		UI:           UIConfig{Width: 40},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.TrackList != "" {
		cfg.TrackList = expandPath(cfg.TrackList)
	}

	cfg.applyBounds()
	return cfg, nil
}

// applyBounds clamps values a config file could set out of range.
func (c *Config) applyBounds() {
	if c.BufferSize <= 0 || c.BufferSize > 50 {
		c.BufferSize = 5
	}
	if c.FetchWorkers <= 0 {
		c.FetchWorkers = 1
	}
	if c.TimeoutSecs <= 0 {
		c.TimeoutSecs = 3
	}
	if c.UI.Width < 20 || c.UI.Width > 120 {
		c.UI.Width = 40
	}
}

// FetchTimeout returns the per-attempt fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/drift/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "drift", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
