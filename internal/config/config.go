package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "wavelet"

type Config struct {
	Source    string `koanf:"source"`     // played on startup when set
	Loop      bool   `koanf:"loop"`       // initial loop flag
	SyncEnded bool   `koanf:"sync_ended"` // clear the playing flag when a track ends

	Log   LogConfig   `koanf:"log"`
	MPRIS MPRISConfig `koanf:"mpris"`
	State StateConfig `koanf:"state"`
}

// LogConfig selects level ("debug", "info", "warn", "error") and
// format ("text", "json", "logfmt").
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	File   string `koanf:"file"` // empty logs to stderr
}

// MPRISConfig controls the D-Bus media player interface.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// StateConfig controls persistence of the last source and loop flag.
type StateConfig struct {
	Remember bool `koanf:"remember"`
}

// Load reads the default config files. Missing files are skipped.
func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom reads the given TOML files in order; later files override
// earlier ones.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		Log: LogConfig{Level: "info", Format: "text"},
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Only plain paths are expanded; URLs are left to the player.
	if cfg.Source != "" && !strings.Contains(cfg.Source, "://") {
		cfg.Source = expandPath(cfg.Source)
	}
	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/wavelet/config.toml
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// MPRISEnabled returns true unless MPRIS was explicitly disabled.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}
