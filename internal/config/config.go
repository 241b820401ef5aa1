package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// FileName is the name of the per-user config file in the home directory.
const FileName = ".wavebarrc"

// Load reads configuration from standard locations with environment overrides.
// Search order: ~/.wavebarrc, $XDG_CONFIG_HOME/wavebar/config.toml, ~/.config/wavebar/config.toml
func Load() (*Config, error) {
	cfg := &Config{}

	path := findConfigFile()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)

	return cfg, nil
}

// LoadFrom reads configuration from a specific file path.
func LoadFrom(path string) (*Config, error) {
	cfg, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// ReadFile reads path with defaults applied but without environment
// overrides, so the result can be written back to the same file.
func ReadFile(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return cfg, nil
}

// FindFile returns the first existing config file path, or "".
func FindFile() string {
	return findConfigFile()
}

// DefaultPath returns the path new config files are written to.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return FileName
	}
	return filepath.Join(home, FileName)
}

// Write encodes cfg as TOML to w under a short header.
func Write(w io.Writer, cfg *Config) error {
	_, _ = fmt.Fprintln(w, "# wavebar configuration")
	_, _ = fmt.Fprintln(w, "")

	encoder := toml.NewEncoder(w)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

// Save writes cfg to path, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := Write(f, cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	paths := []string{
		filepath.Join(home, FileName),
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}
	paths = append(paths, filepath.Join(xdgConfig, "wavebar", "config.toml"))

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Spotify
	if v := os.Getenv("WAVEBAR_SPOTIFY_CLIENT_ID"); v != "" {
		cfg.Spotify.ClientID = v
	}
	if v := os.Getenv("WAVEBAR_SPOTIFY_REDIRECT_URI"); v != "" {
		cfg.Spotify.RedirectURI = v
	}

	// UI
	if v := os.Getenv("WAVEBAR_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("WAVEBAR_UI_REFRESH_INTERVAL"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.UI.RefreshInterval = i
		}
	}
	if v := os.Getenv("WAVEBAR_UI_WAVEFORM"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Waveform = &b
		}
	}
	if v := os.Getenv("WAVEBAR_UI_MOUSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.UI.Mouse = &b
		}
	}

	// Log
	if v := os.Getenv("WAVEBAR_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WAVEBAR_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}
