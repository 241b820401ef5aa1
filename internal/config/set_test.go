package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSet(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		check   func(*Config) bool
		wantErr bool
	}{
		{"spotify.client_id", "abc", func(c *Config) bool { return c.Spotify.ClientID == "abc" }, false},
		{"ui.theme", "mocha", func(c *Config) bool { return c.UI.Theme == "mocha" }, false},
		{"ui.bar_rows", "3", func(c *Config) bool { return c.UI.BarRows == 3 }, false},
		{"ui.waveform", "false", func(c *Config) bool { return !c.UI.WaveformEnabled() }, false},
		{"ui.mouse", "0", func(c *Config) bool { return !c.UI.MouseEnabled() }, false},
		{"cache.analysis_size", "8", func(c *Config) bool { return c.Cache.AnalysisSize == 8 }, false},
		{"log.file", "/tmp/w.log", func(c *Config) bool { return c.Log.File == "/tmp/w.log" }, false},
		{"ui.bar_rows", "two", nil, true},
		{"ui.waveform", "maybe", nil, true},
		{"defaults.device", "x", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := Default()
			err := cfg.Set(tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Set() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("Set(%q, %q) did not apply: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestReadFileIgnoresEnv(t *testing.T) {
	t.Setenv("WAVEBAR_UI_THEME", "mocha")
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[ui]\ntheme = \"latte\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if cfg.UI.Theme != "latte" {
		t.Errorf("Theme = %q, want latte from the file", cfg.UI.Theme)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.UI.Theme != "mocha" {
		t.Errorf("LoadFrom Theme = %q, want mocha from env", loaded.UI.Theme)
	}
}
