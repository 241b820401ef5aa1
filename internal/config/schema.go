package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Spotify SpotifyConfig `toml:"spotify"`
	UI      UIConfig      `toml:"ui"`
	Cache   CacheConfig   `toml:"cache"`
	Log     LogConfig     `toml:"log"`
}

// SpotifyConfig holds Spotify API settings.
type SpotifyConfig struct {
	ClientID    string `toml:"client_id"`
	RedirectURI string `toml:"redirect_uri"`
}

// UIConfig holds settings for the playback bar.
type UIConfig struct {
	Theme           string `toml:"theme"`
	RefreshInterval int    `toml:"refresh_interval"` // milliseconds
	Waveform        *bool  `toml:"waveform"`
	BarRows         int    `toml:"bar_rows"`
	Mouse           *bool  `toml:"mouse"`
}

// Refresh returns the polling interval as a duration.
func (c UIConfig) Refresh() time.Duration {
	return time.Duration(c.RefreshInterval) * time.Millisecond
}

// WaveformEnabled reports whether loudness traces should be fetched and drawn.
func (c UIConfig) WaveformEnabled() bool {
	return c.Waveform == nil || *c.Waveform
}

// MouseEnabled reports whether mouse reporting should be turned on.
func (c UIConfig) MouseEnabled() bool {
	return c.Mouse == nil || *c.Mouse
}

// CacheConfig holds sizes for in-memory caches.
type CacheConfig struct {
	AnalysisSize int `toml:"analysis_size"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}
