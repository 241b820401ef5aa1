package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	on := true
	mouse := true
	return &Config{
		Spotify: SpotifyConfig{
			RedirectURI: "http://127.0.0.1:8888/callback",
		},
		UI: UIConfig{
			Theme:           "auto",
			RefreshInterval: 1000,
			Waveform:        &on,
			BarRows:         1,
			Mouse:           &mouse,
		},
		Cache: CacheConfig{
			AnalysisSize: 32,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Spotify
	if c.Spotify.RedirectURI == "" {
		c.Spotify.RedirectURI = d.Spotify.RedirectURI
	}

	// UI
	if c.UI.Theme == "" {
		c.UI.Theme = d.UI.Theme
	}
	if c.UI.RefreshInterval == 0 {
		c.UI.RefreshInterval = d.UI.RefreshInterval
	}
	if c.UI.Waveform == nil {
		c.UI.Waveform = d.UI.Waveform
	}
	if c.UI.BarRows == 0 {
		c.UI.BarRows = d.UI.BarRows
	}
	if c.UI.Mouse == nil {
		c.UI.Mouse = d.UI.Mouse
	}

	// Cache
	if c.Cache.AnalysisSize == 0 {
		c.Cache.AnalysisSize = d.Cache.AnalysisSize
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
}
