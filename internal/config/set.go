package config

import (
	"fmt"
	"strconv"
)

// Set assigns value to the dotted key, e.g. "ui.theme".
func (c *Config) Set(key, value string) error {
	switch key {
	case "spotify.client_id":
		c.Spotify.ClientID = value
	case "spotify.redirect_uri":
		c.Spotify.RedirectURI = value
	case "ui.theme":
		c.UI.Theme = value
	case "ui.refresh_interval":
		return setInt(&c.UI.RefreshInterval, key, value)
	case "ui.waveform":
		return setBool(&c.UI.Waveform, key, value)
	case "ui.bar_rows":
		return setInt(&c.UI.BarRows, key, value)
	case "ui.mouse":
		return setBool(&c.UI.Mouse, key, value)
	case "cache.analysis_size":
		return setInt(&c.Cache.AnalysisSize, key, value)
	case "log.level":
		c.Log.Level = value
	case "log.file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

func setInt(dst *int, key, value string) error {
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("value must be an integer for %s", key)
	}
	*dst = i
	return nil
}

func setBool(dst **bool, key, value string) error {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("value must be true or false for %s", key)
	}
	*dst = &b
	return nil
}
