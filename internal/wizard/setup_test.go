package wizard

import (
	"testing"

	"github.com/tessro/wavebar/internal/config"
)

func TestValidateClientID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"0123456789abcdef0123456789ABCDEF", false},
		{"  0123456789abcdef0123456789abcdef ", false},
		{"", true},
		{"abc", true},
		{"0123456789abcdef0123456789abcdeg", true},
	}
	for _, tt := range tests {
		if err := validateClientID(tt.id); (err != nil) != tt.wantErr {
			t.Errorf("validateClientID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
	}
}

func TestSetupRoundTrip(t *testing.T) {
	cfg := config.Default()
	s := SetupFrom(cfg)
	if s.Theme != "auto" || !s.Waveform || s.BarRows != 1 {
		t.Fatalf("SetupFrom(default) = %+v", s)
	}

	s.ClientID = " abc "
	s.Theme = "mocha"
	s.Waveform = false
	s.BarRows = 3
	s.Apply(cfg)

	if cfg.Spotify.ClientID != "abc" {
		t.Errorf("ClientID = %q", cfg.Spotify.ClientID)
	}
	if cfg.UI.Theme != "mocha" || cfg.UI.WaveformEnabled() || cfg.UI.BarRows != 3 {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}
}

func TestPromptSetupDisabled(t *testing.T) {
	i := NewInteractive()
	i.SetEnabled(false)

	got, err := i.PromptSetup(Setup{Theme: "dark"})
	if err != nil || got != nil {
		t.Errorf("PromptSetup() = %v, %v; want nil, nil", got, err)
	}
}

func TestSetupForm(t *testing.T) {
	s := SetupFrom(config.Default())
	if setupForm(&s) == nil {
		t.Fatal("setupForm returned nil")
	}
}
