package wizard

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/tessro/wavebar/internal/config"
)

// Setup holds the answers of the first-run form.
type Setup struct {
	ClientID string
	Theme    string
	Waveform bool
	BarRows  int
}

// SetupFrom seeds the form from cfg.
func SetupFrom(cfg *config.Config) Setup {
	return Setup{
		ClientID: cfg.Spotify.ClientID,
		Theme:    cfg.UI.Theme,
		Waveform: cfg.UI.WaveformEnabled(),
		BarRows:  cfg.UI.BarRows,
	}
}

// Apply copies the answers into cfg.
func (s Setup) Apply(cfg *config.Config) {
	cfg.Spotify.ClientID = strings.TrimSpace(s.ClientID)
	cfg.UI.Theme = s.Theme
	waveform := s.Waveform
	cfg.UI.Waveform = &waveform
	cfg.UI.BarRows = s.BarRows
}

func setupForm(s *Setup) *huh.Form {
	rows := make([]huh.Option[int], config.MaxBarRows)
	for i := range rows {
		rows[i] = huh.NewOption(strconv.Itoa(i+1), i+1)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Spotify client ID").
				Description("Create an app at developer.spotify.com and add "+config.Default().Spotify.RedirectURI+" as a redirect URI").
				Value(&s.ClientID).
				Validate(validateClientID),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(huh.NewOptions(config.Themes...)...).
				Value(&s.Theme),
			huh.NewConfirm().
				Title("Draw the loudness waveform when Spotify has an analysis?").
				Value(&s.Waveform),
			huh.NewSelect[int]().
				Title("Bar height (rows)").
				Options(rows...).
				Value(&s.BarRows),
		),
	)
}

// validateClientID accepts Spotify's 32 character hex client IDs.
func validateClientID(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("client ID is required")
	}
	if len(id) != 32 {
		return errors.New("client ID should be 32 characters")
	}
	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return errors.New("client ID should be hexadecimal")
		}
	}
	return nil
}
