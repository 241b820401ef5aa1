package cli

import (
	"context"
	"fmt"

	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/spotify/auth"
	"github.com/tessro/wavebar/internal/spotify/client"
	"github.com/tessro/wavebar/internal/spotify/player"
)

// newStorage opens the default token storage.
func newStorage() (*auth.TokenStorage, error) {
	storage, err := auth.NewTokenStorage("")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token storage: %w", err)
	}
	return storage, nil
}

// getSpotifyClient returns an authenticated client.
func getSpotifyClient() (*client.Client, error) {
	if cfg.Spotify.ClientID == "" {
		return nil, wberrors.ErrNotConfigured
	}

	storage, err := newStorage()
	if err != nil {
		return nil, err
	}

	c := client.New(cfg.Spotify.ClientID, storage)
	c.SetLogger(logger)
	if err := c.LoadToken(); err != nil {
		return nil, fmt.Errorf("failed to load token: %w", err)
	}
	if !c.HasToken() {
		return nil, wberrors.ErrNotAuthenticated
	}
	return c, nil
}

// getSpotifyPlayer returns the playback engine backed by an authenticated client.
func getSpotifyPlayer() (*player.Player, *client.Client, error) {
	c, err := getSpotifyClient()
	if err != nil {
		return nil, nil, err
	}
	return player.New(c, cfg.Cache.AnalysisSize), c, nil
}

// currentTrackID returns the ID of the track playing now.
func currentTrackID(ctx context.Context, p *player.Player) (string, error) {
	state, err := p.GetState(ctx)
	if err != nil {
		return "", err
	}
	if !state.HasTrack() || state.Track.ID == "" {
		return "", wberrors.ErrNoTrack
	}
	return state.Track.ID, nil
}
