package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	wberrors "github.com/tessro/wavebar/internal/errors"
)

// GetCurrentUser returns the current user's profile.
func (c *Client) GetCurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, "/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPlaybackState returns the current playback state. Spotify answers 204
// when nothing is playing; that comes back as nil, nil.
func (c *Client) GetPlaybackState(ctx context.Context) (*PlaybackState, error) {
	var state *PlaybackState
	if err := c.Get(ctx, "/me/player", &state); err != nil {
		return nil, err
	}
	return state, nil
}

// GetAudioAnalysis returns the audio analysis for a track.
func (c *Client) GetAudioAnalysis(ctx context.Context, trackID string) (*AudioAnalysis, error) {
	if trackID == "" {
		return nil, wberrors.ErrNoTrack
	}
	var analysis AudioAnalysis
	if err := c.Get(ctx, "/audio-analysis/"+url.PathEscape(trackID), &analysis); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.ErrorInfo.Status == 404 || apiErr.ErrorInfo.Status == 403) {
			return nil, fmt.Errorf("%w: %v", wberrors.ErrAnalysisUnavailable, err)
		}
		return nil, err
	}
	return &analysis, nil
}
