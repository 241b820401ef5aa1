package client

import (
	"context"
	"fmt"
	"strconv"

	wberrors "github.com/tessro/wavebar/internal/errors"
)

func devicePath(path, deviceID string) string {
	if deviceID == "" {
		return path
	}
	return BuildURL(path, map[string]string{"device_id": deviceID})
}

// Play resumes playback. If deviceID is empty, uses the active device.
func (c *Client) Play(ctx context.Context, deviceID string) error {
	// Spotify rejects a resume without a JSON body.
	return c.Put(ctx, devicePath("/me/player/play", deviceID), struct{}{}, nil)
}

// Pause pauses playback.
func (c *Client) Pause(ctx context.Context, deviceID string) error {
	return c.Put(ctx, devicePath("/me/player/pause", deviceID), nil, nil)
}

// Next skips to the next track.
func (c *Client) Next(ctx context.Context, deviceID string) error {
	return c.Post(ctx, devicePath("/me/player/next", deviceID), nil, nil)
}

// Previous skips to the previous track.
func (c *Client) Previous(ctx context.Context, deviceID string) error {
	return c.Post(ctx, devicePath("/me/player/previous", deviceID), nil, nil)
}

// Seek moves playback to positionMs in the current track.
func (c *Client) Seek(ctx context.Context, positionMs int, deviceID string) error {
	if positionMs < 0 {
		return fmt.Errorf("%w: %dms", wberrors.ErrInvalidPosition, positionMs)
	}
	params := map[string]string{
		"position_ms": strconv.Itoa(positionMs),
	}
	if deviceID != "" {
		params["device_id"] = deviceID
	}
	return c.Put(ctx, BuildURL("/me/player/seek", params), nil, nil)
}
