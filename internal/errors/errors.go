package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error types for common failure scenarios.
var (
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrNotConfigured       = errors.New("spotify client id not configured")
	ErrNoActiveDevice      = errors.New("no active device")
	ErrNoTrack             = errors.New("nothing is playing")
	ErrPremiumRequired     = errors.New("spotify premium required")
	ErrAnalysisUnavailable = errors.New("audio analysis unavailable")
	ErrInvalidPosition     = errors.New("invalid seek position")
	ErrRateLimited         = errors.New("rate limited")
	ErrNetworkError        = errors.New("network error")
	ErrTimeout             = errors.New("request timeout")
	ErrInvalidConfig       = errors.New("invalid configuration")
)

// WavebarError wraps an error with a user-friendly suggestion.
type WavebarError struct {
	Err        error
	Suggestion string
}

func (e *WavebarError) Error() string {
	return e.Err.Error()
}

func (e *WavebarError) Unwrap() error {
	return e.Err
}

// WithSuggestion wraps an error with a helpful suggestion.
func WithSuggestion(err error, suggestion string) error {
	return &WavebarError{
		Err:        err,
		Suggestion: suggestion,
	}
}

// GetSuggestion returns a suggestion for the given error.
func GetSuggestion(err error) string {
	if err == nil {
		return ""
	}

	var wbErr *WavebarError
	if errors.As(err, &wbErr) && wbErr.Suggestion != "" {
		return wbErr.Suggestion
	}

	errStr := strings.ToLower(err.Error())

	// Setup
	if errors.Is(err, ErrNotConfigured) {
		return "Run 'wavebar config init' or set WAVEBAR_SPOTIFY_CLIENT_ID"
	}
	if errors.Is(err, ErrNotAuthenticated) || strings.Contains(errStr, "not authenticated") ||
		strings.Contains(errStr, "invalid access token") || strings.Contains(errStr, "token expired") {
		return "Run 'wavebar auth login' to authenticate with Spotify"
	}

	// Playback
	if errors.Is(err, ErrNoActiveDevice) || strings.Contains(errStr, "no active device") {
		return "Open Spotify on a device and start playing"
	}
	if errors.Is(err, ErrNoTrack) {
		return "Start a track in Spotify first"
	}
	if errors.Is(err, ErrInvalidPosition) {
		return "Give a fraction between 0 and 1, a percentage like 40%, or a time like 1:30"
	}
	if errors.Is(err, ErrPremiumRequired) || strings.Contains(errStr, "premium required") ||
		strings.Contains(errStr, "restricted device") {
		return "Seeking and playback control require Spotify Premium"
	}

	// Analysis
	if errors.Is(err, ErrAnalysisUnavailable) {
		return "The progress bar falls back to a flat bar; disable the waveform with ui.waveform = false"
	}

	// Rate limiting
	if errors.Is(err, ErrRateLimited) || strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "429") {
		return "Too many requests. Wait a moment or raise ui.refresh_interval"
	}

	// Network errors
	if errors.Is(err, ErrNetworkError) || errors.Is(err, ErrTimeout) ||
		strings.Contains(errStr, "network") || strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "connection refused") {
		return "Check your internet connection and try again"
	}

	// Config errors
	if errors.Is(err, ErrInvalidConfig) || strings.Contains(errStr, "config") {
		return "Check ~/.wavebarrc or run 'wavebar config show'"
	}

	// Server errors
	if strings.Contains(errStr, "500") || strings.Contains(errStr, "server error") {
		return "Spotify is having issues. Try again in a moment"
	}

	return ""
}

// Format returns a formatted error message with suggestion if available.
func Format(err error) string {
	if err == nil {
		return ""
	}

	suggestion := GetSuggestion(err)
	if suggestion != "" {
		return fmt.Sprintf("Error: %s\n\nSuggestion: %s", err.Error(), suggestion)
	}

	return fmt.Sprintf("Error: %s", err.Error())
}
