package core

import (
	"math"
	"time"
)

// PlaybackState is a snapshot of playback as last reported by the player.
// A new value replaces the previous one wholesale; holders never mutate it.
type PlaybackState struct {
	Track     *Track         `json:"track"`
	Progress  *time.Duration `json:"progress,omitempty"`
	IsPlaying bool           `json:"is_playing"`
	Analysis  *AnalysisTrace `json:"analysis,omitempty"`
}

// HasTrack returns true if there is an active track.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && s.Track != nil
}

// Total returns the current track's duration, or 0 without a track.
func (s *PlaybackState) Total() time.Duration {
	if !s.HasTrack() || s.Track.Duration < 0 {
		return 0
	}
	return s.Track.Duration
}

// Elapsed returns the playback position clamped to [0, Total].
// A missing position reads as 0.
func (s *PlaybackState) Elapsed() time.Duration {
	if s == nil || s.Progress == nil {
		return 0
	}
	return clampDuration(*s.Progress, 0, s.Total())
}

// HasProgress returns true if the player reported a position.
func (s *PlaybackState) HasProgress() bool {
	return s != nil && s.Progress != nil
}

// ProgressFraction returns playback progress in [0, 1].
func (s *PlaybackState) ProgressFraction() float64 {
	total := s.Total()
	if total <= 0 {
		return 0
	}
	return ClampFraction(float64(s.Elapsed()) / float64(total))
}

// WithProgress returns a copy of s with the position replaced.
func (s *PlaybackState) WithProgress(d time.Duration) *PlaybackState {
	cp := PlaybackState{}
	if s != nil {
		cp = *s
	}
	cp.Progress = &d
	return &cp
}

// WithAnalysis returns a copy of s carrying the given trace.
func (s *PlaybackState) WithAnalysis(a *AnalysisTrace) *PlaybackState {
	cp := PlaybackState{}
	if s != nil {
		cp = *s
	}
	cp.Analysis = a
	return &cp
}

// ClampFraction clamps f to [0, 1]. NaN maps to 0.
func ClampFraction(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// PositionForFraction maps a seek fraction onto a track duration, rounded to
// the millisecond resolution players accept.
func PositionForFraction(total time.Duration, fraction float64) time.Duration {
	if total <= 0 {
		return 0
	}
	pos := time.Duration(ClampFraction(fraction) * float64(total))
	return pos.Round(time.Millisecond)
}

func clampDuration(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}
