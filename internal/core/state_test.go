package core

import (
	"math"
	"testing"
	"time"
)

func dur(d time.Duration) *time.Duration { return &d }

func TestPlaybackState_Elapsed(t *testing.T) {
	track := &Track{Duration: 200 * time.Second}

	tests := []struct {
		name  string
		state *PlaybackState
		want  time.Duration
	}{
		{name: "nil state", state: nil, want: 0},
		{name: "no progress", state: &PlaybackState{Track: track}, want: 0},
		{name: "in range", state: &PlaybackState{Track: track, Progress: dur(50 * time.Second)}, want: 50 * time.Second},
		{name: "negative clamps to zero", state: &PlaybackState{Track: track, Progress: dur(-time.Second)}, want: 0},
		{name: "past end clamps to duration", state: &PlaybackState{Track: track, Progress: dur(300 * time.Second)}, want: 200 * time.Second},
		{name: "no track clamps to zero", state: &PlaybackState{Progress: dur(10 * time.Second)}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Elapsed(); got != tt.want {
				t.Errorf("Elapsed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaybackState_ProgressFraction(t *testing.T) {
	s := &PlaybackState{Track: &Track{Duration: 200 * time.Second}, Progress: dur(50 * time.Second)}
	if got := s.ProgressFraction(); got != 0.25 {
		t.Errorf("ProgressFraction() = %v, want 0.25", got)
	}

	zero := &PlaybackState{Track: &Track{}, Progress: dur(50 * time.Second)}
	if got := zero.ProgressFraction(); got != 0 {
		t.Errorf("ProgressFraction() with zero duration = %v, want 0", got)
	}
}

func TestPlaybackState_WithProgressCopies(t *testing.T) {
	orig := &PlaybackState{Track: &Track{Duration: time.Minute}, Progress: dur(time.Second)}
	next := orig.WithProgress(30 * time.Second)

	if *orig.Progress != time.Second {
		t.Errorf("original progress mutated to %v", *orig.Progress)
	}
	if *next.Progress != 30*time.Second {
		t.Errorf("copy progress = %v, want 30s", *next.Progress)
	}
}

func TestClampFraction(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.6, 0.6},
		{1, 1},
		{1.7, 1},
		{math.NaN(), 0},
		{math.Inf(1), 1},
		{math.Inf(-1), 0},
	}
	for _, tt := range tests {
		if got := ClampFraction(tt.in); got != tt.want {
			t.Errorf("ClampFraction(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPositionForFraction(t *testing.T) {
	tests := []struct {
		name     string
		total    time.Duration
		fraction float64
		want     time.Duration
	}{
		{name: "middle", total: 200 * time.Second, fraction: 0.6, want: 120 * time.Second},
		{name: "clamped high", total: 200 * time.Second, fraction: 2, want: 200 * time.Second},
		{name: "clamped low", total: 200 * time.Second, fraction: -1, want: 0},
		{name: "zero duration", total: 0, fraction: 0.5, want: 0},
		{name: "rounds to ms", total: 1001 * time.Millisecond, fraction: 0.5, want: 501 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PositionForFraction(tt.total, tt.fraction); got != tt.want {
				t.Errorf("PositionForFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnalysisTrace_LoudnessRange(t *testing.T) {
	trace := &AnalysisTrace{Segments: []Segment{
		{LoudnessMax: -10},
		{LoudnessMax: -5},
		{LoudnessMax: -15},
	}}
	lo, hi, ok := trace.LoudnessRange()
	if !ok || lo != -15 || hi != -5 {
		t.Errorf("LoudnessRange() = (%v, %v, %v), want (-15, -5, true)", lo, hi, ok)
	}

	var empty *AnalysisTrace
	if _, _, ok := empty.LoudnessRange(); ok {
		t.Error("LoudnessRange() on nil trace reported ok")
	}
}

func TestTrack_Names(t *testing.T) {
	track := &Track{
		Artists: []ArtistRef{{ID: "a1", Name: "One"}, {ID: "a2", Name: "Two"}},
		Album:   &AlbumRef{ID: "al", Name: "Record"},
	}
	if got := track.ArtistName(); got != "One, Two" {
		t.Errorf("ArtistName() = %q", got)
	}
	if got := track.AlbumName(); got != "Record" {
		t.Errorf("AlbumName() = %q", got)
	}

	target, ok := NavArtistTarget(track)
	if !ok || target.Kind != NavArtist || target.ID != "a1" {
		t.Errorf("NavArtistTarget() = %+v, %v", target, ok)
	}
	target, ok = NavAlbumTarget(track)
	if !ok || target.Kind != NavAlbum || target.ID != "al" {
		t.Errorf("NavAlbumTarget() = %+v, %v", target, ok)
	}
	if _, ok := NavAlbumTarget(&Track{}); ok {
		t.Error("NavAlbumTarget() without album reported ok")
	}
}
