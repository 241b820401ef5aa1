package store

import (
	"strings"
	"time"

	"github.com/tessro/wavebar/internal/core"
)

// Change is a set of differences between two consecutive snapshots.
type Change uint8

const (
	ChangeTrack Change = 1 << iota
	ChangePause
	ChangeResume
	ChangeSeek
	ChangeAnalysis
)

// seekTolerance is how far the reported position may drift from the
// expected one before a poll counts as a seek.
const seekTolerance = 2 * time.Second

// Has reports whether c includes all of other.
func (c Change) Has(other Change) bool {
	return c&other == other
}

func (c Change) String() string {
	if c == 0 {
		return "tick"
	}
	var parts []string
	for _, n := range []struct {
		c    Change
		name string
	}{
		{ChangeTrack, "track"},
		{ChangePause, "pause"},
		{ChangeResume, "resume"},
		{ChangeSeek, "seek"},
		{ChangeAnalysis, "analysis"},
	} {
		if c.Has(n.c) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Classify compares two snapshots taken gap apart.
func Classify(prev, curr *core.PlaybackState, gap time.Duration) Change {
	if curr == nil {
		return 0
	}
	if prev == nil {
		var c Change
		if curr.HasTrack() {
			c |= ChangeTrack
		}
		if curr.Analysis != nil {
			c |= ChangeAnalysis
		}
		return c
	}

	var c Change
	if trackChanged(prev, curr) {
		c |= ChangeTrack
	}

	if prev.IsPlaying && !curr.IsPlaying {
		c |= ChangePause
	} else if !prev.IsPlaying && curr.IsPlaying {
		c |= ChangeResume
	}

	if !c.Has(ChangeTrack) && seeked(prev, curr, gap) {
		c |= ChangeSeek
	}

	if analysisID(prev) != analysisID(curr) {
		c |= ChangeAnalysis
	}
	return c
}

func trackChanged(prev, curr *core.PlaybackState) bool {
	if prev.Track == nil && curr.Track == nil {
		return false
	}
	if prev.Track == nil || curr.Track == nil {
		return true
	}
	return prev.Track.URI != curr.Track.URI || prev.Track.ID != curr.Track.ID
}

// seeked reports whether the position moved other than by playing for gap.
func seeked(prev, curr *core.PlaybackState, gap time.Duration) bool {
	if !prev.HasProgress() || !curr.HasProgress() {
		return false
	}
	expected := prev.Elapsed()
	if prev.IsPlaying {
		expected += gap
	}
	drift := curr.Elapsed() - expected
	if drift < 0 {
		drift = -drift
	}
	return drift > seekTolerance
}

func analysisID(s *core.PlaybackState) string {
	if s.Analysis == nil {
		return ""
	}
	return s.Analysis.TrackID
}
