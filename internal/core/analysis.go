package core

import "time"

// Segment is one time slice of an audio analysis with its peak loudness (dB).
type Segment struct {
	Start       time.Duration `json:"start"`
	Duration    time.Duration `json:"duration"`
	LoudnessMax float64       `json:"loudness_max"`
}

// AnalysisTrace is a precomputed loudness trace for a track. Segments are
// ordered by Start and assumed not to overlap.
type AnalysisTrace struct {
	TrackID  string    `json:"track_id,omitempty"`
	Segments []Segment `json:"segments"`
}

// Len returns the number of segments.
func (a *AnalysisTrace) Len() int {
	if a == nil {
		return 0
	}
	return len(a.Segments)
}

// LoudnessRange returns the minimum and maximum LoudnessMax over all
// segments. ok is false for an empty trace.
func (a *AnalysisTrace) LoudnessRange() (lo, hi float64, ok bool) {
	if a.Len() == 0 {
		return 0, 0, false
	}
	lo, hi = a.Segments[0].LoudnessMax, a.Segments[0].LoudnessMax
	for _, s := range a.Segments[1:] {
		if s.LoudnessMax < lo {
			lo = s.LoudnessMax
		}
		if s.LoudnessMax > hi {
			hi = s.LoudnessMax
		}
	}
	return lo, hi, true
}

// End returns the end time of the last segment.
func (a *AnalysisTrace) End() time.Duration {
	if a.Len() == 0 {
		return 0
	}
	last := a.Segments[len(a.Segments)-1]
	return last.Start + last.Duration
}
