package progress

import (
	"math"

	"github.com/tessro/wavebar/internal/core"
)

const (
	// MinSegmentWidth keeps very short analysis segments visible.
	MinSegmentWidth = 1.0

	// FlatBarHeight is the thickness of the two-segment bar.
	FlatBarHeight = 3.0

	// RemainingAlpha is the opacity of the remaining part of the flat bar.
	RemainingAlpha = 0.5
)

// Kind names a rendering strategy.
type Kind int

const (
	// KindFlat draws an elapsed/remaining two-segment bar.
	KindFlat Kind = iota
	// KindAnalysis draws one bar per loudness-analysis segment.
	KindAnalysis
)

func (k Kind) String() string {
	if k == KindAnalysis {
		return "analysis"
	}
	return "flat"
}

// Strategy is the rendering strategy chosen for one render call.
// Trace is set only for KindAnalysis.
type Strategy struct {
	Kind  Kind
	Trace *core.AnalysisTrace
}

// Select picks the analysis strategy when the snapshot carries a trace.
func Select(state *core.PlaybackState) Strategy {
	if state != nil && state.Analysis != nil {
		return Strategy{Kind: KindAnalysis, Trace: state.Analysis}
	}
	return Strategy{Kind: KindFlat}
}

// Render returns the fills for the progress bar, back to front.
func Render(bounds Size, state *core.PlaybackState, env Env) []Fill {
	bounds = bounds.sanitize()

	s := Select(state)
	switch s.Kind {
	case KindAnalysis:
		return renderAnalysis(bounds, state, s.Trace, env)
	default:
		return renderFlat(bounds, state, env)
	}
}

// FlatWidths splits width into elapsed and remaining parts. The elapsed part
// is rounded and the remaining part takes the rest, so they always sum to
// width.
func FlatWidths(width, fraction float64) (elapsed, remaining float64) {
	width = finiteNonNeg(width)
	elapsed = math.Round(width * core.ClampFraction(fraction))
	if elapsed > width {
		elapsed = width
	}
	return elapsed, width - elapsed
}

func renderFlat(bounds Size, state *core.PlaybackState, env Env) []Fill {
	elapsedWidth, remainingWidth := FlatWidths(bounds.Width, state.ProgressFraction())
	y := bounds.Height/2 - FlatBarHeight/2

	return []Fill{
		{
			Rect:  Rect{X: 0, Y: y, Width: elapsedWidth, Height: FlatBarHeight},
			Color: env.PrimaryDark,
		},
		{
			Rect:  Rect{X: elapsedWidth, Y: y, Width: remainingWidth, Height: FlatBarHeight},
			Color: env.PrimaryLight.WithAlpha(RemainingAlpha),
		},
	}
}

func renderAnalysis(bounds Size, state *core.PlaybackState, trace *core.AnalysisTrace, env Env) []Fill {
	total := state.Total().Seconds()
	if total <= 0 {
		return nil
	}
	lo, hi, ok := trace.LoudnessRange()
	if !ok {
		return nil
	}
	elapsed := state.Elapsed()

	fills := make([]Fill, 0, len(trace.Segments))
	for _, seg := range trace.Segments {
		startFrac := seg.Start.Seconds() / total
		durationFrac := seg.Duration.Seconds() / total
		loudness := LoudnessFraction(seg.LoudnessMax, lo, hi)

		width := math.Max(bounds.Width*durationFrac, MinSegmentWidth)
		height := bounds.Height * loudness

		color := env.Remaining
		if seg.Start <= elapsed {
			color = env.Elapsed
		}

		fills = append(fills, Fill{
			Rect: Rect{
				X:      bounds.Width * startFrac,
				Y:      bounds.Height/2 - height/2,
				Width:  width,
				Height: height,
			},
			Color: color,
		})
	}
	return fills
}

// LoudnessFraction maps a segment's peak loudness onto [0, 1] relative to
// the trace's loudness range:
//
//	(v + |lo|) / (hi + |lo|)
//
// A trace whose segments all share one loudness has no range; every segment
// is then drawn at full height. Values outside the range are clamped.
func LoudnessFraction(v, lo, hi float64) float64 {
	den := hi + math.Abs(lo)
	if lo == hi || den == 0 || math.IsNaN(den) || math.IsInf(den, 0) {
		return 1
	}
	f := (v + math.Abs(lo)) / den
	if math.IsNaN(f) {
		return 1
	}
	return core.ClampFraction(f)
}
