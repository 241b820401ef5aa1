package progress

import (
	"math"
	"testing"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/tessro/wavebar/internal/core"
)

func secs(n float64) time.Duration {
	return time.Duration(n * float64(time.Second))
}

func snapshot(total, elapsed time.Duration, trace *core.AnalysisTrace) *core.PlaybackState {
	return &core.PlaybackState{
		Track:    &core.Track{Duration: total},
		Progress: &elapsed,
		Analysis: trace,
	}
}

func testEnv() Env {
	return Env{
		PrimaryDark:  Hex("#111111"),
		PrimaryLight: Hex("#eeeeee"),
		Elapsed:      Hex("#ffffff"),
		Remaining:    Hex("#4c4c4c"),
	}
}

func TestSelect(t *testing.T) {
	if got := Select(nil); got.Kind != KindFlat {
		t.Errorf("Select(nil).Kind = %v, want flat", got.Kind)
	}

	trace := &core.AnalysisTrace{}
	got := Select(&core.PlaybackState{Analysis: trace})
	if got.Kind != KindAnalysis || got.Trace != trace {
		t.Errorf("Select() = %+v, want analysis with trace", got)
	}
}

func TestRenderFlat_Example(t *testing.T) {
	env := testEnv()
	fills := Render(Size{Width: 100, Height: 8}, snapshot(secs(200), secs(50), nil), env)

	if len(fills) != 2 {
		t.Fatalf("len(fills) = %d, want 2", len(fills))
	}
	elapsed, remaining := fills[0], fills[1]

	if elapsed.Rect.Width != 25 {
		t.Errorf("elapsed width = %v, want 25", elapsed.Rect.Width)
	}
	if remaining.Rect.Width != 75 {
		t.Errorf("remaining width = %v, want 75", remaining.Rect.Width)
	}
	if remaining.Rect.X != 25 {
		t.Errorf("remaining x = %v, want 25", remaining.Rect.X)
	}
	if elapsed.Rect.Height != FlatBarHeight || remaining.Rect.Height != FlatBarHeight {
		t.Errorf("heights = %v/%v, want %v", elapsed.Rect.Height, remaining.Rect.Height, FlatBarHeight)
	}
	if want := 8.0/2 - FlatBarHeight/2; elapsed.Rect.Y != want {
		t.Errorf("y = %v, want %v", elapsed.Rect.Y, want)
	}
	if elapsed.Color != env.PrimaryDark {
		t.Errorf("elapsed color = %+v, want primary dark", elapsed.Color)
	}
	if remaining.Color.RGB != env.PrimaryLight.RGB || remaining.Color.Alpha != RemainingAlpha {
		t.Errorf("remaining color = %+v, want primary light at %v", remaining.Color, RemainingAlpha)
	}
}

func TestFlatWidths_Conservation(t *testing.T) {
	widths := []float64{0, 1, 3, 7, 33, 80, 100, 101, 1920, 10.3}
	for _, w := range widths {
		for i := 0; i <= 100; i++ {
			f := float64(i) / 100
			e, r := FlatWidths(w, f)
			if e+r != w {
				t.Fatalf("FlatWidths(%v, %v) = %v + %v != %v", w, f, e, r, w)
			}
			if e < 0 || r < 0 {
				t.Fatalf("FlatWidths(%v, %v) produced negative width: %v, %v", w, f, e, r)
			}
		}
	}
}

func TestRender_ZeroDurationSafety(t *testing.T) {
	trace := &core.AnalysisTrace{Segments: []core.Segment{
		{Start: 0, Duration: secs(1), LoudnessMax: -10},
		{Start: secs(1), Duration: secs(1), LoudnessMax: -5},
	}}

	tests := []struct {
		name   string
		state  *core.PlaybackState
		bounds Size
	}{
		{name: "flat zero duration", state: snapshot(0, secs(10), nil), bounds: Size{Width: 80, Height: 8}},
		{name: "flat nil state", state: nil, bounds: Size{Width: 80, Height: 8}},
		{name: "flat zero width", state: snapshot(secs(100), secs(10), nil), bounds: Size{}},
		{name: "flat NaN width", state: snapshot(secs(100), secs(10), nil), bounds: Size{Width: math.NaN(), Height: 8}},
		{name: "analysis zero duration", state: snapshot(0, secs(10), trace), bounds: Size{Width: 80, Height: 8}},
		{name: "analysis no track", state: &core.PlaybackState{Analysis: trace}, bounds: Size{Width: 80, Height: 8}},
		{name: "analysis negative bounds", state: snapshot(secs(2), secs(1), trace), bounds: Size{Width: -5, Height: -8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, f := range Render(tt.bounds, tt.state, testEnv()) {
				for _, v := range []float64{f.Rect.X, f.Rect.Y, f.Rect.Width, f.Rect.Height} {
					if math.IsNaN(v) || math.IsInf(v, 0) {
						t.Fatalf("non-finite geometry: %+v", f.Rect)
					}
				}
				if f.Rect.Width < 0 || f.Rect.Height < 0 {
					t.Fatalf("negative extent: %+v", f.Rect)
				}
			}
		})
	}

	if fills := Render(Size{Width: 80, Height: 8}, snapshot(0, 0, trace), testEnv()); len(fills) != 0 {
		t.Errorf("analysis with zero duration emitted %d fills, want 0", len(fills))
	}
}

func TestRenderAnalysis_EmptyTrace(t *testing.T) {
	fills := Render(Size{Width: 80, Height: 8}, snapshot(secs(100), secs(10), &core.AnalysisTrace{}), testEnv())
	if len(fills) != 0 {
		t.Errorf("len(fills) = %d, want 0", len(fills))
	}
}

func TestLoudnessFraction_Example(t *testing.T) {
	tests := []struct {
		v    float64
		want float64
	}{
		{-10, 0.5},
		{-5, 1.0},
		{-15, 0.0},
	}
	for _, tt := range tests {
		if got := LoudnessFraction(tt.v, -15, -5); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("LoudnessFraction(%v, -15, -5) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestLoudnessFraction_Degenerate(t *testing.T) {
	for _, v := range []float64{-8, 0, 3} {
		got := LoudnessFraction(v, v, v)
		if got != 1 {
			t.Errorf("LoudnessFraction(%v, %v, %v) = %v, want 1", v, v, v, got)
		}
	}
}

func TestLoudnessFraction_Bounds(t *testing.T) {
	ranges := [][2]float64{{-60, -1}, {-20, 5}, {2, 9}, {-3, -2.5}}
	for _, r := range ranges {
		lo, hi := r[0], r[1]
		for i := 0; i <= 50; i++ {
			v := lo + (hi-lo)*float64(i)/50
			got := LoudnessFraction(v, lo, hi)
			if got < 0 || got > 1 || math.IsNaN(got) {
				t.Fatalf("LoudnessFraction(%v, %v, %v) = %v, outside [0,1]", v, lo, hi, got)
			}
		}
	}
}

func TestRenderAnalysis_Geometry(t *testing.T) {
	trace := &core.AnalysisTrace{Segments: []core.Segment{
		{Start: 0, Duration: secs(25), LoudnessMax: -10},
		{Start: secs(25), Duration: secs(25), LoudnessMax: -5},
		{Start: secs(50), Duration: secs(50), LoudnessMax: -15},
	}}
	fills := Render(Size{Width: 200, Height: 10}, snapshot(secs(100), secs(30), trace), testEnv())
	if len(fills) != 3 {
		t.Fatalf("len(fills) = %d, want 3", len(fills))
	}

	want := []Rect{
		{X: 0, Y: 2.5, Width: 50, Height: 5},
		{X: 50, Y: 0, Width: 50, Height: 10},
		{X: 100, Y: 5, Width: 100, Height: 0},
	}
	for i, w := range want {
		if fills[i].Rect != w {
			t.Errorf("fills[%d].Rect = %+v, want %+v", i, fills[i].Rect, w)
		}
	}
}

func TestRenderAnalysis_MinSegmentWidth(t *testing.T) {
	trace := &core.AnalysisTrace{Segments: []core.Segment{
		{Start: secs(10), Duration: 10 * time.Millisecond, LoudnessMax: -3},
		{Start: secs(20), Duration: secs(1), LoudnessMax: -9},
	}}
	fills := Render(Size{Width: 40, Height: 8}, snapshot(secs(300), 0, trace), testEnv())
	for i, f := range fills {
		if f.Rect.Width < MinSegmentWidth {
			t.Errorf("fills[%d] width = %v, want >= %v", i, f.Rect.Width, MinSegmentWidth)
		}
	}
}

func TestRenderAnalysis_ColorSplit(t *testing.T) {
	env := testEnv()
	segments := []core.Segment{
		{Start: secs(30), Duration: secs(10), LoudnessMax: -7},
		{Start: 0, Duration: secs(10), LoudnessMax: -12},
		{Start: secs(20), Duration: secs(10), LoudnessMax: -4},
		{Start: secs(10), Duration: secs(10), LoudnessMax: -20},
	}
	elapsed := secs(20)
	fills := Render(Size{Width: 80, Height: 8}, snapshot(secs(40), elapsed, &core.AnalysisTrace{Segments: segments}), env)

	if len(fills) != len(segments) {
		t.Fatalf("len(fills) = %d, want %d", len(fills), len(segments))
	}
	for i, seg := range segments {
		want := env.Remaining
		if seg.Start <= elapsed {
			want = env.Elapsed
		}
		if fills[i].Color != want {
			t.Errorf("segment starting %v: color = %+v, want %+v", seg.Start, fills[i].Color, want)
		}
	}
}

func TestRenderAnalysis_DegenerateLoudness(t *testing.T) {
	trace := &core.AnalysisTrace{Segments: []core.Segment{
		{Start: 0, Duration: secs(10), LoudnessMax: -8},
	}}
	fills := Render(Size{Width: 80, Height: 8}, snapshot(secs(10), 0, trace), testEnv())
	if len(fills) != 1 {
		t.Fatalf("len(fills) = %d, want 1", len(fills))
	}
	r := fills[0].Rect
	if math.IsNaN(r.Height) || r.Height != 8 || r.Y != 0 {
		t.Errorf("rect = %+v, want full height", r)
	}
}

func TestColor_Over(t *testing.T) {
	bg := colorful.Color{R: 0, G: 0, B: 0}
	white := Opaque(colorful.Color{R: 1, G: 1, B: 1})

	if got := white.Over(bg); got != white.RGB {
		t.Errorf("opaque Over() = %v, want %v", got, white.RGB)
	}
	half := white.WithAlpha(0.5).Over(bg)
	if math.Abs(half.R-0.5) > 1e-9 || math.Abs(half.G-0.5) > 1e-9 || math.Abs(half.B-0.5) > 1e-9 {
		t.Errorf("half-alpha Over() = %v, want mid gray", half)
	}
}
