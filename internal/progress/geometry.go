// Package progress computes the geometry of the playback progress bar.
//
// Rendering is a pure function of the bar's bounds, a playback snapshot and
// a style environment. The result is a list of filled rectangles painted
// back to front; turning them into terminal cells is the caller's concern.
package progress

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Size is the drawable area of the bar.
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned rectangle with its origin at the top left.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Color is an RGB color with straight alpha.
type Color struct {
	RGB   colorful.Color
	Alpha float64
}

// Opaque wraps c with full alpha.
func Opaque(c colorful.Color) Color {
	return Color{RGB: c, Alpha: 1}
}

// Hex parses a #rrggbb color, falling back to black on malformed input.
func Hex(s string) Color {
	c, err := colorful.Hex(s)
	if err != nil {
		return Opaque(colorful.Color{})
	}
	return Opaque(c)
}

// WithAlpha returns c with the alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.Alpha = math.Max(0, math.Min(1, a))
	return c
}

// Over composites c onto an opaque background.
func (c Color) Over(bg colorful.Color) colorful.Color {
	if c.Alpha >= 1 {
		return c.RGB
	}
	return bg.BlendRgb(c.RGB, c.Alpha).Clamped()
}

// Fill is one rectangle to paint.
type Fill struct {
	Rect  Rect
	Color Color
}

// Env carries the theme colors the bar is painted with.
type Env struct {
	// PrimaryDark and PrimaryLight paint the flat bar.
	PrimaryDark  Color
	PrimaryLight Color

	// Elapsed and Remaining paint the waveform.
	Elapsed   Color
	Remaining Color
}

// DefaultEnv matches the colors of a dark theme.
func DefaultEnv() Env {
	return Env{
		PrimaryDark:  Hex("#7C3AED"),
		PrimaryLight: Hex("#C4B5FD"),
		Elapsed:      Opaque(colorful.Color{R: 1, G: 1, B: 1}),
		Remaining:    Opaque(colorful.Color{R: 0.3, G: 0.3, B: 0.3}),
	}
}

// sanitize replaces negative or non-finite extents with zero.
func (s Size) sanitize() Size {
	return Size{Width: finiteNonNeg(s.Width), Height: finiteNonNeg(s.Height)}
}

func finiteNonNeg(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
