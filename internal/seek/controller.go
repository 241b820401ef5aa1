// Package seek turns pointer gestures over the progress bar into seek
// requests.
package seek

import "github.com/tessro/wavebar/internal/core"

// GestureState is the pointer-capture state of a Controller.
type GestureState int

const (
	// Idle means no gesture is in progress.
	Idle GestureState = iota
	// Capturing means the primary button went down inside the bar and has
	// not been released yet.
	Capturing
)

func (s GestureState) String() string {
	if s == Capturing {
		return "capturing"
	}
	return "idle"
}

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonSecondary
	ButtonMiddle
	ButtonOther
)

// EventKind is the kind of pointer event.
type EventKind int

const (
	Press EventKind = iota
	Move
	Release
)

// Event is a pointer event in the same coordinate space as the bar's Region.
type Event struct {
	Kind   EventKind
	Button Button
	X      int
	Y      int
}

// Region is the bar's rectangle, which is also its hover region.
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(x, y int) bool {
	return r.Width > 0 && r.Height > 0 &&
		x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Fraction maps an absolute x coordinate to a clamped fraction of the width.
func (r Region) Fraction(x int) float64 {
	if r.Width <= 0 {
		return 0
	}
	return core.ClampFraction(float64(x-r.X) / float64(r.Width))
}

// Request asks the player to move to Fraction of the current track.
type Request struct {
	Fraction float64
}

// Controller is the press/drag/release state machine for one bar. The zero
// value is an idle controller with an empty region.
type Controller struct {
	state  GestureState
	region Region
}

// NewController returns an idle controller for region.
func NewController(region Region) *Controller {
	return &Controller{region: region}
}

// State returns the current gesture state.
func (c *Controller) State() GestureState {
	return c.state
}

// Region returns the region the controller hit-tests against.
func (c *Controller) Region() Region {
	return c.region
}

// SetRegion moves or resizes the bar. An in-progress gesture is kept.
func (c *Controller) SetRegion(r Region) {
	c.region = r
}

// Reset drops any in-progress gesture without emitting a request.
func (c *Controller) Reset() {
	c.state = Idle
}

// Handle applies ev and returns a seek request when ev completes a gesture
// inside the region. At most one request is produced per press/release pair.
func (c *Controller) Handle(ev Event) (Request, bool) {
	switch ev.Kind {
	case Press:
		if c.state == Idle && ev.Button == ButtonPrimary && c.region.Contains(ev.X, ev.Y) {
			c.state = Capturing
		}
	case Release:
		if c.state != Capturing || !isPrimaryRelease(ev.Button) {
			return Request{}, false
		}
		c.state = Idle
		if c.region.Contains(ev.X, ev.Y) {
			return Request{Fraction: c.region.Fraction(ev.X)}, true
		}
	}
	return Request{}, false
}

// Terminals in X10 mode do not say which button was released, so a release
// without a button counts as the primary one.
func isPrimaryRelease(b Button) bool {
	return b == ButtonPrimary || b == ButtonNone
}
