package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/wavebar/internal/core"
	"github.com/tessro/wavebar/internal/progress"
	"github.com/tessro/wavebar/internal/seek"
	"github.com/tessro/wavebar/internal/tui/styles"
)

// SeekMsg asks the app to move playback to Fraction of the current track.
type SeekMsg struct {
	Fraction float64
}

// SeekBar is the progress bar with pointer seeking. The seek controller
// sees every mouse event first; hover tracking runs afterwards either way.
type SeekBar struct {
	ctrl     *seek.Controller
	rows     int
	hover    int
	Waveform bool
}

// NewSeekBar returns a bar rows terminal rows high.
func NewSeekBar(rows int) *SeekBar {
	if rows < 1 {
		rows = 1
	}
	return &SeekBar{ctrl: seek.NewController(seek.Region{}), rows: rows, hover: -1, Waveform: true}
}

// Rows returns the bar height in terminal rows.
func (s *SeekBar) Rows() int { return s.rows }

// SetBounds places the bar in screen coordinates.
func (s *SeekBar) SetBounds(x, y, width int) {
	if width < 0 {
		width = 0
	}
	s.ctrl.SetRegion(seek.Region{X: x, Y: y, Width: width, Height: s.rows})
	if s.hover >= width {
		s.hover = -1
	}
}

// Region returns the bar's screen rectangle.
func (s *SeekBar) Region() seek.Region { return s.ctrl.Region() }

// Capturing reports whether a seek gesture is in progress.
func (s *SeekBar) Capturing() bool { return s.ctrl.State() == seek.Capturing }

// Cancel drops an in-progress gesture, e.g. when the bar is hidden.
func (s *SeekBar) Cancel() {
	s.ctrl.Reset()
	s.hover = -1
}

// Update feeds a mouse event through the seek controller and then updates
// hover. It returns a command producing SeekMsg when a gesture completes.
func (s *SeekBar) Update(msg tea.MouseMsg) tea.Cmd {
	var cmd tea.Cmd
	if ev, ok := toSeekEvent(msg); ok {
		if req, ok := s.ctrl.Handle(ev); ok {
			fraction := req.Fraction
			cmd = func() tea.Msg { return SeekMsg{Fraction: fraction} }
		}
	}

	r := s.ctrl.Region()
	if r.Contains(msg.X, msg.Y) {
		s.hover = msg.X - r.X
	} else {
		s.hover = -1
	}
	return cmd
}

// HoverFraction returns the fraction under the pointer, if it is over the bar.
func (s *SeekBar) HoverFraction() (float64, bool) {
	if s.hover < 0 {
		return 0, false
	}
	r := s.ctrl.Region()
	return r.Fraction(r.X + s.hover), true
}

// HoverPosition maps the hovered column onto total.
func (s *SeekBar) HoverPosition(total time.Duration) (time.Duration, bool) {
	f, ok := s.HoverFraction()
	if !ok {
		return 0, false
	}
	return core.PositionForFraction(total, f), true
}

// Strategy returns how the bar will be drawn for state.
func (s *SeekBar) Strategy(state *core.PlaybackState) progress.Strategy {
	return progress.Select(s.visible(state))
}

// visible drops the trace when the waveform is switched off.
func (s *SeekBar) visible(state *core.PlaybackState) *core.PlaybackState {
	if !s.Waveform && state != nil && state.Analysis != nil {
		return state.WithAnalysis(nil)
	}
	return state
}

// View draws the bar for state.
func (s *SeekBar) View(state *core.PlaybackState, theme styles.Theme) []string {
	return DrawBar(s.visible(state), theme, s.ctrl.Region().Width, s.rows, s.hover)
}

// DrawBar renders state as a bar cols wide and rows high, highlighting the
// hover column (-1 for none).
func DrawBar(state *core.PlaybackState, theme styles.Theme, cols, rows, hover int) []string {
	raster := Raster{
		Cols:       cols,
		Rows:       rows,
		Background: theme.BarBackground(),
		Hover:      hover,
		HoverColor: progress.Hex(theme.Palette.Primary).RGB,
	}

	fills := progress.Render(raster.Bounds(), state, theme.BarEnv())
	if progress.Select(state).Kind == progress.KindAnalysis {
		return raster.Waveform(fills)
	}
	return raster.Flat(fills)
}

// toSeekEvent maps a bubbletea mouse message onto a controller event.
// Wheel events are not gestures.
func toSeekEvent(msg tea.MouseMsg) (seek.Event, bool) {
	ev := seek.Event{X: msg.X, Y: msg.Y}

	switch msg.Action {
	case tea.MouseActionPress:
		ev.Kind = seek.Press
	case tea.MouseActionRelease:
		ev.Kind = seek.Release
	case tea.MouseActionMotion:
		ev.Kind = seek.Move
	default:
		return ev, false
	}

	switch msg.Button {
	case tea.MouseButtonNone:
		ev.Button = seek.ButtonNone
	case tea.MouseButtonLeft:
		ev.Button = seek.ButtonPrimary
	case tea.MouseButtonRight:
		ev.Button = seek.ButtonSecondary
	case tea.MouseButtonMiddle:
		ev.Button = seek.ButtonMiddle
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return ev, false
	default:
		ev.Button = seek.ButtonOther
	}
	return ev, true
}
