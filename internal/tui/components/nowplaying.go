package components

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/tessro/wavebar/internal/core"
	"github.com/tessro/wavebar/internal/tui/styles"
)

// TransportMsg asks the app to send a transport command to the player.
type TransportMsg struct {
	Command core.Command
}

// NavigateMsg asks the app to show an artist or album.
type NavigateMsg struct {
	Target core.NavTarget
}

// target is a clickable element of the panel.
type target int

const (
	targetNone target = iota
	targetArtist
	targetAlbum
	targetPrev
	targetPlayPause
	targetNext
)

const (
	rowTitle  = 0
	rowArtist = 1
	rowAlbum  = 2
	rowBar    = 4

	controlGap = "   "
	ellipsis   = "…"
)

var controlGlyphs = []struct {
	t     target
	glyph string
}{
	{targetPrev, "⏮"},
	{targetPlayPause, "⏯"},
	{targetNext, "⏭"},
}

// NowPlaying displays the current track, its progress bar and the
// transport controls. Artist and album labels are links.
type NowPlaying struct {
	Bar *SeekBar

	x, y, width int
	hovered     target
	pressed     target
}

// NewNowPlaying creates a panel with a bar barRows high.
func NewNowPlaying(barRows int) *NowPlaying {
	return &NowPlaying{Bar: NewSeekBar(barRows)}
}

// Height returns the number of content rows the panel draws.
func (n *NowPlaying) Height() int {
	return n.controlsRow() + 1
}

func (n *NowPlaying) controlsRow() int {
	return rowBar + n.Bar.Rows() + 1
}

// SetBounds places the panel content at (x, y) with the given width.
func (n *NowPlaying) SetBounds(x, y, width int) {
	n.x, n.y, n.width = x, y, width
	n.Bar.SetBounds(x+timeLabelWidth+1, y+rowBar, width-2*(timeLabelWidth+1))
}

// timeLabelWidth fits "h:mm:ss" with a leading marker.
const timeLabelWidth = 8

// Update handles mouse input for the panel and its bar.
func (n *NowPlaying) Update(msg tea.MouseMsg, state *core.PlaybackState) tea.Cmd {
	cmd := n.Bar.Update(msg)

	hit := n.hitTest(msg.X, msg.Y, state)
	n.hovered = hit

	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		n.pressed = hit
	case msg.Action == tea.MouseActionRelease:
		pressed := n.pressed
		n.pressed = targetNone
		if pressed != targetNone && pressed == hit {
			if c := n.activate(hit, state); c != nil {
				return tea.Batch(cmd, c)
			}
		}
	}
	return cmd
}

func (n *NowPlaying) activate(t target, state *core.PlaybackState) tea.Cmd {
	var msg tea.Msg
	switch t {
	case targetArtist:
		if nav, ok := core.NavArtistTarget(state.Track); ok {
			msg = NavigateMsg{Target: nav}
		}
	case targetAlbum:
		if nav, ok := core.NavAlbumTarget(state.Track); ok {
			msg = NavigateMsg{Target: nav}
		}
	case targetPrev:
		msg = TransportMsg{Command: core.CommandPrevious}
	case targetNext:
		msg = TransportMsg{Command: core.CommandNext}
	case targetPlayPause:
		msg = TransportMsg{Command: PlayPauseCommand(state)}
	}
	if msg == nil {
		return nil
	}
	return func() tea.Msg { return msg }
}

// PlayPauseCommand returns the command the play/pause control sends.
func PlayPauseCommand(state *core.PlaybackState) core.Command {
	if state != nil && state.IsPlaying {
		return core.CommandPause
	}
	if state.HasTrack() {
		return core.CommandResume
	}
	return core.CommandPlay
}

// hitTest returns the clickable element at screen (x, y).
func (n *NowPlaying) hitTest(x, y int, state *core.PlaybackState) target {
	if !state.HasTrack() {
		return targetNone
	}
	cx, cy := x-n.x, y-n.y
	if cx < 0 || cx >= n.width {
		return targetNone
	}

	switch cy {
	case rowArtist:
		if cx < runewidth.StringWidth(n.fit(state.Track.ArtistName())) {
			return targetArtist
		}
	case rowAlbum:
		if cx < runewidth.StringWidth(n.fit(state.Track.AlbumName())) {
			return targetAlbum
		}
	case n.controlsRow():
		start := (n.width - runewidth.StringWidth(controlsText())) / 2
		pos := start
		for _, c := range controlGlyphs {
			w := runewidth.StringWidth(c.glyph)
			if cx >= pos && cx < pos+w {
				return c.t
			}
			pos += w + len(controlGap)
		}
	}
	return targetNone
}

func controlsText() string {
	glyphs := make([]string, len(controlGlyphs))
	for i, c := range controlGlyphs {
		glyphs[i] = c.glyph
	}
	return strings.Join(glyphs, controlGap)
}

// fit truncates s to the panel width.
func (n *NowPlaying) fit(s string) string {
	return Truncate(s, n.width)
}

// Truncate shortens s to at most width cells, marking the cut with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// View renders the panel content.
func (n *NowPlaying) View(state *core.PlaybackState, theme styles.Theme) string {
	if !state.HasTrack() {
		return theme.Muted.Render("No track playing")
	}
	track := state.Track

	lines := make([]string, n.Height())
	lines[rowTitle] = theme.StatusIcon(state.IsPlaying) + " " + theme.Title.Render(Truncate(track.Title, n.width-2))
	lines[rowArtist] = n.link(n.fit(track.ArtistName()), targetArtist, theme)
	lines[rowAlbum] = n.link(n.fit(track.AlbumName()), targetAlbum, theme)

	left, right := n.timeLabels(state, theme)
	mid := (n.Bar.Rows() - 1) / 2
	for i, row := range n.Bar.View(state, theme) {
		if i == mid {
			row = left + " " + row + " " + right
		} else {
			row = strings.Repeat(" ", timeLabelWidth+1) + row
		}
		lines[rowBar+i] = row
	}

	lines[n.controlsRow()] = n.controls(theme)
	return strings.Join(lines, "\n")
}

func (n *NowPlaying) link(text string, t target, theme styles.Theme) string {
	if n.hovered == t {
		return theme.LinkHover.Render(text)
	}
	return theme.Link.Render(text)
}

// timeLabels returns the elapsed (or hovered) and total time, padded to
// the label width.
func (n *NowPlaying) timeLabels(state *core.PlaybackState, theme styles.Theme) (string, string) {
	total := state.Total()
	left := theme.Muted.Render(padLeft(FormatDuration(state.Elapsed()), timeLabelWidth))
	if pos, ok := n.Bar.HoverPosition(total); ok && total > 0 {
		left = theme.Highlight.Render(padLeft("→"+FormatDuration(pos), timeLabelWidth))
	}
	right := theme.Muted.Render(padRight(FormatDuration(total), timeLabelWidth))
	return left, right
}

func (n *NowPlaying) controls(theme styles.Theme) string {
	parts := make([]string, len(controlGlyphs))
	for i, c := range controlGlyphs {
		style := theme.Control
		if n.hovered == c.t {
			style = theme.ControlHi
		}
		parts[i] = style.Render(c.glyph)
	}
	row := strings.Join(parts, controlGap)
	return lipgloss.PlaceHorizontal(n.width, lipgloss.Center, row)
}

func padLeft(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return s
}

func padRight(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// FormatDuration formats d as m:ss, or h:mm:ss from an hour up.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
