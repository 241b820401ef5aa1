// Package tui is the interactive playback bar.
package tui

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/wavebar/internal/browser"
	"github.com/tessro/wavebar/internal/core"
	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/store"
	"github.com/tessro/wavebar/internal/tui/components"
	"github.com/tessro/wavebar/internal/tui/styles"
)

const (
	commandTimeout = 5 * time.Second
	errorDuration  = 5 * time.Second
)

// Options configures the UI.
type Options struct {
	Theme    styles.Theme
	Interval time.Duration
	BarRows  int
	Waveform bool
	Mouse    bool
	// Open launches navigation URLs; nil uses the system browser.
	Open   browser.Opener
	Logger *slog.Logger
}

// Model is the bubbletea model for the playback bar.
type Model struct {
	player core.Player
	store  *store.Store
	open   browser.Opener
	logger *slog.Logger

	theme styles.Theme
	keys  keyMap
	help  help.Model
	panel *components.NowPlaying

	width  int
	height int
	state  *core.PlaybackState

	showHelp    bool
	lastError   error
	errorExpiry time.Time
	quitting    bool

	now func() time.Time
}

// NewModel creates a model that sends commands to player and renders the
// snapshots published by st.
func NewModel(player core.Player, st *store.Store, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	panel := components.NewNowPlaying(opts.BarRows)
	panel.Bar.Waveform = opts.Waveform

	h := help.New()
	h.Styles.ShortKey = opts.Theme.Muted
	h.Styles.ShortDesc = opts.Theme.Dim
	h.Styles.FullKey = opts.Theme.Highlight
	h.Styles.FullDesc = opts.Theme.Muted

	return Model{
		player: player,
		store:  st,
		open:   opts.Open,
		logger: opts.Logger.With("component", "tui"),
		theme:  opts.Theme,
		keys:   defaultKeys(),
		help:   h,
		panel:  panel,
		now:    time.Now,
	}
}

// Messages
type updateMsg store.Update
type storeClosedMsg struct{}
type errMsg struct{ err error }
type actionDoneMsg struct{}

// waitForUpdate blocks on the store's channel and delivers the next snapshot.
func (m Model) waitForUpdate() tea.Cmd {
	updates := m.store.Updates()
	return func() tea.Msg {
		u, ok := <-updates
		if !ok {
			return storeClosedMsg{}
		}
		return updateMsg(u)
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		if m.showHelp {
			return m, nil
		}
		return m, m.panel.Update(msg, m.state)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil

	case updateMsg:
		if m.now().After(m.errorExpiry) {
			m.lastError = nil
		}
		m.state = msg.Current
		if msg.Changes.Has(store.ChangeTrack) {
			m.logger.Debug("track changed", "changes", msg.Changes.String())
		}
		return m, m.waitForUpdate()

	case storeClosedMsg:
		return m, nil

	case components.SeekMsg:
		return m.seek(msg.Fraction)

	case components.TransportMsg:
		return m, m.transport(msg.Command)

	case components.NavigateMsg:
		return m, m.navigate(msg.Target)

	case errMsg:
		m.logger.Warn("command failed", "err", msg.err)
		m.lastError = msg.err
		m.errorExpiry = m.now().Add(errorDuration)
		return m, nil

	case actionDoneMsg:
		m.store.Refresh()
		return m, nil
	}

	return m, nil
}

// layout places the panel inside its border and padding.
func (m Model) layout() {
	m.panel.SetBounds(2, 1, m.width-4)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.showHelp {
		if key.Matches(msg, m.keys.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.panel.Bar.Cancel()
		return m, nil

	case key.Matches(msg, m.keys.SeekBack):
		return m, m.seekBy(-seekStep)

	case key.Matches(msg, m.keys.SeekForward):
		return m, m.seekBy(seekStep)

	case key.Matches(msg, m.keys.PlayPause):
		return m, emit(components.TransportMsg{Command: components.PlayPauseCommand(m.state)})

	case key.Matches(msg, m.keys.Next):
		return m, emit(components.TransportMsg{Command: core.CommandNext})

	case key.Matches(msg, m.keys.Prev):
		return m, emit(components.TransportMsg{Command: core.CommandPrevious})

	case key.Matches(msg, m.keys.Artist):
		if target, ok := core.NavArtistTarget(m.track()); ok {
			return m, emit(components.NavigateMsg{Target: target})
		}

	case key.Matches(msg, m.keys.Album):
		if target, ok := core.NavAlbumTarget(m.track()); ok {
			return m, emit(components.NavigateMsg{Target: target})
		}

	case key.Matches(msg, m.keys.Waveform):
		on := !m.panel.Bar.Waveform
		m.panel.Bar.Waveform = on
		m.store.SetAnalysis(on)
	}

	return m, nil
}

func (m Model) track() *core.Track {
	if !m.state.HasTrack() {
		return nil
	}
	return m.state.Track
}

// seekBy goes through the same SeekMsg path as a click on the bar.
func (m Model) seekBy(delta float64) tea.Cmd {
	if !m.state.HasTrack() || m.state.Total() <= 0 {
		return nil
	}
	return emit(components.SeekMsg{Fraction: core.ClampFraction(m.state.ProgressFraction() + delta)})
}

// seek sends the player to fraction of the current track and shows the new
// position until the next snapshot arrives.
func (m Model) seek(fraction float64) (tea.Model, tea.Cmd) {
	if !m.state.HasTrack() {
		return m, nil
	}
	pos := core.PositionForFraction(m.state.Total(), fraction)
	m.state = m.state.WithProgress(pos)
	m.logger.Debug("seek", "fraction", fraction, "position", pos)

	player := m.player
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := player.Seek(ctx, pos); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}

func (m Model) transport(cmd core.Command) tea.Cmd {
	m.logger.Debug("transport", "command", cmd.String())
	player := m.player
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
		defer cancel()

		if err := core.Dispatch(ctx, player, cmd); err != nil {
			return errMsg{err}
		}
		return actionDoneMsg{}
	}
}

func (m Model) navigate(target core.NavTarget) tea.Cmd {
	open := m.open
	return func() tea.Msg {
		if err := browser.Navigate(open, target); err != nil {
			return errMsg{err}
		}
		return nil
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	panel := m.theme.Panel.Width(m.width - 2).Render(m.panel.View(m.state, m.theme))
	return lipgloss.JoinVertical(lipgloss.Left, panel, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.ShortHelpView(m.keys.ShortHelp())

	if m.lastError != nil {
		status = m.theme.Error.Render("Error: " + m.lastError.Error())
		if s := wberrors.GetSuggestion(m.lastError); s != "" {
			status += m.theme.Dim.Render("  " + s)
		}
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

func (m Model) renderHelp() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render("wavebar"),
		"",
		m.help.FullHelpView(m.keys.FullHelp()),
		"",
		m.theme.Dim.Render("Click or drag on the bar to seek. Press ? or Esc to close."),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.theme.HelpPanel.Render(body))
}

// Run starts polling player and runs the UI until the user quits or ctx
// is cancelled.
func Run(ctx context.Context, player core.Player, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	st := store.New(player, store.Options{
		Interval: opts.Interval,
		Analysis: opts.Waveform,
		Logger:   opts.Logger,
	})
	go func() { _ = st.Run(ctx) }()
	defer st.Stop()

	programOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.Mouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}

	_, err := tea.NewProgram(NewModel(player, st, opts), programOpts...).Run()
	return err
}
