package tui

import "github.com/charmbracelet/bubbles/key"

// seekStep is how far the arrow keys move playback, as a fraction of the track.
const seekStep = 0.05

type keyMap struct {
	SeekBack    key.Binding
	SeekForward key.Binding
	PlayPause   key.Binding
	Next        key.Binding
	Prev        key.Binding
	Artist      key.Binding
	Album       key.Binding
	Waveform    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		SeekBack: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "back 5%"),
		),
		SeekForward: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "forward 5%"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "previous"),
		),
		Artist: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "open artist"),
		),
		Album: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "open album"),
		),
		Waveform: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "toggle waveform"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SeekBack, k.SeekForward, k.PlayPause, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SeekBack, k.SeekForward, k.PlayPause, k.Next, k.Prev},
		{k.Artist, k.Album, k.Waveform, k.Help, k.Quit},
	}
}
