package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/browser"
	"github.com/tessro/wavebar/internal/tui"
	"github.com/tessro/wavebar/internal/tui/styles"
)

var (
	tuiRefresh    int
	tuiRows       int
	tuiNoWaveform bool
	tuiNoMouse    bool
)

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Open the interactive playback bar",
	Long: `Open the interactive playback bar.

Shows the current track with a progress bar. When Spotify has an audio
analysis for the track the bar is a loudness waveform, otherwise a flat bar.

Mouse:
  Click or drag on the bar    Seek (on release)
  Click artist or album       Open it in the web player
  Click ⏮ ⏯ ⏭                 Previous, play/pause, next

Keyboard shortcuts:
  ←/→          Seek back/forward 5%
  Space        Play/Pause
  n, p         Next, previous track
  a, l         Open artist, album
  w            Toggle waveform
  ?            Help
  q, Ctrl+C    Quit`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "Refresh interval in milliseconds (default from config)")
	tuiCmd.Flags().IntVar(&tuiRows, "rows", 0, "Bar height in rows (default from config)")
	tuiCmd.Flags().BoolVar(&tuiNoWaveform, "no-waveform", false, "Always draw a flat bar")
	tuiCmd.Flags().BoolVar(&tuiNoMouse, "no-mouse", false, "Disable mouse input")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	p, _, err := getSpotifyPlayer()
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), p, tuiOptions())
}

// tuiOptions merges the ui flags over the config.
func tuiOptions() tui.Options {
	interval := cfg.UI.Refresh()
	if tuiRefresh > 0 {
		interval = time.Duration(tuiRefresh) * time.Millisecond
	}
	rows := cfg.UI.BarRows
	if tuiRows > 0 {
		rows = tuiRows
	}

	return tui.Options{
		Theme:    styles.Load(cfg.UI.Theme),
		Interval: interval,
		BarRows:  rows,
		Waveform: cfg.UI.WaveformEnabled() && !tuiNoWaveform,
		Mouse:    cfg.UI.MouseEnabled() && !tuiNoMouse,
		Open:     browser.Open,
		Logger:   logger,
	}
}
