package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/store"
	"github.com/tessro/wavebar/internal/tail"
)

var (
	watchNoEmoji   bool
	watchTimestamp bool
	watchFormat    string
	watchInterval  time.Duration
	watchTicks     bool
	watchWaveform  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow playback changes",
	Long: `Poll Spotify and print a line whenever playback changes.

Changes reported:
  - Track changes
  - Pause/Resume
  - Seeks (position jumps)
  - Waveform availability (with --waveform)

The --format flag takes a Go template. Fields: .Changes .Emoji .Time
.Timestamp .Title .Artist .Album .Position .Duration .Waveform

Examples:
  wavebar watch -t
  wavebar watch --format '{{.Time}} {{.Artist}} - {{.Title}}'`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoEmoji, "no-emoji", false, "Disable emoji output")
	watchCmd.Flags().BoolVarP(&watchTimestamp, "timestamp", "t", false, "Show timestamps")
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "", "Custom format template")
	watchCmd.Flags().DurationVarP(&watchInterval, "interval", "i", 0, "Poll interval (default from config)")
	watchCmd.Flags().BoolVar(&watchTicks, "ticks", false, "Also print polls with no changes")
	watchCmd.Flags().BoolVar(&watchWaveform, "waveform", false, "Fetch the audio analysis for each track")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	formatter := tail.NewFormatter(
		tail.WithEmoji(!watchNoEmoji),
		tail.WithTimestamp(watchTimestamp),
	)
	if err := formatter.SetTemplate(watchFormat); err != nil {
		return err
	}

	p, _, err := getSpotifyPlayer()
	if err != nil {
		return err
	}

	interval := cfg.UI.Refresh()
	if watchInterval > 0 {
		interval = watchInterval
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	st := store.New(p, store.Options{
		Interval: interval,
		Analysis: watchWaveform,
		Logger:   logger,
	})
	errCh := make(chan error, 1)
	go func() { errCh <- st.Run(ctx) }()

	printUpdates(cmd.OutOrStdout(), st.Updates(), formatter, watchTicks, JSONOutput())

	if err := <-errCh; err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// printUpdates writes one line per update until updates is closed.
// Updates with no changes are skipped unless ticks is set.
func printUpdates(out io.Writer, updates <-chan store.Update, f *tail.Formatter, ticks, asJSON bool) {
	enc := json.NewEncoder(out)
	for u := range updates {
		if u.Changes == 0 && !ticks {
			continue
		}
		if asJSON {
			_ = enc.Encode(tail.NewTemplateData(u))
			continue
		}
		_, _ = fmt.Fprintln(out, f.Format(u))
	}
}
