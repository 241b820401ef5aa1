package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/core"
	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/tui/components"
)

var seekCmd = &cobra.Command{
	Use:   "seek <position>",
	Short: "Seek within the current track",
	Long: `Seek within the current track.

The position can be a fraction of the track, a percentage, a time, or a
Go duration:
  wavebar seek 0.5      # halfway
  wavebar seek 25%      # a quarter in
  wavebar seek 1:30     # one and a half minutes in
  wavebar seek 90s      # same`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return seekTo(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(seekCmd)
}

func seekTo(cmd *cobra.Command, arg string) error {
	ctx := cmd.Context()
	p, _, err := getSpotifyPlayer()
	if err != nil {
		return err
	}

	state, err := p.GetState(ctx)
	if err != nil {
		return err
	}
	if !state.HasTrack() {
		return wberrors.ErrNoTrack
	}

	total := state.Total()
	pos, err := ParsePosition(arg, total)
	if err != nil {
		return err
	}
	if err := p.Seek(ctx, pos); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	logger.Debug("seek", "track", state.Track.ID, "position", pos)

	if JSONOutput() {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"track_id":    state.Track.ID,
			"position_ms": pos.Milliseconds(),
			"duration_ms": total.Milliseconds(),
		})
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Seeked to %s / %s\n", components.FormatDuration(pos), components.FormatDuration(total))
	return nil
}

// ParsePosition resolves a seek argument against a track of length total.
// Fractions and percentages are clamped to the track; times past the end
// land on the end.
func ParsePosition(arg string, total time.Duration) (time.Duration, error) {
	arg = strings.TrimSpace(arg)
	invalid := fmt.Errorf("%w: %q", wberrors.ErrInvalidPosition, arg)

	switch {
	case arg == "":
		return 0, invalid

	case strings.HasSuffix(arg, "%"):
		pct, err := strconv.ParseFloat(strings.TrimSuffix(arg, "%"), 64)
		if err != nil || pct < 0 || math.IsNaN(pct) {
			return 0, invalid
		}
		return core.PositionForFraction(total, pct/100), nil

	case strings.Contains(arg, ":"):
		d, err := parseClock(arg)
		if err != nil {
			return 0, invalid
		}
		return min(d, total), nil
	}

	if f, err := strconv.ParseFloat(arg, 64); err == nil {
		if f < 0 || f > 1 || math.IsNaN(f) {
			return 0, invalid
		}
		return core.PositionForFraction(total, f), nil
	}

	d, err := time.ParseDuration(arg)
	if err != nil || d < 0 {
		return 0, invalid
	}
	return min(d, total), nil
}

// parseClock parses m:ss or h:mm:ss.
func parseClock(s string) (time.Duration, error) {
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0, fmt.Errorf("too many fields")
	}

	var d time.Duration
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("bad field %q", p)
		}
		if i > 0 && n >= 60 {
			return 0, fmt.Errorf("field %q out of range", p)
		}
		d = d*60 + time.Duration(n)
	}
	return d * time.Second, nil
}
