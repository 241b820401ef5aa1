package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/core"
	"github.com/tessro/wavebar/internal/spotify/player"
	"github.com/tessro/wavebar/internal/tui/components"
	"github.com/tessro/wavebar/internal/tui/styles"
)

const previewWidth = 60

var analysisOutput string

var analysisCmd = &cobra.Command{
	Use:   "analysis [track-id]",
	Short: "Fetch the loudness analysis for a track",
	Long: `Fetch Spotify's audio analysis for a track and summarize it.

Without a track ID the current track is used. With --output the raw
analysis is saved as JSON for 'wavebar render'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalysis,
}

func init() {
	analysisCmd.Flags().StringVarP(&analysisOutput, "output", "o", "", "Write the raw analysis JSON to a file")
	rootCmd.AddCommand(analysisCmd)
}

func runAnalysis(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	p, c, err := getSpotifyPlayer()
	if err != nil {
		return err
	}

	trackID := ""
	if len(args) == 1 {
		trackID = args[0]
	} else if trackID, err = currentTrackID(ctx, p); err != nil {
		return err
	}
	trackID = strings.TrimPrefix(trackID, "spotify:track:")

	raw, err := c.GetAudioAnalysis(ctx, trackID)
	if err != nil {
		return err
	}
	trace := player.ConvertAnalysis(trackID, raw)
	total := time.Duration(raw.Track.Duration * float64(time.Second))

	if analysisOutput != "" {
		data, err := json.MarshalIndent(raw, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(analysisOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write analysis: %w", err)
		}
		logger.Info("saved analysis", "track", trackID, "path", analysisOutput)
	}

	lo, hi, _ := trace.LoudnessRange()
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return printJSON(out, map[string]any{
			"track_id":     trackID,
			"segments":     trace.Len(),
			"duration_ms":  total.Milliseconds(),
			"loudness_min": lo,
			"loudness_max": hi,
			"output":       analysisOutput,
		})
	}

	t := NewTable(out)
	t.Row("Track:", trackID)
	t.Row("Duration:", components.FormatDuration(total))
	t.Row("Segments:", count(trace.Len()))
	if trace.Len() > 0 {
		t.Row("Loudness:", decibels(lo)+" to "+decibels(hi))
	}
	if analysisOutput != "" {
		t.Row("Saved to:", analysisOutput)
	}
	t.Flush()

	if trace.Len() > 0 {
		zero := time.Duration(0)
		preview := &core.PlaybackState{
			Track:    &core.Track{ID: trackID, Duration: total},
			Progress: &zero,
			Analysis: trace,
		}
		_, _ = fmt.Fprintln(out)
		_, _ = fmt.Fprintln(out, strings.Join(components.DrawBar(preview, styles.Load(cfg.UI.Theme), previewWidth, 1, -1), "\n"))
	}
	return nil
}
