package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/wavebar/internal/core"
	"github.com/tessro/wavebar/internal/progress"
	"github.com/tessro/wavebar/internal/spotify/client"
	"github.com/tessro/wavebar/internal/spotify/player"
	"github.com/tessro/wavebar/internal/tui/components"
	"github.com/tessro/wavebar/internal/tui/styles"
)

const defaultRenderDuration = 3 * time.Minute

var (
	renderWidth    int
	renderRows     int
	renderAt       string
	renderDuration string
	renderTheme    string
)

var renderCmd = &cobra.Command{
	Use:   "render [analysis.json]",
	Short: "Draw a progress bar to stdout",
	Long: `Draw a progress bar to stdout without contacting Spotify.

With an audio analysis file (as written by 'wavebar analysis --output', or
"-" for stdin) the bar is drawn as a loudness waveform. Without one, a flat
bar is drawn.

Examples:
  wavebar render --at 40%
  wavebar render song.json --at 1:30 --rows 3 --width 80`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 60, "Bar width in columns")
	renderCmd.Flags().IntVarP(&renderRows, "rows", "r", 0, "Bar height in rows (default from config)")
	renderCmd.Flags().StringVar(&renderAt, "at", "0", "Playback position: fraction, percentage or time")
	renderCmd.Flags().StringVar(&renderDuration, "duration", "", "Track length, e.g. 3:30 (default from the analysis)")
	renderCmd.Flags().StringVar(&renderTheme, "theme", "", "Theme name (default from config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	var (
		trace *core.AnalysisTrace
		total time.Duration
	)
	if len(args) == 1 {
		var err error
		trace, total, err = loadAnalysisFile(args[0], cmd.InOrStdin())
		if err != nil {
			return err
		}
	}

	if renderDuration != "" {
		d, err := parseLength(renderDuration)
		if err != nil {
			return err
		}
		total = d
	}
	if total <= 0 {
		total = defaultRenderDuration
	}

	pos, err := ParsePosition(renderAt, total)
	if err != nil {
		return err
	}

	state := &core.PlaybackState{
		Track:    &core.Track{Title: "render", Duration: total},
		Progress: &pos,
		Analysis: trace,
	}

	rows := cfg.UI.BarRows
	if renderRows > 0 {
		rows = renderRows
	}
	themeName := cfg.UI.Theme
	if renderTheme != "" {
		themeName = renderTheme
	}
	theme := styles.Load(themeName)

	out := cmd.OutOrStdout()
	if JSONOutput() {
		bounds := components.Raster{Cols: renderWidth, Rows: rows}.Bounds()
		return printJSON(out, map[string]any{
			"strategy":    progress.Select(state).Kind.String(),
			"segments":    trace.Len(),
			"position_ms": pos.Milliseconds(),
			"duration_ms": total.Milliseconds(),
			"bounds":      bounds,
			"fills":       progress.Render(bounds, state, theme.BarEnv()),
		})
	}

	lines := components.DrawBar(state, theme, renderWidth, rows, -1)
	_, _ = fmt.Fprintln(out, strings.Join(lines, "\n"))
	if Verbose() {
		_, _ = fmt.Fprintf(out, "%s / %s  %s\n", components.FormatDuration(pos), components.FormatDuration(total), progress.Select(state).Kind)
	}
	return nil
}

// loadAnalysisFile reads a Spotify audio analysis document from path, or
// from stdin for "-". It returns the trace and the track length it reports.
func loadAnalysisFile(path string, stdin io.Reader) (*core.AnalysisTrace, time.Duration, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read analysis: %w", err)
	}

	var a client.AudioAnalysis
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, 0, fmt.Errorf("failed to parse analysis: %w", err)
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	trace := player.ConvertAnalysis(id, &a)

	total := time.Duration(a.Track.Duration * float64(time.Second))
	if total <= 0 {
		total = trace.End()
	}
	return trace, total, nil
}

// parseLength parses a track length as m:ss, h:mm:ss or a Go duration.
func parseLength(s string) (time.Duration, error) {
	if strings.Contains(s, ":") {
		d, err := parseClock(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		return d, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}
