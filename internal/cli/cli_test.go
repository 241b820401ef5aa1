package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tessro/wavebar/internal/config"
	"github.com/tessro/wavebar/internal/core"
	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/store"
	"github.com/tessro/wavebar/internal/tail"
)

// execute runs the root command with args against an empty home directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, k := range []string{"WAVEBAR_SPOTIFY_CLIENT_ID", "WAVEBAR_UI_THEME", "WAVEBAR_LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfgFile, jsonOut, verbose = "", false, false
	renderWidth, renderRows, renderAt, renderDuration, renderTheme = 60, 0, "0", "", ""
	configInitDefaults, configInitForce = false, false
	watchFormat, watchTicks, watchNoEmoji, watchTimestamp = "", false, false, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParsePosition(t *testing.T) {
	total := 3 * time.Minute
	tests := []struct {
		arg     string
		want    time.Duration
		wantErr bool
	}{
		{"0", 0, false},
		{"0.5", 90 * time.Second, false},
		{"1", total, false},
		{"25%", 45 * time.Second, false},
		{"150%", total, false},
		{"1:30", 90 * time.Second, false},
		{"0:00:10", 10 * time.Second, false},
		{"9:00", total, false},
		{"90s", 90 * time.Second, false},
		{" 0.25 ", 45 * time.Second, false},
		{"", 0, true},
		{"2", 0, true},
		{"-0.5", 0, true},
		{"-5%", 0, true},
		{"1:75", 0, true},
		{"1:2:3:4", 0, true},
		{"abc", 0, true},
		{"-3s", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParsePosition(tt.arg, total)
			if tt.wantErr {
				if !errors.Is(err, wberrors.ErrInvalidPosition) {
					t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidPosition", tt.arg, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePosition(%q) error = %v", tt.arg, err)
			}
			if got != tt.want {
				t.Errorf("ParsePosition(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"3:30", 210 * time.Second, false},
		{"1:00:00", time.Hour, false},
		{"2m", 2 * time.Minute, false},
		{"0s", 0, true},
		{"soon", 0, true},
	}
	for _, tt := range tests {
		got, err := parseLength(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLength(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseLength(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

const twoSegments = `{
  "track": {"duration": 2.0, "loudness": -12},
  "segments": [
    {"start": 0, "duration": 1, "loudness_max": -30},
    {"start": 1, "duration": 1, "loudness_max": -10}
  ]
}`

func TestLoadAnalysisFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc123.json")
	if err := os.WriteFile(path, []byte(twoSegments), 0600); err != nil {
		t.Fatal(err)
	}

	trace, total, err := loadAnalysisFile(path, nil)
	if err != nil {
		t.Fatalf("loadAnalysisFile() error = %v", err)
	}
	if trace.TrackID != "abc123" || trace.Len() != 2 {
		t.Errorf("trace = %+v", trace)
	}
	if total != 2*time.Second {
		t.Errorf("total = %v, want 2s", total)
	}

	trace, _, err = loadAnalysisFile("-", strings.NewReader(twoSegments))
	if err != nil || trace.Len() != 2 {
		t.Errorf("stdin: trace = %+v, err = %v", trace, err)
	}

	if _, _, err := loadAnalysisFile("-", strings.NewReader("{")); err == nil {
		t.Error("expected a parse error")
	}
}

func TestRenderFlat(t *testing.T) {
	out, err := execute(t, "render", "--at", "50%", "--width", "10", "--rows", "1")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if got := strings.TrimRight(out, "\n"); got != strings.Repeat("━", 10) {
		t.Errorf("render = %q", got)
	}
}

func TestRenderWaveform(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.json")
	if err := os.WriteFile(path, []byte(twoSegments), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "render", path, "--width", "2", "--rows", "1")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}
	if got := strings.TrimRight(out, "\n"); got != " █" {
		t.Errorf("render = %q, want %q", got, " █")
	}
}

func TestRenderJSON(t *testing.T) {
	out, err := execute(t, "render", "--json", "--at", "1:00", "--duration", "4:00", "--width", "8")
	if err != nil {
		t.Fatalf("render error = %v", err)
	}

	var got struct {
		Strategy   string `json:"strategy"`
		PositionMS int64  `json:"position_ms"`
		DurationMS int64  `json:"duration_ms"`
		Fills      []any  `json:"fills"`
	}
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if got.Strategy != "flat" || got.PositionMS != 60000 || got.DurationMS != 240000 {
		t.Errorf("got %+v", got)
	}
	if len(got.Fills) != 2 {
		t.Errorf("got %d fills, want 2", len(got.Fills))
	}
}

func TestRenderBadPosition(t *testing.T) {
	if _, err := execute(t, "render", "--at", "later"); !errors.Is(err, wberrors.ErrInvalidPosition) {
		t.Errorf("error = %v, want ErrInvalidPosition", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "wavebar "+Version) {
		t.Errorf("version = %q", out)
	}
}

func TestConfigInitAndSet(t *testing.T) {
	out, err := execute(t, "config", "init", "--defaults")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	path := filepath.Join(os.Getenv("HOME"), config.FileName)
	if !strings.Contains(out, path) {
		t.Errorf("output should name %s:\n%s", path, out)
	}

	// Same home: run the commands directly rather than through execute.
	rootCmd.SetArgs([]string{"config", "init", "--defaults"})
	if err := rootCmd.ExecuteContext(context.Background()); err == nil {
		t.Error("second init should refuse to overwrite")
	}

	rootCmd.SetArgs([]string{"config", "set", "ui.theme", "mocha"})
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("config set error = %v", err)
	}
	cfg, err := config.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "mocha" {
		t.Errorf("Theme = %q, want mocha", cfg.UI.Theme)
	}

	rootCmd.SetArgs([]string{"config", "set", "ui.theme", "neon"})
	if err := rootCmd.ExecuteContext(context.Background()); err == nil {
		t.Error("invalid theme should be rejected")
	}
}

func TestConfigPath(t *testing.T) {
	out, err := execute(t, "config", "path")
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(os.Getenv("HOME"), config.FileName)
	if strings.TrimSpace(out) != want {
		t.Errorf("config path = %q, want %q", out, want)
	}
}

func TestCommandsNeedClientID(t *testing.T) {
	for _, args := range [][]string{{"seek", "0.5"}, {"pause"}, {"analysis"}, {"ui"}, {"watch"}} {
		if _, err := execute(t, args...); !errors.Is(err, wberrors.ErrNotConfigured) {
			t.Errorf("%v: error = %v, want ErrNotConfigured", args, err)
		}
	}
}

func TestWatchBadFormat(t *testing.T) {
	_, err := execute(t, "watch", "--format", "{{.Title")
	if err == nil || !strings.Contains(err.Error(), "invalid format template") {
		t.Errorf("error = %v, want template error", err)
	}
}

func TestPrintUpdates(t *testing.T) {
	pos := 10 * time.Second
	state := &core.PlaybackState{
		Track:     &core.Track{ID: "t1", Title: "Song", Artists: []core.ArtistRef{{Name: "Artist"}}, Duration: time.Minute},
		Progress:  &pos,
		IsPlaying: true,
	}
	feed := func() <-chan store.Update {
		ch := make(chan store.Update, 3)
		ch <- store.Update{Changes: store.ChangeTrack, Current: state}
		ch <- store.Update{Current: state}
		ch <- store.Update{Changes: store.ChangePause, Current: state}
		close(ch)
		return ch
	}
	f := tail.NewFormatter(tail.WithEmoji(false))

	var out bytes.Buffer
	printUpdates(&out, feed(), f, false, false)
	want := "Now playing: Artist - Song\nPaused at 0:10\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	printUpdates(&out, feed(), f, true, false)
	if n := strings.Count(out.String(), "\n"); n != 3 {
		t.Errorf("with ticks got %d lines, want 3", n)
	}

	out.Reset()
	printUpdates(&out, feed(), f, false, true)
	dec := json.NewDecoder(&out)
	var first tail.TemplateData
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if first.Title != "Song" || first.Changes != "track" {
		t.Errorf("first = %+v", first)
	}
}
