// Package tail formats playback updates as log lines.
package tail

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/tessro/wavebar/internal/store"
	"github.com/tessro/wavebar/internal/tui/components"
)

// Formatter formats store updates for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{
		showEmoji: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetTemplate sets a custom text/template format. Fields are those of
// TemplateData.
func (f *Formatter) SetTemplate(tmpl string) error {
	if tmpl == "" {
		f.template = nil
		return nil
	}
	t, err := template.New("format").Parse(tmpl)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	f.template = t
	return nil
}

// Format formats an update as one line.
func (f *Formatter) Format(u store.Update) string {
	if f.template != nil {
		return f.formatTemplate(u)
	}
	return f.formatLine(u)
}

func (f *Formatter) formatLine(u store.Update) string {
	var parts []string

	if f.showTimestamp {
		parts = append(parts, u.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, changeEmoji(u.Changes))
	}
	parts = append(parts, describe(u))

	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(u store.Update) string {
	var buf bytes.Buffer
	if err := f.template.Execute(&buf, NewTemplateData(u)); err != nil {
		return f.formatLine(u)
	}
	return buf.String()
}

// TemplateData is what custom format templates see.
type TemplateData struct {
	Changes   string
	Emoji     string
	Timestamp time.Time
	Time      string
	Title     string
	Artist    string
	Album     string
	Position  string
	Duration  string
	Waveform  bool
}

// NewTemplateData flattens an update for templates.
func NewTemplateData(u store.Update) TemplateData {
	data := TemplateData{
		Changes:   u.Changes.String(),
		Emoji:     changeEmoji(u.Changes),
		Timestamp: u.Timestamp,
		Time:      u.Timestamp.Format("15:04:05"),
	}
	if s := u.Current; s.HasTrack() {
		data.Title = s.Track.Title
		data.Artist = s.Track.ArtistName()
		data.Album = s.Track.AlbumName()
		data.Position = components.FormatDuration(s.Elapsed())
		data.Duration = components.FormatDuration(s.Total())
		data.Waveform = s.Analysis != nil
	}
	return data
}

// describe returns a human-readable description of the update. Track
// changes win over the other changes they imply.
func describe(u store.Update) string {
	curr := u.Current
	switch {
	case u.Changes.Has(store.ChangeTrack):
		if curr.HasTrack() {
			return fmt.Sprintf("Now playing: %s - %s", curr.Track.ArtistName(), curr.Track.Title)
		}
		return "Stopped"

	case u.Changes.Has(store.ChangeSeek):
		return fmt.Sprintf("Seeked to %s / %s",
			components.FormatDuration(curr.Elapsed()),
			components.FormatDuration(curr.Total()))

	case u.Changes.Has(store.ChangePause):
		return "Paused at " + components.FormatDuration(curr.Elapsed())

	case u.Changes.Has(store.ChangeResume):
		return "Resumed"

	case u.Changes.Has(store.ChangeAnalysis):
		if curr.HasTrack() && curr.Analysis != nil {
			return fmt.Sprintf("Waveform ready (%d segments)", curr.Analysis.Len())
		}
		return "Waveform unavailable"

	default:
		return fmt.Sprintf("%s / %s", components.FormatDuration(curr.Elapsed()), components.FormatDuration(curr.Total()))
	}
}

func changeEmoji(c store.Change) string {
	switch {
	case c.Has(store.ChangeTrack):
		return "🎵"
	case c.Has(store.ChangeSeek):
		return "⏩"
	case c.Has(store.ChangePause):
		return "⏸️"
	case c.Has(store.ChangeResume):
		return "▶️"
	case c.Has(store.ChangeAnalysis):
		return "〰️"
	default:
		return "·"
	}
}
