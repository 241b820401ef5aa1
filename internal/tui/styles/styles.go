package styles

import (
	"strings"

	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tessro/wavebar/internal/progress"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Background string
	Surface    string
	Border     string
	Text       string
	TextMuted  string
	TextDim    string
	Primary    string
	PrimaryLt  string
	Playing    string
	Paused     string
	Error      string
}

// Built-in palettes.
var (
	DarkPalette = Palette{
		Background: "#1F2937",
		Surface:    "#374151",
		Border:     "#4B5563",
		Text:       "#F9FAFB",
		TextMuted:  "#9CA3AF",
		TextDim:    "#6B7280",
		Primary:    "#7C3AED",
		PrimaryLt:  "#C4B5FD",
		Playing:    "#1DB954",
		Paused:     "#F59E0B",
		Error:      "#EF4444",
	}

	LightPalette = Palette{
		Background: "#F9FAFB",
		Surface:    "#E5E7EB",
		Border:     "#D1D5DB",
		Text:       "#111827",
		TextMuted:  "#4B5563",
		TextDim:    "#9CA3AF",
		Primary:    "#6D28D9",
		PrimaryLt:  "#A78BFA",
		Playing:    "#15803D",
		Paused:     "#B45309",
		Error:      "#B91C1C",
	}
)

// flavor is the part of a catppuccin flavor the themes use.
type flavor interface {
	Base() catppuccin.Color
	Surface0() catppuccin.Color
	Surface2() catppuccin.Color
	Overlay0() catppuccin.Color
	Text() catppuccin.Color
	Subtext0() catppuccin.Color
	Mauve() catppuccin.Color
	Lavender() catppuccin.Color
	Green() catppuccin.Color
	Peach() catppuccin.Color
	Red() catppuccin.Color
}

func catppuccinPalette(f flavor) Palette {
	return Palette{
		Background: f.Base().Hex,
		Surface:    f.Surface0().Hex,
		Border:     f.Surface2().Hex,
		Text:       f.Text().Hex,
		TextMuted:  f.Subtext0().Hex,
		TextDim:    f.Overlay0().Hex,
		Primary:    f.Mauve().Hex,
		PrimaryLt:  f.Lavender().Hex,
		Playing:    f.Green().Hex,
		Paused:     f.Peach().Hex,
		Error:      f.Red().Hex,
	}
}

// PaletteFor resolves a theme name. "auto" picks dark or light from the
// terminal background; unknown names fall back to dark.
func PaletteFor(name string, darkBackground bool) Palette {
	switch strings.ToLower(name) {
	case "light":
		return LightPalette
	case "latte":
		return catppuccinPalette(catppuccin.Latte)
	case "frappe":
		return catppuccinPalette(catppuccin.Frappe)
	case "macchiato":
		return catppuccinPalette(catppuccin.Macchiato)
	case "mocha":
		return catppuccinPalette(catppuccin.Mocha)
	case "auto":
		if !darkBackground {
			return LightPalette
		}
		return DarkPalette
	default:
		return DarkPalette
	}
}

// Theme holds the rendered styles for one palette.
type Theme struct {
	Palette Palette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Label     lipgloss.Style
	Link      lipgloss.Style
	LinkHover lipgloss.Style
	Muted     lipgloss.Style
	Dim       lipgloss.Style
	Highlight lipgloss.Style
	Playing   lipgloss.Style
	Paused    lipgloss.Style
	Error     lipgloss.Style
	Control   lipgloss.Style
	ControlHi lipgloss.Style

	Panel     lipgloss.Style
	HelpPanel lipgloss.Style
}

// New builds a theme from p.
func New(p Palette) Theme {
	c := func(hex string) lipgloss.Color { return lipgloss.Color(hex) }

	return Theme{
		Palette:   p,
		Title:     lipgloss.NewStyle().Bold(true).Foreground(c(p.Text)),
		Subtitle:  lipgloss.NewStyle().Foreground(c(p.TextMuted)),
		Label:     lipgloss.NewStyle().Foreground(c(p.TextDim)),
		Link:      lipgloss.NewStyle().Foreground(c(p.TextMuted)),
		LinkHover: lipgloss.NewStyle().Foreground(c(p.Primary)).Underline(true),
		Muted:     lipgloss.NewStyle().Foreground(c(p.TextMuted)),
		Dim:       lipgloss.NewStyle().Foreground(c(p.TextDim)),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(c(p.Primary)),
		Playing:   lipgloss.NewStyle().Foreground(c(p.Playing)),
		Paused:    lipgloss.NewStyle().Foreground(c(p.Paused)),
		Error:     lipgloss.NewStyle().Foreground(c(p.Error)),
		Control:   lipgloss.NewStyle().Foreground(c(p.TextMuted)),
		ControlHi: lipgloss.NewStyle().Bold(true).Foreground(c(p.Primary)),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Border)).
			Padding(0, 1),
		HelpPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c(p.Primary)).
			Padding(1, 2),
	}
}

// Load resolves name and builds its theme.
func Load(name string) Theme {
	return New(PaletteFor(name, lipgloss.HasDarkBackground()))
}

// BarEnv returns the progress bar colors for the theme.
func (t Theme) BarEnv() progress.Env {
	return progress.Env{
		PrimaryDark:  progress.Hex(t.Palette.Primary),
		PrimaryLight: progress.Hex(t.Palette.PrimaryLt),
		Elapsed:      progress.Hex(t.Palette.Text),
		Remaining:    progress.Hex(t.Palette.TextDim),
	}
}

// BarBackground is the color translucent bar fills are composited onto.
func (t Theme) BarBackground() colorful.Color {
	return progress.Hex(t.Palette.Background).RGB
}

// StatusIcon returns an icon for playback status.
func (t Theme) StatusIcon(playing bool) string {
	if playing {
		return t.Playing.Render("▶")
	}
	return t.Paused.Render("⏸")
}
