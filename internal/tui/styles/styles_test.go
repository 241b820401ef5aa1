package styles

import (
	"strings"
	"testing"

	catppuccin "github.com/catppuccin/go"
	"github.com/lucasb-eyer/go-colorful"
)

func TestPaletteFor(t *testing.T) {
	tests := []struct {
		name string
		dark bool
		want string
	}{
		{"dark", false, DarkPalette.Background},
		{"light", true, LightPalette.Background},
		{"auto", true, DarkPalette.Background},
		{"auto", false, LightPalette.Background},
		{"Mocha", true, catppuccin.Mocha.Base().Hex},
		{"latte", true, catppuccin.Latte.Base().Hex},
		{"frappe", true, catppuccin.Frappe.Base().Hex},
		{"macchiato", true, catppuccin.Macchiato.Base().Hex},
		{"nonsense", false, DarkPalette.Background},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PaletteFor(tt.name, tt.dark).Background; got != tt.want {
				t.Errorf("PaletteFor(%q, %v).Background = %q, want %q", tt.name, tt.dark, got, tt.want)
			}
		})
	}
}

func TestPalettesAreValidHex(t *testing.T) {
	for _, name := range []string{"dark", "light", "latte", "frappe", "macchiato", "mocha"} {
		p := PaletteFor(name, true)
		for _, hex := range []string{p.Background, p.Surface, p.Border, p.Text, p.TextMuted, p.TextDim, p.Primary, p.PrimaryLt, p.Playing, p.Paused, p.Error} {
			if _, err := colorful.Hex(hex); err != nil {
				t.Errorf("%s: %q is not a hex color: %v", name, hex, err)
			}
		}
	}
}

func TestBarEnv(t *testing.T) {
	theme := New(DarkPalette)
	env := theme.BarEnv()

	if env.PrimaryDark.RGB.Hex() != strings.ToLower(DarkPalette.Primary) {
		t.Errorf("PrimaryDark = %s, want %s", env.PrimaryDark.RGB.Hex(), DarkPalette.Primary)
	}
	if env.Elapsed.Alpha != 1 || env.Remaining.Alpha != 1 {
		t.Error("bar colors should be opaque")
	}
	if theme.BarBackground().Hex() != strings.ToLower(DarkPalette.Background) {
		t.Errorf("BarBackground = %s", theme.BarBackground().Hex())
	}
}

func TestStatusIcon(t *testing.T) {
	theme := New(DarkPalette)
	if !strings.Contains(theme.StatusIcon(true), "▶") {
		t.Error("playing icon missing")
	}
	if !strings.Contains(theme.StatusIcon(false), "⏸") {
		t.Error("paused icon missing")
	}
}
