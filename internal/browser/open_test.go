package browser

import (
	"runtime"
	"testing"

	"github.com/tessro/wavebar/internal/core"
)

func TestCommandSupported(t *testing.T) {
	switch runtime.GOOS {
	case "darwin", "linux", "windows":
	default:
		t.Skipf("Unsupported platform: %s", runtime.GOOS)
	}

	cmd, err := command(runtime.GOOS, "https://example.com")
	if err != nil {
		t.Fatalf("command() error = %v", err)
	}
	if got := cmd.Args[len(cmd.Args)-1]; got != "https://example.com" {
		t.Errorf("last arg = %q, want the url", got)
	}
}

func TestCommandUnsupported(t *testing.T) {
	if _, err := command("plan9", "https://example.com"); err == nil {
		t.Error("command(plan9) should fail")
	}
}

func TestNavigationURL(t *testing.T) {
	tests := []struct {
		target core.NavTarget
		want   string
	}{
		{core.NavTarget{Kind: core.NavArtist, ID: "0OdUWJ0sBjDrqHygGUXeCF"}, "https://open.spotify.com/artist/0OdUWJ0sBjDrqHygGUXeCF"},
		{core.NavTarget{Kind: core.NavAlbum, ID: "4aawyAB9vmqN3uQ7FjRGTy"}, "https://open.spotify.com/album/4aawyAB9vmqN3uQ7FjRGTy"},
	}
	for _, tt := range tests {
		if got := NavigationURL(tt.target); got != tt.want {
			t.Errorf("NavigationURL(%+v) = %q, want %q", tt.target, got, tt.want)
		}
	}
}

func TestNavigate(t *testing.T) {
	var opened string
	open := func(url string) error {
		opened = url
		return nil
	}

	if err := Navigate(open, core.NavTarget{Kind: core.NavAlbum, ID: "x"}); err != nil {
		t.Fatalf("Navigate() error = %v", err)
	}
	if opened != "https://open.spotify.com/album/x" {
		t.Errorf("opened %q", opened)
	}

	if err := Navigate(open, core.NavTarget{Kind: core.NavArtist}); err == nil {
		t.Error("Navigate() with empty id should fail")
	}
}
