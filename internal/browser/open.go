// Package browser opens URLs in the user's default browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/tessro/wavebar/internal/core"
)

// WebPlayerURL is the base of Spotify's web player links.
const WebPlayerURL = "https://open.spotify.com"

// Opener launches a URL. It is swapped out in tests.
type Opener func(url string) error

// Open opens url with the platform's default handler.
func Open(url string) error {
	cmd, err := command(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	// The handler detaches; reap it so it does not linger as a zombie.
	go func() { _ = cmd.Wait() }()
	return nil
}

func command(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}

// NavigationURL returns the web player page for an artist or album.
func NavigationURL(target core.NavTarget) string {
	kind := "artist"
	if target.Kind == core.NavAlbum {
		kind = "album"
	}
	return fmt.Sprintf("%s/%s/%s", WebPlayerURL, kind, target.ID)
}

// Navigate opens the page for target using open.
func Navigate(open Opener, target core.NavTarget) error {
	if target.ID == "" {
		return fmt.Errorf("navigation target has no id")
	}
	if open == nil {
		open = Open
	}
	return open(NavigationURL(target))
}
