// Command wavebar shows Spotify playback as a seekable loudness waveform.
package main

import "github.com/tessro/wavebar/internal/cli"

func main() {
	cli.Execute()
}
