package core

import (
	"context"
	"time"
)

// Player defines the playback engine the bar drives.
type Player interface {
	// Playback control
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error
	Seek(ctx context.Context, position time.Duration) error

	// State queries
	GetState(ctx context.Context) (*PlaybackState, error)
	GetAnalysis(ctx context.Context, trackID string) (*AnalysisTrace, error)
}

// Command is a transport command emitted by the playback controls.
type Command int

const (
	CommandPrevious Command = iota
	CommandPlay
	CommandPause
	CommandResume
	CommandNext
)

func (c Command) String() string {
	switch c {
	case CommandPrevious:
		return "previous"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandResume:
		return "resume"
	case CommandNext:
		return "next"
	default:
		return "unknown"
	}
}

// Dispatch applies a transport command to a player.
func Dispatch(ctx context.Context, p Player, cmd Command) error {
	switch cmd {
	case CommandPrevious:
		return p.Prev(ctx)
	case CommandPause:
		return p.Pause(ctx)
	case CommandPlay, CommandResume:
		return p.Play(ctx)
	case CommandNext:
		return p.Next(ctx)
	}
	return nil
}

// NavKind selects what a navigation request points at.
type NavKind int

const (
	NavArtist NavKind = iota
	NavAlbum
)

// NavTarget is a request to show an artist or album.
type NavTarget struct {
	Kind NavKind
	ID   string
}

// NavArtistTarget returns a navigation target for the track's first artist.
func NavArtistTarget(t *Track) (NavTarget, bool) {
	a := t.FirstArtist()
	if a == nil || a.ID == "" {
		return NavTarget{}, false
	}
	return NavTarget{Kind: NavArtist, ID: a.ID}, true
}

// NavAlbumTarget returns a navigation target for the track's album.
func NavAlbumTarget(t *Track) (NavTarget, bool) {
	if t == nil || t.Album == nil || t.Album.ID == "" {
		return NavTarget{}, false
	}
	return NavTarget{Kind: NavAlbum, ID: t.Album.ID}, true
}
