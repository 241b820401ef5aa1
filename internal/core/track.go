package core

import "time"

// ArtistRef identifies an artist credited on a track.
type ArtistRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AlbumRef identifies the album a track belongs to.
type AlbumRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Track represents a playable audio track.
type Track struct {
	ID       string        `json:"id"`
	URI      string        `json:"uri"`
	Title    string        `json:"title"`
	Artists  []ArtistRef   `json:"artists"`
	Album    *AlbumRef     `json:"album,omitempty"`
	Duration time.Duration `json:"duration"`
}

// ArtistName returns the credited artists joined for display.
func (t *Track) ArtistName() string {
	if t == nil {
		return ""
	}
	name := ""
	for i, a := range t.Artists {
		if i > 0 {
			name += ", "
		}
		name += a.Name
	}
	return name
}

// AlbumName returns the album name, or "" if the track has no album.
func (t *Track) AlbumName() string {
	if t == nil || t.Album == nil {
		return ""
	}
	return t.Album.Name
}

// FirstArtist returns the primary artist, or nil if none is credited.
func (t *Track) FirstArtist() *ArtistRef {
	if t == nil || len(t.Artists) == 0 {
		return nil
	}
	return &t.Artists[0]
}
