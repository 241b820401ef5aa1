package client

// User represents a Spotify user profile.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
	Product     string `json:"product"`
	URI         string `json:"uri"`
}

// IsPremium reports whether the account can control playback.
func (u *User) IsPremium() bool {
	return u.Product == "premium"
}

// Device represents a Spotify playback device.
type Device struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	IsActive     bool   `json:"is_active"`
	IsRestricted bool   `json:"is_restricted"`
}

// PlaybackState is the response of GET /me/player.
type PlaybackState struct {
	Device               Device `json:"device"`
	Timestamp            int64  `json:"timestamp"`
	ProgressMS           *int   `json:"progress_ms"`
	IsPlaying            bool   `json:"is_playing"`
	Item                 *Track `json:"item"`
	CurrentlyPlayingType string `json:"currently_playing_type"` // track, episode, ad, unknown
}

// Track represents a Spotify track.
type Track struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	URI        string   `json:"uri"`
	DurationMS int      `json:"duration_ms"`
	Artists    []Artist `json:"artists"`
	Album      *Album   `json:"album"`
}

// Artist represents a Spotify artist.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// Album represents a Spotify album.
type Album struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// AudioAnalysis is the response of GET /audio-analysis/{id}. Only the
// fields the waveform needs are decoded. Times are in seconds.
type AudioAnalysis struct {
	Track    AnalysisTrack     `json:"track"`
	Segments []AnalysisSegment `json:"segments"`
}

// AnalysisTrack carries track-level analysis values.
type AnalysisTrack struct {
	Duration float64 `json:"duration"`
	Loudness float64 `json:"loudness"`
}

// AnalysisSegment is one roughly-consistent sound in the track.
type AnalysisSegment struct {
	Start         float64 `json:"start"`
	Duration      float64 `json:"duration"`
	Confidence    float64 `json:"confidence"`
	LoudnessStart float64 `json:"loudness_start"`
	LoudnessMax   float64 `json:"loudness_max"`
}
