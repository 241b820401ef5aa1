package player

import (
	"context"
	"errors"
	"math"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tessro/wavebar/internal/core"
	wberrors "github.com/tessro/wavebar/internal/errors"
	"github.com/tessro/wavebar/internal/spotify/client"
)

// DefaultCacheSize is the number of analysis traces kept in memory.
const DefaultCacheSize = 32

// API is the subset of the Spotify client the player uses.
type API interface {
	Play(ctx context.Context, deviceID string) error
	Pause(ctx context.Context, deviceID string) error
	Next(ctx context.Context, deviceID string) error
	Previous(ctx context.Context, deviceID string) error
	Seek(ctx context.Context, positionMs int, deviceID string) error
	GetPlaybackState(ctx context.Context) (*client.PlaybackState, error)
	GetAudioAnalysis(ctx context.Context, trackID string) (*client.AudioAnalysis, error)
}

// Player implements core.Player for Spotify.
type Player struct {
	api      API
	deviceID string

	// analyses holds converted traces by track ID. A nil value records a
	// track Spotify has no analysis for, so it is not fetched again.
	analyses *lru.Cache[string, *core.AnalysisTrace]
}

// New creates a new Spotify player caching up to cacheSize analyses.
func New(api API, cacheSize int) *Player {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, *core.AnalysisTrace](cacheSize)
	if err != nil {
		panic(err) // only fails for size <= 0
	}
	return &Player{api: api, analyses: cache}
}

// SetDevice sets the target device for playback commands.
func (p *Player) SetDevice(deviceID string) {
	p.deviceID = deviceID
}

// Play starts or resumes playback.
func (p *Player) Play(ctx context.Context) error {
	err := p.api.Play(ctx, p.deviceID)
	if client.IsRestrictionError(err) {
		// Already playing.
		return nil
	}
	return err
}

// Pause pauses playback.
func (p *Player) Pause(ctx context.Context) error {
	return p.api.Pause(ctx, p.deviceID)
}

// Next skips to the next track.
func (p *Player) Next(ctx context.Context) error {
	return p.api.Next(ctx, p.deviceID)
}

// Prev skips to the previous track.
func (p *Player) Prev(ctx context.Context) error {
	return p.api.Previous(ctx, p.deviceID)
}

// Seek moves playback to position in the current track.
func (p *Player) Seek(ctx context.Context, position time.Duration) error {
	if position < 0 {
		return wberrors.ErrInvalidPosition
	}
	return p.api.Seek(ctx, int(position.Milliseconds()), p.deviceID)
}

// GetState returns the current playback state. The analysis is not
// attached; callers that want it use GetAnalysis.
func (p *Player) GetState(ctx context.Context) (*core.PlaybackState, error) {
	state, err := p.api.GetPlaybackState(ctx)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return &core.PlaybackState{}, nil
	}

	coreState := &core.PlaybackState{
		IsPlaying: state.IsPlaying,
		Track:     convertTrack(state.Item),
	}
	if state.ProgressMS != nil {
		progress := time.Duration(*state.ProgressMS) * time.Millisecond
		coreState.Progress = &progress
	}
	return coreState, nil
}

// GetAnalysis returns the loudness trace for trackID, fetching it once and
// serving repeats from the cache.
func (p *Player) GetAnalysis(ctx context.Context, trackID string) (*core.AnalysisTrace, error) {
	if trace, ok := p.analyses.Get(trackID); ok {
		if trace == nil {
			return nil, wberrors.ErrAnalysisUnavailable
		}
		return trace, nil
	}

	analysis, err := p.api.GetAudioAnalysis(ctx, trackID)
	if err != nil {
		if errors.Is(err, wberrors.ErrAnalysisUnavailable) {
			p.analyses.Add(trackID, nil)
		}
		return nil, err
	}

	trace := ConvertAnalysis(trackID, analysis)
	p.analyses.Add(trackID, trace)
	return trace, nil
}

// CachedAnalyses returns how many analyses are cached.
func (p *Player) CachedAnalyses() int {
	return p.analyses.Len()
}

// convertTrack converts a Spotify track to a core track.
func convertTrack(t *client.Track) *core.Track {
	if t == nil {
		return nil
	}

	artists := make([]core.ArtistRef, len(t.Artists))
	for i, a := range t.Artists {
		artists[i] = core.ArtistRef{ID: a.ID, Name: a.Name}
	}

	track := &core.Track{
		ID:       t.ID,
		URI:      t.URI,
		Title:    t.Name,
		Artists:  artists,
		Duration: time.Duration(t.DurationMS) * time.Millisecond,
	}
	if t.Album != nil {
		track.Album = &core.AlbumRef{ID: t.Album.ID, Name: t.Album.Name}
	}
	return track
}

// ConvertAnalysis turns second-based segments into a trace, dropping
// segments with non-finite values.
func ConvertAnalysis(trackID string, a *client.AudioAnalysis) *core.AnalysisTrace {
	if a == nil {
		return &core.AnalysisTrace{TrackID: trackID}
	}
	trace := &core.AnalysisTrace{
		TrackID:  trackID,
		Segments: make([]core.Segment, 0, len(a.Segments)),
	}
	for _, s := range a.Segments {
		if !finite(s.Start) || !finite(s.Duration) || !finite(s.LoudnessMax) {
			continue
		}
		trace.Segments = append(trace.Segments, core.Segment{
			Start:       seconds(s.Start),
			Duration:    seconds(s.Duration),
			LoudnessMax: s.LoudnessMax,
		})
	}
	return trace
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Ensure Player implements core.Player
var _ core.Player = (*Player)(nil)
