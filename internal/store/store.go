// Package store polls the player and publishes playback snapshots.
package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/tessro/wavebar/internal/core"
	wberrors "github.com/tessro/wavebar/internal/errors"
)

// DefaultInterval is the polling interval when none is configured.
const DefaultInterval = time.Second

// Update is published for every poll that produced a snapshot.
type Update struct {
	Timestamp time.Time
	Changes   Change
	Previous  *core.PlaybackState
	Current   *core.PlaybackState
}

// Options configures a Store.
type Options struct {
	Interval time.Duration
	// Analysis enables fetching the loudness trace for each new track.
	Analysis bool
	Logger   *slog.Logger
}

// Store polls a player and keeps the latest snapshot. Snapshots are
// replaced wholesale and never mutated after publication.
type Store struct {
	player   core.Player
	interval time.Duration
	analysis bool
	logger   *slog.Logger

	updates chan Update
	refresh chan struct{}
	done    chan struct{}
	stop    sync.Once

	mu       sync.RWMutex
	current  *core.PlaybackState
	polledAt time.Time
	trace    *core.AnalysisTrace
	tried    string // track whose analysis was last requested
}

// New creates a store for player.
func New(player core.Player, opts Options) *Store {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		player:   player,
		interval: opts.Interval,
		analysis: opts.Analysis,
		logger:   opts.Logger.With("component", "store"),
		updates:  make(chan Update, 1),
		refresh:  make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
}

// Updates returns the channel of snapshot updates. Only the newest pending
// update is kept; a slow reader skips intermediate snapshots.
func (s *Store) Updates() <-chan Update {
	return s.updates
}

// Current returns the latest snapshot, or nil before the first poll.
func (s *Store) Current() *core.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetAnalysis turns trace fetching on or off. Turning it off drops the
// trace from the next snapshot.
func (s *Store) SetAnalysis(enabled bool) {
	s.mu.Lock()
	s.analysis = enabled
	if !enabled {
		s.trace = nil
		s.tried = ""
	}
	s.mu.Unlock()
	s.Refresh()
}

// Refresh asks for a poll ahead of the next tick, e.g. after a command.
func (s *Store) Refresh() {
	select {
	case s.refresh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is done or Stop is called. The updates channel is
// closed on return.
func (s *Store) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.updates)

	s.pollAndPublish(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.done:
			return nil
		case <-ticker.C:
			s.pollAndPublish(ctx)
		case <-s.refresh:
			s.pollAndPublish(ctx)
		}
	}
}

// Stop ends Run.
func (s *Store) Stop() {
	s.stop.Do(func() { close(s.done) })
}

func (s *Store) pollAndPublish(ctx context.Context) {
	u, err := s.Poll(ctx)
	if err != nil {
		if ctx.Err() == nil {
			s.logger.Warn("poll failed", "err", err)
		}
		return
	}
	s.publish(u)
}

// Poll fetches one snapshot, attaches the analysis trace when enabled, and
// records it as current.
func (s *Store) Poll(ctx context.Context) (Update, error) {
	state, err := s.player.GetState(ctx)
	if err != nil {
		return Update{}, err
	}
	if state == nil {
		state = &core.PlaybackState{}
	}

	if trace := s.traceFor(ctx, state.Track); trace != nil {
		state = state.WithAnalysis(trace)
	}

	now := time.Now()
	s.mu.Lock()
	prev, prevAt := s.current, s.polledAt
	s.current, s.polledAt = state, now
	s.mu.Unlock()

	u := Update{
		Timestamp: now,
		Changes:   Classify(prev, state, now.Sub(prevAt)),
		Previous:  prev,
		Current:   state,
	}
	if u.Changes != 0 {
		s.logger.Debug("playback changed", "changes", u.Changes.String(), "track", trackID(state))
	}
	return u, nil
}

// traceFor returns the trace for track, fetching it once per track.
func (s *Store) traceFor(ctx context.Context, track *core.Track) *core.AnalysisTrace {
	s.mu.RLock()
	enabled, trace, tried := s.analysis, s.trace, s.tried
	s.mu.RUnlock()

	if !enabled || track == nil || track.ID == "" {
		return nil
	}
	if trace != nil && trace.TrackID == track.ID {
		return trace
	}
	if tried == track.ID {
		return nil
	}

	trace, err := s.player.GetAnalysis(ctx, track.ID)
	s.mu.Lock()
	s.tried = track.ID
	if err == nil {
		s.trace = trace
	} else {
		s.trace = nil
	}
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, wberrors.ErrAnalysisUnavailable) {
			s.logger.Debug("no analysis for track, using flat bar", "track", track.ID)
		} else {
			s.logger.Warn("analysis fetch failed", "track", track.ID, "err", err)
		}
		return nil
	}
	s.logger.Debug("analysis loaded", "track", track.ID, "segments", trace.Len())
	return trace
}

// publish hands u to the reader, replacing any update it has not taken yet.
func (s *Store) publish(u Update) {
	for {
		select {
		case s.updates <- u:
			return
		default:
		}
		select {
		case <-s.updates:
		default:
		}
	}
}

func trackID(state *core.PlaybackState) string {
	if !state.HasTrack() {
		return ""
	}
	return state.Track.ID
}
