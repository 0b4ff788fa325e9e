// Package session drives the playback flow of one user: content selection, episode navigation
// and stream quality, as a single-writer state machine over the source adapters.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/mo"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/source"
)

// Preferences remember the quality picked for a content item.
type Preferences interface {
	Preferred(sourceID, contentID string) mo.Option[string]
	Save(sourceID, contentID, title, label string) error
}

// Options configure a Session.
type Options struct {
	// Sources by tag.
	Sources map[string]source.Source
	// Source is the tag used for items that carry none.
	Source string
	// Preferences may be nil, in which case quality choices are not remembered.
	Preferences Preferences
}

// Session owns a Snapshot and applies intents to it.
// Adapter calls run without holding the lock; their results are applied only
// if no other navigation happened meanwhile.
type Session struct {
	mu      sync.Mutex
	snap    Snapshot
	sources map[string]source.Source
	prefs   Preferences
}

// New creates an idle session.
func New(opts Options) *Session {
	return &Session{
		snap:    initial(opts.Source, 0),
		sources: opts.Sources,
		prefs:   opts.Preferences,
	}
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

func (s *Session) apply(e Event) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Reduce(s.snap, e)
	return s.snap
}

// settle applies events only while the generation is still gen.
func (s *Session) settle(gen uint64, events ...Event) (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snap.Generation != gen {
		return s.snap, false
	}
	for _, e := range events {
		s.snap = Reduce(s.snap, e)
	}
	return s.snap, true
}

func (s *Session) source(tag string) (source.Source, error) {
	src, ok := s.sources[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, tag)
	}
	return src, nil
}

// SelectContent loads the episodes of item and starts playing the first one.
func (s *Session) SelectContent(ctx context.Context, item *source.Item) (Snapshot, error) {
	if item == nil {
		return s.Snapshot(), ErrNoItem
	}

	tag := item.Source
	if tag == "" {
		tag = s.Snapshot().Source
	}
	if _, err := s.source(tag); err != nil {
		return s.Snapshot(), err
	}

	if item.Source == "" {
		selected := *item
		selected.Source = tag
		item = &selected
	}

	return s.loadEpisodes(ctx, s.apply(ContentSelected{Item: item}))
}

func (s *Session) loadEpisodes(ctx context.Context, snap Snapshot) (Snapshot, error) {
	src, err := s.source(snap.Source)
	if err != nil {
		return snap, err
	}

	gen := snap.Generation
	episodes, err := src.ListEpisodes(ctx, snap.ContentID)
	if err != nil {
		log.Warnf("session: episodes of %s/%s: %v", snap.Source, snap.ContentID, err)
		snap, ok := s.settle(gen, EpisodesFailed{Generation: gen, Err: err})
		if !ok {
			return snap, ErrStale
		}
		return snap, err
	}

	snap, ok := s.settle(gen, EpisodesLoaded{Generation: gen, Episodes: episodes}, EpisodeRequested{Index: 0})
	if !ok {
		return snap, ErrStale
	}
	if snap.State == Failed {
		return snap, snap.Err
	}

	return s.loadStream(ctx, snap)
}

func (s *Session) loadStream(ctx context.Context, snap Snapshot) (Snapshot, error) {
	src, err := s.source(snap.Source)
	if err != nil {
		return snap, err
	}

	gen := snap.Generation
	streams, err := src.ResolveStreams(ctx, snap.ContentID, snap.Episode())
	if err != nil {
		log.Warnf("session: streams of %s/%s: %v", snap.Source, snap.Episode().Label, err)
		snap, ok := s.settle(gen, StreamsFailed{Generation: gen, Err: err})
		if !ok {
			return snap, ErrStale
		}
		return snap, err
	}

	snap, ok := s.settle(gen, StreamsResolved{
		Generation: gen,
		Streams:    streams,
		Preferred:  s.preferred(snap.Source, snap.ContentID),
	})
	if !ok {
		return snap, ErrStale
	}
	if snap.State == Failed {
		return snap, snap.Err
	}
	return snap, nil
}

func (s *Session) preferred(sourceID, contentID string) string {
	if s.prefs == nil {
		return ""
	}
	return s.prefs.Preferred(sourceID, contentID).OrEmpty()
}

// GoToEpisode plays the episode at index. Indexes outside the list are ignored.
func (s *Session) GoToEpisode(ctx context.Context, index int) (Snapshot, error) {
	s.mu.Lock()
	before := s.snap.Generation
	s.snap = Reduce(s.snap, EpisodeRequested{Index: index})
	snap := s.snap
	s.mu.Unlock()

	if snap.Generation == before {
		return snap, nil
	}
	return s.loadStream(ctx, snap)
}

// StepEpisode moves the cursor by delta. Stepping past either end returns a
// *BoundaryError and changes nothing.
func (s *Session) StepEpisode(ctx context.Context, delta int) (Snapshot, error) {
	s.mu.Lock()
	snap := s.snap
	if !snap.State.navigable() || delta == 0 {
		s.mu.Unlock()
		return snap, nil
	}

	target := snap.Cursor + delta
	switch {
	case target < 0:
		s.mu.Unlock()
		return snap, &BoundaryError{Edge: First}
	case target >= len(snap.Episodes):
		s.mu.Unlock()
		return snap, &BoundaryError{Edge: Last}
	}

	s.snap = Reduce(snap, EpisodeRequested{Index: target})
	snap = s.snap
	s.mu.Unlock()

	return s.loadStream(ctx, snap)
}

// SelectQuality switches to the stream at index without any network call and remembers its label.
func (s *Session) SelectQuality(index int) (Snapshot, error) {
	s.mu.Lock()
	before := s.snap.Active
	s.snap = Reduce(s.snap, QualitySelected{Index: index})
	snap := s.snap
	s.mu.Unlock()

	if snap.State != Playing || snap.Active != index || s.prefs == nil {
		return snap, nil
	}

	title := ""
	if snap.Item != nil {
		title = snap.Item.Title
	}
	if err := s.prefs.Save(snap.Source, snap.ContentID, title, snap.Stream().Label); err != nil {
		log.Warnf("session: remembering quality: %v", err)
	} else if before != index {
		log.Infof("session: %s/%s now prefers %s", snap.Source, snap.ContentID, snap.Stream().Label)
	}

	return snap, nil
}

// Retry repeats the step that failed: loading the episodes or resolving the streams of the current episode.
func (s *Session) Retry(ctx context.Context) (Snapshot, error) {
	snap := s.apply(RetryRequested{})
	switch snap.State {
	case LoadingEpisodes:
		return s.loadEpisodes(ctx, snap)
	case LoadingStream:
		return s.loadStream(ctx, snap)
	default:
		return snap, nil
	}
}

// Close abandons the current content. Pending adapter results are discarded.
func (s *Session) Close() Snapshot {
	return s.apply(Closed{})
}

// SwitchSource closes the current content and makes tag the default source.
func (s *Session) SwitchSource(tag string) (Snapshot, error) {
	if _, err := s.source(tag); err != nil {
		return s.Snapshot(), err
	}
	return s.apply(SourceSwitched{Source: tag}), nil
}
