package session

import "github.com/streambox/streambox/source"

// Event is an input of Reduce.
type Event interface {
	event()
}

type (
	// ContentSelected starts loading the episodes of Item.
	ContentSelected struct {
		Item *source.Item
	}

	EpisodesLoaded struct {
		Generation uint64
		Episodes   *source.Episodes
	}

	EpisodesFailed struct {
		Generation uint64
		Err        error
	}

	// EpisodeRequested moves the cursor and starts resolving streams. Out of range indexes are ignored.
	EpisodeRequested struct {
		Index int
	}

	StreamsResolved struct {
		Generation uint64
		Streams    []*source.Stream
		// Preferred is the remembered quality label of the content, if any.
		Preferred string
	}

	StreamsFailed struct {
		Generation uint64
		Err        error
	}

	// QualitySelected switches the active stream.
	QualitySelected struct {
		Index int
	}

	// RetryRequested re-enters the loading state a failure happened in.
	RetryRequested struct{}

	Closed struct{}

	SourceSwitched struct {
		Source string
	}
)

func (ContentSelected) event()  {}
func (EpisodesLoaded) event()   {}
func (EpisodesFailed) event()   {}
func (EpisodeRequested) event() {}
func (StreamsResolved) event()  {}
func (StreamsFailed) event()    {}
func (QualitySelected) event()  {}
func (RetryRequested) event()   {}
func (Closed) event()           {}
func (SourceSwitched) event()   {}

// Reduce returns the snapshot that follows s after e. It never mutates s.
// Results carrying a generation other than the current one are ignored.
func Reduce(s Snapshot, e Event) Snapshot {
	switch e := e.(type) {
	case ContentSelected:
		if e.Item == nil {
			return s
		}
		next := initial(s.Source, s.Generation+1)
		if e.Item.Source != "" {
			next.Source = e.Item.Source
		}
		next.State = LoadingEpisodes
		next.Item = e.Item
		next.ContentID = e.Item.ID
		return next

	case EpisodesLoaded:
		if e.Generation != s.Generation || s.State != LoadingEpisodes {
			return s
		}
		if e.Episodes == nil || len(e.Episodes.List) == 0 {
			return fail(s, &source.EmptyResultError{What: source.NoEpisodes})
		}
		s.State = EpisodesReady
		s.Episodes = e.Episodes.List
		if e.Episodes.ContentID != "" {
			s.ContentID = e.Episodes.ContentID
		}
		s.Cursor = 0
		return s

	case EpisodesFailed:
		if e.Generation != s.Generation || s.State != LoadingEpisodes {
			return s
		}
		return fail(s, e.Err)

	case EpisodeRequested:
		if !s.State.navigable() || e.Index < 0 || e.Index >= len(s.Episodes) {
			return s
		}
		return loadStream(s, e.Index)

	case StreamsResolved:
		if e.Generation != s.Generation || s.State != LoadingStream {
			return s
		}
		if len(e.Streams) == 0 {
			return fail(s, &source.EmptyResultError{What: source.StreamUnavailable})
		}
		s.State = Playing
		s.Streams = e.Streams
		s.Active = source.SelectStream(e.Streams, e.Preferred)
		return s

	case StreamsFailed:
		if e.Generation != s.Generation || s.State != LoadingStream {
			return s
		}
		return fail(s, e.Err)

	case QualitySelected:
		if s.State != Playing || e.Index < 0 || e.Index >= len(s.Streams) {
			return s
		}
		s.Active = e.Index
		return s

	case RetryRequested:
		if s.State != Failed {
			return s
		}
		switch s.FailedIn {
		case LoadingEpisodes:
			s.State = LoadingEpisodes
			s.Err = nil
			s.Generation++
			return s
		case LoadingStream:
			if s.Cursor < 0 || s.Cursor >= len(s.Episodes) {
				return s
			}
			return loadStream(s, s.Cursor)
		}
		return s

	case Closed:
		return initial(s.Source, s.Generation+1)

	case SourceSwitched:
		return initial(e.Source, s.Generation+1)
	}

	return s
}

func loadStream(s Snapshot, index int) Snapshot {
	s.State = LoadingStream
	s.Cursor = index
	s.Streams = nil
	s.Active = -1
	s.Err = nil
	s.Generation++
	return s
}

func fail(s Snapshot, err error) Snapshot {
	s.FailedIn = s.State
	s.State = Failed
	s.Err = err
	s.Streams = nil
	s.Active = -1
	return s
}
