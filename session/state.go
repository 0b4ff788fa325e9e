package session

import (
	"errors"

	"github.com/streambox/streambox/source"
)

// State is a step of the playback flow.
type State int

const (
	Idle State = iota
	LoadingEpisodes
	EpisodesReady
	LoadingStream
	Playing
	Failed
)

var stateNames = map[State]string{
	Idle:            "idle",
	LoadingEpisodes: "loading episodes",
	EpisodesReady:   "episodes ready",
	LoadingStream:   "loading stream",
	Playing:         "playing",
	Failed:          "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// navigable states accept episode changes.
func (s State) navigable() bool {
	return s == EpisodesReady || s == LoadingStream || s == Playing
}

// Snapshot is an immutable view of a session.
type Snapshot struct {
	State State `json:"state"`
	// Source is the tag of the source in use.
	Source string       `json:"source"`
	Item   *source.Item `json:"item,omitempty"`
	// ContentID is the working identifier, which may differ from Item.ID after correction.
	ContentID string            `json:"content_id,omitempty"`
	Episodes  []*source.Episode `json:"episodes,omitempty"`
	// Cursor is the index of the current episode, -1 before episodes are known.
	Cursor  int              `json:"cursor"`
	Streams []*source.Stream `json:"streams,omitempty"`
	// Active is the index of the playing stream, -1 when not playing.
	Active int   `json:"active"`
	Err    error `json:"-"`
	// FailedIn is the loading state a failure happened in; Retry resumes from it.
	FailedIn   State  `json:"-"`
	Generation uint64 `json:"generation"`
}

func initial(sourceTag string, generation uint64) Snapshot {
	return Snapshot{
		State:      Idle,
		Source:     sourceTag,
		Cursor:     -1,
		Active:     -1,
		Generation: generation,
	}
}

// Episode returns the episode under the cursor.
func (s Snapshot) Episode() *source.Episode {
	if s.Cursor < 0 || s.Cursor >= len(s.Episodes) {
		return nil
	}
	return s.Episodes[s.Cursor]
}

// Stream returns the active stream.
func (s Snapshot) Stream() *source.Stream {
	if s.Active < 0 || s.Active >= len(s.Streams) {
		return nil
	}
	return s.Streams[s.Active]
}

// Error returns the failure message, or an empty string.
func (s Snapshot) Error() string {
	if s.Err == nil {
		return ""
	}
	return s.Err.Error()
}

// Edge is the end of an episode list.
type Edge string

const (
	First Edge = "first"
	Last  Edge = "last"
)

// BoundaryError reports a step past either end of the episode list. It leaves the session unchanged.
type BoundaryError struct {
	Edge Edge
}

func (e *BoundaryError) Error() string {
	return "already at " + string(e.Edge) + " episode"
}

var (
	// ErrStale is returned when an adapter result arrived after a newer navigation and was discarded.
	ErrStale = errors.New("result superseded by a newer navigation")

	ErrUnknownSource = errors.New("unknown source")
	ErrNoItem        = errors.New("no content item selected")
)
