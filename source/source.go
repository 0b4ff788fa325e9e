// Package source defines the domain models and interfaces for media discovery and retrieval.
package source

import "context"

// Mode is a listing category offered by a source, e.g. "foryou" or "search".
type Mode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	// Search modes require Query.Text.
	Search bool `json:"search"`
}

// Query selects one page of a listing.
type Query struct {
	Mode string
	// Page is 1-based.
	Page int
	Text string
}

// Source defines the capabilities of a media upstream adapter.
type Source interface {
	// Name returns the display name of the source.
	Name() string

	// ID returns the unique identifier of the source, used as the source tag of its items.
	ID() string

	// Modes lists the listing categories in display order. The first one is the default.
	Modes() []Mode

	// ListContent fetches one page of a listing, normalized to at most ListLimit items.
	ListContent(ctx context.Context, query Query) ([]*Item, error)

	// ListEpisodes fetches the ordered episodes of a content item.
	// The returned ContentID may differ from contentID when the upstream identifier had to be corrected.
	ListEpisodes(ctx context.Context, contentID string) (*Episodes, error)

	// ResolveStreams fetches the playable streams of an episode.
	ResolveStreams(ctx context.Context, contentID string, episode *Episode) ([]*Stream, error)
}

// FindMode returns the mode with the given id.
func FindMode(src Source, id string) (Mode, bool) {
	for _, m := range src.Modes() {
		if m.ID == id {
			return m, true
		}
	}
	return Mode{}, false
}
