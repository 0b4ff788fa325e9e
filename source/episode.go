package source

import "strconv"

// Episode is a playable unit of a content item.
type Episode struct {
	// Ordinal is the upstream episode number or index. Its base depends on the source.
	Ordinal int `json:"ordinal"`
	// Key is what the source needs to resolve streams: a slug, an index or a composite "season:episode".
	Key string `json:"key"`
	// Label is the display name, e.g. "Ep 3" or "S1 E3".
	Label string `json:"label"`

	// Season and Number are set for composite keys only.
	Season int `json:"season,omitempty"`
	Number int `json:"number,omitempty"`
}

// String returns the display label of the episode.
func (e *Episode) String() string {
	return e.Label
}

// Index returns the numeric key of the episode, or its ordinal when the key is not a number.
func (e *Episode) Index() int {
	if n, err := strconv.Atoi(e.Key); err == nil {
		return n
	}
	return e.Ordinal
}

// EpisodeLabel formats the conventional "Ep N" label.
func EpisodeLabel(n int) string {
	return "Ep " + strconv.Itoa(n)
}

// Episodes is the ordered episode list of a content item.
type Episodes struct {
	// ContentID is the identifier that produced the list.
	ContentID string     `json:"content_id"`
	List      []*Episode `json:"episodes"`
}

// Len returns the number of episodes.
func (e *Episodes) Len() int {
	if e == nil {
		return 0
	}
	return len(e.List)
}

// At returns the episode at index i, or nil when out of range.
func (e *Episodes) At(i int) *Episode {
	if i < 0 || i >= e.Len() {
		return nil
	}
	return e.List[i]
}
