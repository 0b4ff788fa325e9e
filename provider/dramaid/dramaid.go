// Package dramaid adapts the DramaID drama catalog.
package dramaid

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/source"
)

const (
	ID   = "dramaid"
	Name = "DramaID"
)

var profile = api.Profile{
	ID:   ID,
	Name: Name,
	Modes: []source.Mode{
		{ID: "home", Label: "Beranda"},
		{ID: "search", Label: "Cari", Search: true},
	},
	Lists: map[string]string{
		"home":   "/dramaid/home?page={page}",
		"search": "/dramaid/search?q={query}",
	},
	ListEnvelope: api.CodeIfPresent,
	ListFields:   []string{"data"},
	Mapping: &source.Mapping{
		ID:            []string{"slug"},
		Title:         []string{"title"},
		Image:         []string{"img", "poster"},
		Badge:         []string{"negara", "score"},
		Extra:         []string{"episode"},
		TitleFallback: "Untitled",
		BadgeFallback: "Drama",
		TitleFilter:   source.CleanTitle,
	},
	Rule: source.DefaultRule{Preferred: "720p", Fallback: source.Last},
}

// Source keys episodes by their episode number; streams are addressed by slug and number.
type Source struct {
	*api.Adapter
}

// New creates the adapter.
func New(forwarder api.Forwarder) *Source {
	return &Source{Adapter: api.NewAdapter(profile, forwarder)}
}

// ListEpisodes sorts episodes by number; the detail page usually lists the newest first.
func (s *Source) ListEpisodes(ctx context.Context, contentID string) (*source.Episodes, error) {
	record, err := s.Client.Get(ctx, "/dramaid/detail/"+url.PathEscape(contentID), api.CodeIfPresent)
	if err != nil {
		return nil, err
	}

	raw := record.Records("data.episodes")
	if len(raw) == 0 {
		return nil, &source.EmptyResultError{What: source.NoEpisodes}
	}

	episodes := make([]*source.Episode, len(raw))
	for i, ep := range raw {
		n, ok := ep.Int("ep")
		if !ok || n == 0 {
			n = i + 1
		}
		episodes[i] = &source.Episode{
			Ordinal: n,
			Key:     strconv.Itoa(n),
			Label:   source.EpisodeLabel(n),
		}
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Ordinal < episodes[j].Ordinal
	})

	return &source.Episodes{ContentID: contentID, List: episodes}, nil
}

// ResolveStreams requires code == 0; 720p is preferred, otherwise the last stream.
func (s *Source) ResolveStreams(ctx context.Context, contentID string, episode *source.Episode) ([]*source.Stream, error) {
	path := "/dramaid/play/" + url.PathEscape(contentID) + "/" + url.PathEscape(episode.Key)

	record, err := s.Client.Get(ctx, path, api.Code)
	if err != nil {
		return nil, err
	}

	var raw []*source.Stream
	for _, st := range record.Records("data.streams") {
		raw = append(raw, &source.Stream{
			Label: st.String("quality"),
			URL:   st.String("url"),
		})
	}

	return s.Streams(raw)
}
