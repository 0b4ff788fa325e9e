// Package moviebox adapts the MovieBox movie and series catalog.
package moviebox

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/source"
)

const (
	ID   = "moviebox"
	Name = "MovieBox"
)

var profile = api.Profile{
	ID:   ID,
	Name: Name,
	Modes: []source.Mode{
		{ID: "trending", Label: "Trending"},
		{ID: "search", Label: "Cari", Search: true},
	},
	Lists: map[string]string{
		"trending": "/moviebox/trending?page={page}",
		"search":   "/moviebox/search?q={query}&page={page}",
	},
	ListEnvelope: api.CodeIfPresent,
	ListFields:   []string{"data.subjectList", "data.items", "data"},
	Mapping: &source.Mapping{
		ID:            []string{"subjectId", "id"},
		Title:         []string{"title", "name"},
		Image:         []string{"cover.url", "cover", "poster"},
		Badge:         []string{"imdbRatingValue", "genre"},
		Extra:         []string{"releaseDate"},
		TitleFallback: "Untitled",
		BadgeFallback: "Movie",
	},
	Rule: source.DefaultRule{Fallback: source.Last},
}

// maxEpisodes bounds the expansion of a single season.
const maxEpisodes = 2000

// Source keys series episodes by a composite "season:episode"; movies have a single episode.
type Source struct {
	*api.Adapter
}

// New creates the adapter.
func New(forwarder api.Forwarder) *Source {
	return &Source{Adapter: api.NewAdapter(profile, forwarder)}
}

// ListEpisodes expands every season up to its last episode, ordered by season and episode.
func (s *Source) ListEpisodes(ctx context.Context, contentID string) (*source.Episodes, error) {
	record, err := s.Client.Get(ctx, "/moviebox/detail/"+url.PathEscape(contentID), api.CodeIfPresent)
	if err != nil {
		return nil, err
	}

	var episodes []*source.Episode
	for _, season := range record.Records("data.resource.seasons") {
		se, ok := season.Int("se")
		if !ok {
			continue
		}
		last, _ := season.Int("maxEp")
		if last > maxEpisodes {
			log.Warnf("%s: season %d of %q claims %d episodes, keeping %d", ID, se, contentID, last, maxEpisodes)
			last = maxEpisodes
		}
		for ep := 1; ep <= last; ep++ {
			episodes = append(episodes, &source.Episode{
				Ordinal: len(episodes),
				Key:     fmt.Sprintf("%d:%d", se, ep),
				Label:   fmt.Sprintf("S%d E%d", se, ep),
				Season:  se,
				Number:  ep,
			})
		}
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		a, b := episodes[i], episodes[j]
		if a.Season != b.Season {
			return a.Season < b.Season
		}
		return a.Number < b.Number
	})
	for i, ep := range episodes {
		ep.Ordinal = i
	}

	if len(episodes) == 0 {
		if record.Object("data") == nil {
			return nil, &source.EmptyResultError{What: source.NoEpisodes}
		}
		episodes = []*source.Episode{{Ordinal: 0, Key: "0:0", Label: "Movie"}}
	}

	return &source.Episodes{ContentID: contentID, List: episodes}, nil
}

// ResolveStreams lists the downloadable resolutions; the last one is the default.
func (s *Source) ResolveStreams(ctx context.Context, contentID string, episode *source.Episode) ([]*source.Stream, error) {
	path := api.Expand("/moviebox/sources/{id}?season={se}&episode={ep}", api.Vars{
		"id": contentID,
		"se": strconv.Itoa(episode.Season),
		"ep": strconv.Itoa(episode.Number),
	})

	record, err := s.Client.Get(ctx, path, api.CodeIfPresent)
	if err != nil {
		return nil, err
	}

	var raw []*source.Stream
	for _, d := range record.Records("data.downloads", "data.streams") {
		label := d.String("resolution")
		if label != "" {
			label += "p"
		}
		raw = append(raw, &source.Stream{Label: label, URL: d.String("url")})
	}

	return s.Streams(raw)
}
