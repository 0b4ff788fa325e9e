// Package starshort adapts the StarShort short-drama API, which pages by offset and count.
package starshort

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/source"
)

const (
	ID   = "starshort"
	Name = "StarShort"

	// PageSize is the number of dramas requested per page.
	PageSize = 20
)

const base = "/starshort/api/v1"

var profile = api.Profile{
	ID:   ID,
	Name: Name,
	Modes: []source.Mode{
		{ID: "rising", Label: "Trending"},
		{ID: "new", Label: "Terbaru"},
		{ID: "search", Label: "Cari", Search: true},
	},
	Lists: map[string]string{
		"rising": base + "/dramas/rising?offset={offset}&count={count}&lang=3",
		"new":    base + "/dramas/new?offset={offset}&count={count}&lang=3",
		"search": base + "/dramas/search?q={query}&offset={offset}&count={count}&lang=3",
	},
	PageSize:     PageSize,
	ListEnvelope: api.CodeIfPresent,
	ListFields:   []string{"data", "data.items", "items"},
	Mapping: &source.Mapping{
		ID:            []string{"id"},
		Title:         []string{"title", "name"},
		Image:         []string{"cover", "poster"},
		Badge:         []string{"total_episodes", "episodes"},
		TitleFallback: "Untitled",
		BadgeFallback: "-",
		BadgeSuffix:   " Eps",
	},
	Rule: source.DefaultRule{Fallback: source.First},
}

// Source numbers episodes from 1.
type Source struct {
	*api.Adapter
}

// New creates the adapter.
func New(forwarder api.Forwarder) *Source {
	return &Source{Adapter: api.NewAdapter(profile, forwarder)}
}

func (s *Source) ListEpisodes(ctx context.Context, contentID string) (*source.Episodes, error) {
	record, err := s.Client.Get(ctx, base+"/dramas/"+url.PathEscape(contentID)+"/episodes?lang=3", api.CodeIfPresent)
	if err != nil {
		return nil, err
	}

	var episodes []*source.Episode
	for _, ep := range record.Records("episodes", "data.episodes", "data") {
		n, ok := ep.Int("episode", "episodeNo")
		if !ok {
			continue
		}
		episodes = append(episodes, &source.Episode{
			Ordinal: n,
			Key:     strconv.Itoa(n),
			Label:   source.EpisodeLabel(n),
		})
	}

	if len(episodes) == 0 {
		return nil, &source.EmptyResultError{What: source.NoEpisodes}
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		return episodes[i].Ordinal < episodes[j].Ordinal
	})

	return &source.Episodes{ContentID: contentID, List: episodes}, nil
}

// ResolveStreams accepts either a list of definitions or a single video_url.
func (s *Source) ResolveStreams(ctx context.Context, contentID string, episode *source.Episode) ([]*source.Stream, error) {
	path := api.Expand(base+"/dramas/{id}/episodes/{ep}?lang=3", api.Vars{
		"id": contentID,
		"ep": strconv.Itoa(episode.Index()),
	})

	record, err := s.Client.Get(ctx, path, api.CodeIfPresent)
	if err != nil {
		return nil, err
	}

	var raw []*source.Stream
	for _, v := range record.Records("videos", "data.videos") {
		raw = append(raw, &source.Stream{
			Label: v.String("definition", "quality"),
			URL:   v.String("url", "video_url"),
		})
	}
	if len(raw) == 0 {
		if u := record.String("video_url", "data.video_url"); u != "" {
			raw = append(raw, &source.Stream{Label: "Auto", URL: u})
		}
	}

	return s.Streams(raw)
}
