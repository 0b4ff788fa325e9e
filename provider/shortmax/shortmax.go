// Package shortmax adapts the ShortMax short-drama API.
package shortmax

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/source"
)

const (
	ID   = "shortmax"
	Name = "ShortMax"
)

const base = "/shortmax/api/v1"

var profile = api.Profile{
	ID:   ID,
	Name: Name,
	Modes: []source.Mode{
		{ID: "home", Label: "Beranda"},
		{ID: "search", Label: "Cari", Search: true},
	},
	Lists: map[string]string{
		"home":   base + "/home?page={page}&lang=id",
		"search": base + "/search?q={query}&page={page}&lang=id",
	},
	ListEnvelope: api.Bare,
	ListFields:   []string{"data", "data.list"},
	Mapping: &source.Mapping{
		ID:            []string{"id", "code"},
		Title:         []string{"name", "title"},
		Image:         []string{"cover", "poster"},
		Badge:         []string{"episodes", "total"},
		TitleFallback: "Untitled",
		BadgeFallback: "-",
		BadgeSuffix:   " Eps",
	},
	Rule: source.DefaultRule{Preferred: "720p", Fallback: source.First},
}

// renditions are the quality fields of a play payload, best first.
var renditions = []struct {
	field string
	label string
}{
	{"video_1080", "1080p"},
	{"video_720", "720p"},
	{"video_480", "480p"},
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
	record, err := s.Client.Get(ctx, base+"/episodes/"+url.PathEscape(contentID)+"?lang=id", api.Bare)
	if err != nil {
		return nil, err
	}

	var episodes []*source.Episode
	for _, ep := range record.Records("data", "data.episodes") {
		n, ok := ep.Int("episode")
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

func (s *Source) ResolveStreams(ctx context.Context, contentID string, episode *source.Episode) ([]*source.Stream, error) {
	path := api.Expand(base+"/play/{id}?ep={ep}&lang=id", api.Vars{
		"id": contentID,
		"ep": strconv.Itoa(episode.Index()),
	})

	record, err := s.Client.Get(ctx, path, api.Bare)
	if err != nil {
		return nil, err
	}

	video := record.Object("data.video")
	var raw []*source.Stream
	for _, r := range renditions {
		if u := video.String(r.field); u != "" {
			raw = append(raw, &source.Stream{Label: r.label, URL: u})
		}
	}

	return s.Streams(raw)
}
