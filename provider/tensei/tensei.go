// Package tensei adapts the Tensei anime catalog.
package tensei

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/source"
)

const (
	ID   = "tensei"
	Name = "Tensei"

	// gluedPrefix is sometimes prepended to slugs by the listing endpoints.
	gluedPrefix = "anime"
)

var profile = api.Profile{
	ID:   ID,
	Name: Name,
	Modes: []source.Mode{
		{ID: "home", Label: "Beranda"},
		{ID: "ongoing", Label: "Ongoing"},
		{ID: "completed", Label: "Completed"},
		{ID: "search", Label: "Cari", Search: true},
	},
	Lists: map[string]string{
		"home":      "/tensei/home?page={page}",
		"ongoing":   "/tensei/anime?page={page}&status=Ongoing&order=update",
		"completed": "/tensei/anime?page={page}&status=Completed&order=update",
		"search":    "/tensei/search?q={query}",
	},
	ListEnvelope: api.CodeIfPresent,
	ListFields:   []string{"data"},
	Mapping: &source.Mapping{
		ID:            []string{"slug"},
		Title:         []string{"title"},
		Image:         []string{"img", "poster"},
		Badge:         []string{"status", "episode", "type"},
		TitleFallback: "Untitled",
		BadgeFallback: "Anime",
		ImageFilter:   source.UpgradeImage,
	},
	Rule: source.DefaultRule{Fallback: source.First},
}

// Source keys episodes by slug.
type Source struct {
	*api.Adapter
}

// New creates the adapter.
func New(forwarder api.Forwarder) *Source {
	return &Source{Adapter: api.NewAdapter(profile, forwarder)}
}

// ListEpisodes fetches the detail of contentID. When the slug carries the glued prefix and the
// upstream reports it as not found, the corrected slug is tried exactly once and becomes the
// working identifier.
func (s *Source) ListEpisodes(ctx context.Context, contentID string) (*source.Episodes, error) {
	record, err := s.detail(ctx, contentID)
	if err != nil {
		if !strings.HasPrefix(contentID, gluedPrefix) || !notFound(err) || ctx.Err() != nil {
			return nil, err
		}

		corrected := source.CorrectIdentifier(contentID, gluedPrefix)
		if corrected == "" || corrected == contentID {
			return nil, err
		}

		log.Infof("%s: detail of %q failed (%v), retrying as %q", ID, contentID, err, corrected)
		record, err = s.detail(ctx, corrected)
		if err != nil {
			return nil, err
		}
		contentID = corrected
	}

	raw := record.Records("data.episodes")
	if len(raw) == 0 {
		return nil, &source.EmptyResultError{What: source.NoEpisodes}
	}

	numbers := make([]int, len(raw))
	episodes := make([]*source.Episode, len(raw))
	for i, ep := range raw {
		n, ok := ep.Int("ep")
		if !ok || n == 0 {
			n = i + 1
		}
		numbers[i] = n
		episodes[i] = &source.Episode{
			Ordinal: i,
			Key:     ep.String("slug"),
			Label:   source.EpisodeLabel(n),
		}
	}

	// Ordinal still holds the upstream position, which breaks ties.
	sort.SliceStable(episodes, func(i, j int) bool {
		a, b := numbers[episodes[i].Ordinal], numbers[episodes[j].Ordinal]
		if a != b {
			return a < b
		}
		return episodes[i].Ordinal < episodes[j].Ordinal
	})

	return &source.Episodes{ContentID: contentID, List: episodes}, nil
}

// notFound reports whether err is a 404 or an error reported by the upstream application.
func notFound(err error) bool {
	var (
		transport   *source.TransportError
		application *source.ApplicationError
	)
	if errors.As(err, &transport) {
		return transport.Status == http.StatusNotFound
	}
	return errors.As(err, &application)
}

func (s *Source) detail(ctx context.Context, slug string) (source.Record, error) {
	return s.Client.Get(ctx, "/tensei/detail/"+url.PathEscape(slug), api.CodeIfPresent)
}

// ResolveStreams requires code == 0; the first stream is the default.
func (s *Source) ResolveStreams(ctx context.Context, _ string, episode *source.Episode) ([]*source.Stream, error) {
	if episode.Key == "" {
		return nil, &source.EmptyResultError{What: source.StreamUnavailable}
	}

	record, err := s.Client.Get(ctx, "/tensei/stream/"+url.PathEscape(episode.Key), api.Code)
	if err != nil {
		return nil, err
	}

	var raw []*source.Stream
	for _, q := range record.Records("data") {
		raw = append(raw, &source.Stream{Label: q.String("quality"), URL: q.String("url")})
	}

	return s.Streams(raw)
}
