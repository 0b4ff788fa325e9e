// Package dramabox adapts the DramaBox short-drama API.
package dramabox

import (
	"context"
	"net/url"
	"sort"
	"strconv"

	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/source"
)

const (
	ID   = "dramabox"
	Name = "DramaBox"
)

var profile = api.Profile{
	ID:   ID,
	Name: Name,
	Modes: []source.Mode{
		{ID: "foryou", Label: "For You"},
		{ID: "new", Label: "Terbaru"},
		{ID: "rank", Label: "Populer"},
		{ID: "search", Label: "Cari", Search: true},
	},
	Lists: map[string]string{
		"foryou": "/dramabox/api/foryou/{page}?lang=in",
		"new":    "/dramabox/api/new/{page}?lang=in",
		"rank":   "/dramabox/api/rank/{page}?lang=in",
		"search": "/dramabox/api/search/{query}/{page}?lang=in",
	},
	ListEnvelope: api.Bare,
	ListFields:   []string{"data.list"},
	Mapping: &source.Mapping{
		ID:            []string{"bookId", "id"},
		Title:         []string{"bookName", "name", "title"},
		Image:         []string{"cover", "bookCover", "bookPic", "poster"},
		Badge:         []string{"chapterCount", "chapter_count"},
		TitleFallback: "Untitled",
		BadgeFallback: "-",
		BadgeSuffix:   " Eps",
	},
	Rule: source.DefaultRule{Flagged: true},
}

// Source lists chapters by their 0-based chapter index.
type Source struct {
	*api.Adapter
}

// New creates the adapter.
func New(forwarder api.Forwarder) *Source {
	return &Source{Adapter: api.NewAdapter(profile, forwarder)}
}

// ListEpisodes drops chapters without a numeric index and sorts the rest ascending.
func (s *Source) ListEpisodes(ctx context.Context, contentID string) (*source.Episodes, error) {
	record, err := s.Client.Get(ctx, "/dramabox/api/chapters/"+url.PathEscape(contentID)+"?lang=in", api.Bare)
	if err != nil {
		return nil, err
	}

	var episodes []*source.Episode
	for _, chapter := range record.Records("data.chapterList") {
		index, ok := chapter.Int("chapterIndex")
		if !ok {
			continue
		}
		episodes = append(episodes, &source.Episode{
			Ordinal: index,
			Key:     strconv.Itoa(index),
			Label:   source.EpisodeLabel(index + 1),
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

// ResolveStreams requires a successful envelope; qualities flagged isDefault == 1 are preferred.
func (s *Source) ResolveStreams(ctx context.Context, contentID string, episode *source.Episode) ([]*source.Stream, error) {
	path := api.Expand("/dramabox/api/watch/player?bookId={id}&index={index}&lang=in", api.Vars{
		"id":    contentID,
		"index": strconv.Itoa(episode.Index()),
	})

	record, err := s.Client.Get(ctx, path, api.Success)
	if err != nil {
		return nil, err
	}

	var raw []*source.Stream
	for _, q := range record.Records("data.qualities") {
		raw = append(raw, &source.Stream{
			Label:   qualityLabel(q.String("quality")),
			URL:     q.String("videoPath", "videoUrl"),
			Default: q.Bool("isDefault"),
		})
	}

	return s.Streams(raw)
}

func qualityLabel(quality string) string {
	if quality == "" {
		return ""
	}
	return quality + "p"
}
