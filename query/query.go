// Package query remembers search queries and suggests them back, ranked by use.
package query

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/where"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
	// Sources that were searched with the query.
	Sources []string `json:"sources"`
}

var cacher = gache.New[map[string]*queryRecord](
	&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	},
)

func load() map[string]*queryRecord {
	cached, expired, err := cacher.Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*queryRecord)
	}
	return cached
}

// Remember records that q was searched on sourceID, raising its rank by weight.
func Remember(q, sourceID string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached := load()
	record, ok := cached[q]
	if !ok {
		record = &queryRecord{Query: q}
		cached[q] = record
	}
	record.Rank += weight
	if !lo.Contains(record.Sources, sourceID) {
		record.Sources = append(record.Sources, sourceID)
	}

	return cacher.Set(cached)
}

// Suggest returns the best ranked query fuzzily matching q.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzily matching q, highest rank first.
// It returns nothing when suggestions are disabled.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchShowQuerySuggestions) {
		return nil
	}

	q = sanitize(q)
	records := lo.Filter(lo.Values(load()), func(r *queryRecord, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	slices.SortFunc(records, func(a, b *queryRecord) int {
		if a.Rank != b.Rank {
			return b.Rank - a.Rank
		}
		return strings.Compare(a.Query, b.Query)
	})

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Clear forgets every query.
func Clear() error {
	return cacher.Set(make(map[string]*queryRecord))
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
