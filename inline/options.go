package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/streambox/streambox/session"
	"github.com/streambox/streambox/source"
	"github.com/streambox/streambox/util"
)

type (
	ItemPicker func([]*source.Item) *source.Item
	// EpisodesFilter returns the indexes of the selected episodes.
	EpisodesFilter func([]*source.Episode) []int
)

type Options struct {
	Out    io.Writer
	Source source.Source
	// Mode defaults to the search mode when Query is set, otherwise to the first mode.
	Mode           string
	Query          string
	Page           int
	Json           bool
	ItemPicker     mo.Option[ItemPicker]
	EpisodesFilter mo.Option[EpisodesFilter]
	Streams        bool
	// Preferences pick the selected stream; nil uses the default stream.
	Preferences session.Preferences
}

func ParseItemPicker(kind, value string) (ItemPicker, error) {
	switch kind {
	case "first":
		return func(items []*source.Item) *source.Item {
			if len(items) == 0 {
				return nil
			}
			return items[0]
		}, nil
	case "last":
		return func(items []*source.Item) *source.Item {
			if len(items) == 0 {
				return nil
			}
			return items[len(items)-1]
		}, nil
	case "exact":
		return func(items []*source.Item) *source.Item {
			item, _ := lo.Find(items, func(i *source.Item) bool {
				return strings.EqualFold(i.Title, value) || i.ID == value
			})
			return item
		}, nil
	default:
		idx, err := strconv.ParseUint(kind, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("unknown item picker: %s", kind)
		}
		return func(items []*source.Item) *source.Item {
			if len(items) == 0 {
				return nil
			}
			return items[util.Min(int(idx), len(items)-1)]
		}, nil
	}
}

// ParseEpisodesFilter parses an episode selector:
// "first", "last", "all", a 0-based index, a range "from-to" or a label substring "@text@".
func ParseEpisodesFilter(description string) (EpisodesFilter, error) {
	switch description {
	case "first":
		return func(episodes []*source.Episode) []int {
			if len(episodes) == 0 {
				return nil
			}
			return []int{0}
		}, nil
	case "last":
		return func(episodes []*source.Episode) []int {
			if len(episodes) == 0 {
				return nil
			}
			return []int{len(episodes) - 1}
		}, nil
	case "all":
		return func(episodes []*source.Episode) []int {
			return lo.Range(len(episodes))
		}, nil
	}

	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") && len(description) > 1 {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(episodes []*source.Episode) []int {
			var indexes []int
			for i, e := range episodes {
				if strings.Contains(strings.ToLower(e.Label), sub) {
					indexes = append(indexes, i)
				}
			}
			return indexes
		}, nil
	}

	if from, to, ok := strings.Cut(description, "-"); ok {
		a, errA := strconv.Atoi(from)
		b, errB := strconv.Atoi(to)
		if errA != nil || errB != nil || a < 0 || b < a {
			return nil, fmt.Errorf("invalid episode range: %s", description)
		}
		return func(episodes []*source.Episode) []int {
			end := util.Min(b+1, len(episodes))
			if a >= end {
				return nil
			}
			return lo.RangeFrom(a, end-a)
		}, nil
	}

	if idx, err := strconv.Atoi(description); err == nil && idx >= 0 {
		return func(episodes []*source.Episode) []int {
			if idx >= len(episodes) {
				return nil
			}
			return []int{idx}
		}, nil
	}

	return nil, fmt.Errorf("invalid episode filter: %s", description)
}
