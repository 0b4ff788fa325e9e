// Package inline runs one non-interactive lookup: a listing, optionally narrowed to one item,
// its episodes and their streams, printed as text or JSON.
package inline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/source"
)

func Run(ctx context.Context, options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}
	if options.Source == nil {
		return errors.New("source not set")
	}

	mode, err := resolveMode(options)
	if err != nil {
		return err
	}

	page := lo.Ternary(options.Page < 1, 1, options.Page)
	output := &Output{
		Source: options.Source.ID(),
		Mode:   mode.ID,
		Query:  options.Query,
		Page:   page,
	}

	items, err := options.Source.ListContent(ctx, source.Query{Mode: mode.ID, Page: page, Text: options.Query})
	if err != nil {
		return fmt.Errorf("%s: %w", options.Source.Name(), err)
	}

	selected := items
	if options.ItemPicker.IsPresent() {
		selected = nil
		if choice := options.ItemPicker.MustGet()(items); choice != nil {
			selected = []*source.Item{choice}
		}
	}

	for _, item := range selected {
		entry := &Entry{Item: item}
		output.Result = append(output.Result, entry)

		if options.EpisodesFilter.IsAbsent() && !options.Streams {
			continue
		}
		if err := fillEpisodes(ctx, options, entry); err != nil {
			return err
		}
	}

	if options.Json {
		return writeJson(options.Out, output)
	}
	return writeText(options, output)
}

func resolveMode(options *Options) (source.Mode, error) {
	modes := options.Source.Modes()
	if options.Mode != "" {
		mode, ok := source.FindMode(options.Source, options.Mode)
		if !ok {
			return source.Mode{}, fmt.Errorf("%w: %s", source.ErrUnknownMode, options.Mode)
		}
		return mode, nil
	}

	if options.Query != "" {
		if mode, ok := lo.Find(modes, func(m source.Mode) bool { return m.Search }); ok {
			return mode, nil
		}
	}
	return modes[0], nil
}

// fillEpisodes lists the episodes of the entry and, when asked, resolves the streams of the selected ones.
// A failing episode is reported in its entry and does not stop the others.
func fillEpisodes(ctx context.Context, options *Options, entry *Entry) error {
	filter := options.EpisodesFilter.OrElse(func(episodes []*source.Episode) []int {
		return lo.Range(len(episodes))
	})

	episodes, err := options.Source.ListEpisodes(ctx, entry.Item.ID)
	if err != nil {
		return fmt.Errorf("episodes of %q: %w", entry.Item.Title, err)
	}
	entry.ContentID = episodes.ContentID

	preferred := ""
	if options.Preferences != nil {
		preferred = options.Preferences.Preferred(options.Source.ID(), episodes.ContentID).OrEmpty()
	}

	for _, i := range filter(episodes.List) {
		episode := &Episode{Episode: episodes.At(i)}
		entry.Episodes = append(entry.Episodes, episode)
		if !options.Streams {
			continue
		}

		streams, err := options.Source.ResolveStreams(ctx, episodes.ContentID, episode.Episode)
		if err == nil && len(streams) == 0 {
			err = &source.EmptyResultError{What: source.StreamUnavailable}
		}
		if err != nil {
			log.Warnf("inline: streams of %s: %v", episode.Label, err)
			episode.Error = err.Error()
			continue
		}
		episode.Streams = streams
		episode.Selected = streams[source.SelectStream(streams, preferred)]
	}

	return nil
}

func writeText(options *Options, output *Output) error {
	for _, entry := range output.Result {
		if len(entry.Episodes) == 0 {
			if _, err := fmt.Fprintf(options.Out, "%s\t%s\n", entry.Item.ID, entry.Item.Title); err != nil {
				return err
			}
			continue
		}

		for _, ep := range entry.Episodes {
			line := ep.Key
			switch {
			case ep.Selected != nil:
				line = ep.Selected.URL
			case ep.Error != "":
				line = "# " + ep.Error
			}
			if _, err := fmt.Fprintf(options.Out, "%s\t%s\n", ep.Label, line); err != nil {
				return err
			}
		}
	}
	return nil
}
