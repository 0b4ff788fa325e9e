package mini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/query"
	"github.com/streambox/streambox/session"
	"github.com/streambox/streambox/source"
	"github.com/streambox/streambox/style"
	"github.com/streambox/streambox/util"
)

type state int

const (
	sourceSelectState state = iota + 1
	modeSelectState
	searchState
	itemSelectState
	playbackState
	quitState
)

const (
	actionBack     = "Back"
	actionQuit     = "Quit"
	actionNextPage = "Next page"
	actionPrevPage = "Previous page"
	actionReplay   = "Play again"
	actionNext     = "Next episode"
	actionPrev     = "Previous episode"
	actionEpisode  = "Choose episode"
	actionQuality  = "Choose quality"
	actionRetry    = "Retry"
)

func (m *mini) handleSourceSelectState() error {
	options := lo.Map(m.order, func(id string, _ int) string {
		return m.sources[id].Name()
	})
	options = append(options, actionQuit)

	i, err := m.prompt.Select("Select Source", options)
	if err != nil {
		return err
	}
	if i >= len(m.order) {
		m.newState(quitState)
		return nil
	}

	id := m.order[i]
	if _, err := m.session.SwitchSource(id); err != nil {
		return err
	}
	m.selectedSource = m.sources[id]
	m.newState(modeSelectState)
	return nil
}

func (m *mini) handleModeSelectState() error {
	modes := m.selectedSource.Modes()
	options := lo.Map(modes, func(mode source.Mode, _ int) string {
		return mode.Label
	})
	options = append(options, actionBack, actionQuit)

	i, err := m.prompt.Select(m.selectedSource.Name()+" >>", options)
	if err != nil {
		return err
	}

	switch {
	case i < len(modes):
		m.mode = modes[i]
		m.page = 1
		m.query = ""
		if m.mode.Search {
			m.newState(searchState)
		} else {
			m.newState(itemSelectState)
		}
	case options[i] == actionBack:
		m.previousState()
	default:
		m.newState(quitState)
	}
	return nil
}

func (m *mini) handleSearchState() error {
	in, err := m.prompt.Input("Search "+m.selectedSource.Name(), query.SuggestMany)
	if err != nil {
		return err
	}

	in = strings.TrimSpace(in)
	if in == "" {
		m.previousState()
		return nil
	}

	if err := query.Remember(in, m.selectedSource.ID(), 1); err != nil {
		log.Warnf("mini: remembering query: %v", err)
	}

	m.query = in
	m.page = 1
	m.newState(itemSelectState)
	return nil
}

func (m *mini) fetch(ctx context.Context) ([]*source.Item, error) {
	erase := m.progress("Loading page " + strconv.Itoa(m.page) + "..")
	defer erase()

	return m.selectedSource.ListContent(ctx, source.Query{
		Mode: m.mode.ID,
		Page: m.page,
		Text: m.query,
	})
}

func (m *mini) handleItemSelectState(ctx context.Context) error {
	items, err := m.fetch(ctx)
	if err != nil {
		m.fail(err.Error())
		m.page = 1
		m.previousState()
		return nil
	}

	if len(items) == 0 {
		if m.page == 1 {
			m.fail("No results found")
			m.previousState()
			return nil
		}
		m.fail("No more results")
		m.page--
		return nil
	}

	m.items = items

	options := lo.Map(items, func(item *source.Item, _ int) string {
		return m.line(item)
	})
	options = append(options, actionNextPage)
	if m.page > 1 {
		options = append(options, actionPrevPage)
	}
	options = append(options, actionBack, actionQuit)

	heading := fmt.Sprintf("%s, page %d >>", m.mode.Label, m.page)
	if m.query != "" {
		heading = fmt.Sprintf("%q, page %d >>", m.query, m.page)
	}

	i, err := m.prompt.Select(heading, options)
	if err != nil {
		return err
	}

	if i < len(items) {
		m.selectedItem = items[i]
		m.newState(playbackState)
		return m.startPlayback(ctx)
	}

	switch options[i] {
	case actionNextPage:
		m.page++
	case actionPrevPage:
		m.page--
	case actionBack:
		m.page = 1
		m.previousState()
	default:
		m.newState(quitState)
	}
	return nil
}

func (m *mini) startPlayback(ctx context.Context) error {
	erase := m.progress("Loading episodes..")
	snap, err := m.session.SelectContent(ctx, m.selectedItem)
	erase()

	return m.settled(snap, err)
}

// settled reports the outcome of a session call and plays the active stream.
func (m *mini) settled(snap session.Snapshot, err error) error {
	var boundary *session.BoundaryError
	switch {
	case errors.As(err, &boundary):
		m.fail(util.Capitalize(boundary.Error()))
		return nil
	case errors.Is(err, session.ErrUnknownSource):
		return err
	case err != nil:
		m.fail(err.Error())
		return nil
	}

	if snap.State == session.Playing {
		m.play(snap)
	}
	return nil
}

func (m *mini) play(snap session.Snapshot) {
	stream := snap.Stream()
	name := snap.Item.Title + " - " + snap.Episode().Label

	if m.player == nil {
		fmt.Fprintf(m.out, "%s\n%s\n", name, stream.URL)
		return
	}

	if err := m.player.Play(stream.URL, name); err != nil {
		m.fail(err.Error())
		return
	}
	m.info(fmt.Sprintf("Playing %s (%s)", name, stream.String()))
}

func (m *mini) handlePlaybackState(ctx context.Context) error {
	snap := m.session.Snapshot()

	var options []string
	switch snap.State {
	case session.Playing:
		options = append(options, actionReplay, actionNext, actionPrev, actionEpisode)
		if len(snap.Streams) > 1 {
			options = append(options, actionQuality)
		}
	case session.EpisodesReady:
		options = append(options, actionEpisode)
	case session.Failed:
		options = append(options, actionRetry)
	}
	options = append(options, actionBack, actionQuit)

	i, err := m.prompt.Select(m.status(snap), options)
	if err != nil {
		return err
	}

	switch options[i] {
	case actionReplay:
		m.play(snap)
	case actionNext:
		return m.settled(m.session.StepEpisode(ctx, 1))
	case actionPrev:
		return m.settled(m.session.StepEpisode(ctx, -1))
	case actionEpisode:
		return m.chooseEpisode(ctx, snap)
	case actionQuality:
		return m.chooseQuality(snap)
	case actionRetry:
		return m.settled(m.session.Retry(ctx))
	case actionBack:
		m.session.Close()
		m.previousState()
	default:
		m.session.Close()
		m.newState(quitState)
	}
	return nil
}

func (m *mini) chooseEpisode(ctx context.Context, snap session.Snapshot) error {
	options := lo.Map(snap.Episodes, func(e *source.Episode, i int) string {
		if i == snap.Cursor {
			return e.Label + " " + style.Faint("(current)")
		}
		return e.Label
	})

	i, err := m.prompt.Select("Episodes of "+snap.Item.Title, options)
	if err != nil {
		return err
	}
	if i == snap.Cursor {
		return nil
	}
	return m.settled(m.session.GoToEpisode(ctx, i))
}

func (m *mini) chooseQuality(snap session.Snapshot) error {
	options := lo.Map(snap.Streams, func(s *source.Stream, i int) string {
		if i == snap.Active {
			return s.String() + " " + style.Faint("(current)")
		}
		return s.String()
	})

	i, err := m.prompt.Select("Quality", options)
	if err != nil {
		return err
	}
	if i == snap.Active {
		return nil
	}
	return m.settled(m.session.SelectQuality(i))
}

func (m *mini) status(snap session.Snapshot) string {
	title := snap.Item.Title
	switch snap.State {
	case session.Playing:
		return fmt.Sprintf("%s - %s (%d/%d) %s", title, snap.Episode().Label, snap.Cursor+1, len(snap.Episodes), snap.Stream().String())
	case session.Failed:
		return fmt.Sprintf("%s - %s", title, snap.Error())
	default:
		return fmt.Sprintf("%s - %s", title, snap.State)
	}
}

func (m *mini) line(item *source.Item) string {
	parts := []string{item.Title}
	if item.Badge != "" {
		parts = append(parts, style.Badge(item.Badge))
	}
	if item.Extra != "" {
		parts = append(parts, style.Faint(item.Extra))
	}
	return style.Truncate(truncateAt)(strings.Join(parts, " "))
}

func (m *mini) info(msg string) {
	fmt.Fprintln(m.out, style.Title(msg))
}

func (m *mini) fail(msg string) {
	fmt.Fprintln(m.out, style.ErrorTitle(msg))
}

func (m *mini) progress(msg string) (erase func()) {
	fmt.Fprintf(m.out, "\r%s", msg)
	return func() {
		fmt.Fprintf(m.out, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}
