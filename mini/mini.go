// Package mini implements a prompt driven terminal browser: pick a source, list or search it,
// then watch episodes through a playback session.
package mini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
	"github.com/streambox/streambox/player"
	"github.com/streambox/streambox/session"
	"github.com/streambox/streambox/source"
	"github.com/streambox/streambox/util"
)

var truncateAt = 100

type Options struct {
	// Sources by id and Order, their display order.
	Sources map[string]source.Source
	Order   []string
	// Source skips the source prompt when set.
	Source string
	Player player.Player
	// Preferences may be nil.
	Preferences session.Preferences
	Out         io.Writer
}

type mini struct {
	out    io.Writer
	prompt prompter
	player player.Player

	state         state
	statesHistory util.Stack[state]

	sources map[string]source.Source
	order   []string
	session *session.Session

	selectedSource source.Source
	mode           source.Mode
	query          string
	page           int
	items          []*source.Item
	selectedItem   *source.Item
}

func newMini(options *Options, prompt prompter) *mini {
	out := options.Out
	if out == nil {
		out = os.Stdout
	}

	order := lo.Filter(options.Order, func(id string, _ int) bool {
		_, ok := options.Sources[id]
		return ok
	})

	return &mini{
		out:           out,
		prompt:        prompt,
		player:        options.Player,
		statesHistory: util.Stack[state]{},
		sources:       options.Sources,
		order:         order,
		page:          1,
		session: session.New(session.Options{
			Sources:     options.Sources,
			Source:      options.Source,
			Preferences: options.Preferences,
		}),
	}
}

func (m *mini) previousState() {
	if previous, ok := m.statesHistory.Pop(); ok {
		m.setState(previous)
		return
	}
	m.setState(quitState)
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{quitState, playbackState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

// Run drives the prompts until the user quits or ctx is done.
func Run(ctx context.Context, options *Options) error {
	if w, _, err := util.TerminalSize(); err == nil {
		truncateAt = w - 4
	}

	return run(ctx, newMini(options, &surveyPrompter{pageSize: source.ListLimit + 4}), options.Source)
}

func run(ctx context.Context, m *mini, sourceID string) error {
	defer func() {
		if m.player != nil {
			_ = m.player.Close()
		}
	}()

	m.state = sourceSelectState
	if sourceID != "" {
		src, ok := m.sources[sourceID]
		if !ok {
			return fmt.Errorf("%w: %q", session.ErrUnknownSource, sourceID)
		}
		m.selectedSource = src
		m.state = modeSelectState
	}

	for m.state != quitState {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := m.handleState(ctx)
		if errors.Is(err, errInterrupted) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	return nil
}

func (m *mini) handleState(ctx context.Context) error {
	switch m.state {
	case sourceSelectState:
		return m.handleSourceSelectState()
	case modeSelectState:
		return m.handleModeSelectState()
	case searchState:
		return m.handleSearchState()
	case itemSelectState:
		return m.handleItemSelectState(ctx)
	case playbackState:
		return m.handlePlaybackState(ctx)
	}

	return nil
}
