package source

import (
	"fmt"

	"github.com/samber/lo"
)

// Fallback picks the default stream when no rule matches.
type Fallback int

const (
	First Fallback = iota
	Last
)

// DefaultRule decides which stream of a resolved list is the default.
type DefaultRule struct {
	// Flagged keeps the upstream default flags when at least one stream carries one.
	Flagged bool
	// Preferred is a label chosen over the fallback when present, e.g. "720p".
	Preferred string
	Fallback  Fallback
}

// Apply marks exactly one stream as default unless upstream flags are kept.
func (r DefaultRule) Apply(streams []*Stream) {
	if len(streams) == 0 {
		return
	}

	if r.Flagged && lo.SomeBy(streams, func(s *Stream) bool { return s.Default }) {
		return
	}

	chosen := 0
	if r.Fallback == Last {
		chosen = len(streams) - 1
	}
	if r.Preferred != "" {
		for i, s := range streams {
			if s.Label == r.Preferred {
				chosen = i
				break
			}
		}
	}

	for i, s := range streams {
		s.Default = i == chosen
	}
}

// DefaultIndex returns the index of the first stream flagged as default, 0 when none is, -1 when empty.
func DefaultIndex(streams []*Stream) int {
	if len(streams) == 0 {
		return -1
	}
	for i, s := range streams {
		if s.Default {
			return i
		}
	}
	return 0
}

// SelectStream returns the index of the stream labelled preferred, falling back to DefaultIndex.
func SelectStream(streams []*Stream, preferred string) int {
	if preferred != "" {
		for i, s := range streams {
			if s.Label == preferred {
				return i
			}
		}
	}
	return DefaultIndex(streams)
}

// NormalizeStreams resolves URLs, drops streams without one, labels unnamed ones and applies the rule.
func NormalizeStreams(streams []*Stream, rule DefaultRule) ([]*Stream, error) {
	playable := make([]*Stream, 0, len(streams))
	for i, s := range streams {
		if s == nil {
			continue
		}
		s.URL = AbsoluteURL(s.URL)
		if s.URL == "" {
			continue
		}
		if s.Label == "" {
			s.Label = fmt.Sprintf("Quality %d", i+1)
		}
		playable = append(playable, s)
	}

	if len(playable) == 0 {
		return nil, &EmptyResultError{What: StreamUnavailable}
	}

	rule.Apply(playable)
	return playable, nil
}
