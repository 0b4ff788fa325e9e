package session

import (
	"context"
	"fmt"

	"github.com/streambox/streambox/source"
)

// Intent is a user command for Dispatch.
type Intent interface {
	intent()
}

type (
	SelectContent struct {
		Item *source.Item
	}

	GoToEpisode struct {
		Index int
	}

	// StepEpisode moves by Delta, usually +1 or -1.
	StepEpisode struct {
		Delta int
	}

	SelectQuality struct {
		Index int
	}

	Retry struct{}

	Close struct{}

	SwitchSource struct {
		Source string
	}
)

func (SelectContent) intent() {}
func (GoToEpisode) intent()   {}
func (StepEpisode) intent()   {}
func (SelectQuality) intent() {}
func (Retry) intent()         {}
func (Close) intent()         {}
func (SwitchSource) intent()  {}

// Dispatch runs intent against the session.
func (s *Session) Dispatch(ctx context.Context, intent Intent) (Snapshot, error) {
	switch i := intent.(type) {
	case SelectContent:
		return s.SelectContent(ctx, i.Item)
	case GoToEpisode:
		return s.GoToEpisode(ctx, i.Index)
	case StepEpisode:
		return s.StepEpisode(ctx, i.Delta)
	case SelectQuality:
		return s.SelectQuality(i.Index)
	case Retry:
		return s.Retry(ctx)
	case Close:
		return s.Close(), nil
	case SwitchSource:
		return s.SwitchSource(i.Source)
	default:
		return s.Snapshot(), fmt.Errorf("unsupported intent %T", intent)
	}
}
