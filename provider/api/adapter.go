package api

import (
	"context"
	"fmt"

	"github.com/streambox/streambox/source"
)

// Profile describes how one upstream lists content.
type Profile struct {
	ID   string
	Name string

	Modes []source.Mode
	// Lists maps a mode id to its path template.
	// Templates may use {page}, {offset}, {count} and {query}.
	Lists map[string]string
	// PageSize enables offset/count pagination when positive.
	PageSize int

	ListEnvelope Envelope
	// ListFields are the candidate paths of the item array.
	ListFields []string
	Mapping    *source.Mapping

	// Rule picks the default stream.
	Rule source.DefaultRule
}

// Adapter implements the listing half of source.Source from a Profile.
// Source packages embed it and add episodes and streams.
type Adapter struct {
	Profile
	Client *Client
}

// NewAdapter creates an Adapter whose requests go through forwarder.
func NewAdapter(profile Profile, forwarder Forwarder) *Adapter {
	return &Adapter{
		Profile: profile,
		Client:  NewClient(profile.ID, forwarder),
	}
}

func (a *Adapter) ID() string {
	return a.Profile.ID
}

func (a *Adapter) Name() string {
	return a.Profile.Name
}

func (a *Adapter) Modes() []source.Mode {
	return a.Profile.Modes
}

// ListContent fetches and normalizes one page of a listing.
// Unknown modes fail before any request is made.
func (a *Adapter) ListContent(ctx context.Context, query source.Query) ([]*source.Item, error) {
	template, ok := a.Lists[query.Mode]
	if !ok {
		return nil, fmt.Errorf("%s: %w %q", a.Profile.ID, source.ErrUnknownMode, query.Mode)
	}

	vars := PageVars(query.Page, a.PageSize)
	vars["query"] = query.Text

	record, err := a.Client.Get(ctx, Expand(template, vars), a.ListEnvelope)
	if err != nil {
		return nil, err
	}

	return a.Mapping.Items(record.Records(a.ListFields...), a.Profile.ID), nil
}

// Streams normalizes resolved streams with the profile's default rule.
func (a *Adapter) Streams(raw []*source.Stream) ([]*source.Stream, error) {
	return source.NormalizeStreams(raw, a.Rule)
}
