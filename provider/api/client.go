// Package api is the upstream client shared by the source adapters.
// Requests go through a Forwarder, the same relay that serves /api/* over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/streambox/streambox/gateway"
	"github.com/streambox/streambox/log"
	"github.com/streambox/streambox/network"
	"github.com/streambox/streambox/source"
)

// Forwarder relays a request to the upstream media API.
type Forwarder interface {
	Forward(ctx context.Context, req *gateway.Request) (*gateway.Response, error)
}

// Envelope is the success convention of an upstream payload.
type Envelope int

const (
	// Bare payloads carry no status field.
	Bare Envelope = iota
	// Code payloads must carry code == 0.
	Code
	// CodeIfPresent payloads fail only when a non-zero code is present.
	CodeIfPresent
	// Success payloads must carry success == true.
	Success
)

// Client issues GET requests on behalf of one source and decodes their JSON payloads.
type Client struct {
	source    string
	forwarder Forwarder
}

// NewClient creates a Client tagging its errors with the source id.
func NewClient(sourceID string, forwarder Forwarder) *Client {
	return &Client{source: sourceID, forwarder: forwarder}
}

// Get fetches path, which may carry a query string, and checks the envelope.
// A top-level array payload is exposed as the "data" field.
func (c *Client) Get(ctx context.Context, path string, envelope Envelope) (source.Record, error) {
	rawPath, rawQuery, _ := strings.Cut(path, "?")
	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: malformed query %q: %w", c.source, rawQuery, err)
	}

	resp, err := c.forwarder.Forward(ctx, &gateway.Request{
		Method: http.MethodGet,
		Path:   rawPath,
		Query:  query,
		Header: http.Header{
			"Accept":          {"application/json"},
			"Accept-Encoding": {network.AcceptEncoding},
		},
	})
	if err != nil {
		return nil, &source.TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.Status < 200 || resp.Status > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &source.TransportError{Status: resp.Status}
	}

	body, err := network.DecodeBody(resp.Header, resp.Body)
	if err != nil {
		return nil, &source.TransportError{Status: resp.Status, Err: err}
	}

	record, err := decode(body)
	if err != nil {
		log.Warnf("%s: undecodable payload from %s: %v", c.source, rawPath, err)
		return nil, &source.ApplicationError{Source: c.source, Message: "invalid response"}
	}

	if err := c.check(record, envelope); err != nil {
		return nil, err
	}

	return record, nil
}

func (c *Client) check(record source.Record, envelope Envelope) error {
	fail := func() error {
		return &source.ApplicationError{Source: c.source, Message: record.String("message", "msg", "error")}
	}

	switch envelope {
	case Code:
		code, ok := record.Int("code")
		if !ok || code != 0 {
			return fail()
		}
	case CodeIfPresent:
		if code, ok := record.Int("code"); ok && code != 0 {
			return fail()
		}
	case Success:
		if !record.Bool("success") {
			return fail()
		}
	}
	return nil
}

func decode(r io.Reader) (source.Record, error) {
	d := json.NewDecoder(r)
	d.UseNumber()

	var payload any
	if err := d.Decode(&payload); err != nil {
		return nil, err
	}

	switch value := payload.(type) {
	case map[string]any:
		return value, nil
	case []any:
		return source.Record{"data": value}, nil
	default:
		return nil, errors.New("payload is neither an object nor an array")
	}
}
