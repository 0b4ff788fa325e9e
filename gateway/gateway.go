// Package gateway relays /api/* requests to the upstream media API and serves the panel document.
package gateway

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/VictoriaMetrics/metrics"
	"github.com/streambox/streambox/constant"
	"github.com/streambox/streambox/log"
)

// ErrUpstream is returned by Forward when the upstream could not be reached.
var ErrUpstream = errors.New("upstream request failed")

// strippedHeaders identify the original client and are never forwarded.
var strippedHeaders = []string{
	"Host",
	"Cf-Connecting-Ip",
	"X-Forwarded-For",
	"X-Real-Ip",
	"X-Forwarded-Host",
	"X-Forwarded-Proto",
	"Forwarded",
	"True-Client-Ip",
}

// hopHeaders are connection-scoped and dropped in both directions.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
	"Content-Length",
}

// Request is a request to relay. Path is relative to the upstream base and already escaped.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response is the relayed upstream response with CORS and no-store applied.
// The caller must close Body.
type Response struct {
	Status        int
	Header        http.Header
	Body          io.ReadCloser
	ContentLength int64
}

// Options configure a Gateway.
type Options struct {
	// Base is the upstream URL that request paths are appended to.
	Base string
	// DefaultLang is set as the lang query parameter when a request has none.
	DefaultLang string
	// CacheTTL in seconds is sent upstream as a Cache-Control hint when positive.
	CacheTTL int
	Client   *http.Client
}

// Gateway forwards requests to the upstream.
type Gateway struct {
	base        string
	defaultLang string
	cacheTTL    int
	client      *http.Client
}

// New creates a Gateway. Base must be an absolute URL.
func New(opts Options) (*Gateway, error) {
	base, err := url.Parse(opts.Base)
	if err != nil {
		return nil, fmt.Errorf("upstream base: %w", err)
	}
	if !base.IsAbs() {
		return nil, fmt.Errorf("upstream base %q is not absolute", opts.Base)
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &Gateway{
		base:        strings.TrimSuffix(opts.Base, "/"),
		defaultLang: opts.DefaultLang,
		cacheTTL:    opts.CacheTTL,
		client:      client,
	}, nil
}

// Target builds the upstream URL of a request.
// Each query key keeps its last value, and the token parameter is dropped.
func (g *Gateway) Target(path string, query url.Values) (*url.URL, error) {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	target, err := url.Parse(g.base + path)
	if err != nil {
		return nil, err
	}

	values := target.Query()
	for k, vs := range query {
		if k == constant.TokenParam || len(vs) == 0 {
			continue
		}
		values.Set(k, vs[len(vs)-1])
	}
	if g.defaultLang != "" && values.Get("lang") == "" {
		values.Set("lang", g.defaultLang)
	}
	target.RawQuery = values.Encode()

	return target, nil
}

// Forward relays req to the upstream. A reached upstream always yields a Response,
// whatever its status; only transport failures return an error wrapping ErrUpstream.
func (g *Gateway) Forward(ctx context.Context, req *Request) (*Response, error) {
	target, err := g.Target(req.Path, req.Query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if method != http.MethodGet && method != http.MethodHead && len(req.Body) > 0 {
		body = bytes.NewReader(req.Body)
	}

	upstreamReq, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	for k, vs := range req.Header {
		for _, v := range vs {
			upstreamReq.Header.Add(k, v)
		}
	}
	for _, h := range strippedHeaders {
		upstreamReq.Header.Del(h)
	}
	for _, h := range hopHeaders {
		upstreamReq.Header.Del(h)
	}
	if upstreamReq.Header.Get("User-Agent") == "" {
		upstreamReq.Header.Set("User-Agent", constant.UserAgent)
	}
	if g.cacheTTL > 0 {
		upstreamReq.Header.Set("Cache-Control", "max-age="+strconv.Itoa(g.cacheTTL))
	}

	log.Debugf("forwarding %s %s", method, target.Path)

	resp, err := g.client.Do(upstreamReq)
	if err != nil {
		metrics.GetOrCreateCounter(`streambox_upstream_errors_total`).Inc()
		log.Warnf("upstream %s %s: %v", method, target.Path, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	metrics.GetOrCreateCounter(fmt.Sprintf(`streambox_upstream_responses_total{status="%d"}`, resp.StatusCode)).Inc()

	header := resp.Header.Clone()
	for _, h := range hopHeaders {
		header.Del(h)
	}
	ApplyCORS(header)
	header.Set("Cache-Control", "no-store")

	return &Response{
		Status:        resp.StatusCode,
		Header:        header,
		Body:          resp.Body,
		ContentLength: resp.ContentLength,
	}, nil
}
