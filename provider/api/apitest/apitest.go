// Package apitest provides a fake upstream for adapter tests.
package apitest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/streambox/streambox/gateway"
)

// Reply is a canned upstream answer. A zero Status means 200.
type Reply struct {
	Status int
	Body   string
}

// JSON is a 200 reply.
func JSON(body string) Reply {
	return Reply{Status: http.StatusOK, Body: body}
}

// Upstream serves canned replies keyed by path, optionally followed by
// "?k=v&..." to require query parameters. Longer keys win.
type Upstream struct {
	*httptest.Server

	mu      sync.Mutex
	replies map[string]Reply
	hits    []string
}

// NewUpstream starts an Upstream. Close it when done.
func NewUpstream(replies map[string]Reply) *Upstream {
	u := &Upstream{replies: replies}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	return u
}

// Gateway returns a gateway forwarding to the upstream.
func (u *Upstream) Gateway() *gateway.Gateway {
	g, err := gateway.New(gateway.Options{Base: u.URL, Client: u.Client()})
	if err != nil {
		panic(err)
	}
	return g
}

// Hits returns the request URIs received so far.
func (u *Upstream) Hits() []string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]string(nil), u.hits...)
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.hits = append(u.hits, r.URL.RequestURI())
	u.mu.Unlock()

	var (
		best  Reply
		found bool
		size  int
	)
	for k, reply := range u.replies {
		if !matches(k, r.URL) || len(k) < size {
			continue
		}
		best, found, size = reply, true, len(k)
	}

	if !found {
		http.NotFound(w, r)
		return
	}

	status := best.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(best.Body))
}

func matches(key string, u *url.URL) bool {
	path, rawQuery, _ := strings.Cut(key, "?")
	if path != u.Path {
		return false
	}
	want, err := url.ParseQuery(rawQuery)
	if err != nil {
		return false
	}
	got := u.Query()
	for k := range want {
		if got.Get(k) != want.Get(k) {
			return false
		}
	}
	return true
}
