package network

import (
	"math"
	"net/http"

	"golang.org/x/time/rate"
)

// LimitedTransport delays requests so that no more than the configured rate reaches the upstream.
// Requests are never retried or dropped, only throttled.
type LimitedTransport struct {
	Base    http.RoundTripper
	limiter *rate.Limiter
}

// Limit wraps rt with a token bucket allowing rps requests per second.
func Limit(rt http.RoundTripper, rps float64) *LimitedTransport {
	burst := int(math.Max(1, math.Ceil(rps)))
	return &LimitedTransport{
		Base:    rt,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// RoundTrip waits for a token bound to the request context, then delegates to Base.
func (t *LimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.Base.RoundTrip(req)
}
