// Package network provides a pre-configured HTTP client for upstream communication.
package network

import (
	"net/http"
	"time"

	"github.com/spf13/viper"
	"github.com/streambox/streambox/key"
	"github.com/streambox/streambox/log"
)

// Client is the HTTP client shared across the application.
// Setup replaces its transport according to the configuration.
var Client = &http.Client{
	Timeout:   time.Minute,
	Transport: newTransport(),
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// Setup rebuilds the transport chain of Client from the configuration:
// an optional browser TLS fingerprint, then an optional request rate limit.
func Setup() {
	var rt http.RoundTripper = newTransport()

	if viper.GetBool(key.NetworkTLSFingerprint) {
		log.Info("using browser TLS fingerprint for upstream requests")
		rt = NewFingerprintTransport()
	}

	if rps := viper.GetFloat64(key.UpstreamRateLimit); rps > 0 {
		log.Infof("limiting upstream requests to %.2f per second", rps)
		rt = Limit(rt, rps)
	}

	Client.Transport = rt
}
