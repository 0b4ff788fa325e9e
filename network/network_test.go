package network

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/streambox/streambox/key"
)

func TestDecodeBody(t *testing.T) {
	const payload = `{"data":{"list":[]}}`

	Convey("Given a brotli encoded body", t, func() {
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		_, _ = w.Write([]byte(payload))
		So(w.Close(), ShouldBeNil)

		header := http.Header{"Content-Encoding": {"br"}}

		Convey("It should be decoded", func() {
			r, err := DecodeBody(header, &buf)
			So(err, ShouldBeNil)
			out, err := io.ReadAll(r)
			So(err, ShouldBeNil)
			So(string(out), ShouldEqual, payload)
		})
	})

	Convey("Given a gzip encoded body", t, func() {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, _ = w.Write([]byte(payload))
		So(w.Close(), ShouldBeNil)

		r, err := DecodeBody(http.Header{"Content-Encoding": {"gzip"}}, &buf)
		So(err, ShouldBeNil)
		out, _ := io.ReadAll(r)
		So(string(out), ShouldEqual, payload)
	})

	Convey("Given a deflate encoded body", t, func() {
		var buf bytes.Buffer
		w := zlib.NewWriter(&buf)
		_, _ = w.Write([]byte(payload))
		So(w.Close(), ShouldBeNil)

		r, err := DecodeBody(http.Header{"Content-Encoding": {"deflate"}}, &buf)
		So(err, ShouldBeNil)
		out, _ := io.ReadAll(r)
		So(string(out), ShouldEqual, payload)
	})

	Convey("Given a deflate body without the zlib header", t, func() {
		_, err := DecodeBody(http.Header{"Content-Encoding": {"deflate"}}, bytes.NewBufferString(payload))
		So(err, ShouldNotBeNil)
	})

	Convey("Given an identity body", t, func() {
		r, err := DecodeBody(http.Header{}, bytes.NewBufferString(payload))
		So(err, ShouldBeNil)
		out, _ := io.ReadAll(r)
		So(string(out), ShouldEqual, payload)
	})

	Convey("Given an unknown encoding", t, func() {
		_, err := DecodeBody(http.Header{"Content-Encoding": {"zstd"}}, bytes.NewBufferString(payload))
		So(err, ShouldNotBeNil)
	})
}

func TestTransports(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	Convey("Given a rate limited transport", t, func() {
		client := &http.Client{Transport: Limit(http.DefaultTransport, 1000)}

		Convey("Requests should pass through", func() {
			for i := 0; i < 3; i++ {
				resp, err := client.Get(server.URL)
				So(err, ShouldBeNil)
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				_ = resp.Body.Close()
			}
		})
	})

	Convey("Given a slow rate limit", t, func() {
		client := &http.Client{Transport: Limit(http.DefaultTransport, 5)}

		Convey("Bursting past the bucket should wait", func() {
			start := time.Now()
			for i := 0; i < 7; i++ {
				resp, err := client.Get(server.URL)
				So(err, ShouldBeNil)
				_ = resp.Body.Close()
			}
			So(time.Since(start), ShouldBeGreaterThanOrEqualTo, 200*time.Millisecond)
		})
	})

	Convey("Given a fingerprint transport", t, func() {
		client := &http.Client{Transport: NewFingerprintTransport()}

		Convey("Plain HTTP requests should use the regular transport", func() {
			resp, err := client.Get(server.URL)
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			So(string(body), ShouldEqual, "ok")
		})
	})

	Convey("Given configuration", t, func() {
		defer viper.Set(key.UpstreamRateLimit, 0)
		defer viper.Set(key.NetworkTLSFingerprint, false)

		Convey("Setup should chain the configured transports", func() {
			viper.Set(key.NetworkTLSFingerprint, true)
			viper.Set(key.UpstreamRateLimit, 10)
			Setup()

			limited, ok := Client.Transport.(*LimitedTransport)
			So(ok, ShouldBeTrue)
			_, ok = limited.Base.(*FingerprintTransport)
			So(ok, ShouldBeTrue)
		})

		Convey("Setup without options should use a plain transport", func() {
			viper.Set(key.NetworkTLSFingerprint, false)
			viper.Set(key.UpstreamRateLimit, 0)
			Setup()

			_, ok := Client.Transport.(*http.Transport)
			So(ok, ShouldBeTrue)
		})
	})
}
