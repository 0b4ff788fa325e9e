package network

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

// AcceptEncoding is the set of content encodings DecodeBody understands.
const AcceptEncoding = "br, gzip, deflate"

// DecodeBody returns a reader of the decoded response body according to Content-Encoding.
// Unknown encodings are rejected; identity bodies are returned as is.
func DecodeBody(header http.Header, body io.Reader) (io.Reader, error) {
	encoding := strings.ToLower(strings.TrimSpace(header.Get("Content-Encoding")))

	switch encoding {
	case "", "identity":
		return body, nil
	case "br":
		return brotli.NewReader(body), nil
	case "gzip", "x-gzip":
		r, err := gzip.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("gzip: %w", err)
		}
		return r, nil
	case "deflate":
		// HTTP deflate is the zlib format, not raw DEFLATE.
		r, err := zlib.NewReader(body)
		if err != nil {
			return nil, fmt.Errorf("deflate: %w", err)
		}
		return r, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
}
