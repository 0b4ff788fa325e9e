// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Streambox is the canonical application identifier used for filesystem paths and CLI branding.
	Streambox = "streambox"

	// Version is the current application semantic version string.
	Version = "0.3.0"

	// UserAgent is the default HTTP User-Agent string used for upstream requests.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

const (
	// DefaultUpstream is the media API that the gateway forwards /api/* to.
	DefaultUpstream = "https://dramabos.asia/api"

	// DefaultAddr is the listen address of the gateway.
	DefaultAddr = ":8787"

	// APIPrefix is the path prefix routed to the upstream.
	APIPrefix = "/api"

	// TokenParam is the query parameter carrying the shared secret.
	TokenParam = "token"
)

// Build metadata, set with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// Values of runtime.GOOS that need platform specific handling.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)
