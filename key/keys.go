// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// DefinedFieldsCount is the number of registered configuration fields.
const DefinedFieldsCount = 21

// Gateway Server - these keys configure the local HTTP gateway.
const (
	ServerAddr        = "server.addr"
	ServerToken       = "server.token"
	ServerReadTimeout = "server.read_timeout"
)

// Upstream Forwarding - these keys govern how /api/* is relayed to the media API.
const (
	UpstreamBase        = "upstream.base"
	UpstreamDefaultLang = "upstream.default_lang"
	UpstreamCacheTTL    = "upstream.cache_ttl"
	UpstreamRateLimit   = "upstream.rate_limit"
)

// Outbound Network - these keys tune the shared HTTP client.
const (
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// Metrics Exposure
const (
	MetricsEnabled = "metrics.enabled"
)

// Playback Session - these keys configure per-content session behaviour.
const (
	SessionRememberQuality = "session.remember_quality"
)

// Source Selection
const (
	DefaultSource = "sources.default"
)

// Search Interaction - these keys define the parameters for search discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Media Playback
const (
	Player = "player.default"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// CLI Execution Environment
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite  = "logs.write"
	LogsLevel  = "logs.level"
	LogsJson   = "logs.json"
	LogsStderr = "logs.stderr"
	LogsKeep   = "logs.keep"
)
