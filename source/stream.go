package source

// Stream is one playable quality option of an episode.
type Stream struct {
	// Label is the quality name, e.g. "720p".
	Label string `json:"label"`
	// URL is absolute; protocol-relative URLs are resolved to https.
	URL string `json:"url"`
	// Default is true for the option preferred by the upstream or by the source's rule.
	Default bool `json:"default"`
}

// String returns the label or the URL for display.
func (s *Stream) String() string {
	if s.Label != "" {
		return s.Label
	}
	return s.URL
}
