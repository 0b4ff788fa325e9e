package preference

import (
	"fmt"
	"time"
)

// Quality is the stream label a user last picked for a content item.
type Quality struct {
	SourceID  string    `json:"source_id"`
	ContentID string    `json:"content_id"`
	Title     string    `json:"title"`
	Label     string    `json:"label"`
	UpdatedAt time.Time `json:"updated_at"`
}

func encode(sourceID, contentID string) string {
	return fmt.Sprintf("%s (%s)", contentID, sourceID)
}

func (q *Quality) encode() string {
	return encode(q.SourceID, q.ContentID)
}

func (q *Quality) String() string {
	if q.Title == "" {
		return fmt.Sprintf("%s : %s", q.ContentID, q.Label)
	}
	return fmt.Sprintf("%s : %s", q.Title, q.Label)
}
