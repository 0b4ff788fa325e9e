package source

import (
	"regexp"
	"strings"
)

// ListLimit is the maximum number of items of a normalized listing.
const ListLimit = 15

// Mapping names the candidate upstream fields of each Item field, in priority order.
type Mapping struct {
	ID    []string
	Title []string
	Image []string
	Badge []string
	Extra []string

	TitleFallback string
	BadgeFallback string
	// BadgeSuffix is appended to the badge, fallback included, e.g. " Eps".
	BadgeSuffix string

	// TitleFilter and ImageFilter post-process the picked values.
	TitleFilter func(string) string
	ImageFilter func(string) string
}

// Item maps a record into an Item tagged with the source id.
func (m *Mapping) Item(r Record, tag string) *Item {
	item := &Item{
		ID:       r.String(m.ID...),
		Title:    r.String(m.Title...),
		ImageURL: r.String(m.Image...),
		Badge:    r.String(m.Badge...),
		Extra:    r.String(m.Extra...),
		Source:   tag,
	}

	if item.Title == "" {
		item.Title = m.TitleFallback
	}
	if m.TitleFilter != nil {
		item.Title = m.TitleFilter(item.Title)
	}
	if m.ImageFilter != nil {
		item.ImageURL = m.ImageFilter(item.ImageURL)
	}
	if item.Badge == "" {
		item.Badge = m.BadgeFallback
	}
	item.Badge += m.BadgeSuffix

	return item
}

// Items normalizes raw listing records: dedup by id (first seen wins), truncate to ListLimit, then map.
func (m *Mapping) Items(records []Record, tag string) []*Item {
	unique := Dedupe(records, func(r Record) string {
		return r.String(m.ID...)
	})

	unique = Truncate(unique, ListLimit)

	items := make([]*Item, len(unique))
	for i, r := range unique {
		items[i] = m.Item(r, tag)
	}
	return items
}

// Dedupe keeps the first element of every key, preserving order.
func Dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	unique := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		unique = append(unique, item)
	}
	return unique
}

// Truncate returns at most the first n items.
func Truncate[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}

var titleNoise = regexp.MustCompile(`Nonton Drama |Nonton Drakor | Sub Indo|\(\d+\)`)

// CleanTitle removes site boilerplate such as "Nonton Drama " or " Sub Indo" and year markers from a title.
func CleanTitle(title string) string {
	return strings.TrimSpace(titleNoise.ReplaceAllString(title, ""))
}

var resizeParam = regexp.MustCompile(`resize=\d+,\d+`)

// UpgradeImage rewrites the first thumbnail resize parameter to a larger rendition.
func UpgradeImage(url string) string {
	if url == "" {
		return ""
	}
	loc := resizeParam.FindStringIndex(url)
	if loc == nil {
		return url
	}
	return url[:loc[0]] + "resize=400,560" + url[loc[1]:]
}

// AbsoluteURL resolves a protocol-relative URL to https.
func AbsoluteURL(url string) string {
	url = strings.TrimSpace(url)
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	dashRun       = regexp.MustCompile(`-+`)
)

// CorrectIdentifier strips a leading prefix the upstream sometimes glues onto identifiers
// and collapses whitespace and repeated dashes.
func CorrectIdentifier(id, prefix string) string {
	id = strings.TrimSpace(id)
	id = strings.TrimPrefix(id, prefix)
	id = whitespaceRun.ReplaceAllString(id, "-")
	return dashRun.ReplaceAllString(id, "-")
}
