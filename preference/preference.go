// Package preference persists the preferred stream quality of each content item across sessions.
package preference

import (
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/streambox/streambox/filesystem"
	"github.com/streambox/streambox/where"
)

var cacher = gache.New[map[string]*Quality](
	&gache.Options{
		Path:       where.Preferences(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every stored preference.
func Get() (map[string]*Quality, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Quality), nil
	}
	return cached, nil
}

// Preferred returns the label stored for the item, if any.
func Preferred(sourceID, contentID string) mo.Option[string] {
	saved, err := Get()
	if err != nil {
		return mo.None[string]()
	}

	q, ok := saved[encode(sourceID, contentID)]
	if !ok || q.Label == "" {
		return mo.None[string]()
	}
	return mo.Some(q.Label)
}

// Save stores label as the preferred quality of the item, replacing any previous choice.
func Save(sourceID, contentID, title, label string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	q := &Quality{
		SourceID:  sourceID,
		ContentID: contentID,
		Title:     title,
		Label:     label,
		UpdatedAt: time.Now(),
	}
	saved[q.encode()] = q

	return cacher.Set(saved)
}

// Remove forgets the preference of the item.
func Remove(sourceID, contentID string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, encode(sourceID, contentID))
	return cacher.Set(saved)
}

// Clear removes every stored preference.
func Clear() error {
	return cacher.Set(make(map[string]*Quality))
}

// Store exposes the persisted preferences as a value for consumers that take them as a dependency.
type Store struct{}

func (Store) Preferred(sourceID, contentID string) mo.Option[string] {
	return Preferred(sourceID, contentID)
}

func (Store) Save(sourceID, contentID, title, label string) error {
	return Save(sourceID, contentID, title, label)
}
