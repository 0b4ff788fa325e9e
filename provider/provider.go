// Package provider manages the built-in source adapters.
package provider

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/streambox/streambox/provider/api"
	"github.com/streambox/streambox/provider/dramabox"
	"github.com/streambox/streambox/provider/dramaid"
	"github.com/streambox/streambox/provider/moviebox"
	"github.com/streambox/streambox/provider/shortmax"
	"github.com/streambox/streambox/provider/starshort"
	"github.com/streambox/streambox/provider/tensei"
	"github.com/streambox/streambox/source"
)

// Provider represents a source adapter.
type Provider struct {
	ID   string
	Name string
	// CreateSource builds the adapter on top of a forwarder, usually the gateway.
	CreateSource func(forwarder api.Forwarder) source.Source
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns the built-in providers in display order.
func Builtins() []*Provider {
	return []*Provider{
		{
			ID:   dramabox.ID,
			Name: dramabox.Name,
			CreateSource: func(f api.Forwarder) source.Source {
				return dramabox.New(f)
			},
		},
		{
			ID:   shortmax.ID,
			Name: shortmax.Name,
			CreateSource: func(f api.Forwarder) source.Source {
				return shortmax.New(f)
			},
		},
		{
			ID:   starshort.ID,
			Name: starshort.Name,
			CreateSource: func(f api.Forwarder) source.Source {
				return starshort.New(f)
			},
		},
		{
			ID:   tensei.ID,
			Name: tensei.Name,
			CreateSource: func(f api.Forwarder) source.Source {
				return tensei.New(f)
			},
		},
		{
			ID:   dramaid.ID,
			Name: dramaid.Name,
			CreateSource: func(f api.Forwarder) source.Source {
				return dramaid.New(f)
			},
		},
		{
			ID:   moviebox.ID,
			Name: moviebox.Name,
			CreateSource: func(f api.Forwarder) source.Source {
				return moviebox.New(f)
			},
		},
	}
}

// Get finds a provider by id or name, ignoring case.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return strings.EqualFold(p.ID, name) || strings.EqualFold(p.Name, name)
	})
}

// Closest returns the provider whose id is nearest to name by edit distance.
func Closest(name string) *Provider {
	name = strings.ToLower(name)
	return lo.MinBy(Builtins(), func(a, b *Provider) bool {
		return levenshtein.Distance(name, a.ID) < levenshtein.Distance(name, b.ID)
	})
}

// IDs returns the ids of all providers.
func IDs() []string {
	return lo.Map(Builtins(), func(p *Provider, _ int) string {
		return p.ID
	})
}

// Sources creates every built-in source over the same forwarder, keyed by id.
func Sources(forwarder api.Forwarder) map[string]source.Source {
	return lo.SliceToMap(Builtins(), func(p *Provider) (string, source.Source) {
		return p.ID, p.CreateSource(forwarder)
	})
}
