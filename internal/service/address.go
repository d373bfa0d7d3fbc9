package service

import (
	"strings"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
)

// AreaMatcher decides whether a listing address belongs to the queried area.
type AreaMatcher struct {
	filter          catalog.AreaFilter
	includeSubAreas bool
}

// NewAreaMatcher builds a matcher. With includeSubAreas a listed neighbourhood
// is accepted unless the address names another main area.
func NewAreaMatcher(filter catalog.AreaFilter, includeSubAreas bool) AreaMatcher {
	return AreaMatcher{filter: filter, includeSubAreas: includeSubAreas}
}

// Match reports whether address satisfies the filter. An empty filter accepts
// everything.
func (m AreaMatcher) Match(address string) bool {
	if strings.TrimSpace(m.filter.Required) == "" {
		return true
	}
	if strings.TrimSpace(address) == "" {
		return false
	}
	for _, alias := range m.filter.Aliases {
		if catalog.ContainsPhrase(address, alias) {
			return true
		}
	}
	if !m.includeSubAreas {
		return false
	}
	for _, other := range m.filter.Excluded {
		if catalog.ContainsPhrase(address, other) {
			return false
		}
	}
	for _, allowed := range m.filter.Allowed {
		if catalog.ContainsPhrase(address, allowed) {
			return true
		}
	}
	return false
}

// Area returns the display name of the matched area.
func (m AreaMatcher) Area() string {
	return m.filter.Area
}
