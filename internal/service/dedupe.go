package service

import (
	"sync"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

// IdentityKey is the normalized (name, phone) pair used for deduplication.
// A blanked phone falls back to the digits of the raw value, so listings with
// no phone at all collide on their name alone.
func IdentityKey(l entity.Listing) string {
	return catalog.Normalize(l.Name) + "|" + phoneKey(l)
}

func phoneKey(l entity.Listing) string {
	switch {
	case l.Phone != "":
		return l.Phone
	case l.PhoneLocal != "":
		return l.PhoneLocal
	}
	return onlyDigits(l.PhoneRaw)
}

// Deduplicator remembers identity keys across a run.
type Deduplicator struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

// NewDeduplicator returns an empty deduplicator.
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Seen records l and reports whether an equivalent listing was recorded before.
func (d *Deduplicator) Seen(l entity.Listing) bool {
	key := IdentityKey(l)
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.seen[key]; dup {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Dedupe keeps the first occurrence of every identity key, preserving order.
func Dedupe(listings []entity.Listing) []entity.Listing {
	if len(listings) == 0 {
		return listings
	}
	d := NewDeduplicator()
	out := make([]entity.Listing, 0, len(listings))
	for _, l := range listings {
		if d.Seen(l) {
			continue
		}
		out = append(out, l)
	}
	return out
}
