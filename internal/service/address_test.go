package service

import (
	"testing"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
)

func TestAreaMatcherStrict(t *testing.T) {
	m := NewAreaMatcher(catalog.Resolve("Beirut"), false)

	cases := []struct {
		address string
		want    bool
	}{
		{"Hamra Street, Beirut, Lebanon", true},
		{"BEIRUT CENTRAL DISTRICT", true},
		{"Bliss St, Ras Beirut", true},
		{"Hamra Street", false},
		{"Jounieh Highway, Lebanon", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := m.Match(tc.address); got != tc.want {
			t.Fatalf("%q: expected %v, got %v", tc.address, tc.want, got)
		}
	}
}

func TestAreaMatcherAliasAndAccents(t *testing.T) {
	m := NewAreaMatcher(catalog.Resolve("Sidon (Saida)"), false)
	if !m.Match("Riad El Solh St, Saïda") {
		t.Fatalf("expected alias with accent to match")
	}
	if !m.Match("sidon, south governorate") {
		t.Fatalf("expected strict name to match")
	}
	if m.Area() != "Sidon (Saida)" {
		t.Fatalf("unexpected area %q", m.Area())
	}
}

func TestAreaMatcherSubAreas(t *testing.T) {
	m := NewAreaMatcher(catalog.Resolve("Beirut"), true)

	if !m.Match("Mar Mikhael, Armenia St") {
		t.Fatalf("expected neighbourhood to match in sub-area mode")
	}
	if m.Match("Sin El Fil, Metn") {
		t.Fatalf("expected address naming another main area to be rejected")
	}
	if m.Match("Main Road, Zahle") {
		t.Fatalf("expected unrelated area to be rejected")
	}
}

func TestAreaMatcherEmptyFilterAcceptsAll(t *testing.T) {
	m := NewAreaMatcher(catalog.AreaFilter{}, false)
	if !m.Match("anything") || !m.Match("") {
		t.Fatalf("empty filter should accept every address")
	}
}

func TestAreaMatcherWholeWordRule(t *testing.T) {
	cases := []struct {
		area    string
		address string
		want    bool
	}{
		{"Beirut", "hamra st, beirut", true},
		{"Beirut", "Achrafieh-Beirut", true},
		{"Beirut", "Beiruti Sweets, Jounieh", false},
		{"Beirut", "NorthBeirut Road", false},
		{"Sidon (Saida)", "Saïda", true},
		{"Sidon (Saida)", "SAIDA old souk", true},
		{"Sidon (Saida)", "Saidani Building, Tyre", false},
		{"Sidon (Saida)", "Sidon", true},
	}
	for _, tc := range cases {
		m := NewAreaMatcher(catalog.Resolve(tc.area), false)
		if got := m.Match(tc.address); got != tc.want {
			t.Fatalf("%s / %q: expected %v, got %v", tc.area, tc.address, tc.want, got)
		}
	}
}
