package catalog

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStrictNameAndAliases(t *testing.T) {
	if got := StrictName("Sidon (Saida)"); got != "Sidon" {
		t.Fatalf("expected Sidon, got %q", got)
	}
	if got := StrictName(" Beirut "); got != "Beirut" {
		t.Fatalf("expected Beirut, got %q", got)
	}
	if diff := cmp.Diff([]string{"Tyre", "Sour"}, Aliases("Tyre (Sour)")); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Zahle"}, Aliases("Zahle")); diff != "" {
		t.Fatalf("aliases mismatch (-want +got):\n%s", diff)
	}
}

func TestSearchQuery(t *testing.T) {
	got := SearchQuery("Dentists", "Sidon (Saida)")
	if got != "Dentists in Sidon (Saida), Lebanon" {
		t.Fatalf("unexpected query: %q", got)
	}
}

func TestNeighbourhoodQuery(t *testing.T) {
	if got := NeighbourhoodQuery("Dentists", "Hamra", "Beirut"); got != "Dentists in Hamra, Beirut, Lebanon" {
		t.Fatalf("unexpected query: %q", got)
	}
	if got := NeighbourhoodQuery("Dentists", " ", "Beirut"); got != "Dentists in Beirut, Lebanon" {
		t.Fatalf("expected plain area query, got %q", got)
	}
}

func TestResolve(t *testing.T) {
	f := Resolve("sidon")
	if f.Area != "Sidon (Saida)" || f.Required != "Sidon" {
		t.Fatalf("unexpected filter: %+v", f)
	}
	if !contains(f.Allowed, "Saida") || !contains(f.Allowed, "Abra") {
		t.Fatalf("expected alias and neighbourhoods in allowed: %v", f.Allowed)
	}
	if !contains(f.Excluded, "Beirut") || contains(f.Excluded, "Sidon") {
		t.Fatalf("unexpected excluded list: %v", f.Excluded)
	}

	metn := Resolve("Metn")
	if contains(metn.Excluded, "Broummana") {
		t.Fatalf("neighbourhood of the queried area must not be excluded: %v", metn.Excluded)
	}

	unknown := Resolve("Jezzine")
	if unknown.Required != "Jezzine" || len(unknown.Allowed) != 1 {
		t.Fatalf("unexpected filter for unknown area: %+v", unknown)
	}
}

func TestCanonicalLookups(t *testing.T) {
	if got, ok := CanonicalArea("saida"); !ok || got != "Sidon (Saida)" {
		t.Fatalf("expected Sidon (Saida), got %q %v", got, ok)
	}
	if got, ok := CanonicalArea("metn"); !ok || got != "Metn" {
		t.Fatalf("expected Metn, got %q %v", got, ok)
	}
	if _, ok := CanonicalArea("Paris"); ok {
		t.Fatalf("expected unknown area")
	}
	if got, ok := CanonicalIndustry("law firms"); !ok || got != "Law Firms" {
		t.Fatalf("expected Law Firms, got %q %v", got, ok)
	}
}

func TestMatchIndustry(t *testing.T) {
	cases := []struct{ input, want string }{
		{"dentists", "Dentists"},
		{"dentist", "Dentists"},
		{"pharmacy", "Pharmacies"},
		{"supermarket", "Supermarkets"},
		{"Real Estate", "Real Estate Companies"},
	}
	for _, tc := range cases {
		got, ok := MatchIndustry(tc.input)
		if !ok || got != tc.want {
			t.Fatalf("%q: expected %q, got %q (%v)", tc.input, tc.want, got, ok)
		}
	}
	if _, ok := MatchIndustry("zzzz"); ok {
		t.Fatalf("expected no match")
	}
}

func TestMatchArea(t *testing.T) {
	area, sub, ok := MatchArea("hamra")
	if !ok || area != "Beirut" || sub != "Hamra" {
		t.Fatalf("expected Beirut/Hamra, got %q %q %v", area, sub, ok)
	}
	area, sub, ok = MatchArea("Tripoly")
	if !ok || area != "Tripoli" || sub != "" {
		t.Fatalf("expected Tripoli, got %q %q %v", area, sub, ok)
	}
	if _, _, ok := MatchArea("Antarctica"); ok {
		t.Fatalf("expected no match")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct{ input, want string }{
		{"Café  Beyrouth!", "cafe beyrouth"},
		{"Achrafieh-Beirut", "achrafieh beirut"},
		{"  ", ""},
		{"Zouk Mikaël, 1200", "zouk mikael 1200"},
	}
	for _, tc := range cases {
		if got := Normalize(tc.input); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}

func TestContainsPhrase(t *testing.T) {
	if !ContainsPhrase("Hamra St, BEIRUT, Lebanon", "beirut") {
		t.Fatalf("expected case-insensitive match")
	}
	if !ContainsPhrase("Sin El Fil, Metn", "sin el fil") {
		t.Fatalf("expected multi-word match")
	}
	if ContainsPhrase("US Embassy Road", "Bass") {
		t.Fatalf("expected whole-word matching")
	}
	if ContainsPhrase("anything", "") {
		t.Fatalf("empty phrase must not match")
	}
}

func contains(list []string, want string) bool {
	for _, v := range list {
		if v == want {
			return true
		}
	}
	return false
}
