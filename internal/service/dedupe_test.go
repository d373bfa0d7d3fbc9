package service

import (
	"testing"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

func TestDedupeCollapsesSameNameAndPhone(t *testing.T) {
	listings := []entity.Listing{
		{Name: "Smile Dental Clinic", Phone: "+9613123456", Address: "Hamra, Beirut"},
		{Name: "smile dental clinic.", Phone: "+9613123456", Address: "Hamra St, Beirut"},
		{Name: "Smile Dental Clinic", Phone: "+9611345678", Address: "Verdun, Beirut"},
		{Name: "Café Najjar", Address: "Achrafieh, Beirut"},
		{Name: "Cafe Najjar", Address: "achrafieh beirut"},
		{Name: "Cafe Najjar", Address: "Gemmayze, Beirut"},
	}

	got := Dedupe(listings)

	if len(got) != 3 {
		t.Fatalf("expected 3 unique listings, got %d: %+v", len(got), got)
	}
	if got[0].Address != "Hamra, Beirut" {
		t.Fatalf("expected first occurrence to win, got %q", got[0].Address)
	}
	if got[2].Address != "Achrafieh, Beirut" {
		t.Fatalf("expected first phoneless row to win, got %q", got[2].Address)
	}
}

func TestDedupeBlankPhoneIgnoresAddress(t *testing.T) {
	tests := map[string]struct {
		listings []entity.Listing
		want     int
	}{
		"no phone": {
			listings: []entity.Listing{
				{Name: "Cafe Najjar", Address: "Achrafieh, Beirut"},
				{Name: "Cafe Najjar", Address: "Gemmayze, Beirut"},
			},
			want: 1,
		},
		"same invalid phone": {
			listings: []entity.Listing{
				{Name: "Cafe Najjar", PhoneRaw: "12-34", Address: "Achrafieh, Beirut"},
				{Name: "Cafe Najjar", PhoneRaw: "1234", Address: "Gemmayze, Beirut"},
			},
			want: 1,
		},
		"different invalid phones": {
			listings: []entity.Listing{
				{Name: "Cafe Najjar", PhoneRaw: "1234"},
				{Name: "Cafe Najjar", PhoneRaw: "5678"},
			},
			want: 2,
		},
		"blank versus valid phone": {
			listings: []entity.Listing{
				{Name: "Cafe Najjar"},
				{Name: "Cafe Najjar", Phone: "+9613123456"},
			},
			want: 2,
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Dedupe(tc.listings); len(got) != tc.want {
				t.Fatalf("expected %d survivors, got %d: %+v", tc.want, len(got), got)
			}
		})
	}
}

func TestDeduplicatorSeen(t *testing.T) {
	d := NewDeduplicator()
	l := entity.Listing{Name: "Abc", Phone: "+96171123456"}
	if d.Seen(l) {
		t.Fatalf("first sighting must not be a duplicate")
	}
	if !d.Seen(entity.Listing{Name: " ABC ", Phone: "+96171123456"}) {
		t.Fatalf("expected normalized name to collide")
	}
}

func TestDedupeEmpty(t *testing.T) {
	if got := Dedupe(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
