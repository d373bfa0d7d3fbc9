package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
	"github.com/onnise/beyond-ads-scraper/internal/entity"
	"github.com/onnise/beyond-ads-scraper/internal/scraper"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

func newTestProcessor(area string, opts ...ProcessorOption) *ListingProcessor {
	opts = append(opts, WithClock(func() time.Time { return fixedNow }))
	return NewListingProcessor(NewAreaMatcher(catalog.Resolve(area), false), opts...)
}

func TestProcessAcceptsValidListing(t *testing.T) {
	runID := uuid.New()
	p := newTestProcessor("Beirut")

	raw := scraper.RawPlace{
		Name:           "  Smile Dental  ",
		Address:        "Bliss St, Hamra, Beirut",
		Website:        "https://smile.com.lb/?utm_source=gmb",
		Phone:          "03 123 456",
		ReviewsCount:   "(1,204)",
		ReviewsAverage: "4,8",
		InfoLines:      []string{"· In-store shopping", "· Delivery"},
		OpensAt:        "Open ⋅ Closes 6 PM",
		PlaceType:      "Dentist",
		MapsURL:        "https://www.google.com/maps/place/smile",
	}

	got, verdict := p.Process(context.Background(), raw, ListingMeta{RunID: runID, Industry: "Dentists", Area: "Beirut", Position: 3})
	if verdict != VerdictAccepted {
		t.Fatalf("expected accepted, got %s", verdict)
	}

	want := entity.Listing{
		RunID:          runID,
		Position:       3,
		Name:           "Smile Dental",
		Phone:          "+9613123456",
		PhoneRaw:       "03 123 456",
		PhoneLocal:     "03123456",
		PhoneType:      entity.PhoneMobile,
		PhoneValid:     true,
		Address:        "Bliss St, Hamra, Beirut",
		Website:        "https://smile.com.lb/",
		Area:           "Beirut",
		Industry:       "Dentists",
		ReviewsCount:   intPtr(1204),
		ReviewsAverage: floatPtr(4.8),
		StoreShopping:  "Yes",
		InStorePickup:  "No",
		StoreDelivery:  "Yes",
		PlaceType:      "Dentist",
		OpensAt:        "Closes 6 PM",
		Introduction:   "None Found",
		MapsURL:        "https://www.google.com/maps/place/smile",
		ScrapedAt:      fixedNow,
	}
	if diff := cmp.Diff(want, got, cmpIgnoreScore()); diff != "" {
		t.Fatalf("listing mismatch (-want +got):\n%s", diff)
	}
	if got.Score <= 0 || len(got.ScoreBreakdown) != 4 {
		t.Fatalf("expected score breakdown, got %d %v", got.Score, got.ScoreBreakdown)
	}
}

func TestProcessVerdicts(t *testing.T) {
	p := newTestProcessor("Beirut", WithRequireValidPhone(true))
	ctx := context.Background()
	meta := ListingMeta{Area: "Beirut", Industry: "Hotels"}

	if _, v := p.Process(ctx, scraper.RawPlace{Address: "Hamra, Beirut"}, meta); v != VerdictMissingName {
		t.Fatalf("expected missing_name, got %s", v)
	}
	if _, v := p.Process(ctx, scraper.RawPlace{Name: "Sea View", Address: "Jounieh", Phone: "03123456"}, meta); v != VerdictOutsideArea {
		t.Fatalf("expected outside_area, got %s", v)
	}
	if _, v := p.Process(ctx, scraper.RawPlace{Name: "Sea View", Address: "Ain El Mreisseh, Beirut", Phone: "12"}, meta); v != VerdictInvalidPhone {
		t.Fatalf("expected invalid_phone, got %s", v)
	}
}

func TestProcessBlanksInvalidPhoneAndSocialWebsite(t *testing.T) {
	p := newTestProcessor("Beirut")

	got, verdict := p.Process(context.Background(), scraper.RawPlace{
		Name:    "Insta Shop",
		Address: "Gemmayze, Beirut",
		Phone:   "+33 1 23 45 67 89",
		Website: "https://www.instagram.com/instashop",
	}, ListingMeta{Area: "Beirut"})

	if verdict != VerdictAccepted {
		t.Fatalf("expected accepted, got %s", verdict)
	}
	if got.Phone != "" || got.PhoneValid || got.PhoneRaw != "+33 1 23 45 67 89" {
		t.Fatalf("expected blank phone with raw kept, got %+v", got)
	}
	if got.Website != "" || got.Instagram != "https://www.instagram.com/instashop" {
		t.Fatalf("expected instagram moved out of website, got website=%q instagram=%q", got.Website, got.Instagram)
	}
}

func TestProcessUsesFallbacks(t *testing.T) {
	p := newTestProcessor("Beirut")
	got, _ := p.Process(context.Background(), scraper.RawPlace{
		Name:         "Fallback",
		Address:      "Beirut",
		WebsiteText:  "fallback.com.lb",
		OpensAtAlt:   "Opens 9 AM",
		Introduction: "A cosy place",
	}, ListingMeta{})
	if got.Website != "https://fallback.com.lb" {
		t.Fatalf("expected website text fallback, got %q", got.Website)
	}
	if got.OpensAt != "Opens 9 AM" {
		t.Fatalf("expected alternate opening hours, got %q", got.OpensAt)
	}
	if got.Introduction != "A cosy place" {
		t.Fatalf("unexpected introduction %q", got.Introduction)
	}
}

func TestProcessDropsUnreachableWebsite(t *testing.T) {
	checker := NewWebsiteChecker(&stubHTTPClient{responses: map[string]int{
		"HEAD https://dead.com.lb": http.StatusNotFound,
	}})
	p := newTestProcessor("Beirut", WithWebsiteChecker(checker))

	got, _ := p.Process(context.Background(), scraper.RawPlace{
		Name:    "Dead Site",
		Address: "Beirut",
		Website: "dead.com.lb",
	}, ListingMeta{})
	if got.Website != "" {
		t.Fatalf("expected unreachable website to be blanked, got %q", got.Website)
	}
}

func cmpIgnoreScore() cmp.Option {
	return cmp.FilterPath(func(p cmp.Path) bool {
		switch p.String() {
		case "Score", "ScoreBreakdown":
			return true
		}
		return false
	}, cmp.Ignore())
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }
