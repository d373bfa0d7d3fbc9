package scoring

import "testing"

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func TestComputeScore_FullCoverage(t *testing.T) {
	input := ListingFeatures{
		PhoneValid:     true,
		Mobile:         true,
		Website:        "https://acme.com.lb",
		Instagram:      "https://instagram.com/acme",
		Facebook:       "https://facebook.com/acme",
		ReviewsCount:   intPtr(120),
		ReviewsAverage: floatPtr(4.7),
		Address:        "Bliss Street, Hamra, Beirut",
		OpensAt:        "Opens 9AM",
		PlaceType:      "Dentist",
		Introduction:   "Family dental clinic",
	}

	score := ComputeScore(input)

	if score.Total != 100 {
		t.Fatalf("expected full score 100, got %d (%v)", score.Total, score.Breakdown)
	}
	if score.Breakdown[categoryContact] != 30 {
		t.Fatalf("expected contact 30, got %d", score.Breakdown[categoryContact])
	}
	if score.Breakdown[categoryWeb] != 30 {
		t.Fatalf("expected web presence 30, got %d", score.Breakdown[categoryWeb])
	}
	if score.Breakdown[categoryReputation] != 20 {
		t.Fatalf("expected reputation 20, got %d", score.Breakdown[categoryReputation])
	}
	if score.Breakdown[categoryProfile] != 20 {
		t.Fatalf("expected profile 20, got %d", score.Breakdown[categoryProfile])
	}
}

func TestComputeScore_MinimalSignals(t *testing.T) {
	input := ListingFeatures{
		Website:      "",
		Address:      "Beirut",
		Introduction: "None Found",
	}

	score := ComputeScore(input)

	if score.Total != 0 {
		t.Fatalf("expected zero score for insufficient signals, got %d (%v)", score.Total, score.Breakdown)
	}
}

func TestComputeScore_FreeHostingAndLandline(t *testing.T) {
	input := ListingFeatures{
		PhoneValid:     true,
		Website:        "http://myshop.wordpress.com",
		ReviewsCount:   intPtr(12),
		ReviewsAverage: floatPtr(3.2),
	}

	score := ComputeScore(input)

	if got := score.Breakdown[categoryContact]; got != 20 {
		t.Fatalf("expected landline contact 20, got %d", got)
	}
	if got := score.Breakdown[categoryWeb]; got != 10 {
		t.Fatalf("expected free hosting web presence 10, got %d", got)
	}
	if got := score.Breakdown[categoryReputation]; got != 10 {
		t.Fatalf("expected reputation 10, got %d", got)
	}
	if score.Total != 40 {
		t.Fatalf("expected total 40, got %d", score.Total)
	}
}

func TestExtractDomain(t *testing.T) {
	cases := []struct{ input, want string }{
		{"https://www.Example.com/path", "example.com"},
		{"example.org", "example.org"},
		{"", ""},
		{"http://shop.example.com:8080", "shop.example.com"},
	}
	for _, tc := range cases {
		if got := extractDomain(tc.input); got != tc.want {
			t.Fatalf("%q: expected %q, got %q", tc.input, tc.want, got)
		}
	}
}
