package scoring

import (
	"net/url"
	"strings"
	"unicode"
)

const (
	categoryContact    = "contact"
	categoryWeb        = "web_presence"
	categoryReputation = "reputation"
	categoryProfile    = "profile"
)

var freeHostingDomains = []string{
	"wordpress.com",
	"blogspot.com",
	"wixsite.com",
	"weebly.com",
	"squarespace.com",
	"business.site",
	"godaddysites.com",
	"notion.site",
	"linktr.ee",
	"googlepages.com",
}

// ListingFeatures captures the listing signals used for scoring.
type ListingFeatures struct {
	PhoneValid     bool
	Mobile         bool
	Website        string
	Instagram      string
	Facebook       string
	ReviewsCount   *int
	ReviewsAverage *float64
	Address        string
	OpensAt        string
	PlaceType      string
	Introduction   string
}

// ScoreResult reports the aggregate score and the per-category breakdown.
type ScoreResult struct {
	Total     int
	Breakdown map[string]int
}

// ComputeScore evaluates the provided features and returns the score breakdown.
func ComputeScore(input ListingFeatures) ScoreResult {
	breakdown := map[string]int{
		categoryContact:    scoreContact(input),
		categoryWeb:        scoreWebPresence(input),
		categoryReputation: scoreReputation(input),
		categoryProfile:    scoreProfile(input),
	}

	total := 0
	for _, value := range breakdown {
		total += value
	}

	return ScoreResult{
		Total:     total,
		Breakdown: breakdown,
	}
}

func scoreContact(input ListingFeatures) int {
	if !input.PhoneValid {
		return 0
	}
	score := 20
	if input.Mobile {
		score += 10
	}
	return min(score, 30)
}

func scoreWebPresence(input ListingFeatures) int {
	score := 0
	if domain := extractDomain(input.Website); domain != "" {
		if highQualityDomain(domain) {
			score += 15
		} else {
			score += 10
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(input.Website)), "https://") {
			score += 5
		}
	}
	if strings.TrimSpace(input.Instagram) != "" {
		score += 5
	}
	if strings.TrimSpace(input.Facebook) != "" {
		score += 5
	}
	return min(score, 30)
}

func scoreReputation(input ListingFeatures) int {
	score := 0
	if input.ReviewsCount != nil {
		switch count := *input.ReviewsCount; {
		case count >= 50:
			score += 10
		case count >= 10:
			score += 7
		case count > 0:
			score += 3
		}
	}
	if input.ReviewsAverage != nil {
		switch avg := *input.ReviewsAverage; {
		case avg >= 4.5:
			score += 10
		case avg >= 4.0:
			score += 7
		case avg >= 3.0:
			score += 3
		}
	}
	return min(score, 20)
}

func scoreProfile(input ListingFeatures) int {
	score := 0
	if hasCompleteAddress(input.Address) {
		score += 5
	}
	if strings.TrimSpace(input.OpensAt) != "" {
		score += 5
	}
	if strings.TrimSpace(input.PlaceType) != "" {
		score += 5
	}
	if intro := strings.TrimSpace(input.Introduction); intro != "" && !strings.EqualFold(intro, "None Found") {
		score += 5
	}
	return min(score, 20)
}

// hasCompleteAddress wants a street-level address: letters plus at least one
// comma-separated segment.
func hasCompleteAddress(raw string) bool {
	addr := strings.TrimSpace(raw)
	if len(addr) < 10 {
		return false
	}
	var hasLetter bool
	separatorCount := 0
	for _, r := range addr {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case r == ',':
			separatorCount++
		}
	}
	return hasLetter && separatorCount >= 1
}

func highQualityDomain(domain string) bool {
	for _, bad := range freeHostingDomains {
		if domain == bad || strings.HasSuffix(domain, "."+bad) {
			return false
		}
	}
	return strings.Count(domain, ".") >= 1
}

func extractDomain(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	lowered := strings.ToLower(raw)
	if !strings.Contains(lowered, "://") {
		lowered = "https://" + lowered
	}
	parsed, err := url.Parse(lowered)
	if err != nil {
		return ""
	}
	host := strings.TrimSpace(strings.ToLower(parsed.Hostname()))
	return strings.TrimPrefix(host, "www.")
}
