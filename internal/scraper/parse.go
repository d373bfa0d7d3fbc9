package scraper

import (
	"strconv"
	"strings"
)

const (
	yes = "Yes"
	no  = "No"
)

// ParseReviewsCount turns "(1,234)" or "1,234 reviews" into 1234. Input
// without digits yields nil.
func ParseReviewsCount(raw string) *int {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return nil
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return nil
	}
	return &n
}

// ParseReviewsAverage turns "4,5" or "4.5" into 4.5. Unparsable input yields nil.
func ParseReviewsAverage(raw string) *float64 {
	cleaned := strings.NewReplacer("\u00a0", "", " ", "", ",", ".").Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return nil
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || v < 0 || v > 5 {
		return nil
	}
	return &v
}

// StoreInfo flags parsed from the "· In-store shopping" style lines.
type StoreInfo struct {
	Shopping string
	Pickup   string
	Delivery string
}

// ParseStoreInfo inspects the text after the first "·" of each line.
func ParseStoreInfo(lines []string) StoreInfo {
	info := StoreInfo{Shopping: no, Pickup: no, Delivery: no}
	for _, line := range lines {
		parts := strings.Split(line, "·")
		if len(parts) < 2 {
			continue
		}
		check := strings.ToLower(strings.ReplaceAll(parts[1], "\n", ""))
		if strings.Contains(check, "shop") {
			info.Shopping = yes
		}
		if strings.Contains(check, "pickup") {
			info.Pickup = yes
		}
		if strings.Contains(check, "delivery") {
			info.Delivery = yes
		}
	}
	return info
}

// ParseOpensAt keeps the part after "⋅" ("Open ⋅ Closes 10 PM" gives
// "Closes 10 PM") and drops narrow no-break spaces.
func ParseOpensAt(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "⋅")
	value := raw
	if len(parts) > 1 {
		value = parts[1]
	}
	return strings.TrimSpace(strings.ReplaceAll(value, "\u202f", ""))
}
