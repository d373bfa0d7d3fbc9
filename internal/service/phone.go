package service

import (
	"strings"

	"github.com/nyaruka/phonenumbers"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

const (
	phoneRegion      = "LB"
	lebanonCode      = "961"
	lebanonIntlCode  = "00961"
	lebanonE164Start = "+961"
)

var (
	mobilePrefixes   = []string{"03", "70", "71", "76", "78", "79", "81"}
	landlinePrefixes = []string{"01", "04", "05", "06", "07", "08", "09"}
)

// PhoneResult is the outcome of classifying a raw phone string.
type PhoneResult struct {
	Raw    string
	Digits string
	Local  string
	E164   string
	Type   entity.PhoneType
	Valid  bool
}

// ClassifyPhone validates a Lebanese phone number and returns its local
// 8-digit form plus the E.164 form when valid.
func ClassifyPhone(raw string) PhoneResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PhoneResult{Type: entity.PhoneMissing}
	}

	digits := onlyDigits(raw)
	result := PhoneResult{Raw: raw, Digits: digits, Type: entity.PhoneUnknown}

	switch {
	case strings.HasPrefix(digits, lebanonIntlCode):
		digits = digits[len(lebanonIntlCode):]
	case strings.HasPrefix(digits, lebanonCode):
		digits = digits[len(lebanonCode):]
	}
	if len(digits) == 9 && digits[0] == '0' {
		digits = digits[1:]
	}

	local, phoneType := classifyLocal(digits)
	if local == "" {
		return result
	}

	result.Local = local
	result.Type = phoneType
	result.Valid = true
	result.E164 = formatE164(local)
	return result
}

func classifyLocal(digits string) (string, entity.PhoneType) {
	switch len(digits) {
	case 7:
		switch digits[0] {
		case '3':
			return "0" + digits, entity.PhoneMobile
		case '1', '4', '5', '6', '7', '8', '9':
			return "0" + digits, entity.PhoneLandline
		}
	case 8:
		prefix := digits[:2]
		if hasPrefix(prefix, mobilePrefixes) {
			return digits, entity.PhoneMobile
		}
		if hasPrefix(prefix, landlinePrefixes) {
			return digits, entity.PhoneLandline
		}
	}
	return "", entity.PhoneUnknown
}

func formatE164(local string) string {
	number, err := phonenumbers.Parse(local, phoneRegion)
	if err == nil && number.GetCountryCode() == 961 {
		return phonenumbers.Format(number, phonenumbers.E164)
	}
	return lebanonE164Start + strings.TrimPrefix(local, "0")
}

func hasPrefix(prefix string, set []string) bool {
	for _, p := range set {
		if prefix == p {
			return true
		}
	}
	return false
}

func onlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
