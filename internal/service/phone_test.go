package service

import (
	"testing"

	"github.com/onnise/beyond-ads-scraper/internal/entity"
)

func TestClassifyPhone(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		local string
		e164  string
		typ   entity.PhoneType
		valid bool
	}{
		{"empty", "  ", "", "", entity.PhoneMissing, false},
		{"mobile 03 local", "03 123 456", "03123456", "+9613123456", entity.PhoneMobile, true},
		{"mobile without zero", "3123456", "03123456", "+9613123456", entity.PhoneMobile, true},
		{"mobile with country code", "+961 3 123 456", "03123456", "+9613123456", entity.PhoneMobile, true},
		{"mobile 71 intl prefix", "00961 71 123 456", "71123456", "+96171123456", entity.PhoneMobile, true},
		{"mobile 81", "81-234-567", "81234567", "+96181234567", entity.PhoneMobile, true},
		{"mobile zero after country code", "+961 071 123 456", "71123456", "+96171123456", entity.PhoneMobile, true},
		{"beirut landline", "01 345 678", "01345678", "+9611345678", entity.PhoneLandline, true},
		{"landline without zero", "1345678", "01345678", "+9611345678", entity.PhoneLandline, true},
		{"south landline", "+961 7 123 456", "07123456", "+9617123456", entity.PhoneLandline, true},
		{"unknown prefix", "02 123 456", "", "", entity.PhoneUnknown, false},
		{"too short", "12345", "", "", entity.PhoneUnknown, false},
		{"foreign number", "+1 415 555 1234", "", "", entity.PhoneUnknown, false},
		{"seven digits starting with two", "2123456", "", "", entity.PhoneUnknown, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifyPhone(tc.raw)
			if got.Local != tc.local || got.E164 != tc.e164 || got.Type != tc.typ || got.Valid != tc.valid {
				t.Fatalf("unexpected result for %q: %+v", tc.raw, got)
			}
		})
	}
}

func TestClassifyPhoneKeepsDigitsForInvalid(t *testing.T) {
	got := ClassifyPhone("(02) 12-34")
	if got.Valid {
		t.Fatalf("expected invalid phone")
	}
	if got.Digits != "021234" || got.Raw != "(02) 12-34" {
		t.Fatalf("expected raw and digits preserved, got %+v", got)
	}
}
