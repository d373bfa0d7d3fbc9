package entity

import (
	"time"

	"github.com/google/uuid"
)

// PhoneType classifies a Lebanese phone number.
type PhoneType string

const (
	PhoneMobile   PhoneType = "Mobile"
	PhoneLandline PhoneType = "Landline"
	PhoneMissing  PhoneType = "Missing"
	PhoneUnknown  PhoneType = "Unknown"
)

// Listing is one business row collected from a maps search.
type Listing struct {
	RunID          uuid.UUID      `json:"run_id"`
	Position       int            `json:"position"`
	Name           string         `json:"name"`
	Phone          string         `json:"phone"`
	PhoneRaw       string         `json:"phone_raw,omitempty"`
	PhoneLocal     string         `json:"phone_local,omitempty"`
	PhoneType      PhoneType      `json:"phone_type"`
	PhoneValid     bool           `json:"phone_valid"`
	Address        string         `json:"address"`
	Website        string         `json:"website"`
	Instagram      string         `json:"instagram,omitempty"`
	Facebook       string         `json:"facebook,omitempty"`
	Area           string         `json:"area"`
	Industry       string         `json:"industry"`
	ReviewsCount   *int           `json:"reviews_count,omitempty"`
	ReviewsAverage *float64       `json:"reviews_average,omitempty"`
	StoreShopping  string         `json:"store_shopping"`
	InStorePickup  string         `json:"in_store_pickup"`
	StoreDelivery  string         `json:"store_delivery"`
	PlaceType      string         `json:"place_type,omitempty"`
	OpensAt        string         `json:"opens_at,omitempty"`
	Introduction   string         `json:"introduction,omitempty"`
	MapsURL        string         `json:"maps_url,omitempty"`
	Score          int            `json:"score"`
	ScoreBreakdown map[string]int `json:"score_breakdown,omitempty"`
	ScrapedAt      time.Time      `json:"scraped_at"`
}
