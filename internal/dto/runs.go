package dto

import "github.com/onnise/beyond-ads-scraper/internal/entity"

// ListingsResponse wraps the listings of a run.
type ListingsResponse struct {
	Run      *entity.Run      `json:"run"`
	Total    int              `json:"total"`
	Listings []entity.Listing `json:"listings"`
}
