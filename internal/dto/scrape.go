package dto

// ScrapeRequest is the payload used by the scraping endpoint.
type ScrapeRequest struct {
	Industry          string `json:"industry"`
	Area              string `json:"area"`
	MaxResults        int    `json:"max_results,omitempty"`
	IncludeSubAreas   bool   `json:"include_sub_areas,omitempty"`
	RequireValidPhone bool   `json:"require_valid_phone,omitempty"`
	// Query overrides the catalog-built search string. Used by the CLI.
	Query string `json:"-"`
	// RequestedBy is the authenticated subject, filled by the handler.
	RequestedBy string `json:"-"`
}

// CatalogResponse lists the selectable industries and areas.
type CatalogResponse struct {
	Industries []string            `json:"industries"`
	Areas      []string            `json:"areas"`
	SubAreas   map[string][]string `json:"sub_areas"`
	MaxResults int                 `json:"max_results"`
}
