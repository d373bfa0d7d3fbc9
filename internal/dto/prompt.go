package dto

import "github.com/onnise/beyond-ads-scraper/internal/entity"

// PromptSearchRequest represents a free-form search prompt.
type PromptSearchRequest struct {
	Prompt     string `json:"prompt"`
	MaxResults int    `json:"max_results,omitempty"`
}

// PromptSearchResponse echoes the interpreted parameters from the prompt.
type PromptSearchResponse struct {
	Prompt   string      `json:"prompt"`
	Industry string      `json:"industry"`
	Area     string      `json:"area"`
	SubArea  string      `json:"sub_area,omitempty"`
	Run      *entity.Run `json:"run,omitempty"`
}
