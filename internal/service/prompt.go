package service

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
	"github.com/onnise/beyond-ads-scraper/internal/dto"
)

var (
	stopwordExpr    = regexp.MustCompile(`(?i)\b(find|get|show|list|search|scrape|give|me|top|best|all|the|some|please|for|of|a|an|lebanon)\b`)
	locationPattern = regexp.MustCompile(`(?i)\b(?:in|at|near|around)\s+([\p{L}\s'&-]+)`)
	limitPattern    = regexp.MustCompile(`\b(\d{1,3})\b`)
	phonePattern    = regexp.MustCompile(`(?i)\b(with|valid|having)\s+(a\s+)?(phone|phones|number|numbers|mobile)\b`)
)

// PromptService interprets free-form search prompts against the catalog.
type PromptService struct {
	DefaultResults int
}

// PromptResult contains structured parameters derived from a prompt.
type PromptResult struct {
	Industry          string
	Area              string
	SubArea           string
	MaxResults        int
	RequireValidPhone bool
}

// NewPromptService creates a prompt parser with sensible defaults.
func NewPromptService(defaultResults int) *PromptService {
	if defaultResults <= 0 {
		defaultResults = catalog.DefaultResults
	}
	return &PromptService{DefaultResults: defaultResults}
}

// Parse converts a prompt like "20 dentists in hamra" into catalog values.
func (s *PromptService) Parse(req dto.PromptSearchRequest) (PromptResult, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return PromptResult{}, &ValidationError{Field: "prompt", Message: "is required"}
	}

	result := PromptResult{MaxResults: s.DefaultResults}
	if req.MaxResults > 0 {
		result.MaxResults = req.MaxResults
	}

	if phonePattern.MatchString(prompt) {
		result.RequireValidPhone = true
		prompt = phonePattern.ReplaceAllString(prompt, " ")
	}

	location, rest := splitLocation(prompt)
	if location == "" {
		return PromptResult{}, &ValidationError{Field: "prompt", Message: "no area found, try \"<industry> in <area>\""}
	}
	area, subArea, ok := catalog.MatchArea(location)
	if !ok {
		return PromptResult{}, &ValidationError{Field: "area", Message: "unknown area " + strconv.Quote(titleCase(location))}
	}
	result.Area, result.SubArea = area, subArea

	if match := limitPattern.FindStringSubmatch(rest); len(match) > 1 && req.MaxResults <= 0 {
		if n, err := strconv.Atoi(match[1]); err == nil && n > 0 {
			result.MaxResults = n
		}
	}
	if result.MaxResults > catalog.MaxResults {
		result.MaxResults = catalog.MaxResults
	}

	industryText := limitPattern.ReplaceAllString(rest, " ")
	industryText = strings.Join(strings.Fields(stopwordExpr.ReplaceAllString(industryText, " ")), " ")
	industry, ok := catalog.MatchIndustry(industryText)
	if !ok {
		return PromptResult{}, &ValidationError{Field: "industry", Message: "unknown industry " + strconv.Quote(titleCase(industryText))}
	}
	result.Industry = industry

	return result, nil
}

// Request builds the scrape request for the interpreted prompt. A named
// neighbourhood narrows the maps search while the address filter keeps
// accepting the whole main area.
func (r PromptResult) Request() dto.ScrapeRequest {
	req := dto.ScrapeRequest{
		Industry:          r.Industry,
		Area:              r.Area,
		MaxResults:        r.MaxResults,
		IncludeSubAreas:   r.SubArea != "",
		RequireValidPhone: r.RequireValidPhone,
	}
	if r.SubArea != "" {
		req.Query = catalog.NeighbourhoodQuery(r.Industry, r.SubArea, r.Area)
	}
	return req
}

func splitLocation(prompt string) (string, string) {
	loc := locationPattern.FindStringSubmatchIndex(prompt)
	if loc == nil {
		return "", prompt
	}
	location := strings.TrimSpace(prompt[loc[2]:loc[3]])
	location = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(stopwordExpr.ReplaceAllString(location, " ")), ","))
	rest := strings.TrimSpace(prompt[:loc[0]] + " " + prompt[loc[1]:])
	return location, rest
}

func titleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	parts := strings.Fields(value)
	for i, p := range parts {
		lower := strings.ToLower(p)
		if len(lower) == 0 {
			continue
		}
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}
