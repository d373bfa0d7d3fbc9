package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/dto"
	middlewarepkg "github.com/onnise/beyond-ads-scraper/internal/middleware"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

// PromptSearchHandler turns free-form prompts into scrape runs.
type PromptSearchHandler struct {
	runs    *service.RunService
	service *service.PromptService
}

// NewPromptSearchHandler wires the handler.
func NewPromptSearchHandler(runs *service.RunService, svc *service.PromptService) *PromptSearchHandler {
	return &PromptSearchHandler{runs: runs, service: svc}
}

// Start handles POST /api/prompt-search.
func (h *PromptSearchHandler) Start(c echo.Context) error {
	var req dto.PromptSearchRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.Prompt = strings.TrimSpace(req.Prompt)
	if req.Prompt == "" {
		return Error(c, http.StatusBadRequest, "prompt is required")
	}

	result, err := h.service.Parse(req)
	if err != nil {
		return serviceError(c, err)
	}

	scrapeReq := result.Request()
	scrapeReq.RequestedBy = middlewarepkg.SubjectFromContext(c)
	run, err := h.runs.Start(c.Request().Context(), scrapeReq)
	if err != nil {
		return serviceError(c, err)
	}

	return Success(c, http.StatusAccepted, "prompt search started", dto.PromptSearchResponse{
		Prompt:   req.Prompt,
		Industry: result.Industry,
		Area:     result.Area,
		SubArea:  result.SubArea,
		Run:      run,
	})
}
