package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/dto"
	middlewarepkg "github.com/onnise/beyond-ads-scraper/internal/middleware"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

// ScrapeHandler starts runs and reports their progress.
type ScrapeHandler struct {
	runs *service.RunService
}

// NewScrapeHandler constructs a scrape handler.
func NewScrapeHandler(runs *service.RunService) *ScrapeHandler {
	return &ScrapeHandler{runs: runs}
}

// Start handles POST /api/scrape.
func (h *ScrapeHandler) Start(c echo.Context) error {
	var req dto.ScrapeRequest
	if err := c.Bind(&req); err != nil {
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	req.RequestedBy = middlewarepkg.SubjectFromContext(c)

	run, err := h.runs.Start(c.Request().Context(), req)
	if err != nil {
		return serviceError(c, err)
	}
	return Success(c, http.StatusAccepted, "scrape started", run)
}

// Get handles GET /api/runs/:id.
func (h *ScrapeHandler) Get(c echo.Context) error {
	id, ok := runIDParam(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid run id")
	}
	run, err := h.runs.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return Success(c, http.StatusOK, run.Message, run)
}

// Stop handles POST /api/runs/:id/stop.
func (h *ScrapeHandler) Stop(c echo.Context) error {
	id, ok := runIDParam(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid run id")
	}
	run, err := h.runs.Stop(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return Success(c, http.StatusOK, "stop requested", run)
}

// Listings handles GET /api/runs/:id/listings. The optional tail parameter
// limits the response to the most recent rows.
func (h *ScrapeHandler) Listings(c echo.Context) error {
	id, ok := runIDParam(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid run id")
	}

	tail := 0
	if raw := c.QueryParam("tail"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return Error(c, http.StatusBadRequest, "tail must be a non-negative integer")
		}
		tail = n
	}

	ctx := c.Request().Context()
	run, err := h.runs.Get(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}
	listings, err := h.runs.Listings(ctx, id)
	if err != nil {
		return serviceError(c, err)
	}

	total := len(listings)
	if tail > 0 && tail < total {
		listings = listings[total-tail:]
	}
	return Success(c, http.StatusOK, "", dto.ListingsResponse{Run: run, Total: total, Listings: listings})
}

// AdminList handles GET /api/admin/runs.
func (h *ScrapeHandler) AdminList(c echo.Context) error {
	runs, err := h.runs.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return Success(c, http.StatusOK, "", runs)
}
