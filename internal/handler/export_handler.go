package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/export"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler streams finished runs as spreadsheets.
type ExportHandler struct {
	runs *service.RunService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(runs *service.RunService) *ExportHandler {
	return &ExportHandler{runs: runs}
}

// CSV handles GET /api/runs/:id/export.csv. ?detail=full adds every field.
func (h *ExportHandler) CSV(c echo.Context) error {
	id, ok := runIDParam(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid run id")
	}
	run, listings, err := h.runs.Export(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, listings, export.Layout(c.QueryParam("detail"))); err != nil {
		return serviceError(c, err)
	}
	attach(c, export.FileName(run.Query, len(listings), "csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// XLSX handles GET /api/runs/:id/export.xlsx.
func (h *ExportHandler) XLSX(c echo.Context) error {
	id, ok := runIDParam(c)
	if !ok {
		return Error(c, http.StatusBadRequest, "invalid run id")
	}
	run, listings, err := h.runs.Export(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, listings, export.Layout(c.QueryParam("detail"))); err != nil {
		return serviceError(c, err)
	}
	attach(c, export.FileName(run.Query, len(listings), "xlsx"))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

func attach(c echo.Context, name string) {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
}
