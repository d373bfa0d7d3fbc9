package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/catalog"
	"github.com/onnise/beyond-ads-scraper/internal/dto"
)

// Catalog handles GET /api/catalog.
func Catalog(c echo.Context) error {
	return Success(c, http.StatusOK, "", dto.CatalogResponse{
		Industries: catalog.Industries,
		Areas:      catalog.Areas,
		SubAreas:   catalog.SubAreas,
		MaxResults: catalog.MaxResults,
	})
}
