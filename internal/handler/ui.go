package handler

import (
	_ "embed"
	"net/http"

	"github.com/labstack/echo/v4"
)

//go:embed ui/index.html
var indexHTML []byte

// UI serves the single-page operator console.
func UI(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, indexHTML)
}
