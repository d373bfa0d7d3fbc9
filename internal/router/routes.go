package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/auth"
	"github.com/onnise/beyond-ads-scraper/internal/config"
	"github.com/onnise/beyond-ads-scraper/internal/handler"
	middlewarepkg "github.com/onnise/beyond-ads-scraper/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth   *handler.AuthHandler
	Scrape *handler.ScrapeHandler
	Prompt *handler.PromptSearchHandler
	Export *handler.ExportHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/", handler.UI)
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/catalog", handler.Catalog)
	api.POST("/auth/login", handlers.Auth.Login)

	secured := api.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager, cfg.AuthRequired))

	limiter := middlewarepkg.ScrapeRateLimiter(cfg.RateLimitScrape)
	secured.POST("/scrape", handlers.Scrape.Start, limiter)
	if handlers.Prompt != nil {
		secured.POST("/prompt-search", handlers.Prompt.Start, limiter)
	}

	secured.GET("/runs/:id", handlers.Scrape.Get)
	secured.POST("/runs/:id/stop", handlers.Scrape.Stop)
	secured.GET("/runs/:id/listings", handlers.Scrape.Listings)
	secured.GET("/runs/:id/export.csv", handlers.Export.CSV)
	secured.GET("/runs/:id/export.xlsx", handlers.Export.XLSX)

	admin := secured.Group("/admin", middlewarepkg.RequireRole(auth.RoleAdmin, cfg.AuthRequired))
	admin.GET("/runs", handlers.Scrape.AdminList)
}
