package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/onnise/beyond-ads-scraper/internal/logging"
	"github.com/onnise/beyond-ads-scraper/internal/service"
)

// serviceError maps service sentinels onto HTTP responses.
func serviceError(c echo.Context, err error) error {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return Error(c, http.StatusBadRequest, verr.Error())
	case errors.Is(err, service.ErrInvalidRequest):
		return Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRunNotFound):
		return Error(c, http.StatusNotFound, "run not found")
	case errors.Is(err, service.ErrBusy):
		return Error(c, http.StatusTooManyRequests, "another scrape is already running, try again when it finishes")
	case errors.Is(err, service.ErrRunActive):
		return Error(c, http.StatusConflict, "run is still in progress")
	case errors.Is(err, service.ErrInvalidCredentials):
		return Error(c, http.StatusUnauthorized, "invalid credentials")
	}
	logging.Logger().WithError(err).WithField("path", c.Path()).Error("request failed")
	return Error(c, http.StatusInternalServerError, "internal error")
}

func runIDParam(c echo.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	return id, err == nil
}
