package handler

import (
	"errors"
	"marketplace-api/internal/service"
	"net/http"

	"github.com/labstack/echo/v4"
)

// httpError maps service sentinel errors onto HTTP statuses. Every failure is
// a single message string; anything unmapped becomes a 500.
func httpError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidCredential):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadySeller),
		errors.Is(err, service.ErrInvalidState):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrBelowMinPayout),
		errors.Is(err, service.ErrInsufficientBalance),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrSellerNotVerified):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return err
}
