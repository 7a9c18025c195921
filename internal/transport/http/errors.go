package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/util"
)

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid id")
)

// writeError maps domain error kinds onto HTTP statuses.
func writeError(c echo.Context, err error) error {
	switch {
	case domain.IsValidation(err):
		return c.JSON(http.StatusBadRequest, util.ErrorWithFields("validation failed", validationFields(err)))
	case domain.IsNotFound(err):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case domain.IsLocalPersistence(err):
		return c.JSON(http.StatusInternalServerError, util.Error("booking could not be saved locally"))
	default:
		requestLogger(c).Error("unhandled error", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, util.Error("internal server error"))
	}
}

// validationFields flattens joined validation errors into field -> message.
func validationFields(err error) map[string]string {
	fields := map[string]string{}
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		if v, ok := e.(domain.ValidationError); ok {
			key := v.Field
			if key == "" {
				key = "_"
			}
			if _, seen := fields[key]; !seen {
				fields[key] = v.Msg
			}
			return
		}
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return fields
}
