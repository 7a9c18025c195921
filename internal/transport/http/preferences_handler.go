package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
	"github.com/njprem/Fit_city_Booking/internal/util"
)

// PreferencesHandler exposes the session's filter criteria and user profile.
type PreferencesHandler struct {
	store *service.Store
}

func RegisterPreferences(e *echo.Echo, store *service.Store) {
	h := &PreferencesHandler{store: store}
	e.GET("/api/v1/filters", h.getFilters)
	e.PATCH("/api/v1/filters", h.updateFilters)
	e.GET("/api/v1/profile", h.getProfile)
	e.PATCH("/api/v1/profile", h.updateProfile)
}

func (h *PreferencesHandler) getFilters(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("filters", h.store.Filters()))
}

func (h *PreferencesHandler) updateFilters(c echo.Context) error {
	var req domain.FilterUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(errInvalidBody.Error()))
	}
	return c.JSON(http.StatusOK, util.Data("filters", h.store.UpdateFilters(req)))
}

func (h *PreferencesHandler) getProfile(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("profile", h.store.User()))
}

func (h *PreferencesHandler) updateProfile(c echo.Context) error {
	var req domain.UserProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(errInvalidBody.Error()))
	}
	profile, err := service.UpdateProfile(h.store, req)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, util.Data("profile", profile))
}
