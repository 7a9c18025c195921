package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
	"github.com/njprem/Fit_city_Booking/internal/util"
)

type BookingHandler struct {
	store    *service.Store
	bookings *service.BookingService
}

func RegisterBookings(e *echo.Echo, store *service.Store, bookings *service.BookingService) {
	h := &BookingHandler{store: store, bookings: bookings}
	g := e.Group("/api/v1/bookings")
	g.GET("", h.list)
	g.GET("/:id", h.get)
	g.POST("", h.create)
	g.DELETE("/:id", h.cancel)
}

type createBookingRequest struct {
	ID              string   `json:"id"`
	FullName        string   `json:"full_name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	DestinationID   int      `json:"destination_id"`
	StartDate       string   `json:"start_date"`
	Travelers       int      `json:"travelers"`
	Extras          []string `json:"extras"`
	SpecialRequests string   `json:"special_requests"`
	BasePrice       *float64 `json:"base_price"`
	Duration        string   `json:"duration"`
}

func (h *BookingHandler) list(c echo.Context) error {
	return c.JSON(http.StatusOK, util.Data("bookings", h.store.Bookings()))
}

func (h *BookingHandler) get(c echo.Context) error {
	id := c.Param("id")
	booking, ok := h.store.Booking(id)
	if !ok {
		return writeError(c, domain.NotFoundError{Resource: "booking", ID: id})
	}
	return c.JSON(http.StatusOK, util.Data("booking", booking))
}

func (h *BookingHandler) create(c echo.Context) error {
	var req createBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(errInvalidBody.Error()))
	}

	start, err := parseStartDate(req.StartDate)
	if err != nil {
		return writeError(c, err)
	}

	booking, err := h.bookings.CreateBooking(c.Request().Context(), service.BookingInput{
		ID:              req.ID,
		FullName:        req.FullName,
		Email:           req.Email,
		Phone:           req.Phone,
		DestinationID:   req.DestinationID,
		StartDate:       start,
		Travelers:       req.Travelers,
		Extras:          req.Extras,
		SpecialRequests: req.SpecialRequests,
		BasePrice:       req.BasePrice,
		Duration:        req.Duration,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, util.Data("booking", booking))
}

func (h *BookingHandler) cancel(c echo.Context) error {
	id := c.Param("id")
	removed, err := h.bookings.CancelBooking(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	if !removed {
		return writeError(c, domain.NotFoundError{Resource: "booking", ID: id})
	}
	return c.NoContent(http.StatusNoContent)
}

// parseStartDate accepts a calendar date (2006-01-02) or an RFC 3339
// timestamp. An empty value yields the zero time so that the booking
// service reports the missing field together with the others.
func parseStartDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, raw); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, domain.ValidationError{Field: "start_date", Msg: "start date must be YYYY-MM-DD or RFC 3339"}
}
