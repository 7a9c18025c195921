package http

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/njprem/Fit_city_Booking/internal/domain"
	"github.com/njprem/Fit_city_Booking/internal/service"
	"github.com/njprem/Fit_city_Booking/internal/util"
)

// maxRecordBody caps a posted booking record.
const maxRecordBody = 1 << 20

// RecordHandler is the remote booking record API that the traveler service
// mirrors into. Bodies are stored and echoed byte for byte; responses are
// bare JSON values, not envelopes.
type RecordHandler struct {
	records *service.BookingRecordService
}

func RegisterBookingRecords(e *echo.Echo, records *service.BookingRecordService) {
	h := &RecordHandler{records: records}
	e.GET("/api/bookings", h.list)
	e.POST("/api/bookings", h.create)
}

func (h *RecordHandler) list(c echo.Context) error {
	list, err := h.records.List(c.Request().Context())
	if err != nil {
		requestLogger(c).Error("list booking records", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, util.Error("failed to read bookings"))
	}
	return c.JSON(http.StatusOK, list)
}

func (h *RecordHandler) create(c echo.Context) error {
	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxRecordBody+1))
	if err != nil {
		return c.JSON(http.StatusBadRequest, util.Error(errInvalidBody.Error()))
	}
	if len(body) > maxRecordBody {
		return c.JSON(http.StatusRequestEntityTooLarge, util.Error("request body too large"))
	}

	stored, err := h.records.Create(c.Request().Context(), body)
	if err != nil {
		if domain.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		}
		requestLogger(c).Error("store booking record", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, util.Error("failed to store booking"))
	}
	return c.Blob(http.StatusCreated, echo.MIMEApplicationJSON, stored)
}
