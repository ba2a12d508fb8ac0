package list_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/bookings/models"
)

const (
	msgInvalidFilter = "invalid filter"
	msgInvalidPaging = "limit and offset must be non-negative integers"

	// defaultLimit ограничение выдачи, если limit не указан
	defaultLimit = 200
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings
// Query params: date (YYYY-MM-DD), status, phone, limit, offset - все опциональны
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListBookingsRequest{
		Limit: defaultLimit,
	}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("phone"); v != "" {
		req.Phone = &v
	}

	var err error
	if v := query.Get("limit"); v != "" {
		if req.Limit, err = strconv.ParseUint(v, 10, 64); err != nil {
			h.logger.Warn("GET /bookings - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPaging)
			return
		}
	}
	if v := query.Get("offset"); v != "" {
		if req.Offset, err = strconv.ParseUint(v, 10, 64); err != nil {
			h.logger.Warn("GET /bookings - Invalid offset: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPaging)
			return
		}
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, bookings.ErrInvalidInput, msgInvalidFilter))

		default:
			h.logger.Error("GET /bookings - Failed to list bookings: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - Bookings retrieved successfully: count=%d", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
