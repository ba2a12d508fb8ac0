package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid booking date format, expected YYYY-MM-DD"
	msgInvalidTime        = "invalid start time format, expected HH:MM"
	msgInvalidInput       = "invalid booking data"
	msgOutsideWindow      = "booking time is outside the allowed booking window"
	msgSlotUnavailable    = "selected time slot is not available"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, handlers.Detail(err, createBooking.ErrInvalidInput, msgInvalidInput))

		case errors.Is(err, createBooking.ErrOutsideAdvanceWindow):
			h.logger.Warn("POST /bookings - Outside advance window: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondUnprocessable(w, handlers.Detail(err, createBooking.ErrOutsideAdvanceWindow, msgOutsideWindow))

		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot not available: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondConflict(w, handlers.Detail(err, createBooking.ErrSlotUnavailable, msgSlotUnavailable))

		default:
			h.logger.Error("POST /bookings - Failed to create booking: phone=%s, error=%v", req.CustomerPhone, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, reference=%s",
		result.Booking.ID, result.Booking.Reference)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
