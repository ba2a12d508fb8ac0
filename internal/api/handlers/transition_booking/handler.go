package transition_booking

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	transitionBooking "github.com/m04kA/SMC-BeautyBooking/internal/usecase/transition_booking"
)

const (
	msgInvalidBookingID  = "invalid booking ID"
	msgInvalidAction     = "unknown action"
	msgNotFound          = "booking not found"
	msgInvalidTransition = "status transition is not allowed"
)

type Handler struct {
	useCase TransitionBookingUseCase
	logger  Logger
}

func NewHandler(useCase TransitionBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/{action}
// action: confirm, start, complete, cancel, no_show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := uuid.Parse(vars["bookingId"])
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/{action} - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}
	action := vars["action"]

	result, err := h.useCase.Execute(r.Context(), &transitionBooking.Request{
		BookingID: bookingID,
		Action:    action,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/{action} - Invalid action: booking_id=%s, action=%s", bookingID, action)
			handlers.RespondBadRequest(w, msgInvalidAction)

		case errors.Is(err, transitionBooking.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/{action} - Booking not found: booking_id=%s", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionBooking.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/{action} - Transition rejected: booking_id=%s, action=%s", bookingID, action)
			handlers.RespondConflict(w, handlers.Detail(err, transitionBooking.ErrInvalidTransition, msgInvalidTransition))

		default:
			h.logger.Error("POST /bookings/{id}/{action} - Failed to apply action: booking_id=%s, action=%s, error=%v",
				bookingID, action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/{action} - Booking %s moved %s -> %s", result.Booking.Reference, result.From, result.To)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
