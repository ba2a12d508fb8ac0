package get_customer

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BeautyBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BeautyBooking/internal/service/customers"
)

const (
	msgInvalidCustomerID = "invalid customer ID"
	msgMissingPhone      = "phone is required"
	msgNotFound          = "customer not found"
)

type Handler struct {
	service CustomerService
	logger  Logger
}

func NewHandler(service CustomerService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/customers/{customerId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, err := uuid.Parse(mux.Vars(r)["customerId"])
	if err != nil {
		h.logger.Warn("GET /customers/{id} - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	customer, err := h.service.GetByID(r.Context(), customerID)
	if err != nil {
		h.respondError(w, "GET /customers/{id}", err)
		return
	}

	h.logger.Info("GET /customers/{id} - Customer retrieved successfully: customer_id=%s", customerID)
	handlers.RespondJSON(w, http.StatusOK, customer)
}

// HandleByPhone GET /api/v1/customers?phone=...
func (h *Handler) HandleByPhone(w http.ResponseWriter, r *http.Request) {
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		h.logger.Warn("GET /customers - Missing phone")
		handlers.RespondBadRequest(w, msgMissingPhone)
		return
	}

	customer, err := h.service.GetByPhone(r.Context(), phone)
	if err != nil {
		h.respondError(w, "GET /customers", err)
		return
	}

	h.logger.Info("GET /customers - Customer retrieved successfully: customer_id=%s", customer.ID)
	handlers.RespondJSON(w, http.StatusOK, customer)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, customers.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgMissingPhone)

	case errors.Is(err, customers.ErrCustomerNotFound):
		h.logger.Warn("%s - Customer not found", route)
		handlers.RespondNotFound(w, msgNotFound)

	default:
		h.logger.Error("%s - Failed to get customer: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
