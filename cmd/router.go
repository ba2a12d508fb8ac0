package main

import (
	"net/http"

	"github.com/gorilla/mux"

	createBookingHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/create_booking"
	getAvailabilityHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_availability"
	getBookingHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_booking"
	getCustomerHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_customer"
	getCustomerBookingsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_customer_bookings"
	getSettingsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/get_settings"
	healthHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/health"
	listBookingsHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/list_bookings"
	transitionBookingHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/transition_booking"
	updatePaymentStatusHandler "github.com/m04kA/SMC-BeautyBooking/internal/api/handlers/update_payment_status"
	"github.com/m04kA/SMC-BeautyBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BeautyBooking/internal/config"
	bookingsService "github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
	customersService "github.com/m04kA/SMC-BeautyBooking/internal/service/customers"
	settingsService "github.com/m04kA/SMC-BeautyBooking/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/metrics"
)

type routerDeps struct {
	cfg     *config.Config
	log     *logger.Logger
	metrics *metrics.Metrics
	db      *dbmetrics.DB

	getAvailability   *getAvailabilityUC.UseCase
	createBooking     *createBookingUC.UseCase
	transitionBooking *transitionBookingUC.UseCase

	bookings  *bookingsService.Service
	customers *customersService.Service
	settings  *settingsService.Service
}

func newRouter(d routerDeps) *mux.Router {
	log := d.log

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(d.getAvailability, log)
	createBooking := createBookingHandler.NewHandler(d.createBooking, log)
	transitionBooking := transitionBookingHandler.NewHandler(d.transitionBooking, log)
	getBooking := getBookingHandler.NewHandler(d.bookings, log)
	listBookings := listBookingsHandler.NewHandler(d.bookings, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(d.bookings, log)
	getCustomerBookings := getCustomerBookingsHandler.NewHandler(d.bookings, log)
	getCustomer := getCustomerHandler.NewHandler(d.customers, log)
	getSettings := getSettingsHandler.NewHandler(d.settings, log)
	health := healthHandler.NewHandler(d.db, log)

	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if d.metrics != nil {
		r.Use(middleware.MetricsMiddleware(d.metrics))
		r.Handle(d.cfg.Metrics.Path, d.metrics.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", d.cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	api.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)
	api.HandleFunc("/settings", getSettings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/reference/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)

	// Создание бронирования - с ограничением частоты запросов
	create := http.Handler(http.HandlerFunc(createBooking.Handle))
	if d.cfg.RateLimit.Enabled {
		// Список уже проверен в config.Validate
		proxies, _ := d.cfg.RateLimit.TrustedProxyPrefixes()
		limiter := middleware.NewRateLimiter(d.cfg.RateLimit.RequestsPerMinute, d.cfg.RateLimit.Burst, proxies, log)
		create = limiter.Middleware(create)
		log.Info("Rate limit for booking creation: %d/min, burst %d, trusted proxies %d",
			d.cfg.RateLimit.RequestsPerMinute, d.cfg.RateLimit.Burst, len(proxies))
	}
	api.Handle("/bookings", create).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("").Subrouter()
	admin.Use(middleware.AdminAuth(d.cfg.Admin.Token))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/payment", updatePaymentStatus.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/{action}", transitionBooking.Handle).Methods(http.MethodPost)

	// --- Клиенты ---
	admin.HandleFunc("/customers", getCustomer.HandleByPhone).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{customerId}", getCustomer.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{customerId}/bookings", getCustomerBookings.Handle).Methods(http.MethodGet)

	return r
}
