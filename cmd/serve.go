package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-BeautyBooking/internal/config"
	"github.com/m04kA/SMC-BeautyBooking/internal/infra/events"
	bookingRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/booking"
	customerRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/customer"
	settingsRepo "github.com/m04kA/SMC-BeautyBooking/internal/infra/storage/settings"
	"github.com/m04kA/SMC-BeautyBooking/internal/integrations/whatsapp"
	bookingsService "github.com/m04kA/SMC-BeautyBooking/internal/service/bookings"
	customersService "github.com/m04kA/SMC-BeautyBooking/internal/service/customers"
	settingsService "github.com/m04kA/SMC-BeautyBooking/internal/service/settings"
	createBookingUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/create_booking"
	getAvailabilityUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/get_availability"
	transitionBookingUC "github.com/m04kA/SMC-BeautyBooking/internal/usecase/transition_booking"
	"github.com/m04kA/SMC-BeautyBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/logger"
	"github.com/m04kA/SMC-BeautyBooking/pkg/metrics"
	"github.com/m04kA/SMC-BeautyBooking/pkg/txmanager"
)

func newServeCmd(configPath *string) *cobra.Command {
	var migrateUp bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cfg, migrateUp)
		},
	}

	cmd.Flags().BoolVar(&migrateUp, "migrate", false, "apply database migrations before serving")
	cmd.Flags().Lookup("migrate").NoOptDefVal = "true"
	return cmd
}

func serve(cfg *config.Config, migrateUp bool) error {
	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting beauty-booking %s...", Version)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
	)
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	defer close(stopMetricsCh)
	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, stopMetricsCh)

	if migrateUp {
		if err := runMigrations(ctx, wrappedDB, cfg, true, log); err != nil {
			return err
		}
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Настройки бизнеса читаются один раз: запись в БД или секция [business]
	fallbackSettings, err := cfg.Business.Settings()
	if err != nil {
		return err
	}
	settingsSvc := settingsService.NewService(settingsRepository, fallbackSettings, log)
	businessSettings, err := settingsSvc.Load(ctx)
	if err != nil {
		return fmt.Errorf("load business settings: %w", err)
	}
	calendar := businessSettings.Calendar()

	// Каналы уведомлений
	var publishers []events.Publisher
	if cfg.Events.Enabled {
		amqpPublisher, err := events.NewAMQPPublisher(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			return fmt.Errorf("init event publisher: %w", err)
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
		log.Info("Booking events published to exchange %s", cfg.Events.Exchange)
	}
	if cfg.WhatsApp.Enabled {
		publishers = append(publishers, whatsapp.NewClient(
			cfg.WhatsApp.URL,
			cfg.WhatsApp.Phone,
			cfg.WhatsApp.APIKey,
			cfg.WhatsApp.TimeoutDuration(),
			log,
		))
		log.Info("WhatsApp notifications enabled (timeout=%ds)", cfg.WhatsApp.Timeout)
	}
	dispatcher := events.NewDispatcher(log, metricsCollector, publishers...)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	customerSvc := customersService.NewService(customerRepository, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(bookingRepository, calendar, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		txMgr,
		dispatcher,
		metricsCollector,
		calendar,
		cfg.Business.ReferencePrefix,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		customerRepository,
		txMgr,
		dispatcher,
		metricsCollector,
		log,
	)

	router := newRouter(routerDeps{
		cfg:               cfg,
		log:               log,
		metrics:           metricsCollector,
		db:                wrappedDB,
		getAvailability:   getAvailabilityUseCase,
		createBooking:     createBookingUseCase,
		transitionBooking: transitionBookingUseCase,
		bookings:          bookingSvc,
		customers:         customerSvc,
		settings:          settingsSvc,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидаем сигнал завершения
	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownDuration())
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		return err
	}

	log.Info("Server stopped gracefully")
	return nil
}
