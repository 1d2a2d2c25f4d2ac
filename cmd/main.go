package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	bookAppointmentHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/book_appointment"
	createHolidayHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/create_holiday"
	deleteHolidayHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/delete_holiday"
	filterAppointmentsHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/filter_appointments"
	getAppointmentHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/get_available_slots"
	getCalendarHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/get_calendar"
	getHolidayHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/get_holiday"
	getMyAppointmentsHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/get_my_appointments"
	getServiceCatalogHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/get_service_catalog"
	healthHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/health"
	listHolidaysHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/list_holidays"
	preBillHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/pre_bill"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/update_appointment_status"
	updateHolidayHandler "github.com/m04kA/SMC-AutoService/internal/api/handlers/update_holiday"
	"github.com/m04kA/SMC-AutoService/internal/api/middleware"
	"github.com/m04kA/SMC-AutoService/internal/config"
	"github.com/m04kA/SMC-AutoService/internal/infra/lock"
	appointmentRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/appointment"
	customerRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/customer"
	holidayRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/holiday"
	servicefeeRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/servicefee"
	vehicleRepo "github.com/m04kA/SMC-AutoService/internal/infra/storage/vehicle"
	appointmentsService "github.com/m04kA/SMC-AutoService/internal/service/appointments"
	customersService "github.com/m04kA/SMC-AutoService/internal/service/customers"
	"github.com/m04kA/SMC-AutoService/internal/service/duration"
	holidaysService "github.com/m04kA/SMC-AutoService/internal/service/holidays"
	bookAppointmentUC "github.com/m04kA/SMC-AutoService/internal/usecase/book_appointment"
	getAvailableSlotsUC "github.com/m04kA/SMC-AutoService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AutoService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AutoService/pkg/logger"
	"github.com/m04kA/SMC-AutoService/pkg/metrics"
	"github.com/m04kA/SMC-AutoService/pkg/txmanager"
)

// recoveryLogger адаптирует printf-логгер к интерфейсу gorilla/handlers
type recoveryLogger struct {
	log *logger.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Error("Recovered from panic: %s", fmt.Sprint(v...))
}

func main() {
	configPath := flag.String("config", "config.toml", "path to TOML configuration file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AutoService...")

	calendar, err := cfg.Calendar.Build()
	if err != nil {
		log.Fatal("Invalid calendar configuration: %v", err)
	}
	log.Info("Calendar: %s-%s, slot step %d min",
		calendar.WorkingStart(), calendar.WorkingEnd(), calendar.SlotGranularityMinutes())

	// Метрики выключены, если collector равен nil
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	stopMetricsCh := make(chan struct{})
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)

	txMgr := txmanager.NewTransactionManager(wrappedDB,
		txmanager.WithMaxAttempts(cfg.Booking.MaxCommitAttempts),
		txmanager.WithBackoff(time.Duration(cfg.Booking.RetryBackoffMs)*time.Millisecond),
		txmanager.WithMetrics(metricsCollector),
	)

	// Блокировка по дате записи (необязательная)
	var locker bookAppointmentUC.Locker = lock.NoopLock{}
	if cfg.Booking.LockEnabled {
		redisLock, err := lock.NewRedisLock(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, lock.Options{
			TTL:           time.Duration(cfg.Booking.LockTTLSeconds) * time.Second,
			WaitTimeout:   time.Duration(cfg.Booking.LockWaitTimeoutMs) * time.Millisecond,
			RetryInterval: time.Duration(cfg.Booking.LockRetryIntervalMs) * time.Millisecond,
		})
		if err != nil {
			log.Fatal("Failed to connect to redis: %v", err)
		}
		defer redisLock.Close()
		locker = redisLock
		log.Info("Booking lock enabled (redis=%s)", cfg.Redis.Addr)
	}

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	holidayRepository := holidayRepo.NewRepository(wrappedDB)
	serviceFeeRepository := servicefeeRepo.NewRepository(wrappedDB)
	customerRepository := customerRepo.NewRepository(wrappedDB)
	vehicleRepository := vehicleRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	durationResolver := duration.NewResolver(serviceFeeRepository, log)
	customerSvc := customersService.NewService(customerRepository, vehicleRepository, log)
	holidaySvc := holidaysService.NewService(holidayRepository, log)
	appointmentSvc := appointmentsService.NewService(appointmentRepository, customerSvc, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		calendar,
		durationResolver,
		holidayRepository,
		appointmentRepository,
		metricsCollector,
		log,
	)
	bookAppointmentUseCase := bookAppointmentUC.NewUseCase(
		calendar,
		customerSvc,
		durationResolver,
		holidayRepository,
		appointmentRepository,
		txMgr,
		locker,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	listHolidays := listHolidaysHandler.NewHandler(holidaySvc, log)
	getServiceCatalog := getServiceCatalogHandler.NewHandler(durationResolver, log)
	preBill := preBillHandler.NewHandler(durationResolver, log)
	getCalendar := getCalendarHandler.NewHandler(calendar)
	bookAppointment := bookAppointmentHandler.NewHandler(bookAppointmentUseCase, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentSvc, log)
	createHoliday := createHolidayHandler.NewHandler(holidaySvc, log)
	getHoliday := getHolidayHandler.NewHandler(holidaySvc, log)
	updateHoliday := updateHolidayHandler.NewHandler(holidaySvc, log)
	deleteHoliday := deleteHolidayHandler.NewHandler(holidaySvc, log)
	filterAppointments := filterAppointmentsHandler.NewHandler(appointmentSvc, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	health := healthHandler.NewHandler(db, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	public := api.PathPrefix("/public").Subrouter()
	public.HandleFunc("/appointment-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	public.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)
	public.HandleFunc("/services", getServiceCatalog.Handle).Methods(http.MethodGet)
	public.HandleFunc("/pre-bill", preBill.Handle).Methods(http.MethodPost)
	public.HandleFunc("/calendar", getCalendar.Handle).Methods(http.MethodGet)

	// ============================================================
	// USER ROUTES (требуют X-User-ID header)
	// ============================================================

	user := api.PathPrefix("/user").Subrouter()
	user.Use(middleware.Auth)
	user.HandleFunc("/appointments", bookAppointment.Handle).Methods(http.MethodPost)
	user.HandleFunc("/appointments", getMyAppointments.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (требуют X-User-Role: ADMIN)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Admin)

	// --- Праздники и нерабочие периоды ---
	admin.HandleFunc("/holidays", listHolidays.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/holidays", createHoliday.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/holidays/{holidayId}", getHoliday.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/holidays/{holidayId}", updateHoliday.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/holidays/{holidayId}", deleteHoliday.Handle).Methods(http.MethodDelete)

	// --- Записи ---
	admin.HandleFunc("/appointments", filterAppointments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	handler := gorillaHandlers.RecoveryHandler(
		gorillaHandlers.RecoveryLogger(recoveryLogger{log: log}),
		gorillaHandlers.PrintRecoveryStack(false),
	)(r)
	handler = gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderUserID, middleware.HeaderUserRole}),
	)(handler)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
