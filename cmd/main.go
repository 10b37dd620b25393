package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/create_booking"
	createInquiryHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/create_inquiry"
	deleteBookingsInRangeHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/delete_bookings_in_range"
	getAvailableSlotsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_available_slots"
	getBookingsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_bookings"
	getInquiriesHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_inquiries"
	getNotificationsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_notifications"
	getProductsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_products"
	getScheduleSettingsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_schedule_settings"
	getSessionsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/get_sessions"
	markNotificationsReadHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/mark_notifications_read"
	reassignInstructorHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/reassign_instructor"
	removeBookingSlotHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/remove_booking_slot"
	rescheduleBookingSlotHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/reschedule_booking_slot"
	triggerRemindersHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/trigger_reminders"
	updateAttendanceHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/update_attendance"
	updateBookingHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/update_booking"
	updateInquiryHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/update_inquiry"
	updatePaymentStatusHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/update_payment_status"
	updateProductsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/update_products"
	updateScheduleSettingsHandler "github.com/ceramicalma/ALMA-BookingService/internal/api/handlers/update_schedule_settings"
	"github.com/ceramicalma/ALMA-BookingService/internal/api/middleware"
	"github.com/ceramicalma/ALMA-BookingService/internal/config"
	bookingRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/booking"
	inquiryRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/inquiry"
	instructorRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/instructor"
	notificationRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/notification"
	productRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/product"
	settingsRepo "github.com/ceramicalma/ALMA-BookingService/internal/infra/storage/settings"
	mailerClient "github.com/ceramicalma/ALMA-BookingService/internal/integrations/mailer"
	bookingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/bookings"
	inquiriesService "github.com/ceramicalma/ALMA-BookingService/internal/service/inquiries"
	notificationsService "github.com/ceramicalma/ALMA-BookingService/internal/service/notifications"
	productsService "github.com/ceramicalma/ALMA-BookingService/internal/service/products"
	settingsService "github.com/ceramicalma/ALMA-BookingService/internal/service/settings"
	createBookingUC "github.com/ceramicalma/ALMA-BookingService/internal/usecase/create_booking"
	generateSessionsUC "github.com/ceramicalma/ALMA-BookingService/internal/usecase/generate_sessions"
	getAvailableSlotsUC "github.com/ceramicalma/ALMA-BookingService/internal/usecase/get_available_slots"
	triggerRemindersUC "github.com/ceramicalma/ALMA-BookingService/internal/usecase/trigger_reminders"
	"github.com/ceramicalma/ALMA-BookingService/pkg/dbmetrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/logger"
	"github.com/ceramicalma/ALMA-BookingService/pkg/metrics"
	"github.com/ceramicalma/ALMA-BookingService/pkg/simpletxmanager"
	"github.com/ceramicalma/ALMA-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting ALMA-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

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

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент почтового сервиса
	mailer := mailerClient.NewClient(
		cfg.Mailer.URL,
		cfg.Mailer.APIKey,
		cfg.Mailer.From,
		time.Duration(cfg.Mailer.Timeout)*time.Second,
		log,
	)
	log.Info("Mailer client initialized (url=%s timeout=%ds)", cfg.Mailer.URL, cfg.Mailer.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository      *bookingRepo.Repository
		productRepository      *productRepo.Repository
		instructorRepository   *instructorRepo.Repository
		settingsRepository     *settingsRepo.Repository
		notificationRepository *notificationRepo.Repository
		inquiryRepository      *inquiryRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		productRepository = productRepo.NewRepository(wrappedDB)
		instructorRepository = instructorRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		inquiryRepository = inquiryRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		productRepository = productRepo.NewRepository(db)
		instructorRepository = instructorRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		inquiryRepository = inquiryRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		settingsRepository,
		notificationRepository,
		mailer,
		txMgr,
		log,
	)
	productSvc := productsService.NewService(
		productRepository,
		instructorRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(settingsRepository, log)
	notificationSvc := notificationsService.NewService(notificationRepository, log)
	inquirySvc := inquiriesService.NewService(inquiryRepository, notificationRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		productRepository,
		settingsRepository,
		notificationRepository,
		mailer,
		txMgr,
		log,
	)
	generateSessionsUseCase := generateSessionsUC.NewUseCase(
		productRepository,
		bookingRepository,
		settingsRepository,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		log,
	)
	triggerRemindersUseCase := triggerRemindersUC.NewUseCase(
		bookingRepository,
		settingsRepository,
		notificationRepository,
		mailer,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getProducts := getProductsHandler.NewHandler(productSvc, log)
	getSessions := getSessionsHandler.NewHandler(generateSessionsUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBookings := getBookingsHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	removeBookingSlot := removeBookingSlotHandler.NewHandler(bookingSvc, log)
	rescheduleBookingSlot := rescheduleBookingSlotHandler.NewHandler(bookingSvc, log)
	deleteBookingsInRange := deleteBookingsInRangeHandler.NewHandler(bookingSvc, log)
	updateAttendance := updateAttendanceHandler.NewHandler(bookingSvc, log)
	updatePaymentStatus := updatePaymentStatusHandler.NewHandler(bookingSvc, log)
	updateProducts := updateProductsHandler.NewHandler(productSvc, log)
	reassignInstructor := reassignInstructorHandler.NewHandler(productSvc, log)
	getScheduleSettings := getScheduleSettingsHandler.NewHandler(settingsSvc, log)
	updateScheduleSettings := updateScheduleSettingsHandler.NewHandler(settingsSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notificationSvc, log)
	markNotificationsRead := markNotificationsReadHandler.NewHandler(notificationSvc, log)
	triggerReminders := triggerRemindersHandler.NewHandler(triggerRemindersUseCase, log)
	createInquiry := createInquiryHandler.NewHandler(inquirySvc, log)
	getInquiries := getInquiriesHandler.NewHandler(inquirySvc, log)
	updateInquiry := updateInquiryHandler.NewHandler(inquirySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина студии, без аутентификации)
	// ============================================================

	// Каталог продуктов и инструкторы
	api.HandleFunc("/products", getProducts.Handle).Methods(http.MethodGet)

	// Сгенерированные занятия вводного класса
	api.HandleFunc("/products/{productId}/sessions", getSessions.Handle).Methods(http.MethodGet)

	// Доступные слоты абонементов на дату
	api.HandleFunc("/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Создание бронирования
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Запрос на групповое мероприятие
	api.HandleFunc("/inquiries", createInquiry.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Token header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Admin.Token))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", getBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/delete-range", deleteBookingsInRange.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{bookingId}", getBookings.HandleByID).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/bookings/{bookingId}", updateBooking.HandleDelete).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/slots", removeBookingSlot.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/bookings/{bookingId}/slots", rescheduleBookingSlot.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/attendance", updateAttendance.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{bookingId}/payment", updatePaymentStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог и инструкторы ---
	admin.HandleFunc("/products", updateProducts.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/products/{productId}/schedule", updateProducts.HandleSchedule).Methods(http.MethodPatch)
	admin.HandleFunc("/instructors/{instructorId}/reassign", reassignInstructor.Handle).Methods(http.MethodPost)

	// --- Настройки расписания ---
	admin.HandleFunc("/schedule-settings", getScheduleSettings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/schedule-settings", updateScheduleSettings.Handle).Methods(http.MethodPut)

	// --- Запросы на групповые мероприятия ---
	admin.HandleFunc("/inquiries", getInquiries.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/inquiries/{inquiryId}", updateInquiry.Handle).Methods(http.MethodPatch)

	// --- Уведомления и напоминания ---
	admin.HandleFunc("/notifications", getNotifications.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/notifications/read", markNotificationsRead.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/trigger-reminders", triggerReminders.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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
