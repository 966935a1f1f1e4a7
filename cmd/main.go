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

	cancelBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/complete_booking"
	confirmBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/get_booking"
	getMerchantBookingsHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/get_merchant_bookings"
	getMerchantScheduleHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/get_merchant_schedule"
	getUserBookingsHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/get_user_bookings"
	noShowBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/no_show_booking"
	updateMerchantScheduleHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/update_merchant_schedule"
	verifyBookingHandler "github.com/m04kA/LSB-BookingService/internal/api/handlers/verify_booking"
	"github.com/m04kA/LSB-BookingService/internal/api/middleware"
	"github.com/m04kA/LSB-BookingService/internal/config"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	scheduleRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	bookingsService "github.com/m04kA/LSB-BookingService/internal/service/bookings"
	scheduleService "github.com/m04kA/LSB-BookingService/internal/service/schedule"
	createBookingUC "github.com/m04kA/LSB-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/LSB-BookingService/internal/usecase/get_available_slots"
	transitionBookingUC "github.com/m04kA/LSB-BookingService/internal/usecase/transition_booking"
	verifyCodeUC "github.com/m04kA/LSB-BookingService/internal/usecase/verify_code"
	"github.com/m04kA/LSB-BookingService/internal/verification"
	"github.com/m04kA/LSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LSB-BookingService/pkg/logger"
	"github.com/m04kA/LSB-BookingService/pkg/metrics"
	"github.com/m04kA/LSB-BookingService/pkg/simpletxmanager"
	"github.com/m04kA/LSB-BookingService/pkg/txmanager"
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

	log.Info("Starting LSB-BookingService...")
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

	// Инициализируем клиент каталога мерчантов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)",
		cfg.CatalogService.URL, cfg.CatalogService.Timeout)

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Генератор одноразовых кодов подтверждения
	codeGenerator := verification.NewGenerator()

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		catalogClient,
		log,
	)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		catalogClient,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		scheduleRepository,
		catalogClient,
		log,
	)
	transitionBookingUseCase := transitionBookingUC.NewUseCase(
		bookingRepository,
		catalogClient,
		codeGenerator,
		log,
	)
	verifyCodeUseCase := verifyCodeUC.NewUseCase(
		bookingRepository,
		catalogClient,
		time.Duration(cfg.Verification.CodeTTLMinutes)*time.Minute,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(transitionBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(transitionBookingUseCase, log)
	completeBooking := completeBookingHandler.NewHandler(transitionBookingUseCase, log)
	noShowBooking := noShowBookingHandler.NewHandler(transitionBookingUseCase, log)
	verifyBooking := verifyBookingHandler.NewHandler(verifyCodeUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getMerchantBookings := getMerchantBookingsHandler.NewHandler(bookingSvc, log)
	getMerchantSchedule := getMerchantScheduleHandler.NewHandler(scheduleSvc, log)
	updateMerchantSchedule := updateMerchantScheduleHandler.NewHandler(scheduleSvc, log)

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
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные слоты мерчанта на дату
	api.HandleFunc("/merchants/{merchantId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Расписание мерчанта
	api.HandleFunc("/merchants/{merchantId}/schedule",
		getMerchantSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Переходы жизненного цикла
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/no-show", noShowBooking.Handle).Methods(http.MethodPatch)

	// Проверка одноразового кода: confirmed -> ongoing
	protected.HandleFunc("/bookings/{bookingId}/verify", verifyBooking.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление мерчантом (для менеджеров) ---
	// Список бронирований мерчанта
	protected.HandleFunc("/merchants/{merchantId}/bookings", getMerchantBookings.Handle).Methods(http.MethodGet)

	// Обновление расписания мерчанта
	protected.HandleFunc("/merchants/{merchantId}/schedule", updateMerchantSchedule.Handle).Methods(http.MethodPut)

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
