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

	cancelAppointmentHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/cancel_appointment"
	closeDayHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/close_day"
	createAppointmentHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/create_appointment"
	createBlockHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/create_block"
	deleteBlockHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/delete_block"
	getAppointmentHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/get_appointment"
	getAvailabilityHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/get_availability"
	getBarberAppointmentsHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/get_barber_appointments"
	getBlocksHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/get_blocks"
	getScheduleHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/get_schedule"
	updateAppointmentStatusHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/update_appointment_status"
	updateScheduleHandler "github.com/n1kprav/BRB-BookingService/internal/api/handlers/update_schedule"
	"github.com/n1kprav/BRB-BookingService/internal/api/middleware"
	"github.com/n1kprav/BRB-BookingService/internal/config"
	appointmentRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/appointment"
	blockRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/block"
	scheduleRepo "github.com/n1kprav/BRB-BookingService/internal/infra/storage/schedule"
	catalogServiceClient "github.com/n1kprav/BRB-BookingService/internal/integrations/catalogservice"
	clientServiceClient "github.com/n1kprav/BRB-BookingService/internal/integrations/clientservice"
	notifyServiceClient "github.com/n1kprav/BRB-BookingService/internal/integrations/notifyservice"
	appointmentsService "github.com/n1kprav/BRB-BookingService/internal/service/appointments"
	scheduleService "github.com/n1kprav/BRB-BookingService/internal/service/schedule"
	closeDayUC "github.com/n1kprav/BRB-BookingService/internal/usecase/close_day"
	createAppointmentUC "github.com/n1kprav/BRB-BookingService/internal/usecase/create_appointment"
	getAvailabilityUC "github.com/n1kprav/BRB-BookingService/internal/usecase/get_availability"
	"github.com/n1kprav/BRB-BookingService/pkg/dbmetrics"
	"github.com/n1kprav/BRB-BookingService/pkg/logger"
	"github.com/n1kprav/BRB-BookingService/pkg/metrics"
	"github.com/n1kprav/BRB-BookingService/pkg/simpletxmanager"
	"github.com/n1kprav/BRB-BookingService/pkg/txmanager"
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

	log.Info("Starting BRB-BookingService...")
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

	// Инициализируем интеграционных клиентов
	catalogClient := catalogServiceClient.NewClient(
		cfg.CatalogService.URL,
		time.Duration(cfg.CatalogService.Timeout)*time.Second,
		log,
	)
	clientClient := clientServiceClient.NewClient(
		cfg.ClientService.URL,
		time.Duration(cfg.ClientService.Timeout)*time.Second,
		log,
	)
	notifyClient := notifyServiceClient.NewClient(
		cfg.NotifyService.URL,
		time.Duration(cfg.NotifyService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (CatalogService=%s, ClientService=%s, NotifyService=%s)",
		cfg.CatalogService.URL, cfg.ClientService.URL, cfg.NotifyService.URL)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		blockRepository       *blockRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		blockRepository = blockRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		blockRepository = blockRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, blockRepository, txMgr, log)

	// Инициализируем use cases
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		blockRepository,
		catalogClient,
		getAvailabilityUC.Options{
			StepMinutes:        cfg.Booking.StepMinutes,
			MinLeadTimeMinutes: cfg.Booking.MinLeadTimeMinutes,
		},
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleRepository,
		blockRepository,
		catalogClient,
		clientClient,
		notifyClient,
		txMgr,
		createAppointmentUC.Options{
			MinLeadTimeMinutes: cfg.Booking.MinLeadTimeMinutes,
		},
		log,
	)

	closeDayUseCase := closeDayUC.NewUseCase(
		appointmentRepository,
		blockRepository,
		notifyClient,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	closeDay := closeDayHandler.NewHandler(closeDayUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getBarberAppointments := getBarberAppointmentsHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	createBlock := createBlockHandler.NewHandler(scheduleSvc, log)
	getBlocks := getBlocksHandler.NewHandler(scheduleSvc, log)
	deleteBlock := deleteBlockHandler.NewHandler(scheduleSvc, log)

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
	// PUBLIC ROUTES (клиентская запись, без аутентификации)
	// ============================================================

	public := api.PathPrefix("").Subrouter()

	// Публичные маршруты защищаем rate limiter'ом
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		public.Use(rateLimiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	// Свободные слоты барбера на дату
	public.HandleFunc("/barbers/{barberId}/availability", getAvailability.Handle).Methods(http.MethodGet)

	// Создание записи клиентом
	public.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Barber-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Запись по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Календарь барбера на дату
	protected.HandleFunc("/barbers/{barberId}/appointments", getBarberAppointments.Handle).Methods(http.MethodGet)

	// --- Расписание ---
	// Недельное расписание
	protected.HandleFunc("/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/schedule", updateSchedule.Handle).Methods(http.MethodPut)

	// --- Блокировки ---
	// Экстренное закрытие дня
	protected.HandleFunc("/blocks/close-day", closeDay.Handle).Methods(http.MethodPost)

	protected.HandleFunc("/blocks", createBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/blocks", getBlocks.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/blocks/{blockId}", deleteBlock.Handle).Methods(http.MethodDelete)

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
