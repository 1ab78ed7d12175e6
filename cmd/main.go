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

	cancelReservationHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/create_reservation"
	getPileReservationsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/get_pile_reservations"
	getPileSlotsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/get_pile_slots"
	getReservationHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/get_reservation"
	getSlotSettingsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/get_slot_settings"
	getUserReservationsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/get_user_reservations"
	startSessionHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/start_session"
	stopSessionHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/stop_session"
	updateSlotSettingsHandler "github.com/m04kA/SMC-ChargingService/internal/api/handlers/update_slot_settings"
	"github.com/m04kA/SMC-ChargingService/internal/api/middleware"
	"github.com/m04kA/SMC-ChargingService/internal/config"
	"github.com/m04kA/SMC-ChargingService/internal/infra/queue"
	reservationRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/reservation"
	slotSettingsRepo "github.com/m04kA/SMC-ChargingService/internal/infra/storage/slotsettings"
	fleetServiceClient "github.com/m04kA/SMC-ChargingService/internal/integrations/fleetservice"
	stationServiceClient "github.com/m04kA/SMC-ChargingService/internal/integrations/stationservice"
	reservationsService "github.com/m04kA/SMC-ChargingService/internal/service/reservations"
	sessionsService "github.com/m04kA/SMC-ChargingService/internal/service/sessions"
	slotconfigService "github.com/m04kA/SMC-ChargingService/internal/service/slotconfig"
	"github.com/m04kA/SMC-ChargingService/internal/sweeper"
	createReservationUC "github.com/m04kA/SMC-ChargingService/internal/usecase/create_reservation"
	getPileSlotsUC "github.com/m04kA/SMC-ChargingService/internal/usecase/get_pile_slots"
	"github.com/m04kA/SMC-ChargingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ChargingService/pkg/logger"
	"github.com/m04kA/SMC-ChargingService/pkg/metrics"
	"github.com/m04kA/SMC-ChargingService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ChargingService/pkg/txmanager"
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

	log.Info("Starting SMC-ChargingService...")
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
	stationClient := stationServiceClient.NewClient(
		cfg.StationService.URL,
		time.Duration(cfg.StationService.Timeout)*time.Second,
		log,
	)
	fleetClient := fleetServiceClient.NewClient(
		cfg.FleetService.URL,
		time.Duration(cfg.FleetService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StationService=%s timeout=%ds, FleetService=%s timeout=%ds)",
		cfg.StationService.URL, cfg.StationService.Timeout, cfg.FleetService.URL, cfg.FleetService.Timeout)

	// Publisher событий завершённых сессий (если включён)
	var publisher *queue.Publisher
	if cfg.Events.Enabled {
		publisher, err = queue.NewPublisher(cfg.Events.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		log.Info("Session events publisher connected to %s", cfg.Events.URL)
	}

	// Инициализируем репозитории и сервисы (с метриками или без)
	var (
		reservationRepository  *reservationRepo.Repository
		slotSettingsRepository *slotSettingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		slotSettingsRepository = slotSettingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		slotSettingsRepository = slotSettingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		log,
	)

	var eventPublisher sessionsService.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}
	sessionsSvc := sessionsService.NewService(
		reservationRepository,
		eventPublisher,
		log,
	)

	slotconfigSvc := slotconfigService.NewService(
		slotSettingsRepository,
		stationClient,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		stationClient,
		fleetClient,
		txMgr,
		log,
	)

	getPileSlotsUseCase := getPileSlotsUC.NewUseCase(
		reservationRepository,
		slotSettingsRepository,
		stationClient,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getPileSlots := getPileSlotsHandler.NewHandler(getPileSlotsUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(sessionsSvc, log)
	startSession := startSessionHandler.NewHandler(sessionsSvc, log)
	stopSession := stopSessionHandler.NewHandler(sessionsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getPileReservations := getPileReservationsHandler.NewHandler(reservationsSvc, log)
	getSlotSettings := getSlotSettingsHandler.NewHandler(slotconfigSvc, log)
	updateSlotSettings := updateSlotSettingsHandler.NewHandler(slotconfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
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

	// Календарь слотов столба (X-User-ID опционален, влияет на флаг mine)
	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)
	public.HandleFunc("/piles/{pileId}/slots", getPileSlots.Handle).Methods(http.MethodGet)

	// Журнал бронирований столба (для операторов)
	public.HandleFunc("/piles/{pileId}/reservations", getPileReservations.Handle).Methods(http.MethodGet)

	// Настройки ширины слотов площадки
	public.HandleFunc("/locations/{locationId}/slot-settings", getSlotSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Зарядные сессии ---
	protected.HandleFunc("/reservations/{reservationId}/start", startSession.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}/stop", stopSession.Handle).Methods(http.MethodPost)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// Обновление настроек ширины слотов (для операторов площадки)
	protected.HandleFunc("/locations/{locationId}/slot-settings", updateSlotSettings.Handle).Methods(http.MethodPut)

	// Фоновая отмена no-show бронирований (если включена)
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	if cfg.Sweeper.Enabled {
		noShowSweeper := sweeper.New(
			reservationRepository,
			sessionsSvc,
			time.Duration(cfg.Sweeper.IntervalSeconds)*time.Second,
			time.Duration(cfg.Sweeper.GraceMinutes)*time.Minute,
			log,
		)
		go noShowSweeper.Run(sweeperCtx)
	}

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

	// Останавливаем фоновые процессы
	stopSweeper()
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
