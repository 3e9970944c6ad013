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

	getDayAvailabilityHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/get_day_availability"
	normalizeBookingsHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/normalize_bookings"
	reconcileCharterHandler "github.com/m04kA/SMC-CharterService/internal/api/handlers/reconcile_charter"
	"github.com/m04kA/SMC-CharterService/internal/api/middleware"
	"github.com/m04kA/SMC-CharterService/internal/config"
	"github.com/m04kA/SMC-CharterService/internal/infra/spreadsheet"
	charterRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/charter"
	legacyRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/legacy"
	reservationRepo "github.com/m04kA/SMC-CharterService/internal/infra/storage/reservation"
	fleetServiceClient "github.com/m04kA/SMC-CharterService/internal/integrations/fleetservice"
	"github.com/m04kA/SMC-CharterService/internal/scheduler"
	getDayAvailabilityUC "github.com/m04kA/SMC-CharterService/internal/usecase/get_day_availability"
	normalizeBookingsUC "github.com/m04kA/SMC-CharterService/internal/usecase/normalize_bookings"
	reconcileCharterUC "github.com/m04kA/SMC-CharterService/internal/usecase/reconcile_charter"
	"github.com/m04kA/SMC-CharterService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CharterService/pkg/logger"
	"github.com/m04kA/SMC-CharterService/pkg/metrics"
)

const configPath = "config.toml"

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting SMC-CharterService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Availability.Location()
	if err != nil {
		log.Fatal("Failed to load operating timezone: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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
	fleetClient := fleetServiceClient.NewClient(
		cfg.FleetService.URL,
		time.Duration(cfg.FleetService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (FleetService=%s timeout=%ds)",
		cfg.FleetService.URL, cfg.FleetService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	reservationRepository := reservationRepo.NewRepository(executor)
	charterRepository := charterRepo.NewRepository(executor)
	legacyRepository := legacyRepo.NewRepository(executor)

	// Доменная конфигурация: каталог слотов, пороги сверки, таблицы схем
	catalog, err := cfg.SlotCatalog()
	if err != nil {
		log.Fatal("Invalid slot catalog: %v", err)
	}

	variants, yearVariants, err := cfg.SchemaTables()
	if err != nil {
		log.Fatal("Invalid schema variant tables: %v", err)
	}

	normalizer, err := normalizeBookingsUC.NewNormalizer(variants, yearVariants)
	if err != nil {
		log.Fatal("Failed to build normalizer: %v", err)
	}

	// Инициализируем use cases
	getDayAvailabilityUseCase, err := getDayAvailabilityUC.NewUseCase(
		reservationRepository,
		fleetClient,
		catalog,
		cfg.Availability.FullyBookedThreshold,
		metricsCollector,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize availability use case: %v", err)
	}

	reconcileCharterUseCase, err := reconcileCharterUC.NewUseCase(
		charterRepository,
		cfg.Policy(),
		metricsCollector,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize reconciliation use case: %v", err)
	}

	normalizeBookingsUseCase := normalizeBookingsUC.NewUseCase(
		charterRepository,
		legacyRepository,
		spreadsheet.NewReader(cfg.Import.MaxRows),
		normalizer,
		metricsCollector,
		log,
	)

	// Ежедневный дайджест платежей (если включен)
	var digest *scheduler.PaymentDigest
	if cfg.Reconciliation.DigestEnabled {
		digest = scheduler.NewPaymentDigest(
			cfg.Reconciliation.DigestSchedule,
			location,
			reconcileCharterUseCase,
			metricsCollector,
			log,
		)
		if err := digest.Start(); err != nil {
			log.Fatal("Failed to start payment digest: %v", err)
		}
	}

	log.Info("Use cases initialized (slots=%d, threshold=%d, timezone=%s, variants=%d)",
		len(catalog), cfg.Availability.FullyBookedThreshold, location, len(variants))

	// Инициализируем handlers
	getDayAvailability := getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, location, log)
	reconcileCharter := reconcileCharterHandler.NewHandler(reconcileCharterUseCase, location, log)
	normalizeBookings := normalizeBookingsHandler.NewHandler(
		normalizeBookingsUseCase,
		int64(cfg.Import.MaxUploadSize)<<20,
		log,
	)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог слотов операционного дня
	api.HandleFunc("/slots", getDayAvailability.HandleCatalog).Methods(http.MethodGet)

	// Доступность лодки по дням
	api.HandleFunc("/boats/{boatId}/availability", getDayAvailability.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Сверка платежей ---
	// Чартеры, по которым нужно собрать остаток
	protected.HandleFunc("/charters/payment-actions", reconcileCharter.HandlePaymentActions).Methods(http.MethodGet)

	// Сверка одного чартера
	protected.HandleFunc("/charters/{locator}/reconciliation", reconcileCharter.Handle).Methods(http.MethodGet)

	// --- Исторические данные ---
	// Единый список бронирований за год
	protected.HandleFunc("/bookings/canonical", normalizeBookings.HandleCanonical).Methods(http.MethodGet)

	// Импорт выгрузки прошлых лет
	protected.HandleFunc("/legacy/import", normalizeBookings.HandleImport).Methods(http.MethodPost)

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

	if digest != nil {
		digest.Stop()
	}

	// Останавливаем сбор метрик connection pool
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
