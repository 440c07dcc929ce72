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

	cancelDepartureHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/cancel_departure"
	createDepartureHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/create_departure"
	featureDepartureHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/feature_departure"
	getDepartureHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/get_departure"
	getFeaturedQueueHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/get_featured_queue"
	getRotationConfigHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/get_rotation_config"
	listRouteDeparturesHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/list_route_departures"
	rotateDeparturesHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/rotate_departures"
	updateRotationConfigHandler "github.com/m04kA/SMC-DepartureService/internal/api/handlers/update_rotation_config"
	"github.com/m04kA/SMC-DepartureService/internal/api/middleware"
	"github.com/m04kA/SMC-DepartureService/internal/config"
	"github.com/m04kA/SMC-DepartureService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/booking"
	departureRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/departure"
	rotationConfigRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/rotationconfig"
	routeRepo "github.com/m04kA/SMC-DepartureService/internal/infra/storage/route"
	departuresService "github.com/m04kA/SMC-DepartureService/internal/service/departures"
	rotationConfigService "github.com/m04kA/SMC-DepartureService/internal/service/rotationconfig"
	rotateDeparturesUC "github.com/m04kA/SMC-DepartureService/internal/usecase/rotate_departures"
	"github.com/m04kA/SMC-DepartureService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DepartureService/pkg/logger"
	"github.com/m04kA/SMC-DepartureService/pkg/metrics"
	"github.com/m04kA/SMC-DepartureService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	configPath := config.Path()
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

	log.Info("Starting SMC-DepartureService...")
	log.Info("Configuration loaded from %s", configPath)

	if cfg.Cron.Secret == "" {
		log.Warn("Cron secret is not configured: /cron/rotate-departures accepts unauthenticated calls")
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

	// Обёртка над БД: без метрик recorder = nil, транзакции работают одинаково
	var wrappedDB *dbmetrics.DB
	var rotationMetrics rotateDeparturesUC.MetricsRecorder

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		rotationMetrics = metricsCollector
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	departureRepository := departureRepo.NewRepository(wrappedDB)
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	routeRepository := routeRepo.NewRepository(wrappedDB)
	rotationConfigRepository := rotationConfigRepo.NewRepository(wrappedDB)

	// Инициализируем сервисы
	rotationConfigSvc := rotationConfigService.NewService(rotationConfigRepository, log)
	departuresSvc := departuresService.NewService(
		departureRepository,
		bookingRepository,
		routeRepository,
		rotationConfigSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	rotateDeparturesUseCase := rotateDeparturesUC.NewUseCase(
		departureRepository,
		bookingRepository,
		rotationConfigSvc,
		rotationConfigRepository,
		rotationMetrics,
		log,
	)

	// Инициализируем handlers
	cronRotate := rotateDeparturesHandler.NewHandler(rotateDeparturesUseCase, domain.TriggerCron, log)
	manualRotate := rotateDeparturesHandler.NewHandler(rotateDeparturesUseCase, domain.TriggerManual, log)
	listRouteDepartures := listRouteDeparturesHandler.NewHandler(departuresSvc, log)
	createDeparture := createDepartureHandler.NewHandler(departuresSvc, log)
	getDeparture := getDepartureHandler.NewHandler(departuresSvc, log)
	featureDeparture := featureDepartureHandler.NewHandler(departuresSvc, log)
	cancelDeparture := cancelDepartureHandler.NewHandler(departuresSvc, log)
	getFeaturedQueue := getFeaturedQueueHandler.NewHandler(departuresSvc, log)
	getRotationConfig := getRotationConfigHandler.NewHandler(rotationConfigSvc, log)
	updateRotationConfig := updateRotationConfigHandler.NewHandler(rotationConfigSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Предстоящие выезды маршрута для сайта
	api.HandleFunc("/routes/{routeId}/departures", listRouteDepartures.Handle).Methods(http.MethodGet)

	// ============================================================
	// CRON (Authorization: Bearer <cron.secret>)
	// ============================================================

	cron := api.PathPrefix("/cron").Subrouter()
	cron.Use(middleware.CronAuth(cfg.Cron.Secret))

	cron.HandleFunc("/rotate-departures", cronRotate.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-ID header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth)

	// --- Ротация ---
	admin.HandleFunc("/departures/rotate", manualRotate.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/routes/{routeId}/featured-queue", getFeaturedQueue.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rotation-config", getRotationConfig.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/rotation-config", updateRotationConfig.Handle).Methods(http.MethodPut)

	// --- Выезды ---
	admin.HandleFunc("/departures", createDeparture.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/departures/{departureId}", getDeparture.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/departures/{departureId}/feature", featureDeparture.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/departures/{departureId}/cancel", cancelDeparture.Handle).Methods(http.MethodPatch)

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
