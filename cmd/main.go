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
	"github.com/redis/go-redis/v9"

	cancelBookingHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/create_booking"
	getBookingHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_booking"
	getMyBookingsHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/get_my_bookings"
	healthHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/health"
	updateBookingStatusHandler "github.com/m04kA/SMC-BarberBookingService/internal/api/handlers/update_booking_status"
	"github.com/m04kA/SMC-BarberBookingService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBookingService/internal/authz"
	"github.com/m04kA/SMC-BarberBookingService/internal/config"
	"github.com/m04kA/SMC-BarberBookingService/internal/infra/cache/directorycache"
	bookingRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/booking"
	directoryRepo "github.com/m04kA/SMC-BarberBookingService/internal/infra/storage/directory"
	"github.com/m04kA/SMC-BarberBookingService/internal/integrations/identity"
	bookingsService "github.com/m04kA/SMC-BarberBookingService/internal/service/bookings"
	createBookingUC "github.com/m04kA/SMC-BarberBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BarberBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/logger"
	"github.com/m04kA/SMC-BarberBookingService/pkg/metrics"
	"github.com/m04kA/SMC-BarberBookingService/pkg/migrator"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

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

	log.Info("Starting SMC-BarberBookingService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	// nil-метрики безопасны: методы ничего не делают
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Применяем миграции
	if cfg.Migrations.Enabled {
		version, err := migrator.Up(cfg.Migrations.SourceURL(), cfg.Database.URL())
		if err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Migrations applied, schema version=%d", version)
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

	// Инициализируем репозитории (с метриками или без)
	var executor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		executor = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	bookingRepository := bookingRepo.NewRepository(executor)
	directoryRepository := directoryRepo.NewRepository(executor)

	// Кеш справочника мастеров
	redisClient := newRedisClient(cfg.Redis, log)
	if redisClient != nil {
		defer redisClient.Close()
	}
	directory := directorycache.New(
		directoryRepository,
		redisClient,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		log,
	)

	// Проверка токенов
	var authenticator middleware.Authenticator
	switch cfg.Auth.Mode {
	case config.AuthModeRemote:
		authenticator = identity.NewClient(
			cfg.IdentityService.URL,
			time.Duration(cfg.IdentityService.Timeout)*time.Second,
			log,
		)
		log.Info("Identity resolved remotely (url=%s, timeout=%ds)",
			cfg.IdentityService.URL, cfg.IdentityService.Timeout)
	default:
		authenticator = identity.NewJWTAuthenticator(
			cfg.Auth.JWTSecret,
			cfg.Auth.JWTIssuer,
			time.Duration(cfg.Auth.JWTLeeway)*time.Second,
		)
		log.Info("Identity resolved from JWT (issuer=%q)", cfg.Auth.JWTIssuer)
	}

	policy := authz.NewPolicy(cfg.Auth.StrictPointLookup)
	log.Info("Authorization policy: strict_point_lookup=%t", cfg.Auth.StrictPointLookup)

	// Инициализируем сервисы и use cases
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		directory,
		policy,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		directory,
		policy,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getMyBookings := getMyBookingsHandler.NewHandler(bookingSvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	health := healthHandler.NewHandler()

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/api/health", health.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Authorization: Bearer)
	// ============================================================

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(authenticator, log))

	// /bookings/mine регистрируется раньше /bookings/{bookingId}
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/bookings/mine", getMyBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	api.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	api.HandleFunc("/bookings/{bookingId}", cancelBooking.Handle).Methods(http.MethodDelete)

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

// newRedisClient возвращает nil, если Redis выключен или недоступен при старте
func newRedisClient(cfg config.RedisConfig, log *logger.Logger) *redis.Client {
	if !cfg.Enabled {
		log.Info("Redis cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn("Redis is unreachable at %s, capster cache disabled: %v", cfg.Addr, err)
		_ = client.Close()
		return nil
	}

	log.Info("Connected to Redis at %s (cache ttl=%ds)", cfg.Addr, cfg.CacheTTL)
	return client
}
