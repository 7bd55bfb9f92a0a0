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

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	commitScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/commit_schedule"
	createBlockedDateHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/create_blocked_date"
	deleteBlockedDateHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/delete_blocked_date"
	editScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/edit_schedule"
	getAvailableSlotsHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_schedule"
	getScheduleConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_schedule_config"
	listBlockedDatesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_blocked_dates"
	replaceScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/replace_schedule"
	resetScheduleConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/reset_schedule_config"
	updateScheduleConfigHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/update_schedule_config"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	blockedDatesRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/blocked_dates"
	configRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/config"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/notifier"
	userServiceClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/userservice"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/access"
	blockedDatesService "github.com/m04kA/SMC-AvailabilityService/internal/service/blocked_dates"
	configService "github.com/m04kA/SMC-AvailabilityService/internal/service/config"
	scheduleService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	commitScheduleUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/commit_schedule"
	editScheduleUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/edit_schedule"
	getAvailableSlotsUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	replaceScheduleUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/replace_schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Запустить HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&configPath, "config", "c", "config.toml", "путь к TOML конфигурации")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		return fmt.Errorf("initialize logger: %w", err)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

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
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Без метрик обёртка только прокидывает вызовы
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Репозитории
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB)
	configRepository := configRepo.NewRepository(wrappedDB)
	blockedDatesRepository := blockedDatesRepo.NewRepository(wrappedDB)

	// Интеграции
	var users access.UserServiceClient
	if cfg.UserService.URL != "" {
		users = userServiceClient.NewClient(
			cfg.UserService.URL,
			time.Duration(cfg.UserService.Timeout)*time.Second,
			log,
		)
		log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)
	} else {
		log.Warn("UserService URL is not set, mentor role is not verified")
	}
	accessChecker := access.NewChecker(users, log)

	var scheduleCache *cache.Cache
	if cfg.Cache.Enabled {
		scheduleCache = cache.New(cache.Config{
			Addr:     cfg.Cache.Addr,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,
			TTL:      time.Duration(cfg.Cache.TTL) * time.Second,
		}, log, metricsCollector)
		defer scheduleCache.Close()
	}

	events := notifier.Disabled(log)
	if cfg.Events.Enabled {
		connected, err := notifier.Connect(cfg.Events.URL, cfg.Events.Subject, log)
		if err != nil {
			log.Warn("NATS unavailable at %s, events are not published: %v", cfg.Events.URL, err)
		} else {
			events = connected
		}
	}
	defer events.Close()

	// Сервисы
	configSvc := configService.NewService(configRepository, accessChecker, cfg.Schedule.ScheduleConfig, log)
	blockedDatesSvc := blockedDatesService.NewService(blockedDatesRepository, accessChecker, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, accessChecker, log)

	// Use cases
	editScheduleUseCase := editScheduleUC.NewUseCase(
		scheduleRepository,
		configSvc,
		accessChecker,
		txMgr,
		scheduleCache,
		metricsCollector,
		log,
	)
	replaceScheduleUseCase := replaceScheduleUC.NewUseCase(
		scheduleRepository,
		configSvc,
		accessChecker,
		txMgr,
		scheduleCache,
		metricsCollector,
		log,
	)
	commitScheduleUseCase := commitScheduleUC.NewUseCase(
		scheduleRepository,
		configSvc,
		accessChecker,
		txMgr,
		scheduleCache,
		events,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		scheduleRepository,
		blockedDatesRepository,
		scheduleCache,
		getAvailableSlotsUC.Options{
			MinNoticeMinutes: cfg.Schedule.MinNoticeMinutes,
			MaxAdvanceDays:   cfg.Schedule.MaxAdvanceDays,
		},
		log,
	)

	// Handlers
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	replaceSchedule := replaceScheduleHandler.NewHandler(replaceScheduleUseCase, log)
	editSchedule := editScheduleHandler.NewHandler(editScheduleUseCase, log)
	commitSchedule := commitScheduleHandler.NewHandler(commitScheduleUseCase, log)
	getScheduleConfig := getScheduleConfigHandler.NewHandler(configSvc, log)
	updateScheduleConfig := updateScheduleConfigHandler.NewHandler(configSvc, log)
	resetScheduleConfig := resetScheduleConfigHandler.NewHandler(configSvc, log)
	listBlockedDates := listBlockedDatesHandler.NewHandler(blockedDatesSvc, log)
	createBlockedDate := createBlockedDateHandler.NewHandler(blockedDatesSvc, log)
	deleteBlockedDate := deleteBlockedDateHandler.NewHandler(blockedDatesSvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		r.Use(limiter.Middleware)
		log.Info("Rate limit enabled (rps=%.1f, burst=%d)", cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}

	r.HandleFunc("/health", healthHandler(db)).Methods(http.MethodGet)

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/mentors/{mentorId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/schedule/config", getScheduleConfig.Handle).Methods(http.MethodGet)
	api.HandleFunc("/mentors/{mentorId}/blocked-dates", listBlockedDates.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Расписание ---
	protected.HandleFunc("/mentors/{mentorId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/mentors/{mentorId}/schedule", replaceSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/mentors/{mentorId}/schedule/edits", editSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/mentors/{mentorId}/schedule/commit", commitSchedule.Handle).Methods(http.MethodPost)

	// --- Правила расписания ---
	protected.HandleFunc("/mentors/{mentorId}/schedule/config", updateScheduleConfig.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/mentors/{mentorId}/schedule/config", resetScheduleConfig.Handle).Methods(http.MethodDelete)

	// --- Заблокированные даты ---
	protected.HandleFunc("/mentors/{mentorId}/blocked-dates", createBlockedDate.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/mentors/{mentorId}/blocked-dates/{blockedDateId}", deleteBlockedDate.Handle).Methods(http.MethodDelete)

	handler := gorillaHandlers.RecoveryHandler(gorillaHandlers.PrintRecoveryStack(true))(
		gorillaHandlers.CORS(
			gorillaHandlers.AllowedOrigins(cfg.Server.AllowedOrigins),
			gorillaHandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
			gorillaHandlers.AllowedHeaders([]string{"Content-Type", middleware.HeaderUserID, middleware.HeaderRequestID}),
		)(r),
	)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-serverErr:
		close(stopMetricsCh)
		return fmt.Errorf("http server: %w", err)
	}

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
	return nil
}

// healthHandler GET /health, 503 если БД недоступна
func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			handlers.RespondError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
		handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
