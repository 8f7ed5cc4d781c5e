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

	cancelAppointmentHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/cancel_appointment"
	createAppointmentHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/create_appointment"
	getAppointmentHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_appointment"
	getClinicAppointmentsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_clinic_appointments"
	getClinicScheduleHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_clinic_schedule"
	getPatientAppointmentsHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/get_patient_appointments"
	updateAppointmentStatusHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_appointment_status"
	updateClinicScheduleHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/update_clinic_schedule"
	validateAppointmentHandler "github.com/m04kA/SMC-ClinicScheduler/internal/api/handlers/validate_appointment"
	"github.com/m04kA/SMC-ClinicScheduler/internal/api/middleware"
	"github.com/m04kA/SMC-ClinicScheduler/internal/config"
	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/appointment"
	scheduleRepo "github.com/m04kA/SMC-ClinicScheduler/internal/infra/storage/schedule"
	practitionerServiceClient "github.com/m04kA/SMC-ClinicScheduler/internal/integrations/practitionerservice"
	appointmentsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/appointments"
	conflictsService "github.com/m04kA/SMC-ClinicScheduler/internal/service/conflicts"
	durationPolicyService "github.com/m04kA/SMC-ClinicScheduler/internal/service/durationpolicy"
	scheduleService "github.com/m04kA/SMC-ClinicScheduler/internal/service/schedule"
	createAppointmentUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/create_appointment"
	validateAppointmentUC "github.com/m04kA/SMC-ClinicScheduler/internal/usecase/validate_appointment"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/dbmetrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/logger"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/metrics"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/simpletxmanager"
	"github.com/m04kA/SMC-ClinicScheduler/pkg/txmanager"
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

	log.Info("Starting SMC-ClinicScheduler...")
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

	// Инициализируем клиента справочника врачей
	practitionerClient := practitionerServiceClient.NewClient(
		cfg.PractitionerService.URL,
		time.Duration(cfg.PractitionerService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (PractitionerService=%s timeout=%ds)",
		cfg.PractitionerService.URL, cfg.PractitionerService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		domain.DefaultWeeklySchedule(),
		domain.NationalHolidays(),
		log,
	)
	durationPolicy := durationPolicyService.NewPolicy(domain.DefaultDurationRules())
	conflictDetector := conflictsService.NewDetector()
	appointmentsSvc := appointmentsService.NewService(appointmentRepository, log)

	// Инициализируем use cases
	validateAppointmentUseCase := validateAppointmentUC.NewUseCase(
		appointmentRepository,
		scheduleSvc,
		durationPolicy,
		conflictDetector,
		practitionerClient,
		log,
	)

	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		validateAppointmentUseCase,
		txMgr,
		log,
	)

	// Инициализируем handlers
	validateAppointment := validateAppointmentHandler.NewHandler(validateAppointmentUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentsSvc, log)
	getPatientAppointments := getPatientAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClinicAppointments := getClinicAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getClinicSchedule := getClinicScheduleHandler.NewHandler(scheduleSvc, log)
	updateClinicSchedule := updateClinicScheduleHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Request ID для трассировки запросов между сервисами
	r.Use(middleware.RequestID)

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

	// Валидация кандидата на прием (dry-run, ничего не создает)
	api.HandleFunc("/appointments/validate", validateAppointment.Handle).Methods(http.MethodPost)

	// Расписание клиники
	api.HandleFunc("/clinics/{clinicId}/schedule", getClinicSchedule.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Приемы ---
	// Создание приема (валидация + запись в одной транзакции)
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение приема по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Отмена приема (обязательна причина)
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Смена статуса приема (только персонал)
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// История приемов пациента
	protected.HandleFunc("/patients/{patientId}/appointments", getPatientAppointments.Handle).Methods(http.MethodGet)

	// --- Управление клиникой (для персонала) ---
	// Список приемов клиники
	protected.HandleFunc("/clinics/{clinicId}/appointments", getClinicAppointments.Handle).Methods(http.MethodGet)

	// Обновление расписания клиники
	protected.HandleFunc("/clinics/{clinicId}/schedule", updateClinicSchedule.Handle).Methods(http.MethodPut)

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
