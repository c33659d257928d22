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

	cancelBookingHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/create_booking"
	createSessionHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/create_session"
	getAvailableSlotsHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/get_client_bookings"
	getPractitionerBookingsHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/get_practitioner_bookings"
	getScheduleHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/get_schedule"
	getSettingsHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/get_settings"
	resolveRescheduleHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/resolve_reschedule"
	rsvpRespondHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/rsvp_respond"
	runRemindersHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/run_reminders"
	setDateOverrideHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/set_date_override"
	syncCalendarsHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/sync_calendars"
	updateSettingsHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/update_settings"
	updateWeeklyScheduleHandler "github.com/praxisbook/scheduling-service/internal/api/handlers/update_weekly_schedule"
	"github.com/praxisbook/scheduling-service/internal/api/middleware"
	"github.com/praxisbook/scheduling-service/internal/config"
	bookingRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/booking"
	busycacheRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/busycache"
	scheduleRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/schedule"
	sessionRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/session"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
	calendarClient "github.com/praxisbook/scheduling-service/internal/integrations/calendarprovider"
	notifierClient "github.com/praxisbook/scheduling-service/internal/integrations/notifier"
	bookingsService "github.com/praxisbook/scheduling-service/internal/service/bookings"
	scheduleService "github.com/praxisbook/scheduling-service/internal/service/schedule"
	settingsService "github.com/praxisbook/scheduling-service/internal/service/settings"
	confirmBookingUC "github.com/praxisbook/scheduling-service/internal/usecase/confirm_booking"
	createBookingUC "github.com/praxisbook/scheduling-service/internal/usecase/create_booking"
	createSessionUC "github.com/praxisbook/scheduling-service/internal/usecase/create_session"
	getAvailableSlotsUC "github.com/praxisbook/scheduling-service/internal/usecase/get_available_slots"
	resolveRescheduleUC "github.com/praxisbook/scheduling-service/internal/usecase/resolve_reschedule"
	rsvpRespondUC "github.com/praxisbook/scheduling-service/internal/usecase/rsvp_respond"
	sendRemindersUC "github.com/praxisbook/scheduling-service/internal/usecase/send_reminders"
	setDateOverrideUC "github.com/praxisbook/scheduling-service/internal/usecase/set_date_override"
	syncBusyTimesUC "github.com/praxisbook/scheduling-service/internal/usecase/sync_busy_times"
	updateWeeklyScheduleUC "github.com/praxisbook/scheduling-service/internal/usecase/update_weekly_schedule"
	"github.com/praxisbook/scheduling-service/pkg/dbmetrics"
	"github.com/praxisbook/scheduling-service/pkg/logger"
	"github.com/praxisbook/scheduling-service/pkg/metrics"
	"github.com/praxisbook/scheduling-service/pkg/simpletxmanager"
	"github.com/praxisbook/scheduling-service/pkg/txmanager"
)

// noopCollector заглушка счетчиков, когда метрики выключены
type noopCollector struct{}

func (noopCollector) IncReminderProcessed(kind string, success bool) {}
func (noopCollector) IncBusySync(provider string, success bool)      {}

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

	log.Info("Starting scheduling-service...")
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
	notifier := notifierClient.NewClient(
		cfg.Notifier.URL,
		time.Duration(cfg.Notifier.Timeout)*time.Second,
		log,
	)
	calendarClients := make([]syncBusyTimesUC.CalendarClient, 0, len(cfg.CalendarSync.Providers))
	for _, provider := range cfg.CalendarSync.Providers {
		calendarClients = append(calendarClients, calendarClient.NewClient(
			provider.Name,
			provider.URL,
			time.Duration(cfg.CalendarSync.Timeout)*time.Second,
			log,
		))
	}
	log.Info("Integration clients initialized (Notifier=%s, calendar providers=%d)",
		cfg.Notifier.URL, len(calendarClients))

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		sessionRepository  *sessionRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		busyRepository     *busycacheRepo.Repository
		settingsRepository *settingsRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		busyRepository = busycacheRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		bookingRepository = bookingRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		busyRepository = busycacheRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Счетчики батч-операций: реальные или заглушка
	var reminderMetrics sendRemindersUC.MetricsCollector = noopCollector{}
	var syncMetrics syncBusyTimesUC.MetricsCollector = noopCollector{}
	if cfg.Metrics.Enabled {
		reminderMetrics = metricsCollector
		syncMetrics = metricsCollector
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(scheduleRepository, log)
	settingsSvc := settingsService.NewService(settingsRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		sessionRepository,
		scheduleRepository,
		busyRepository,
		settingsRepository,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		sessionRepository,
		scheduleRepository,
		settingsRepository,
		txMgr,
		log,
	)
	confirmBookingUseCase := confirmBookingUC.NewUseCase(bookingRepository, settingsRepository, log)
	createSessionUseCase := createSessionUC.NewUseCase(
		sessionRepository,
		bookingRepository,
		settingsRepository,
		txMgr,
		log,
	)
	rsvpRespondUseCase := rsvpRespondUC.NewUseCase(sessionRepository, log)
	resolveRescheduleUseCase := resolveRescheduleUC.NewUseCase(
		sessionRepository,
		bookingRepository,
		settingsRepository,
		txMgr,
		log,
	)
	updateWeeklyScheduleUseCase := updateWeeklyScheduleUC.NewUseCase(scheduleRepository, txMgr, log)
	setDateOverrideUseCase := setDateOverrideUC.NewUseCase(scheduleRepository, log)
	sendRemindersUseCase := sendRemindersUC.NewUseCase(
		sessionRepository,
		settingsRepository,
		notifier,
		sendRemindersUC.Settings{
			RSVPFirstHours:          cfg.Reminders.RSVPFirstHours,
			RSVPSecondHours:         cfg.Reminders.RSVPSecondHours,
			SessionToleranceMinutes: cfg.Reminders.SessionToleranceMinutes,
			RSVPFirstEnabled:        cfg.Reminders.RSVPFirstEnabled,
			RSVPSecondEnabled:       cfg.Reminders.RSVPSecondEnabled,
			Session24hEnabled:       cfg.Reminders.Session24hEnabled,
			Session1hEnabled:        cfg.Reminders.Session1hEnabled,
		},
		reminderMetrics,
		log,
	)
	syncBusyTimesUseCase := syncBusyTimesUC.NewUseCase(
		calendarClients,
		busyRepository,
		txMgr,
		cfg.CalendarSync.HorizonDays,
		syncMetrics,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	confirmBooking := confirmBookingHandler.NewHandler(confirmBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getPractitionerBookings := getPractitionerBookingsHandler.NewHandler(bookingSvc, log)
	createSession := createSessionHandler.NewHandler(createSessionUseCase, log)
	rsvpRespond := rsvpRespondHandler.NewHandler(rsvpRespondUseCase, log)
	resolveReschedule := resolveRescheduleHandler.NewHandler(resolveRescheduleUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateWeeklySchedule := updateWeeklyScheduleHandler.NewHandler(updateWeeklyScheduleUseCase, log)
	setDateOverride := setDateOverrideHandler.NewHandler(setDateOverrideUseCase, log)
	getSettings := getSettingsHandler.NewHandler(settingsSvc, log)
	updateSettings := updateSettingsHandler.NewHandler(settingsSvc, log)
	runReminders := runRemindersHandler.NewHandler(sendRemindersUseCase, log)
	syncCalendars := syncCalendarsHandler.NewHandler(syncBusyTimesUseCase, log)

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

	// Получение доступных слотов для бронирования
	api.HandleFunc("/practitioners/{practitionerId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Публичное расписание специалиста
	api.HandleFunc("/practitioners/{practitionerId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Настройки бронирования специалиста
	api.HandleFunc("/practitioners/{practitionerId}/settings",
		getSettings.Handle).Methods(http.MethodGet)

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

	// Подтверждение бронирования клиентом
	protected.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/clients/me/bookings", getClientBookings.Handle).Methods(http.MethodGet)

	// Календарь специалиста
	protected.HandleFunc("/practitioners/{practitionerId}/bookings",
		getPractitionerBookings.Handle).Methods(http.MethodGet)

	// --- Сессии и RSVP ---
	// Создание сессии специалистом
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Ответ клиента на приглашение
	protected.HandleFunc("/sessions/{sessionId}/rsvp", rsvpRespond.Handle).Methods(http.MethodPost)

	// Решение специалиста по предложению переноса
	protected.HandleFunc("/sessions/{sessionId}/reschedule/resolve",
		resolveReschedule.Handle).Methods(http.MethodPost)

	// --- Управление расписанием и настройками ---
	// Еженедельное расписание (replace-all)
	protected.HandleFunc("/practitioners/me/schedule/weekly",
		updateWeeklySchedule.Handle).Methods(http.MethodPut)

	// Исключение на дату (upsert)
	protected.HandleFunc("/practitioners/me/schedule/overrides",
		setDateOverride.Handle).Methods(http.MethodPut)

	// Удаление исключения
	protected.HandleFunc("/practitioners/me/schedule/overrides/{date}",
		setDateOverride.HandleDelete).Methods(http.MethodDelete)

	// Настройки бронирования
	protected.HandleFunc("/practitioners/me/settings", updateSettings.Handle).Methods(http.MethodPut)

	// ============================================================
	// INTERNAL ROUTES (сервисный токен, запускаются планировщиком)
	// ============================================================

	internal := r.PathPrefix("/internal/v1").Subrouter()
	internal.Use(middleware.BearerToken(cfg.Reminders.Token))

	// Батч напоминаний
	internal.HandleFunc("/reminders/run", runReminders.Handle).Methods(http.MethodPost)

	// Синхронизация внешних календарей специалиста
	internal.HandleFunc("/practitioners/{practitionerId}/calendar-sync",
		syncCalendars.Handle).Methods(http.MethodPost)

	// Короткий алиас для ручного запуска батча напоминаний, тот же сервисный токен
	r.Handle("/run-reminders",
		middleware.BearerToken(cfg.Reminders.Token)(http.HandlerFunc(runReminders.Handle))).
		Methods(http.MethodPost)

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
