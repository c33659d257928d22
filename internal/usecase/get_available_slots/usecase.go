package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов для бронирования.
// Чистый путь чтения: без побочных эффектов, безопасен для параллельных вызовов
type UseCase struct {
	bookingRepo  BookingRepository
	sessionRepo  SessionRepository
	scheduleRepo ScheduleRepository
	busyRepo     BusyRepository
	settingsRepo SettingsRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	scheduleRepo ScheduleRepository,
	busyRepo BusyRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		scheduleRepo: scheduleRepo,
		busyRepo:     busyRepo,
		settingsRepo: settingsRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: practitioner=%d, from=%s, to=%s",
		req.PractitionerID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем настройки бронирования (или дефолтные, если не сохранены)
	settings, err := uc.settingsRepo.GetByPractitioner(ctx, req.PractitionerID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultBookingSettings(req.PractitionerID)
		uc.logger.Info("GetAvailableSlots: using default settings for practitioner=%d", req.PractitionerID)
	}

	// 3. Все сравнения времени ведем в таймзоне специалиста
	loc, err := settings.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: invalid timezone %q: %v", settings.Timezone, err)
		return nil, fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
	}

	now := uc.timeProvider.Now().In(loc)
	today := dateOnly(now, loc)

	// Даты запроса — календарные, интерпретируем их Y/M/D напрямую в loc,
	// иначе полуночный instant из хендлера уползает на сутки назад в западных зонах
	from := time.Date(req.From.Year(), req.From.Month(), req.From.Day(), 0, 0, 0, 0, loc)
	to := from
	if !req.To.IsZero() {
		to = time.Date(req.To.Year(), req.To.Month(), req.To.Day(), 0, 0, 0, 0, loc)
	}

	// 4. Валидация диапазона против окна бронирования
	if err := validateDateRange(from, to, today, settings.MaxBookingDaysAhead); err != nil {
		uc.logger.Warn("GetAvailableSlots: date range validation failed: %v", err)
		return nil, err
	}

	maxDate := time.Time{}
	if settings.HasAdvanceBookingLimit() {
		maxDate = today.AddDate(0, 0, settings.MaxBookingDaysAhead)
	}

	// 5. Загружаем источники доступности одним проходом на весь диапазон
	rules, err := uc.scheduleRepo.ListWeeklyRules(ctx, req.PractitionerID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get weekly rules: %v", err)
		return nil, fmt.Errorf("%w: failed to get weekly rules: %v", ErrInternal, err)
	}

	overrides, err := uc.scheduleRepo.ListOverridesByDateRange(ctx, req.PractitionerID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get date overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get date overrides: %v", ErrInternal, err)
	}

	overrideByDate := make(map[string]*domain.DateOverride, len(overrides))
	for _, override := range overrides {
		overrideByDate[override.Date.Format(domain.DateFormat)] = override
	}

	// 6. Занятые интервалы: бронирования и сессии в блокирующих статусах
	blocking, err := uc.bookingRepo.ListBlockingByDateRange(ctx, req.PractitionerID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocking bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
	}

	sessionBlocking, err := uc.sessionRepo.ListBlockingByDateRange(ctx, req.PractitionerID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocking sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocking sessions: %v", ErrInternal, err)
	}
	blocking = append(blocking, sessionBlocking...)

	// 7. Кэш внешних календарей за весь диапазон (границы дней в таймзоне специалиста)
	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, loc)
	rangeEnd := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)

	busy, err := uc.busyRepo.ListByPractitionerAndRange(ctx, req.PractitionerID, rangeStart, rangeEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy intervals: %v", ErrInternal, err)
	}

	minStart := now.Add(time.Duration(settings.MinBookingNoticeHours) * time.Hour)

	// 8. Генерация по дням в хронологическом порядке
	slots := make([]Slot, 0)
	for date := from; !date.After(to); date = date.AddDate(0, 0, 1) {
		if date.Before(today) {
			continue
		}
		if !maxDate.IsZero() && date.After(maxDate) {
			break
		}

		daySlots, err := uc.generateForDate(date, loc, overrideByDate, rules, blocking, busy, settings, minStart)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v",
				date.Format(domain.DateFormat), err)
			return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
		}
		slots = append(slots, daySlots...)
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for practitioner=%d",
		len(slots), req.PractitionerID)

	return &Response{
		PractitionerID: req.PractitionerID,
		From:           from,
		To:             to,
		Slots:          slots,
	}, nil
}

func (uc *UseCase) generateForDate(
	date time.Time,
	loc *time.Location,
	overrideByDate map[string]*domain.DateOverride,
	rules []*domain.WeeklyRule,
	blocking []*domain.BlockingInterval,
	busy []*domain.BusyInterval,
	settings *domain.BookingSettings,
	minStart time.Time,
) ([]Slot, error) {
	override := overrideByDate[date.Format(domain.DateFormat)]

	available, err := dayWindows(date, override, rules)
	if err != nil {
		return nil, err
	}
	if len(available) == 0 {
		return nil, nil
	}

	occupied, err := occupiedForDay(date, loc, blocking, busy, settings.BufferMinutes)
	if err != nil {
		return nil, err
	}

	free := subtractWindows(available, occupied)

	var slots []Slot
	for _, w := range free {
		windowSlots, err := discretize(date, loc, w, settings.SlotDurationMinutes, minStart)
		if err != nil {
			return nil, err
		}
		slots = append(slots, windowSlots...)
	}

	return slots, nil
}
