package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	scheduleRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/schedule"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
)

// UseCase use case для создания бронирования.
// Авторитетная проверка конфликтов: выдача слотов - лишь рекомендация,
// окончательное решение принимается здесь, внутри сериализуемой транзакции
type UseCase struct {
	bookingRepo  BookingRepository
	sessionRepo  SessionRepository
	scheduleRepo ScheduleRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	sessionRepo SessionRepository,
	scheduleRepo ScheduleRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		sessionRepo:  sessionRepo,
		scheduleRepo: scheduleRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Использует сериализуемую транзакцию для предотвращения гонки данных
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: practitioner=%d, client=%d, date=%s, time=%s-%s",
		req.PractitionerID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Booking

	// 2. Все проверки и вставка в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Настройки бронирования (или дефолтные, если не сохранены)
		settings, err := uc.settingsRepo.GetByPractitioner(txCtx, req.PractitionerID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultBookingSettings(req.PractitionerID)
		}

		loc, err := settings.Location()
		if err != nil {
			uc.logger.Error("CreateBooking: invalid timezone %q: %v", settings.Timezone, err)
			return fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now().In(loc)

		startMin, err := req.StartTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		endMin, err := req.EndTime.Minutes()
		if err != nil {
			return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
		}

		// 2.2. Окно бронирования: не в прошлом, не дальше лимита, с учетом minNotice
		slotStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc).
			Add(time.Duration(startMin) * time.Minute)

		if err := validateBookingWindow(req.Date, slotStart, now, settings); err != nil {
			uc.logger.Warn("CreateBooking: booking window validation failed: %v", err)
			return err
		}

		// 2.3. Запрошенное время должно лежать внутри текущей доступности
		override, err := uc.scheduleRepo.GetOverrideByDate(txCtx, req.PractitionerID, req.Date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			uc.logger.Error("CreateBooking: failed to get date override: %v", err)
			return fmt.Errorf("%w: failed to get date override: %v", ErrInternal, err)
		}

		rules, err := uc.scheduleRepo.ListWeeklyRules(txCtx, req.PractitionerID)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get weekly rules: %v", err)
			return fmt.Errorf("%w: failed to get weekly rules: %v", ErrInternal, err)
		}

		fits, err := fitsAvailability(req.Date, startMin, endMin, override, rules)
		if err != nil {
			uc.logger.Error("CreateBooking: availability check failed: %v", err)
			return fmt.Errorf("%w: availability check failed: %v", ErrInternal, err)
		}
		if !fits {
			uc.logger.Warn("CreateBooking: time %s-%s on %s outside availability for practitioner=%d",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat), req.PractitionerID)
			return ErrOutsideAvailability
		}

		// 2.4. Занятые интервалы на дату с блокировкой строк (FOR UPDATE)
		blocking, err := uc.bookingRepo.ListBlockingByDateRange(txCtx, req.PractitionerID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocking bookings: %v", err)
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}

		sessionBlocking, err := uc.sessionRepo.ListBlockingByDateRange(txCtx, req.PractitionerID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blocking sessions: %v", err)
			return fmt.Errorf("%w: failed to get blocking sessions: %v", ErrInternal, err)
		}
		blocking = append(blocking, sessionBlocking...)

		// 2.5. Проверка пересечений с учетом буфера
		conflict, err := hasConflict(req.Date, startMin, endMin, blocking, settings.BufferMinutes)
		if err != nil {
			uc.logger.Error("CreateBooking: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateBooking: slot %s-%s on %s already taken for practitioner=%d",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat), req.PractitionerID)
			return ErrSlotNoLongerAvailable
		}

		// 2.6. Создаем бронирование в статусе pending: до подтверждения email
		// оно уже занимает слот, закрывая гонку двух неподтвержденных запросов
		booking := &domain.Booking{
			PractitionerID: req.PractitionerID,
			ClientID:       req.ClientID,
			BookingDate:    req.Date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         domain.StatusPending,
			ClientName:     req.ClientName,
			ClientEmail:    req.ClientEmail,
			Notes:          req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		PractitionerID: result.PractitionerID,
		ClientID:       result.ClientID,
		Date:           result.BookingDate,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Status:         string(result.Status),
		ClientName:     result.ClientName,
		ClientEmail:    result.ClientEmail,
		Notes:          result.Notes,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}
