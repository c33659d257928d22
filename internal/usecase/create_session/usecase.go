package create_session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

const dayEndMinutes = 24 * 60

// UseCase use case для создания сессии специалистом.
// Сессия создается сразу в статусе scheduled и занимает слот немедленно;
// еженедельное расписание не проверяется: специалист ставит встречи в своем
// календаре свободно, но пересечения с занятым временем все равно запрещены
type UseCase struct {
	sessionRepo  SessionRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	bookingRepo BookingRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		bookingRepo:  bookingRepo,
		settingsRepo: settingsRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания сессии
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateSession: practitioner=%d, client=%d, date=%s, time=%s-%s",
		req.PractitionerID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateSession: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Session

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		settings, err := uc.settingsRepo.GetByPractitioner(txCtx, req.PractitionerID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateSession: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultBookingSettings(req.PractitionerID)
		}

		loc, err := settings.Location()
		if err != nil {
			uc.logger.Error("CreateSession: invalid timezone %q: %v", settings.Timezone, err)
			return fmt.Errorf("%w: invalid timezone: %v", ErrInternal, err)
		}

		now := uc.timeProvider.Now().In(loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		dateOnly := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, loc)
		if dateOnly.Before(today) {
			uc.logger.Warn("CreateSession: date %s is in the past", req.Date.Format(domain.DateFormat))
			return ErrInvalidDate
		}

		blocking, err := uc.bookingRepo.ListBlockingByDateRange(txCtx, req.PractitionerID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateSession: failed to get blocking bookings: %v", err)
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}

		sessionBlocking, err := uc.sessionRepo.ListBlockingByDateRange(txCtx, req.PractitionerID, req.Date, req.Date)
		if err != nil {
			uc.logger.Error("CreateSession: failed to get blocking sessions: %v", err)
			return fmt.Errorf("%w: failed to get blocking sessions: %v", ErrInternal, err)
		}
		blocking = append(blocking, sessionBlocking...)

		conflict, err := hasConflict(req.Date, req.StartTime, req.EndTime, blocking, settings.BufferMinutes)
		if err != nil {
			uc.logger.Error("CreateSession: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateSession: slot %s-%s on %s already taken for practitioner=%d",
				req.StartTime, req.EndTime, req.Date.Format(domain.DateFormat), req.PractitionerID)
			return ErrSlotNoLongerAvailable
		}

		session := &domain.Session{
			PractitionerID: req.PractitionerID,
			ClientID:       req.ClientID,
			SessionDate:    req.Date,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         domain.SessionStatusScheduled,
			RSVPStatus:     domain.RSVPPending,
			Title:          req.Title,
			ClientEmail:    req.ClientEmail,
		}

		created, err := uc.sessionRepo.Create(txCtx, session)
		if err != nil {
			uc.logger.Error("CreateSession: failed to create session: %v", err)
			return fmt.Errorf("%w: failed to create session: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateSession: successfully created session id=%d", result.ID)

	return &Response{
		ID:             result.ID,
		PractitionerID: result.PractitionerID,
		ClientID:       result.ClientID,
		Date:           result.SessionDate,
		StartTime:      result.StartTime,
		EndTime:        result.EndTime,
		Status:         string(result.Status),
		RSVPStatus:     string(result.RSVPStatus),
		Title:          result.Title,
		ClientEmail:    result.ClientEmail,
		CreatedAt:      result.CreatedAt,
		UpdatedAt:      result.UpdatedAt,
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	if req.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}

	if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
		return fmt.Errorf("%w: invalid clientEmail", ErrInvalidInput)
	}

	return nil
}

// hasConflict проверяет пересечение с занятыми интервалами, расширенными буфером
func hasConflict(
	date time.Time,
	start, end types.TimeString,
	blocking []*domain.BlockingInterval,
	bufferMinutes int,
) (bool, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return false, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return false, err
	}

	for _, interval := range blocking {
		if !sameDate(interval.Date, date) {
			continue
		}

		busyStart, err := interval.StartTime.Minutes()
		if err != nil {
			return false, err
		}
		busyEnd, err := interval.EndTime.Minutes()
		if err != nil {
			return false, err
		}

		busyStart -= bufferMinutes
		busyEnd += bufferMinutes
		if busyStart < 0 {
			busyStart = 0
		}
		if busyEnd > dayEndMinutes {
			busyEnd = dayEndMinutes
		}

		if startMin < busyEnd && endMin > busyStart {
			return true, nil
		}
	}

	return false, nil
}

func sameDate(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
