package resolve_reschedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
	sessionRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/session"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
)

const dayEndMinutes = 24 * 60

// UseCase use case решения специалиста по предложению переноса.
// Принятие заменяет время сессии предложенным, предварительно повторив
// проверку конфликтов внутри сериализуемой транзакции; отклонение
// оставляет время как есть и возвращает приглашение в ожидание ответа
type UseCase struct {
	sessionRepo  SessionRepository
	bookingRepo  BookingRepository
	settingsRepo SettingsRepository
	txManager    TransactionManager
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
		logger:       logger,
	}
}

// Execute выполняет use case решения по предложению переноса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveReschedule: session=%d, practitioner=%d, accept=%v",
		req.SessionID, req.PractitionerID, req.Accept)

	if req.SessionID <= 0 || req.PractitionerID <= 0 {
		return nil, fmt.Errorf("%w: sessionID and practitionerID must be positive", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		session, err := uc.sessionRepo.GetByID(txCtx, req.SessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				uc.logger.Warn("ResolveReschedule: session id=%d not found", req.SessionID)
				return ErrSessionNotFound
			}
			uc.logger.Error("ResolveReschedule: failed to get session id=%d: %v", req.SessionID, err)
			return fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
		}

		// Чужую сессию не раскрываем
		if session.PractitionerID != req.PractitionerID {
			uc.logger.Warn("ResolveReschedule: session id=%d belongs to another practitioner", req.SessionID)
			return ErrSessionNotFound
		}

		if !session.HasRescheduleProposal() {
			uc.logger.Warn("ResolveReschedule: session id=%d has no proposal", req.SessionID)
			return ErrNoProposal
		}

		if !req.Accept {
			// Отклонение: время не меняется, приглашение снова ждет ответа
			err := uc.sessionRepo.UpdateRSVP(txCtx, req.SessionID, domain.RSVPPending, nil, nil, nil, nil)
			if err != nil {
				uc.logger.Error("ResolveReschedule: failed to clear proposal: %v", err)
				return fmt.Errorf("%w: failed to clear proposal: %v", ErrInternal, err)
			}

			result = &Response{
				SessionID:  session.ID,
				RSVPStatus: string(domain.RSVPPending),
				Date:       session.SessionDate,
				StartTime:  session.StartTime,
				EndTime:    session.EndTime,
			}
			return nil
		}

		date := *session.ProposedDate
		start := *session.ProposedStartTime
		end := *session.ProposedEndTime

		settings, err := uc.settingsRepo.GetByPractitioner(txCtx, req.PractitionerID)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("ResolveReschedule: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultBookingSettings(req.PractitionerID)
		}

		// Повторная проверка конфликтов для нового времени (FOR UPDATE)
		blocking, err := uc.bookingRepo.ListBlockingByDateRange(txCtx, req.PractitionerID, date, date)
		if err != nil {
			uc.logger.Error("ResolveReschedule: failed to get blocking bookings: %v", err)
			return fmt.Errorf("%w: failed to get blocking bookings: %v", ErrInternal, err)
		}

		sessionBlocking, err := uc.sessionRepo.ListBlockingByDateRange(txCtx, req.PractitionerID, date, date)
		if err != nil {
			uc.logger.Error("ResolveReschedule: failed to get blocking sessions: %v", err)
			return fmt.Errorf("%w: failed to get blocking sessions: %v", ErrInternal, err)
		}
		blocking = append(blocking, sessionBlocking...)

		conflict, err := hasConflict(date, start, end, blocking, session.ID, settings.BufferMinutes)
		if err != nil {
			uc.logger.Error("ResolveReschedule: conflict check failed: %v", err)
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("ResolveReschedule: proposed slot %s-%s on %s already taken",
				start, end, date.Format(domain.DateFormat))
			return ErrSlotNoLongerAvailable
		}

		if err := uc.sessionRepo.ApplyReschedule(txCtx, req.SessionID, date, start, end); err != nil {
			uc.logger.Error("ResolveReschedule: failed to apply reschedule: %v", err)
			return fmt.Errorf("%w: failed to apply reschedule: %v", ErrInternal, err)
		}

		result = &Response{
			SessionID:  session.ID,
			RSVPStatus: string(domain.RSVPAccepted),
			Date:       date,
			StartTime:  start,
			EndTime:    end,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ResolveReschedule: session id=%d resolved, rsvp=%s", result.SessionID, result.RSVPStatus)

	return result, nil
}
