package rsvp_respond

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	sessionRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/session"
)

// UseCase use case ответа клиента на приглашение: принять, отклонить
// или предложить другое время. Предложение лишь сохраняет кандидата;
// время сессии меняется только решением специалиста (resolve_reschedule)
type UseCase struct {
	sessionRepo  SessionRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(sessionRepo SessionRepository, logger Logger) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case ответа на RSVP
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RSVPRespond: session=%d, client=%d, action=%s", req.SessionID, req.ClientID, req.Action)

	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("RSVPRespond: validation failed: %v", err)
		return nil, err
	}

	session, err := uc.sessionRepo.GetByID(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			uc.logger.Warn("RSVPRespond: session id=%d not found", req.SessionID)
			return nil, ErrSessionNotFound
		}
		uc.logger.Error("RSVPRespond: failed to get session id=%d: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to get session: %v", ErrInternal, err)
	}

	// Чужую сессию не раскрываем
	if session.ClientID != req.ClientID {
		uc.logger.Warn("RSVPRespond: session id=%d belongs to another client", req.SessionID)
		return nil, ErrSessionNotFound
	}

	if session.Status != domain.SessionStatusScheduled {
		uc.logger.Warn("RSVPRespond: session id=%d is %s, not scheduled", req.SessionID, session.Status)
		return nil, ErrSessionNotScheduled
	}

	var next domain.RSVPStatus
	var proposedDate *time.Time
	var proposedStart, proposedEnd = req.ProposedStartTime, req.ProposedEndTime
	var message *string

	switch req.Action {
	case ActionAccept:
		next = domain.RSVPAccepted
		proposedStart, proposedEnd = nil, nil
	case ActionDecline:
		next = domain.RSVPDeclined
		proposedStart, proposedEnd = nil, nil
	case ActionPropose:
		next = domain.RSVPRescheduleRequested
		proposedDate = req.ProposedDate
		message = req.Message
	}

	err = uc.sessionRepo.UpdateRSVP(ctx, req.SessionID, next, proposedDate, proposedStart, proposedEnd, message)
	if err != nil {
		uc.logger.Error("RSVPRespond: failed to update rsvp for session id=%d: %v", req.SessionID, err)
		return nil, fmt.Errorf("%w: failed to update rsvp: %v", ErrInternal, err)
	}

	uc.logger.Info("RSVPRespond: session id=%d rsvp moved to %s", req.SessionID, next)

	return &Response{SessionID: req.SessionID, RSVPStatus: string(next)}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.SessionID <= 0 {
		return fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	switch req.Action {
	case ActionAccept, ActionDecline:
		return nil
	case ActionPropose:
	default:
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}

	// Дальше только propose: кандидат обязан быть полным и в будущем
	if req.ProposedDate == nil || req.ProposedStartTime == nil || req.ProposedEndTime == nil {
		return fmt.Errorf("%w: proposal requires date, startTime and endTime", ErrInvalidInput)
	}

	if err := req.ProposedStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid proposed startTime: %v", ErrInvalidInput, err)
	}

	if err := req.ProposedEndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid proposed endTime: %v", ErrInvalidInput, err)
	}

	if !req.ProposedStartTime.IsBefore(*req.ProposedEndTime) {
		return fmt.Errorf("%w: proposed startTime must be before endTime", ErrInvalidInput)
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	d := *req.ProposedDate
	dateOnly := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(today) {
		return fmt.Errorf("%w: proposed date is in the past", ErrInvalidInput)
	}

	if req.Message != nil && len(*req.Message) > domain.MaxProposalMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidInput, domain.MaxProposalMessageLength)
	}

	return nil
}
