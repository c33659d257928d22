package set_date_override

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
	scheduleRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/schedule"
)

// UseCase use case управления исключениями на даты: upsert по (специалист, дата)
// и удаление. Закрытый день блокирует дату целиком; открытый подменяет
// еженедельные правила своим интервалом
type UseCase struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// Execute выполняет use case установки исключения
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetDateOverride: practitioner=%d, date=%s, available=%v",
		req.PractitionerID, req.Date.Format(domain.DateFormat), req.IsAvailable)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetDateOverride: validation failed: %v", err)
		return nil, err
	}

	override := &domain.DateOverride{
		PractitionerID: req.PractitionerID,
		Date:           req.Date,
		IsAvailable:    req.IsAvailable,
		Reason:         req.Reason,
	}
	if req.IsAvailable {
		override.StartTime = req.StartTime
		override.EndTime = req.EndTime
	}

	saved, err := uc.scheduleRepo.UpsertOverride(ctx, override)
	if err != nil {
		uc.logger.Error("SetDateOverride: failed to upsert override: %v", err)
		return nil, fmt.Errorf("%w: failed to upsert override: %v", ErrInternal, err)
	}

	uc.logger.Info("SetDateOverride: saved override id=%d", saved.ID)

	return &Response{
		ID:          saved.ID,
		Date:        saved.Date,
		IsAvailable: saved.IsAvailable,
		StartTime:   saved.StartTime,
		EndTime:     saved.EndTime,
		Reason:      saved.Reason,
		CreatedAt:   saved.CreatedAt,
		UpdatedAt:   saved.UpdatedAt,
	}, nil
}

// Delete удаляет исключение, возвращая дате обычное еженедельное расписание
func (uc *UseCase) Delete(ctx context.Context, req *DeleteRequest) error {
	uc.logger.Info("DeleteDateOverride: practitioner=%d, date=%s",
		req.PractitionerID, req.Date.Format(domain.DateFormat))

	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	err := uc.scheduleRepo.DeleteOverride(ctx, req.PractitionerID, req.Date)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			uc.logger.Warn("DeleteDateOverride: override not found")
			return ErrOverrideNotFound
		}
		uc.logger.Error("DeleteDateOverride: failed to delete override: %v", err)
		return fmt.Errorf("%w: failed to delete override: %v", ErrInternal, err)
	}

	uc.logger.Info("DeleteDateOverride: override deleted")
	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.Reason != nil && len(*req.Reason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	if !req.IsAvailable {
		return nil
	}

	// Доступный день обязан нести оба времени: умолчаний здесь нет
	if req.StartTime == nil || req.EndTime == nil {
		return fmt.Errorf("%w: available override requires startTime and endTime", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}

	if !req.StartTime.IsBefore(*req.EndTime) {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}
