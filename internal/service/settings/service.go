package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
	"github.com/praxisbook/scheduling-service/internal/service/settings/models"
)

// Service сервис настроек бронирования специалиста
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get возвращает настройки специалиста (дефолтные, если еще не сохранены)
func (s *Service) Get(ctx context.Context, practitionerID int64) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for practitioner=%d", practitionerID)

	if practitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	settings, err := s.settingsRepo.GetByPractitioner(ctx, practitionerID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Info("Get: no settings saved for practitioner=%d, returning defaults", practitionerID)
			return models.FromDomainSettings(domain.DefaultBookingSettings(practitionerID)), nil
		}
		s.logger.Error("Get: repository error for practitioner=%d: %v", practitionerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update сохраняет настройки специалиста (upsert)
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for practitioner=%d", req.PractitionerID)

	if err := validateSettings(req); err != nil {
		s.logger.Warn("Update: validation failed for practitioner=%d: %v", req.PractitionerID, err)
		return nil, err
	}

	settings := &domain.BookingSettings{
		PractitionerID:        req.PractitionerID,
		SlotDurationMinutes:   req.SlotDurationMinutes,
		BufferMinutes:         req.BufferMinutes,
		MinBookingNoticeHours: req.MinBookingNoticeHours,
		MaxBookingDaysAhead:   req.MaxBookingDaysAhead,
		Timezone:              req.Timezone,
		RequiresApproval:      req.RequiresApproval,
	}

	saved, err := s.settingsRepo.Upsert(ctx, settings)
	if err != nil {
		s.logger.Error("Update: repository error for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated settings for practitioner=%d", req.PractitionerID)
	return models.FromDomainSettings(saved), nil
}

// validateSettings проверяет значения настроек против доменных границ
func validateSettings(req *models.UpdateSettingsRequest) error {
	if req.PractitionerID <= 0 {
		return fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	if req.SlotDurationMinutes < domain.MinSlotDurationMinutes || req.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slotDurationMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be in [%d, %d]",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	if req.MinBookingNoticeHours < domain.MinNoticeHours || req.MinBookingNoticeHours > domain.MaxNoticeHours {
		return fmt.Errorf("%w: minBookingNoticeHours must be in [%d, %d]",
			ErrInvalidInput, domain.MinNoticeHours, domain.MaxNoticeHours)
	}

	if req.MaxBookingDaysAhead < domain.MinBookingDaysAhead || req.MaxBookingDaysAhead > domain.MaxBookingDaysAheadLimit {
		return fmt.Errorf("%w: maxBookingDaysAhead must be in [%d, %d]",
			ErrInvalidInput, domain.MinBookingDaysAhead, domain.MaxBookingDaysAheadLimit)
	}

	if _, err := time.LoadLocation(req.Timezone); err != nil {
		return fmt.Errorf("%w: unknown timezone %q", ErrInvalidInput, req.Timezone)
	}

	return nil
}
