package schedule

import (
	"context"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/service/schedule/models"
)

// Service сервис чтения расписания специалиста
type Service struct {
	scheduleRepo ScheduleRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания
func NewService(scheduleRepo ScheduleRepository, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		logger:       logger,
	}
}

// GetSchedule возвращает еженедельные правила и исключения в периоде
func (s *Service) GetSchedule(ctx context.Context, req *models.GetScheduleRequest) (*models.ScheduleResponse, error) {
	s.logger.Info("GetSchedule: fetching schedule for practitioner=%d", req.PractitionerID)

	if req.PractitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}
	if !req.To.IsZero() && req.To.Before(req.From) {
		return nil, fmt.Errorf("%w: to date must not be before from date", ErrInvalidInput)
	}

	rules, err := s.scheduleRepo.ListWeeklyRules(ctx, req.PractitionerID)
	if err != nil {
		s.logger.Error("GetSchedule: repository error for practitioner=%d: %v", req.PractitionerID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	resp := &models.ScheduleResponse{
		PractitionerID: req.PractitionerID,
		WeeklyRules:    make([]models.WeeklyRuleResponse, 0, len(rules)),
		Overrides:      make([]models.DateOverrideResponse, 0),
	}

	for _, rule := range rules {
		resp.WeeklyRules = append(resp.WeeklyRules, models.FromDomainWeeklyRule(rule))
	}

	// Исключения возвращаем только при заданном периоде
	if !req.From.IsZero() && !req.To.IsZero() {
		overrides, err := s.scheduleRepo.ListOverridesByDateRange(ctx, req.PractitionerID, req.From, req.To)
		if err != nil {
			s.logger.Error("GetSchedule: failed to list overrides for practitioner=%d: %v", req.PractitionerID, err)
			return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
		}
		for _, override := range overrides {
			resp.Overrides = append(resp.Overrides, models.FromDomainOverride(override))
		}
	}

	s.logger.Info("GetSchedule: fetched %d rules and %d overrides for practitioner=%d",
		len(resp.WeeklyRules), len(resp.Overrides), req.PractitionerID)
	return resp, nil
}
