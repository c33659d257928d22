package update_weekly_schedule

import (
	"context"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// UseCase use case сохранения еженедельного расписания.
// Замена целиком в одной транзакции: после частичного сбоя не остается
// ни осиротевших, ни задвоенных правил
type UseCase struct {
	scheduleRepo ScheduleRepository
	txManager    TransactionManager
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduleRepo ScheduleRepository, txManager TransactionManager, logger Logger) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Execute выполняет use case сохранения расписания
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateWeeklySchedule: practitioner=%d, rules=%d", req.PractitionerID, len(req.Rules))

	rules, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("UpdateWeeklySchedule: validation failed: %v", err)
		return nil, err
	}

	var saved []*domain.WeeklyRule

	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.scheduleRepo.ReplaceWeeklyRules(txCtx, req.PractitionerID, rules); err != nil {
			uc.logger.Error("UpdateWeeklySchedule: failed to replace rules: %v", err)
			return fmt.Errorf("%w: failed to replace rules: %v", ErrInternal, err)
		}

		saved, err = uc.scheduleRepo.ListWeeklyRules(txCtx, req.PractitionerID)
		if err != nil {
			uc.logger.Error("UpdateWeeklySchedule: failed to list rules: %v", err)
			return fmt.Errorf("%w: failed to list rules: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateWeeklySchedule: saved %d rules for practitioner=%d", len(saved), req.PractitionerID)

	resp := &Response{PractitionerID: req.PractitionerID, Rules: make([]Rule, 0, len(saved))}
	for _, rule := range saved {
		resp.Rules = append(resp.Rules, Rule{
			ID:        rule.ID,
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime,
			EndTime:   rule.EndTime,
			Active:    rule.Active,
			CreatedAt: rule.CreatedAt,
			UpdatedAt: rule.UpdatedAt,
		})
	}
	return resp, nil
}

// validateRequest валидирует запрос и собирает доменные правила.
// Пересечение активных правил одного дня - ошибка: хранилище пересечений
// не запрещает, инвариант держится здесь
func validateRequest(req *Request) ([]*domain.WeeklyRule, error) {
	if req.PractitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	rules := make([]*domain.WeeklyRule, 0, len(req.Rules))

	for i, input := range req.Rules {
		if input.DayOfWeek < 0 || input.DayOfWeek > 6 {
			return nil, fmt.Errorf("%w: rule %d: dayOfWeek must be in [0,6]", ErrInvalidInput, i)
		}

		if err := input.StartTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: rule %d: invalid startTime: %v", ErrInvalidInput, i, err)
		}

		if err := input.EndTime.Validate(); err != nil {
			return nil, fmt.Errorf("%w: rule %d: invalid endTime: %v", ErrInvalidInput, i, err)
		}

		if !input.StartTime.IsBefore(input.EndTime) {
			return nil, fmt.Errorf("%w: rule %d: startTime must be before endTime", ErrInvalidInput, i)
		}

		rules = append(rules, &domain.WeeklyRule{
			PractitionerID: req.PractitionerID,
			DayOfWeek:      input.DayOfWeek,
			StartTime:      input.StartTime,
			EndTime:        input.EndTime,
			Active:         input.Active,
		})
	}

	for i := 0; i < len(rules); i++ {
		if !rules[i].Active {
			continue
		}
		for j := i + 1; j < len(rules); j++ {
			if !rules[j].Active {
				continue
			}
			if rules[i].Overlaps(rules[j]) {
				return nil, fmt.Errorf("%w: day %d: %s-%s and %s-%s",
					ErrOverlappingRules, rules[i].DayOfWeek,
					rules[i].StartTime, rules[i].EndTime,
					rules[j].StartTime, rules[j].EndTime)
			}
		}
	}

	return rules, nil
}
