package update_weekly_schedule

import (
	updateWeeklySchedule "github.com/praxisbook/scheduling-service/internal/usecase/update_weekly_schedule"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// WeeklyRuleInput одно правило в HTTP запросе
type WeeklyRuleInput struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

// UpdateWeeklyScheduleRequest HTTP request model.
// Набор правил заменяет прежнее расписание целиком
type UpdateWeeklyScheduleRequest struct {
	Rules []WeeklyRuleInput `json:"rules"`
}

// WeeklyRuleResponse сохраненное правило в HTTP ответе
type WeeklyRuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

// UpdateWeeklyScheduleResponse HTTP response model
type UpdateWeeklyScheduleResponse struct {
	PractitionerID int64                `json:"practitionerId"`
	Rules          []WeeklyRuleResponse `json:"rules"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateWeeklyScheduleRequest) ToUseCaseRequest(practitionerID int64) (*updateWeeklySchedule.Request, error) {
	rules := make([]updateWeeklySchedule.RuleInput, 0, len(r.Rules))
	for _, rule := range r.Rules {
		startTime, err := types.NewTimeStringFromString(rule.StartTime)
		if err != nil {
			return nil, err
		}

		endTime, err := types.NewTimeStringFromString(rule.EndTime)
		if err != nil {
			return nil, err
		}

		rules = append(rules, updateWeeklySchedule.RuleInput{
			DayOfWeek: rule.DayOfWeek,
			StartTime: startTime,
			EndTime:   endTime,
			Active:    rule.Active,
		})
	}

	return &updateWeeklySchedule.Request{
		PractitionerID: practitionerID,
		Rules:          rules,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateWeeklySchedule.Response) *UpdateWeeklyScheduleResponse {
	rules := make([]WeeklyRuleResponse, 0, len(resp.Rules))
	for _, rule := range resp.Rules {
		rules = append(rules, WeeklyRuleResponse{
			ID:        rule.ID,
			DayOfWeek: rule.DayOfWeek,
			StartTime: rule.StartTime.String(),
			EndTime:   rule.EndTime.String(),
			Active:    rule.Active,
		})
	}

	return &UpdateWeeklyScheduleResponse{
		PractitionerID: resp.PractitionerID,
		Rules:          rules,
	}
}
