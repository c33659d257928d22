package models

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// WeeklyRuleResponse правило еженедельного расписания
type WeeklyRuleResponse struct {
	ID        int64  `json:"id"`
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье ... 6 = суббота
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`
	Active    bool   `json:"active"`
}

// DateOverrideResponse исключение на дату
type DateOverrideResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // "2025-10-15"
	IsAvailable bool    `json:"isAvailable"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

// ScheduleResponse полное расписание специалиста
type ScheduleResponse struct {
	PractitionerID int64                  `json:"practitionerId"`
	WeeklyRules    []WeeklyRuleResponse   `json:"weeklyRules"`
	Overrides      []DateOverrideResponse `json:"overrides"`
}

// GetScheduleRequest запрос расписания с периодом для исключений
type GetScheduleRequest struct {
	PractitionerID int64     `json:"practitionerId"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
}

// FromDomainWeeklyRule конвертирует domain.WeeklyRule в response
func FromDomainWeeklyRule(rule *domain.WeeklyRule) WeeklyRuleResponse {
	return WeeklyRuleResponse{
		ID:        rule.ID,
		DayOfWeek: rule.DayOfWeek,
		StartTime: rule.StartTime.String(),
		EndTime:   rule.EndTime.String(),
		Active:    rule.Active,
	}
}

// FromDomainOverride конвертирует domain.DateOverride в response
func FromDomainOverride(override *domain.DateOverride) DateOverrideResponse {
	resp := DateOverrideResponse{
		ID:          override.ID,
		Date:        override.Date.Format(domain.DateFormat),
		IsAvailable: override.IsAvailable,
		Reason:      override.Reason,
	}
	if override.StartTime != nil {
		s := override.StartTime.String()
		resp.StartTime = &s
	}
	if override.EndTime != nil {
		s := override.EndTime.String()
		resp.EndTime = &s
	}
	return resp
}
