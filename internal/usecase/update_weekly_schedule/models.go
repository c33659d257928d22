package update_weekly_schedule

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// RuleInput одно правило еженедельного расписания на сохранение
type RuleInput struct {
	DayOfWeek int // 0 = воскресенье ... 6 = суббота
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
}

// Request модель запроса на сохранение расписания.
// Семантика replace-all: набор правил заменяет прежний целиком
type Request struct {
	PractitionerID int64
	Rules          []RuleInput
}

// Rule сохраненное правило расписания
type Rule struct {
	ID        int64
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Response модель ответа с сохраненным расписанием
type Response struct {
	PractitionerID int64
	Rules          []Rule
}
