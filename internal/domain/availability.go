package domain

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// WeeklyRule правило еженедельной доступности специалиста
// Несколько непересекающихся правил на один день допустимы (утро + вечер)
// Набор правил сохраняется целиком (replace-all-on-save), не поштучно
type WeeklyRule struct {
	ID             int64
	PractitionerID int64
	DayOfWeek      int // 0 = воскресенье ... 6 = суббота (time.Weekday)
	StartTime      types.TimeString
	EndTime        types.TimeString
	Active         bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Overlaps проверяет пересечение с другим правилом того же дня недели
// Граничащие интервалы (конец одного == начало другого) пересечением не считаются
func (r *WeeklyRule) Overlaps(other *WeeklyRule) bool {
	if r.DayOfWeek != other.DayOfWeek {
		return false
	}
	return r.StartTime.IsBefore(other.EndTime) && r.EndTime.IsAfter(other.StartTime)
}

// DateOverride исключение из еженедельного расписания на конкретную дату
// Уникально по (practitioner, date), сохраняется через upsert
// IsAvailable=false полностью блокирует дату независимо от WeeklyRule
// IsAvailable=true заменяет правила дня своими временами (оба обязательны)
type DateOverride struct {
	ID             int64
	PractitionerID int64
	Date           time.Time
	IsAvailable    bool
	StartTime      *types.TimeString
	EndTime        *types.TimeString
	Reason         *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BusyInterval занятый интервал из внешнего календаря
// Кэш: полностью заменяется при каждой синхронизации, собственной идентичности
// за пределами (practitioner, provider, батч синхронизации) не имеет
type BusyInterval struct {
	ID             int64
	PractitionerID int64
	Provider       string
	StartAt        time.Time // UTC
	EndAt          time.Time // UTC

	SyncedAt time.Time
}

// BlockingInterval унифицированное представление занятого времени на дату
// Используется генератором слотов и проверкой конфликтов; собирается из
// активных бронирований и сессий (см. ListBlocking в репозитории)
type BlockingInterval struct {
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Source    string // "booking" | "session"
	SourceID  int64
}
