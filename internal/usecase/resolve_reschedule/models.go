package resolve_reschedule

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// Request модель запроса решения специалиста по предложению переноса
type Request struct {
	SessionID      int64
	PractitionerID int64
	Accept         bool // true - принять предложение, false - отклонить
}

// Response модель ответа с итоговым расписанием сессии
type Response struct {
	SessionID  int64
	RSVPStatus string
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
}
