package get_available_slots

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	PractitionerID int64     // ID специалиста
	From           time.Time // Первая дата диапазона (без времени)
	To             time.Time // Последняя дата диапазона включительно; если нулевая - равна From
}

// Response модель ответа со списком доступных слотов
type Response struct {
	PractitionerID int64
	From           time.Time
	To             time.Time
	Slots          []Slot // Хронологический порядок
}

// Slot модель доступного слота
type Slot struct {
	Date            time.Time        // Дата слота (без времени)
	StartTime       types.TimeString // Время начала, например "10:00"
	EndTime         types.TimeString // Время конца
	DurationMinutes int
}
