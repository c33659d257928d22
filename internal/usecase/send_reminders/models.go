package send_reminders

import "github.com/praxisbook/scheduling-service/internal/domain"

// Settings пороги и флаги напоминаний из конфигурации сервиса
type Settings struct {
	RSVPFirstHours  int // часов с момента создания до первого RSVP-напоминания
	RSVPSecondHours int // часов до второго RSVP-напоминания

	// Полуширина окна допуска пред-сессионных напоминаний в минутах:
	// при 30 минутах окно 24h покрывает 23.5h - 24.5h до начала
	SessionToleranceMinutes int

	RSVPFirstEnabled  bool
	RSVPSecondEnabled bool
	Session24hEnabled bool
	Session1hEnabled  bool
}

// Enabled проверяет, включен ли тип напоминания
func (s Settings) Enabled(kind domain.ReminderKind) bool {
	switch kind {
	case domain.ReminderRSVPFirst:
		return s.RSVPFirstEnabled
	case domain.ReminderRSVPSecond:
		return s.RSVPSecondEnabled
	case domain.ReminderSession24h:
		return s.Session24hEnabled
	case domain.ReminderSession1h:
		return s.Session1hEnabled
	default:
		return false
	}
}

// Response итог батча: счетчики по типам и ошибки по элементам
type Response struct {
	Sent   map[domain.ReminderKind]int
	Errors []ItemError
}

// ItemError ошибка обработки одного напоминания.
// Не прерывает батч; элемент остается "due" до следующего запуска
type ItemError struct {
	SessionID int64
	Kind      domain.ReminderKind
	Message   string
}
