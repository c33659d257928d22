package send_reminders

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// minRSVPLeadHours RSVP-напоминания не отправляются, если до начала сессии
// осталось меньше этого числа часов: отвечать на приглашение уже поздно
const minRSVPLeadHours = 12

// isDue вычисляет, пора ли отправлять напоминание указанного типа.
// Предикат самодостаточен: отметка об отправке отсутствует, тип включен
// и выполняется его временное условие. Никакое состояние "due" не хранится
func isDue(
	kind domain.ReminderKind,
	session *domain.Session,
	settings Settings,
	now time.Time,
	startsAt time.Time,
) bool {
	if session.ReminderSentAt(kind) != nil {
		return false
	}
	if !settings.Enabled(kind) {
		return false
	}

	hoursUntil := startsAt.Sub(now).Hours()

	switch kind {
	case domain.ReminderRSVPFirst, domain.ReminderRSVPSecond:
		// RSVP-напоминания шлем, пока клиент не ответил на приглашение
		if session.RSVPStatus != domain.RSVPPending {
			return false
		}
		if hoursUntil < minRSVPLeadHours {
			return false
		}

		threshold := settings.RSVPFirstHours
		if kind == domain.ReminderRSVPSecond {
			threshold = settings.RSVPSecondHours
		}
		hoursElapsed := now.Sub(session.CreatedAt).Hours()
		return hoursElapsed >= float64(threshold)

	case domain.ReminderSession24h:
		return inToleranceWindow(hoursUntil, 24, settings.SessionToleranceMinutes)

	case domain.ReminderSession1h:
		return inToleranceWindow(hoursUntil, 1, settings.SessionToleranceMinutes)

	default:
		return false
	}
}

// inToleranceWindow проверяет попадание в окно вокруг порога.
// Окно допуска компенсирует нерегулярный запуск батча: при запуске каждые
// несколько минут сессия гарантированно попадет в окно хотя бы один раз
func inToleranceWindow(hoursUntil float64, thresholdHours int, toleranceMinutes int) bool {
	tolerance := float64(toleranceMinutes) / 60
	return hoursUntil >= float64(thresholdHours)-tolerance &&
		hoursUntil <= float64(thresholdHours)+tolerance
}
