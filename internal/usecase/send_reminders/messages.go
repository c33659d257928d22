package send_reminders

import (
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// buildSubject возвращает тему письма для типа напоминания
func buildSubject(kind domain.ReminderKind, session *domain.Session) string {
	switch kind {
	case domain.ReminderRSVPFirst, domain.ReminderRSVPSecond:
		return fmt.Sprintf("Подтвердите участие: %s", session.Title)
	case domain.ReminderSession24h:
		return fmt.Sprintf("Напоминание: завтра сессия %s", session.Title)
	case domain.ReminderSession1h:
		return fmt.Sprintf("Напоминание: сессия %s через час", session.Title)
	default:
		return session.Title
	}
}

// buildBody возвращает текст письма для типа напоминания
func buildBody(kind domain.ReminderKind, session *domain.Session) string {
	when := fmt.Sprintf("%s в %s",
		session.SessionDate.Format(domain.DateFormat), session.StartTime)

	switch kind {
	case domain.ReminderRSVPFirst:
		return fmt.Sprintf(
			"Вам назначена сессия «%s» %s. Пожалуйста, подтвердите участие, отклоните или предложите другое время.",
			session.Title, when)
	case domain.ReminderRSVPSecond:
		return fmt.Sprintf(
			"Повторное напоминание: сессия «%s» %s все еще ждет вашего ответа. Пожалуйста, подтвердите участие или предложите другое время.",
			session.Title, when)
	case domain.ReminderSession24h:
		return fmt.Sprintf("Напоминаем: сессия «%s» состоится %s.", session.Title, when)
	case domain.ReminderSession1h:
		return fmt.Sprintf("Сессия «%s» начнется через час: %s.", session.Title, when)
	default:
		return when
	}
}
