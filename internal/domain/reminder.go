package domain

// ReminderKind тип напоминания
// Для каждого типа хранится собственная отметка *SentAt;
// "пора отправлять" - вычисляемый предикат, в БД не хранится
type ReminderKind string

const (
	ReminderRSVPFirst  ReminderKind = "rsvp_first"
	ReminderRSVPSecond ReminderKind = "rsvp_second"
	ReminderSession24h ReminderKind = "session_24h"
	ReminderSession1h  ReminderKind = "session_1h"
)

// AllReminderKinds все типы напоминаний в порядке обработки
var AllReminderKinds = []ReminderKind{
	ReminderRSVPFirst,
	ReminderRSVPSecond,
	ReminderSession24h,
	ReminderSession1h,
}
