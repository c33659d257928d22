package domain

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// SessionStatus represents the status of a practitioner-created session
type SessionStatus string

const (
	SessionStatusScheduled SessionStatus = "scheduled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusNoShow    SessionStatus = "no_show"
)

// RSVPStatus represents the recipient's answer to a session invitation
type RSVPStatus string

const (
	RSVPPending             RSVPStatus = "pending"
	RSVPAccepted            RSVPStatus = "accepted"
	RSVPDeclined            RSVPStatus = "declined"
	RSVPRescheduleRequested RSVPStatus = "reschedule_requested"
)

// Session представляет сессию, созданную специалистом напрямую
// В отличие от Booking создается сразу в статусе scheduled, без подтверждения email
type Session struct {
	ID             int64
	PractitionerID int64
	ClientID       int64
	SessionDate    time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         SessionStatus
	RSVPStatus     RSVPStatus

	Title       string
	ClientEmail string

	// Отметки об отправленных напоминаниях
	// nil = напоминание этого типа еще не отправлялось;
	// "пора отправлять" всегда вычисляется, никогда не хранится
	RSVPReminder1SentAt *time.Time
	RSVPReminder2SentAt *time.Time
	Reminder24hSentAt   *time.Time
	Reminder1hSentAt    *time.Time

	// Предложение переноса от клиента (RSVP "propose another time")
	// Заполнено только при RSVPStatus == reschedule_requested
	ProposedDate      *time.Time
	ProposedStartTime *types.TimeString
	ProposedEndTime   *types.TimeString
	ProposalMessage   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the session occupies its slot
func (s *Session) IsBlocking() bool {
	return s.Status == SessionStatusScheduled
}

// CanTransitionTo проверяет допустимость перехода статуса сессии
// scheduled -> completed|cancelled|no_show, остальные статусы терминальны
func (s *Session) CanTransitionTo(next SessionStatus) bool {
	if s.Status != SessionStatusScheduled {
		return false
	}
	return next == SessionStatusCompleted ||
		next == SessionStatusCancelled ||
		next == SessionStatusNoShow
}

// ReminderSentAt возвращает отметку отправки напоминания указанного типа
func (s *Session) ReminderSentAt(kind ReminderKind) *time.Time {
	switch kind {
	case ReminderRSVPFirst:
		return s.RSVPReminder1SentAt
	case ReminderRSVPSecond:
		return s.RSVPReminder2SentAt
	case ReminderSession24h:
		return s.Reminder24hSentAt
	case ReminderSession1h:
		return s.Reminder1hSentAt
	default:
		return nil
	}
}

// HasRescheduleProposal returns true if the client proposed an alternate time
func (s *Session) HasRescheduleProposal() bool {
	return s.RSVPStatus == RSVPRescheduleRequested &&
		s.ProposedDate != nil && s.ProposedStartTime != nil && s.ProposedEndTime != nil
}

// StartsAt возвращает момент начала сессии в указанной таймзоне
func (s *Session) StartsAt(loc *time.Location) (time.Time, error) {
	minutes, err := s.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	d := s.SessionDate
	return time.Date(d.Year(), d.Month(), d.Day(), minutes/60, minutes%60, 0, 0, loc), nil
}
