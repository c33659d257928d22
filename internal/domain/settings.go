package domain

import "time"

// BookingSettings represents the booking configuration of a practitioner
// Single row per practitioner; the engine only reads it
type BookingSettings struct {
	ID                    int64
	PractitionerID        int64
	SlotDurationMinutes   int
	BufferMinutes         int
	MinBookingNoticeHours int
	MaxBookingDaysAhead   int // 0 = unlimited
	Timezone              string
	RequiresApproval      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvanceBookingLimit returns true if there's a limit on how far ahead bookings can be made
func (s *BookingSettings) HasAdvanceBookingLimit() bool {
	return s.MaxBookingDaysAhead > 0
}

// Location возвращает таймзону специалиста
// Все сравнения времени в движке ведутся в этой таймзоне
func (s *BookingSettings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// DefaultBookingSettings возвращает настройки по умолчанию
// Используется, если специалист еще не сохранял свои
func DefaultBookingSettings(practitionerID int64) *BookingSettings {
	return &BookingSettings{
		PractitionerID:        practitionerID,
		SlotDurationMinutes:   DefaultSlotDurationMinutes,
		BufferMinutes:         DefaultBufferMinutes,
		MinBookingNoticeHours: DefaultMinBookingNoticeHours,
		MaxBookingDaysAhead:   DefaultMaxBookingDaysAhead,
		Timezone:              DefaultTimezone,
		RequiresApproval:      false,
	}
}
