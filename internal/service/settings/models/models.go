package models

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек бронирования
type UpdateSettingsRequest struct {
	PractitionerID        int64  `json:"practitionerId"`
	SlotDurationMinutes   int    `json:"slotDurationMinutes"`
	BufferMinutes         int    `json:"bufferMinutes"`
	MinBookingNoticeHours int    `json:"minBookingNoticeHours"`
	MaxBookingDaysAhead   int    `json:"maxBookingDaysAhead"` // 0 = без ограничения
	Timezone              string `json:"timezone"`
	RequiresApproval      bool   `json:"requiresApproval"`
}

// SettingsResponse ответ с настройками бронирования
type SettingsResponse struct {
	PractitionerID        int64     `json:"practitionerId"`
	SlotDurationMinutes   int       `json:"slotDurationMinutes"`
	BufferMinutes         int       `json:"bufferMinutes"`
	MinBookingNoticeHours int       `json:"minBookingNoticeHours"`
	MaxBookingDaysAhead   int       `json:"maxBookingDaysAhead"`
	Timezone              string    `json:"timezone"`
	RequiresApproval      bool      `json:"requiresApproval"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain.BookingSettings в response
func FromDomainSettings(settings *domain.BookingSettings) *SettingsResponse {
	return &SettingsResponse{
		PractitionerID:        settings.PractitionerID,
		SlotDurationMinutes:   settings.SlotDurationMinutes,
		BufferMinutes:         settings.BufferMinutes,
		MinBookingNoticeHours: settings.MinBookingNoticeHours,
		MaxBookingDaysAhead:   settings.MaxBookingDaysAhead,
		Timezone:              settings.Timezone,
		RequiresApproval:      settings.RequiresApproval,
		UpdatedAt:             settings.UpdatedAt,
	}
}
