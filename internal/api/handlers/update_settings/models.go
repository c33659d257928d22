package update_settings

import (
	"github.com/praxisbook/scheduling-service/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	SlotDurationMinutes   int    `json:"slotDurationMinutes"`
	BufferMinutes         int    `json:"bufferMinutes"`
	MinBookingNoticeHours int    `json:"minBookingNoticeHours"`
	MaxBookingDaysAhead   int    `json:"maxBookingDaysAhead"` // 0 = без ограничения
	Timezone              string `json:"timezone"`
	RequiresApproval      bool   `json:"requiresApproval"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest(practitionerID int64) *models.UpdateSettingsRequest {
	return &models.UpdateSettingsRequest{
		PractitionerID:        practitionerID,
		SlotDurationMinutes:   r.SlotDurationMinutes,
		BufferMinutes:         r.BufferMinutes,
		MinBookingNoticeHours: r.MinBookingNoticeHours,
		MaxBookingDaysAhead:   r.MaxBookingDaysAhead,
		Timezone:              r.Timezone,
		RequiresApproval:      r.RequiresApproval,
	}
}
