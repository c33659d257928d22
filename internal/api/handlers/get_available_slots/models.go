package get_available_slots

import (
	"github.com/praxisbook/scheduling-service/internal/domain"
	getAvailableSlots "github.com/praxisbook/scheduling-service/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	Date            string `json:"date"`      // "2025-10-15"
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
}

// AvailableSlotsResponse HTTP модель ответа со слотами
type AvailableSlotsResponse struct {
	PractitionerID int64          `json:"practitionerId"`
	From           string         `json:"from"`
	To             string         `json:"to"`
	Slots          []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	out := &AvailableSlotsResponse{
		PractitionerID: resp.PractitionerID,
		From:           resp.From.Format(domain.DateFormat),
		To:             resp.To.Format(domain.DateFormat),
		Slots:          make([]SlotResponse, 0, len(resp.Slots)),
	}
	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			Date:            slot.Date.Format(domain.DateFormat),
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
		})
	}
	return out
}
