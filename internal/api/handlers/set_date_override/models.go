package set_date_override

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	setDateOverride "github.com/praxisbook/scheduling-service/internal/usecase/set_date_override"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// SetDateOverrideRequest HTTP request model (upsert по дате)
type SetDateOverrideRequest struct {
	Date        string  `json:"date"` // "2025-10-15"
	IsAvailable bool    `json:"isAvailable"`
	StartTime   *string `json:"startTime,omitempty"` // обязательны при isAvailable == true
	EndTime     *string `json:"endTime,omitempty"`
	Reason      *string `json:"reason,omitempty"`
}

// DateOverrideResponse HTTP response model
type DateOverrideResponse struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	IsAvailable bool    `json:"isAvailable"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	Reason      *string `json:"reason,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *SetDateOverrideRequest) ToUseCaseRequest(practitionerID int64) (*setDateOverride.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	req := &setDateOverride.Request{
		PractitionerID: practitionerID,
		Date:           date,
		IsAvailable:    r.IsAvailable,
		Reason:         r.Reason,
	}

	if r.StartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.StartTime)
		if err != nil {
			return nil, err
		}
		req.StartTime = &startTime
	}

	if r.EndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.EndTime)
		if err != nil {
			return nil, err
		}
		req.EndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *setDateOverride.Response) *DateOverrideResponse {
	out := &DateOverrideResponse{
		ID:          resp.ID,
		Date:        resp.Date.Format(domain.DateFormat),
		IsAvailable: resp.IsAvailable,
		Reason:      resp.Reason,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.StartTime != nil {
		s := resp.StartTime.String()
		out.StartTime = &s
	}
	if resp.EndTime != nil {
		s := resp.EndTime.String()
		out.EndTime = &s
	}

	return out
}
