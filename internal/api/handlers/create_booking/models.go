package create_booking

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	createBooking "github.com/praxisbook/scheduling-service/internal/usecase/create_booking"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PractitionerID int64   `json:"practitionerId"`
	BookingDate    string  `json:"bookingDate"` // "2025-10-15"
	StartTime      string  `json:"startTime"`   // "10:00"
	EndTime        string  `json:"endTime"`
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail"`
	Notes          *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID             int64   `json:"id"`
	PractitionerID int64   `json:"practitionerId"`
	ClientID       int64   `json:"clientId"`
	BookingDate    string  `json:"bookingDate"`
	StartTime      string  `json:"startTime"`
	EndTime        string  `json:"endTime"`
	Status         string  `json:"status"`
	ClientName     string  `json:"clientName"`
	ClientEmail    string  `json:"clientEmail"`
	Notes          *string `json:"notes,omitempty"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(clientID int64) (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		PractitionerID: r.PractitionerID,
		ClientID:       clientID,
		Date:           bookingDate,
		StartTime:      startTime,
		EndTime:        endTime,
		ClientName:     r.ClientName,
		ClientEmail:    r.ClientEmail,
		Notes:          r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:             resp.ID,
		PractitionerID: resp.PractitionerID,
		ClientID:       resp.ClientID,
		BookingDate:    resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		ClientName:     resp.ClientName,
		ClientEmail:    resp.ClientEmail,
		Notes:          resp.Notes,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
