package create_session

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	createSession "github.com/praxisbook/scheduling-service/internal/usecase/create_session"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// CreateSessionRequest HTTP request model
type CreateSessionRequest struct {
	ClientID    int64  `json:"clientId"`
	SessionDate string `json:"sessionDate"` // "2025-10-15"
	StartTime   string `json:"startTime"`   // "10:00"
	EndTime     string `json:"endTime"`
	Title       string `json:"title"`
	ClientEmail string `json:"clientEmail"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID             int64  `json:"id"`
	PractitionerID int64  `json:"practitionerId"`
	ClientID       int64  `json:"clientId"`
	SessionDate    string `json:"sessionDate"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	Status         string `json:"status"`
	RSVPStatus     string `json:"rsvpStatus"`
	Title          string `json:"title"`
	ClientEmail    string `json:"clientEmail"`
	CreatedAt      string `json:"createdAt"`
	UpdatedAt      string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateSessionRequest) ToUseCaseRequest(practitionerID int64) (*createSession.Request, error) {
	sessionDate, err := time.Parse(domain.DateFormat, r.SessionDate)
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

	return &createSession.Request{
		PractitionerID: practitionerID,
		ClientID:       r.ClientID,
		Date:           sessionDate,
		StartTime:      startTime,
		EndTime:        endTime,
		Title:          r.Title,
		ClientEmail:    r.ClientEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createSession.Response) *SessionResponse {
	return &SessionResponse{
		ID:             resp.ID,
		PractitionerID: resp.PractitionerID,
		ClientID:       resp.ClientID,
		SessionDate:    resp.Date.Format(domain.DateFormat),
		StartTime:      resp.StartTime.String(),
		EndTime:        resp.EndTime.String(),
		Status:         resp.Status,
		RSVPStatus:     resp.RSVPStatus,
		Title:          resp.Title,
		ClientEmail:    resp.ClientEmail,
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      resp.UpdatedAt.Format(time.RFC3339),
	}
}
