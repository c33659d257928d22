package rsvp_respond

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	rsvpRespond "github.com/praxisbook/scheduling-service/internal/usecase/rsvp_respond"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// RSVPRequest HTTP request model
type RSVPRequest struct {
	Action string `json:"action"` // accept | decline | propose

	// Только при action == propose
	ProposedDate      *string `json:"proposedDate,omitempty"` // "2025-10-15"
	ProposedStartTime *string `json:"proposedStartTime,omitempty"`
	ProposedEndTime   *string `json:"proposedEndTime,omitempty"`
	Message           *string `json:"message,omitempty"`
}

// RSVPResponse HTTP response model
type RSVPResponse struct {
	SessionID  int64  `json:"sessionId"`
	RSVPStatus string `json:"rsvpStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RSVPRequest) ToUseCaseRequest(sessionID, clientID int64) (*rsvpRespond.Request, error) {
	req := &rsvpRespond.Request{
		SessionID: sessionID,
		ClientID:  clientID,
		Action:    rsvpRespond.Action(r.Action),
		Message:   r.Message,
	}

	if r.ProposedDate != nil {
		date, err := time.Parse(domain.DateFormat, *r.ProposedDate)
		if err != nil {
			return nil, err
		}
		req.ProposedDate = &date
	}

	if r.ProposedStartTime != nil {
		startTime, err := types.NewTimeStringFromString(*r.ProposedStartTime)
		if err != nil {
			return nil, err
		}
		req.ProposedStartTime = &startTime
	}

	if r.ProposedEndTime != nil {
		endTime, err := types.NewTimeStringFromString(*r.ProposedEndTime)
		if err != nil {
			return nil, err
		}
		req.ProposedEndTime = &endTime
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rsvpRespond.Response) *RSVPResponse {
	return &RSVPResponse{
		SessionID:  resp.SessionID,
		RSVPStatus: resp.RSVPStatus,
	}
}
