package resolve_reschedule

import (
	"github.com/praxisbook/scheduling-service/internal/domain"
	resolveReschedule "github.com/praxisbook/scheduling-service/internal/usecase/resolve_reschedule"
)

// ResolveRescheduleRequest HTTP request model
type ResolveRescheduleRequest struct {
	Accept bool `json:"accept"`
}

// ResolveRescheduleResponse HTTP response model
type ResolveRescheduleResponse struct {
	SessionID   int64  `json:"sessionId"`
	RSVPStatus  string `json:"rsvpStatus"`
	SessionDate string `json:"sessionDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveReschedule.Response) *ResolveRescheduleResponse {
	return &ResolveRescheduleResponse{
		SessionID:   resp.SessionID,
		RSVPStatus:  resp.RSVPStatus,
		SessionDate: resp.Date.Format(domain.DateFormat),
		StartTime:   resp.StartTime.String(),
		EndTime:     resp.EndTime.String(),
	}
}
