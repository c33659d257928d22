package rsvp_respond

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// Action ответ клиента на приглашение
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
	ActionPropose Action = "propose" // предложить другое время
)

// Request модель запроса ответа на RSVP
type Request struct {
	SessionID int64
	ClientID  int64
	Action    Action

	// Заполняются только при Action == propose
	ProposedDate      *time.Time
	ProposedStartTime *types.TimeString
	ProposedEndTime   *types.TimeString
	Message           *string
}

// Response модель ответа с новым RSVP-статусом
type Response struct {
	SessionID  int64
	RSVPStatus string
}
