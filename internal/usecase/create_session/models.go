package create_session

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// Request модель запроса на создание сессии специалистом
type Request struct {
	PractitionerID int64
	ClientID       int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Title          string
	ClientEmail    string
}

// Response модель ответа с созданной сессией
type Response struct {
	ID             int64
	PractitionerID int64
	ClientID       int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string
	RSVPStatus     string
	Title          string
	ClientEmail    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
