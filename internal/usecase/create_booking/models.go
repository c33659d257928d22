package create_booking

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	PractitionerID int64
	ClientID       int64
	Date           time.Time        // Дата бронирования (без времени)
	StartTime      types.TimeString // Например, "10:00"
	EndTime        types.TimeString
	ClientName     string
	ClientEmail    string
	Notes          *string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	PractitionerID int64
	ClientID       int64
	Date           time.Time
	StartTime      types.TimeString
	EndTime        types.TimeString
	Status         string
	ClientName     string
	ClientEmail    string
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
