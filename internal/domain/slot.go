package domain

import "github.com/praxisbook/scheduling-service/pkg/types"

// Slot represents a time slot available for booking
type Slot struct {
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
