package run_reminders

import (
	sendReminders "github.com/praxisbook/scheduling-service/internal/usecase/send_reminders"
)

// ReminderError ошибка обработки одного напоминания
type ReminderError struct {
	SessionID int64  `json:"sessionId"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
}

// RunRemindersResponse HTTP response model: счетчики по типам и ошибки
type RunRemindersResponse struct {
	Sent   map[string]int  `json:"sent"`
	Errors []ReminderError `json:"errors"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *sendReminders.Response) *RunRemindersResponse {
	out := &RunRemindersResponse{
		Sent:   make(map[string]int, len(resp.Sent)),
		Errors: make([]ReminderError, 0, len(resp.Errors)),
	}

	for kind, count := range resp.Sent {
		out.Sent[string(kind)] = count
	}

	for _, itemErr := range resp.Errors {
		out.Errors = append(out.Errors, ReminderError{
			SessionID: itemErr.SessionID,
			Kind:      string(itemErr.Kind),
			Message:   itemErr.Message,
		})
	}

	return out
}
