package sync_calendars

import (
	syncBusyTimes "github.com/praxisbook/scheduling-service/internal/usecase/sync_busy_times"
)

// ProviderResult итог синхронизации одного провайдера
type ProviderResult struct {
	Provider  string `json:"provider"`
	Intervals int    `json:"intervals"`
	Error     string `json:"error,omitempty"`
}

// SyncCalendarsResponse HTTP response model
type SyncCalendarsResponse struct {
	PractitionerID int64            `json:"practitionerId"`
	Results        []ProviderResult `json:"results"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *syncBusyTimes.Response) *SyncCalendarsResponse {
	results := make([]ProviderResult, 0, len(resp.Results))
	for _, result := range resp.Results {
		results = append(results, ProviderResult{
			Provider:  result.Provider,
			Intervals: result.Intervals,
			Error:     result.Error,
		})
	}

	return &SyncCalendarsResponse{
		PractitionerID: resp.PractitionerID,
		Results:        results,
	}
}
