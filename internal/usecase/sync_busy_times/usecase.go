package sync_busy_times

import (
	"context"
	"errors"
	"fmt"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/internal/integrations/calendarprovider"
)

// UseCase use case синхронизации занятого времени из внешних календарей.
// Кэш каждого провайдера заменяется целиком в своей транзакции; сбой
// провайдера оставляет его старые строки (лучше устаревшие данные, чем
// ложно свободные окна) и не мешает остальным провайдерам
type UseCase struct {
	clients      []CalendarClient
	busyRepo     BusyRepository
	txManager    TransactionManager
	horizonDays  int
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	clients []CalendarClient,
	busyRepo BusyRepository,
	txManager TransactionManager,
	horizonDays int,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		clients:      clients,
		busyRepo:     busyRepo,
		txManager:    txManager,
		horizonDays:  horizonDays,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case синхронизации календарей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SyncBusyTimes: practitioner=%d, providers=%d", req.PractitionerID, len(uc.clients))

	if req.PractitionerID <= 0 {
		return nil, fmt.Errorf("%w: practitionerID must be positive", ErrInvalidInput)
	}

	now := uc.timeProvider.Now().UTC()
	from := now
	to := now.AddDate(0, 0, uc.horizonDays)

	resp := &Response{PractitionerID: req.PractitionerID}

	for _, client := range uc.clients {
		provider := client.Name()

		periods, err := client.FetchBusy(ctx, req.PractitionerID, from, to)
		if err != nil {
			if errors.Is(err, calendarprovider.ErrCalendarNotLinked) {
				uc.logger.Info("SyncBusyTimes: practitioner=%d has no %s calendar linked",
					req.PractitionerID, provider)
				continue
			}
			// Кэш провайдера не трогаем: устаревшие интервалы лучше пустых
			uc.logger.Error("SyncBusyTimes: fetch from %s failed for practitioner=%d: %v",
				provider, req.PractitionerID, err)
			uc.metrics.IncBusySync(provider, false)
			resp.Results = append(resp.Results, ProviderResult{
				Provider: provider,
				Error:    fmt.Sprintf("fetch failed: %v", err),
			})
			continue
		}

		intervals := make([]*domain.BusyInterval, 0, len(periods))
		for _, period := range periods {
			intervals = append(intervals, &domain.BusyInterval{
				PractitionerID: req.PractitionerID,
				Provider:       provider,
				StartAt:        period.Start.UTC(),
				EndAt:          period.End.UTC(),
			})
		}

		err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
			return uc.busyRepo.ReplaceForProvider(txCtx, req.PractitionerID, provider, intervals, now)
		})
		if err != nil {
			uc.logger.Error("SyncBusyTimes: failed to replace cache for %s: %v", provider, err)
			uc.metrics.IncBusySync(provider, false)
			resp.Results = append(resp.Results, ProviderResult{
				Provider: provider,
				Error:    fmt.Sprintf("cache replace failed: %v", err),
			})
			continue
		}

		uc.logger.Info("SyncBusyTimes: cached %d intervals from %s for practitioner=%d",
			len(intervals), provider, req.PractitionerID)
		uc.metrics.IncBusySync(provider, true)
		resp.Results = append(resp.Results, ProviderResult{
			Provider:  provider,
			Intervals: len(intervals),
		})
	}

	return resp, nil
}
