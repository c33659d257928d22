package calendarprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент одного внешнего провайдера календарей
// Провайдер - это мост (bridge) перед реальным календарным API,
// отдающий уже слитые занятые интервалы пользователя
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает клиента провайдера календарей
func NewClient(name, baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		name:    name,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Name возвращает имя провайдера ("google", "outlook", ...)
func (c *Client) Name() string {
	return c.name
}

// FetchBusy получает занятые интервалы специалиста за период [from, to]
// Моменты нормализуются в UTC перед возвратом
func (c *Client) FetchBusy(ctx context.Context, practitionerID int64, from, to time.Time) ([]BusyPeriod, error) {
	url := fmt.Sprintf("%s/users/%d/busy?from=%s&to=%s",
		c.baseURL, practitionerID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusNotFound:
		return nil, ErrCalendarNotLinked
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var parsed busyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	// Нормализуем в UTC, отбрасываем пустые и перевернутые интервалы
	periods := make([]BusyPeriod, 0, len(parsed.Periods))
	for _, p := range parsed.Periods {
		if !p.Start.Before(p.End) {
			c.log.Warn("FetchBusy: provider=%s returned empty interval [%s, %s], skipping",
				c.name, p.Start.Format(time.RFC3339), p.End.Format(time.RFC3339))
			continue
		}
		periods = append(periods, BusyPeriod{
			Start: p.Start.UTC(),
			End:   p.End.UTC(),
		})
	}

	return periods, nil
}
