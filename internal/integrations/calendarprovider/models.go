package calendarprovider

import "time"

// BusyPeriod занятый интервал из внешнего календаря
// Провайдер отдает моменты в RFC3339 с собственным смещением;
// клиент нормализует их в UTC
type BusyPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// busyResponse ответ провайдера на запрос занятых интервалов
type busyResponse struct {
	Periods []BusyPeriod `json:"periods"`
}

// ErrorResponse модель ошибки от провайдера
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
