package notifier

// SendRequest запрос на отправку уведомления
type SendRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendResponse ответ сервиса уведомлений
type SendResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
