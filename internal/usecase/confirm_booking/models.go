package confirm_booking

// Request модель запроса на подтверждение бронирования.
// ClientID - инициатор: подтвердить можно только свое бронирование
type Request struct {
	BookingID int64
	ClientID  int64
}

// Response модель ответа с итоговым статусом
type Response struct {
	BookingID int64
	Status    string
}
