package sync_busy_times

// Request модель запроса на синхронизацию внешних календарей специалиста
type Request struct {
	PractitionerID int64
}

// ProviderResult итог синхронизации одного провайдера
type ProviderResult struct {
	Provider  string
	Intervals int    // количество закэшированных интервалов
	Error     string // пусто при успехе; при ошибке кэш провайдера не тронут
}

// Response модель ответа с результатами по провайдерам
type Response struct {
	PractitionerID int64
	Results        []ProviderResult
}
