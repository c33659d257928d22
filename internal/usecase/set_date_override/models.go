package set_date_override

import (
	"time"

	"github.com/praxisbook/scheduling-service/pkg/types"
)

// Request модель запроса на установку исключения на дату (upsert)
type Request struct {
	PractitionerID int64
	Date           time.Time
	IsAvailable    bool
	// Обязательны при IsAvailable == true, игнорируются при false
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    *string
}

// DeleteRequest модель запроса на удаление исключения
type DeleteRequest struct {
	PractitionerID int64
	Date           time.Time
}

// Response модель ответа с сохраненным исключением
type Response struct {
	ID          int64
	Date        time.Time
	IsAvailable bool
	StartTime   *types.TimeString
	EndTime     *types.TimeString
	Reason      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
