package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/dbmetrics"
	"github.com/praxisbook/scheduling-service/pkg/psqlbuilder"
)

// bookingColumns полный набор колонок таблицы bookings
var bookingColumns = []string{
	"id",
	"practitioner_id",
	"client_id",
	"booking_date",
	"start_time",
	"end_time",
	"status",
	"client_name",
	"client_email",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Создание с проверкой занятости слота ОБЯЗАНО выполняться в сериализуемой
// транзакции вместе с ListBlockingByDateRange (предотвращение гонки)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"practitioner_id",
			"client_id",
			"booking_date",
			"start_time",
			"end_time",
			"status",
			"client_name",
			"client_email",
			"notes",
		).
		Values(
			booking.PractitionerID,
			booking.ClientID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.Status,
			booking.ClientName,
			booking.ClientEmail,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("booking_date DESC, start_time DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByPractitionerWithFilter получает бронирования специалиста с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, статусу и включению отмененных бронирований
func (r *Repository) GetByPractitionerWithFilter(ctx context.Context, filter domain.PractitionerBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"practitioner_id": filter.PractitionerID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		// Если не указан конкретный статус и не нужны отмененные - исключаем их
		inactiveStatusStrings := make([]string, len(domain.InactiveBookingStatuses))
		for i, s := range domain.InactiveBookingStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для конкретной даты сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitionerWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListBlockingByDateRange возвращает занимающие слот бронирования за период
// как унифицированные интервалы (для генератора слотов и проверки конфликтов)
//
// Внутри транзакции строки блокируются через FOR UPDATE: именно эта блокировка
// вместе с сериализуемой изоляцией закрывает гонку двух одновременных
// бронирований одного слота
func (r *Repository) ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.BlockingBookingStatuses))
	for i, s := range domain.BlockingBookingStatuses {
		blockingStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id", "booking_date", "start_time", "end_time").
		From("bookings").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.GtOrEq{"booking_date": from}).
		Where(squirrel.LtOrEq{"booking_date": to}).
		Where(squirrel.Eq{"status": blockingStatuses}).
		OrderBy("booking_date ASC, start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByDateRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByDateRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	intervals := make([]*domain.BlockingInterval, 0)
	for rows.Next() {
		interval := domain.BlockingInterval{Source: "booking"}
		if err := rows.Scan(&interval.SourceID, &interval.Date, &interval.StartTime, &interval.EndTime); err != nil {
			return nil, fmt.Errorf("%w: ListBlockingByDateRange - scan row: %v", ErrScanRow, err)
		}
		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBlockingByDateRange - rows error: %v", ErrScanRow, err)
	}

	return intervals, nil
}

// UpdateStatus обновляет статус бронирования
// Валидация допустимости перехода выполняется на уровне сервиса/usecase
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.PractitionerID,
		&booking.ClientID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.PractitionerID,
			&booking.ClientID,
			&booking.BookingDate,
			&booking.StartTime,
			&booking.EndTime,
			&booking.Status,
			&booking.ClientName,
			&booking.ClientEmail,
			&booking.Notes,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
