package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/dbmetrics"
	"github.com/praxisbook/scheduling-service/pkg/psqlbuilder"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// sessionColumns полный набор колонок таблицы sessions
var sessionColumns = []string{
	"id",
	"practitioner_id",
	"client_id",
	"session_date",
	"start_time",
	"end_time",
	"status",
	"rsvp_status",
	"title",
	"client_email",
	"rsvp_reminder_1_sent_at",
	"rsvp_reminder_2_sent_at",
	"reminder_24h_sent_at",
	"reminder_1h_sent_at",
	"proposed_date",
	"proposed_start_time",
	"proposed_end_time",
	"proposal_message",
	"created_at",
	"updated_at",
}

// reminderColumn сопоставляет тип напоминания с колонкой отметки отправки
func reminderColumn(kind domain.ReminderKind) (string, error) {
	switch kind {
	case domain.ReminderRSVPFirst:
		return "rsvp_reminder_1_sent_at", nil
	case domain.ReminderRSVPSecond:
		return "rsvp_reminder_2_sent_at", nil
	case domain.ReminderSession24h:
		return "reminder_24h_sent_at", nil
	case domain.ReminderSession1h:
		return "reminder_1h_sent_at", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReminderKind, kind)
	}
}

// Repository репозиторий для работы с сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую сессию
// Создание с проверкой занятости слота выполняется в сериализуемой транзакции
// вместе с ListBlockingByDateRange обоих репозиториев
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"practitioner_id",
			"client_id",
			"session_date",
			"start_time",
			"end_time",
			"status",
			"rsvp_status",
			"title",
			"client_email",
		).
		Values(
			session.PractitionerID,
			session.ClientID,
			session.SessionDate,
			session.StartTime,
			session.EndTime,
			session.Status,
			session.RSVPStatus,
			session.Title,
			session.ClientEmail,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает сессию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions, err := scanSessions(rows)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrSessionNotFound
	}

	return sessions[0], nil
}

// ListBlockingByDateRange возвращает занимающие слот сессии за период
// как унифицированные интервалы; внутри транзакции строки блокируются FOR UPDATE
func (r *Repository) ListBlockingByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BlockingInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockingStatuses := make([]string, len(domain.BlockingSessionStatuses))
	for i, s := range domain.BlockingSessionStatuses {
		blockingStatuses[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select("id", "session_date", "start_time", "end_time").
		From("sessions").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		Where(squirrel.GtOrEq{"session_date": from}).
		Where(squirrel.LtOrEq{"session_date": to}).
		Where(squirrel.Eq{"status": blockingStatuses}).
		OrderBy("session_date ASC, start_time ASC")

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
		interval := domain.BlockingInterval{Source: "session"}
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

// ListUpcomingScheduled возвращает запланированные сессии, начинающиеся в периоде [from, to]
// Используется батчем напоминаний; порядок обработки не гарантируется
func (r *Repository) ListUpcomingScheduled(ctx context.Context, from, to time.Time) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"status": domain.SessionStatusScheduled}).
		Where(squirrel.GtOrEq{"session_date": from}).
		Where(squirrel.LtOrEq{"session_date": to}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingScheduled - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcomingScheduled - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// UpdateStatus обновляет статус сессии
// Валидация допустимости перехода выполняется на уровне сервиса/usecase
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdateRSVP обновляет RSVP-статус и предложение переноса
// При ответах accept/decline поля предложения затираются в NULL
func (r *Repository) UpdateRSVP(ctx context.Context, id int64, rsvpStatus domain.RSVPStatus,
	proposedDate *time.Time, proposedStart, proposedEnd *types.TimeString, message *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("rsvp_status", rsvpStatus).
		Set("proposed_date", proposedDate).
		Set("proposed_start_time", proposedStart).
		Set("proposed_end_time", proposedEnd).
		Set("proposal_message", message).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateRSVP - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateRSVP")
}

// ApplyReschedule заменяет время сессии принятым предложением переноса
// Вызывается внутри сериализуемой транзакции после повторной проверки конфликтов
func (r *Repository) ApplyReschedule(ctx context.Context, id int64, date time.Time, start, end types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("session_date", date).
		Set("start_time", start).
		Set("end_time", end).
		Set("rsvp_status", domain.RSVPAccepted).
		Set("proposed_date", nil).
		Set("proposed_start_time", nil).
		Set("proposed_end_time", nil).
		Set("proposal_message", nil).
		// Перенесенная сессия напоминается заново
		Set("reminder_24h_sent_at", nil).
		Set("reminder_1h_sent_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ApplyReschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "ApplyReschedule")
}

// StampReminder устанавливает отметку отправки напоминания
// WHERE <column> IS NULL защищает от перезаписи отметки и повторной отправки
// при одновременных запусках батча: второй запуск получит ErrReminderAlreadyStamped
func (r *Repository) StampReminder(ctx context.Context, id int64, kind domain.ReminderKind, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	column, err := reminderColumn(kind)
	if err != nil {
		return err
	}

	query, args, err := psqlbuilder.Update("sessions").
		Set(column, sentAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(fmt.Sprintf("%s IS NULL", column)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: StampReminder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: StampReminder - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: StampReminder - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReminderAlreadyStamped
	}

	return nil
}

// execExpectingRow выполняет update, требуя ровно одну затронутую строку
func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		var session domain.Session
		var createdAt, updatedAt sql.NullTime
		// NULL-able времена предложения переноса сканируем через NullString:
		// для *TimeString database/sql обошел бы Scanner и не обрезал секунды
		var proposedStart, proposedEnd sql.NullString

		err := rows.Scan(
			&session.ID,
			&session.PractitionerID,
			&session.ClientID,
			&session.SessionDate,
			&session.StartTime,
			&session.EndTime,
			&session.Status,
			&session.RSVPStatus,
			&session.Title,
			&session.ClientEmail,
			&session.RSVPReminder1SentAt,
			&session.RSVPReminder2SentAt,
			&session.Reminder24hSentAt,
			&session.Reminder1hSentAt,
			&session.ProposedDate,
			&proposedStart,
			&proposedEnd,
			&session.ProposalMessage,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}

		if proposedStart.Valid {
			var ts types.TimeString
			if err := ts.Scan(proposedStart.String); err != nil {
				return nil, fmt.Errorf("%w: scanSessions - proposed_start_time: %v", ErrScanRow, err)
			}
			session.ProposedStartTime = &ts
		}
		if proposedEnd.Valid {
			var ts types.TimeString
			if err := ts.Scan(proposedEnd.String); err != nil {
				return nil, fmt.Errorf("%w: scanSessions - proposed_end_time: %v", ErrScanRow, err)
			}
			session.ProposedEndTime = &ts
		}

		session.CreatedAt = createdAt.Time
		session.UpdatedAt = updatedAt.Time

		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
