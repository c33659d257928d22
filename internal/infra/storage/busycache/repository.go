package busycache

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/dbmetrics"
	"github.com/praxisbook/scheduling-service/pkg/psqlbuilder"
)

var busyIntervalColumns = []string{
	"id",
	"practitioner_id",
	"provider",
	"start_at",
	"end_at",
	"synced_at",
}

// Repository кэш занятых интервалов из внешних календарей.
// Строки живут от синхронизации до синхронизации: каждый успешный батч
// полностью заменяет вклад своего провайдера
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceForProvider атомарно заменяет кэш провайдера для специалиста.
// Ожидает вызова внутри транзакции: при сбое вставки остаются старые строки
func (r *Repository) ReplaceForProvider(ctx context.Context, practitionerID int64, provider string, intervals []*domain.BusyInterval, syncedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("busy_intervals").
		Where(squirrel.Eq{
			"practitioner_id": practitionerID,
			"provider":        provider,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - delete intervals: %v", ErrExecQuery, err)
	}

	if len(intervals) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("busy_intervals").
		Columns("practitioner_id", "provider", "start_at", "end_at", "synced_at")

	for _, interval := range intervals {
		insert = insert.Values(
			practitionerID,
			provider,
			interval.StartAt.UTC(),
			interval.EndAt.UTC(),
			syncedAt.UTC(),
		)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceForProvider - insert intervals: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByPractitionerAndRange возвращает интервалы всех провайдеров,
// пересекающиеся с [from, to)
func (r *Repository) ListByPractitionerAndRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.BusyInterval, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(busyIntervalColumns...).
		From("busy_intervals").
		Where(squirrel.And{
			squirrel.Eq{"practitioner_id": practitionerID},
			squirrel.Lt{"start_at": to.UTC()},
			squirrel.Gt{"end_at": from.UTC()},
		}).
		OrderBy("start_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPractitionerAndRange - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByPractitionerAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var intervals []*domain.BusyInterval
	for rows.Next() {
		var interval domain.BusyInterval

		err := rows.Scan(
			&interval.ID,
			&interval.PractitionerID,
			&interval.Provider,
			&interval.StartAt,
			&interval.EndAt,
			&interval.SyncedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByPractitionerAndRange - scan row: %v", ErrScanRow, err)
		}

		intervals = append(intervals, &interval)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByPractitionerAndRange - rows iteration: %v", ErrScanRow, err)
	}

	return intervals, nil
}
