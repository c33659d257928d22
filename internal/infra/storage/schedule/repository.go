package schedule

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

var weeklyRuleColumns = []string{
	"id",
	"practitioner_id",
	"day_of_week",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

var overrideColumns = []string{
	"id",
	"practitioner_id",
	"date",
	"is_available",
	"start_time",
	"end_time",
	"reason",
	"created_at",
	"updated_at",
}

// Repository хранилище расписания: еженедельные правила и исключения на даты
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ReplaceWeeklyRules полностью заменяет набор еженедельных правил специалиста.
// Ожидает вызова внутри транзакции (delete + insert должны быть атомарны)
func (r *Repository) ReplaceWeeklyRules(ctx context.Context, practitionerID int64, rules []*domain.WeeklyRule) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	deleteQuery, deleteArgs, err := psqlbuilder.Delete("weekly_rules").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRules - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRules - delete rules: %v", ErrExecQuery, err)
	}

	if len(rules) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("weekly_rules").
		Columns("practitioner_id", "day_of_week", "start_time", "end_time", "active")

	for _, rule := range rules {
		insert = insert.Values(
			practitionerID,
			rule.DayOfWeek,
			rule.StartTime,
			rule.EndTime,
			rule.Active,
		)
	}

	insertQuery, insertArgs, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRules - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, insertQuery, insertArgs...); err != nil {
		return fmt.Errorf("%w: ReplaceWeeklyRules - insert rules: %v", ErrExecQuery, err)
	}

	return nil
}

// ListWeeklyRules возвращает все правила специалиста, упорядоченные по дню и времени
func (r *Repository) ListWeeklyRules(ctx context.Context, practitionerID int64) ([]*domain.WeeklyRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(weeklyRuleColumns...).
		From("weekly_rules").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRules - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var rules []*domain.WeeklyRule
	for rows.Next() {
		var rule domain.WeeklyRule
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&rule.ID,
			&rule.PractitionerID,
			&rule.DayOfWeek,
			&rule.StartTime,
			&rule.EndTime,
			&rule.Active,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListWeeklyRules - scan row: %v", ErrScanRow, err)
		}

		rule.CreatedAt = createdAt.Time
		rule.UpdatedAt = updatedAt.Time
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListWeeklyRules - rows iteration: %v", ErrScanRow, err)
	}

	return rules, nil
}

// UpsertOverride создает или обновляет исключение на дату (уникально по practitioner + date)
func (r *Repository) UpsertOverride(ctx context.Context, override *domain.DateOverride) (*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("date_overrides").
		Columns("practitioner_id", "date", "is_available", "start_time", "end_time", "reason").
		Values(
			override.PractitionerID,
			override.Date,
			override.IsAvailable,
			override.StartTime,
			override.EndTime,
			override.Reason,
		).
		Suffix(`ON CONFLICT (practitioner_id, date) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			reason = EXCLUDED.reason,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&override.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: UpsertOverride - execute query: %v", ErrExecQuery, err)
	}

	override.CreatedAt = createdAt.Time
	override.UpdatedAt = updatedAt.Time
	return override, nil
}

// GetOverrideByDate возвращает исключение специалиста на конкретную дату
func (r *Repository) GetOverrideByDate(ctx context.Context, practitionerID int64, date time.Time) (*domain.DateOverride, error) {
	overrides, err := r.listOverrides(ctx, squirrel.Eq{
		"practitioner_id": practitionerID,
		"date":            date,
	})
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return nil, ErrOverrideNotFound
	}
	return overrides[0], nil
}

// ListOverridesByDateRange возвращает исключения в интервале дат [from, to] включительно
func (r *Repository) ListOverridesByDateRange(ctx context.Context, practitionerID int64, from, to time.Time) ([]*domain.DateOverride, error) {
	return r.listOverrides(ctx, squirrel.And{
		squirrel.Eq{"practitioner_id": practitionerID},
		squirrel.GtOrEq{"date": from},
		squirrel.LtOrEq{"date": to},
	})
}

// DeleteOverride удаляет исключение на дату, возвращая дате обычное расписание
func (r *Repository) DeleteOverride(ctx context.Context, practitionerID int64, date time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("date_overrides").
		Where(squirrel.Eq{
			"practitioner_id": practitionerID,
			"date":            date,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - build query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - execute query: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteOverride - rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrOverrideNotFound
	}

	return nil
}

func (r *Repository) listOverrides(ctx context.Context, where interface{}) ([]*domain.DateOverride, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(overrideColumns...).
		From("date_overrides").
		Where(where).
		OrderBy("date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - build query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listOverrides - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var overrides []*domain.DateOverride
	for rows.Next() {
		var override domain.DateOverride
		var createdAt, updatedAt sql.NullTime
		var startTime, endTime sql.NullString

		err := rows.Scan(
			&override.ID,
			&override.PractitionerID,
			&override.Date,
			&override.IsAvailable,
			&startTime,
			&endTime,
			&override.Reason,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: listOverrides - scan row: %v", ErrScanRow, err)
		}

		if startTime.Valid {
			var ts types.TimeString
			if err := ts.Scan(startTime.String); err != nil {
				return nil, fmt.Errorf("%w: listOverrides - start_time: %v", ErrScanRow, err)
			}
			override.StartTime = &ts
		}
		if endTime.Valid {
			var ts types.TimeString
			if err := ts.Scan(endTime.String); err != nil {
				return nil, fmt.Errorf("%w: listOverrides - end_time: %v", ErrScanRow, err)
			}
			override.EndTime = &ts
		}

		override.CreatedAt = createdAt.Time
		override.UpdatedAt = updatedAt.Time
		overrides = append(overrides, &override)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listOverrides - rows iteration: %v", ErrScanRow, err)
	}

	return overrides, nil
}
