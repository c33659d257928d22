package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/dbmetrics"
	"github.com/praxisbook/scheduling-service/pkg/psqlbuilder"
)

var settingsColumns = []string{
	"id",
	"practitioner_id",
	"slot_duration_minutes",
	"buffer_minutes",
	"min_booking_notice_hours",
	"max_booking_days_ahead",
	"timezone",
	"requires_approval",
	"created_at",
	"updated_at",
}

// Repository хранилище настроек бронирования (одна строка на специалиста)
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByPractitioner возвращает настройки специалиста
func (r *Repository) GetByPractitioner(ctx context.Context, practitionerID int64) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(settingsColumns...).
		From("booking_settings").
		Where(squirrel.Eq{"practitioner_id": practitionerID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPractitioner - build query: %v", ErrBuildQuery, err)
	}

	var settings domain.BookingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&settings.ID,
		&settings.PractitionerID,
		&settings.SlotDurationMinutes,
		&settings.BufferMinutes,
		&settings.MinBookingNoticeHours,
		&settings.MaxBookingDaysAhead,
		&settings.Timezone,
		&settings.RequiresApproval,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("%w: GetByPractitioner - scan row: %v", ErrScanRow, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time
	return &settings, nil
}

// Upsert создает или обновляет настройки специалиста
func (r *Repository) Upsert(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_settings").
		Columns(
			"practitioner_id",
			"slot_duration_minutes",
			"buffer_minutes",
			"min_booking_notice_hours",
			"max_booking_days_ahead",
			"timezone",
			"requires_approval",
		).
		Values(
			settings.PractitionerID,
			settings.SlotDurationMinutes,
			settings.BufferMinutes,
			settings.MinBookingNoticeHours,
			settings.MaxBookingDaysAhead,
			settings.Timezone,
			settings.RequiresApproval,
		).
		Suffix(`ON CONFLICT (practitioner_id) DO UPDATE SET
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			min_booking_notice_hours = EXCLUDED.min_booking_notice_hours,
			max_booking_days_ahead = EXCLUDED.max_booking_days_ahead,
			timezone = EXCLUDED.timezone,
			requires_approval = EXCLUDED.requires_approval,
			updated_at = NOW()
			RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute query: %v", ErrExecQuery, err)
	}

	settings.CreatedAt = createdAt.Time
	settings.UpdatedAt = updatedAt.Time
	return settings, nil
}
