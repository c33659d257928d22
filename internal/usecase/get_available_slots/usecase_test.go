package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisbook/scheduling-service/internal/domain"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fakeBlockingRepo struct {
	intervals []*domain.BlockingInterval
}

func (r *fakeBlockingRepo) ListBlockingByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockingInterval, error) {
	return r.intervals, nil
}

type fakeScheduleRepo struct {
	rules     []*domain.WeeklyRule
	overrides []*domain.DateOverride
}

func (r *fakeScheduleRepo) ListWeeklyRules(_ context.Context, _ int64) ([]*domain.WeeklyRule, error) {
	return r.rules, nil
}

func (r *fakeScheduleRepo) ListOverridesByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.DateOverride, error) {
	return r.overrides, nil
}

type fakeBusyRepo struct {
	intervals []*domain.BusyInterval
}

func (r *fakeBusyRepo) ListByPractitionerAndRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BusyInterval, error) {
	return r.intervals, nil
}

type fakeSettingsRepo struct {
	settings *domain.BookingSettings
}

func (r *fakeSettingsRepo) GetByPractitioner(_ context.Context, practitionerID int64) (*domain.BookingSettings, error) {
	if r.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return r.settings, nil
}

func newSlotsUseCase(
	bookings, sessions *fakeBlockingRepo,
	schedule *fakeScheduleRepo,
	busy *fakeBusyRepo,
	settings *fakeSettingsRepo,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, sessions, schedule, busy, settings, stubLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		PractitionerID:        1,
		SlotDurationMinutes:   45,
		BufferMinutes:         15,
		MinBookingNoticeHours: 0,
		MaxBookingDaysAhead:   30,
		Timezone:              "UTC",
	}
}

func TestExecute_BufferExcludesAdjacentSlots(t *testing.T) {
	// Понедельник 09:00-17:00, бронирование 10:00-11:00, буфер 15 минут:
	// занято 09:45-11:15, свободно 09:00-09:45 и 11:15-17:00
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	bookings := &fakeBlockingRepo{intervals: []*domain.BlockingInterval{
		{Date: monday, StartTime: ts("10:00"), EndTime: ts("11:00"), Source: "booking", SourceID: 1},
	}}
	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("17:00"), Active: true},
	}}

	uc := newSlotsUseCase(bookings, &fakeBlockingRepo{}, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: testSettings()}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("09:45"), resp.Slots[0].EndTime)
	assert.Equal(t, ts("11:15"), resp.Slots[1].StartTime)

	// Хронологический порядок, без пересечений с буферной зоной
	for i := 1; i < len(resp.Slots); i++ {
		assert.True(t, resp.Slots[i-1].StartTime.IsBefore(resp.Slots[i].StartTime))
	}
	for _, slot := range resp.Slots {
		assert.False(t, slot.StartTime.IsAfter(ts("09:44")) && slot.StartTime.IsBefore(ts("11:15")),
			"slot %s intrudes into buffered zone", slot.StartTime)
	}
}

func TestExecute_OverrideBlocksWholeDay(t *testing.T) {
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	schedule := &fakeScheduleRepo{
		rules: []*domain.WeeklyRule{
			{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("17:00"), Active: true},
		},
		overrides: []*domain.DateOverride{
			{Date: monday, IsAvailable: false},
		},
	}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: testSettings()}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_MinNoticeFiltersEarlySlots(t *testing.T) {
	// "Сейчас" утро понедельника; при min_notice=2h слоты до 11:00 отсечены
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

	settings := testSettings()
	settings.SlotDurationMinutes = 60
	settings.BufferMinutes = 0
	settings.MinBookingNoticeHours = 2

	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("13:00"), Active: true},
	}}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: settings}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, ts("11:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("12:00"), resp.Slots[1].StartTime)
}

func TestExecute_SessionsBlockLikeBookings(t *testing.T) {
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	settings := testSettings()
	settings.SlotDurationMinutes = 60
	settings.BufferMinutes = 0

	sessions := &fakeBlockingRepo{intervals: []*domain.BlockingInterval{
		{Date: monday, StartTime: ts("09:00"), EndTime: ts("10:00"), Source: "session", SourceID: 7},
	}}
	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("12:00"), Active: true},
	}}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, sessions, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: settings}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, ts("10:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("11:00"), resp.Slots[1].StartTime)
}

func TestExecute_ExternalBusyIntervalBlocks(t *testing.T) {
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	settings := testSettings()
	settings.SlotDurationMinutes = 60
	settings.BufferMinutes = 0

	busy := &fakeBusyRepo{intervals: []*domain.BusyInterval{
		{
			Provider: "google",
			StartAt:  time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC),
			EndAt:    time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC),
		},
	}}
	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("12:00"), Active: true},
	}}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, schedule, busy,
		&fakeSettingsRepo{settings: settings}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("11:00"), resp.Slots[1].StartTime)
}

func TestExecute_Idempotent(t *testing.T) {
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	bookings := &fakeBlockingRepo{intervals: []*domain.BlockingInterval{
		{Date: monday, StartTime: ts("10:00"), EndTime: ts("11:00"), Source: "booking", SourceID: 1},
	}}
	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("17:00"), Active: true},
	}}

	uc := newSlotsUseCase(bookings, &fakeBlockingRepo{}, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: testSettings()}, now)

	req := &Request{PractitionerID: 1, From: monday, To: monday}
	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}

func TestExecute_DefaultSettingsWhenNotSaved(t *testing.T) {
	// Настройки не сохранены: действуют умолчания (60 минут, notice 24h)
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("11:00"), Active: true},
	}}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	// Умолчания: слоты по 60 минут, notice 24h от 2025-10-12 08:00 не отсекает утро понедельника
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("10:00"), resp.Slots[1].StartTime)
	assert.Equal(t, 60, resp.Slots[0].DurationMinutes)
}

func TestExecute_WesternTimezoneKeepsRequestedDate(t *testing.T) {
	// Даты запроса приходят как UTC-полночь. В зоне с отрицательным смещением
	// диапазон не должен уползать на предыдущие сутки: понедельник остается понедельником
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC)

	settings := testSettings()
	settings.SlotDurationMinutes = 60
	settings.BufferMinutes = 0
	settings.Timezone = "America/New_York"

	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("12:00"), Active: true},
	}}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, schedule, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: settings}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 3)
	for _, slot := range resp.Slots {
		assert.Equal(t, "2025-10-13", slot.Date.Format(domain.DateFormat))
	}
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_WesternTimezoneProjectsBusyIntervals(t *testing.T) {
	// Внешний интервал хранится в UTC; в America/New_York (EDT, UTC-4)
	// 14:00-15:00 UTC покрывает локальные 10:00-11:00
	monday := date("2025-10-13")
	now := time.Date(2025, 10, 12, 12, 0, 0, 0, time.UTC)

	settings := testSettings()
	settings.SlotDurationMinutes = 60
	settings.BufferMinutes = 0
	settings.Timezone = "America/New_York"

	busy := &fakeBusyRepo{intervals: []*domain.BusyInterval{
		{
			Provider: "google",
			StartAt:  time.Date(2025, 10, 13, 14, 0, 0, 0, time.UTC),
			EndAt:    time.Date(2025, 10, 13, 15, 0, 0, 0, time.UTC),
		},
	}}
	schedule := &fakeScheduleRepo{rules: []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("12:00"), Active: true},
	}}

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, schedule, busy,
		&fakeSettingsRepo{settings: settings}, now)

	resp, err := uc.Execute(context.Background(), &Request{PractitionerID: 1, From: monday, To: monday})
	require.NoError(t, err)

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, ts("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, ts("11:00"), resp.Slots[1].StartTime)
}

func TestExecute_WholeRangeInPast(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, &fakeScheduleRepo{}, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: testSettings()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		PractitionerID: 1,
		From:           date("2025-10-01"),
		To:             date("2025-10-05"),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_RangeBeyondAdvanceLimit(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, &fakeScheduleRepo{}, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: testSettings()}, now)

	_, err := uc.Execute(context.Background(), &Request{
		PractitionerID: 1,
		From:           date("2025-12-25"),
		To:             date("2025-12-26"),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_InvalidRequest(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	uc := newSlotsUseCase(&fakeBlockingRepo{}, &fakeBlockingRepo{}, &fakeScheduleRepo{}, &fakeBusyRepo{},
		&fakeSettingsRepo{settings: testSettings()}, now)

	_, err := uc.Execute(context.Background(), &Request{PractitionerID: 0, From: date("2025-10-13")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		PractitionerID: 1,
		From:           date("2025-10-14"),
		To:             date("2025-10-13"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
