package create_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisbook/scheduling-service/internal/domain"
	scheduleRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/schedule"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
	"github.com/praxisbook/scheduling-service/pkg/types"
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

// passthroughTxManager выполняет fn без транзакции: семантика сериализуемости
// проверяется на уровне БД, здесь важен только порядок вызовов
type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeBookingRepo struct {
	blocking []*domain.BlockingInterval
	created  *domain.Booking
	nextID   int64
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	if r.nextID == 0 {
		r.nextID = 1
	}
	created.ID = r.nextID
	created.CreatedAt = time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	r.created = &created
	return &created, nil
}

func (r *fakeBookingRepo) ListBlockingByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockingInterval, error) {
	return r.blocking, nil
}

type fakeSessionRepo struct {
	blocking []*domain.BlockingInterval
}

func (r *fakeSessionRepo) ListBlockingByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockingInterval, error) {
	return r.blocking, nil
}

type fakeScheduleRepo struct {
	rules    []*domain.WeeklyRule
	override *domain.DateOverride
}

func (r *fakeScheduleRepo) ListWeeklyRules(_ context.Context, _ int64) ([]*domain.WeeklyRule, error) {
	return r.rules, nil
}

func (r *fakeScheduleRepo) GetOverrideByDate(_ context.Context, _ int64, _ time.Time) (*domain.DateOverride, error) {
	if r.override == nil {
		return nil, scheduleRepo.ErrOverrideNotFound
	}
	return r.override, nil
}

type fakeSettingsRepo struct {
	settings *domain.BookingSettings
}

func (r *fakeSettingsRepo) GetByPractitioner(_ context.Context, _ int64) (*domain.BookingSettings, error) {
	if r.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return r.settings, nil
}

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func testSettings() *domain.BookingSettings {
	return &domain.BookingSettings{
		PractitionerID:        1,
		SlotDurationMinutes:   60,
		BufferMinutes:         15,
		MinBookingNoticeHours: 2,
		MaxBookingDaysAhead:   30,
		Timezone:              "UTC",
	}
}

func mondayRules() []*domain.WeeklyRule {
	return []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("17:00"), Active: true},
	}
}

func validRequest() *Request {
	return &Request{
		PractitionerID: 1,
		ClientID:       42,
		Date:           date("2025-10-13"), // понедельник
		StartTime:      ts("12:00"),
		EndTime:        ts("13:00"),
		ClientName:     "Анна Иванова",
		ClientEmail:    "anna@example.com",
	}
}

func newBookingUseCase(
	bookings *fakeBookingRepo,
	sessions *fakeSessionRepo,
	schedule *fakeScheduleRepo,
	settings *fakeSettingsRepo,
	tx *passthroughTxManager,
	now time.Time,
) *UseCase {
	uc := NewUseCase(bookings, sessions, schedule, settings, tx, stubLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_CreatesPendingBooking(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{}
	tx := &passthroughTxManager{}
	uc := newBookingUseCase(bookings, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, tx, now)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.Equal(t, ts("12:00"), resp.StartTime)

	// Все проверки и вставка прошли внутри транзакции
	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, bookings.created)
	assert.Equal(t, domain.StatusPending, bookings.created.Status)
}

func TestExecute_ConflictWithExistingBooking(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: date("2025-10-13"), StartTime: ts("12:30"), EndTime: ts("13:30"), Source: "booking", SourceID: 5},
	}}
	uc := newBookingUseCase(bookings, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Nil(t, bookings.created)
}

func TestExecute_BufferZoneCountsAsConflict(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	// Занято 13:05-14:00; буфер 15 минут растягивает до 12:50,
	// запрошенный конец 13:00 попадает в буферную зону
	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: date("2025-10-13"), StartTime: ts("13:05"), EndTime: ts("14:00"), Source: "booking", SourceID: 5},
	}}
	uc := newBookingUseCase(bookings, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_SessionBlocksSlot(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	sessions := &fakeSessionRepo{blocking: []*domain.BlockingInterval{
		{Date: date("2025-10-13"), StartTime: ts("12:00"), EndTime: ts("13:00"), Source: "session", SourceID: 9},
	}}
	uc := newBookingUseCase(&fakeBookingRepo{}, sessions, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_AdjacentBookingWithoutBufferAllowed(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	settings := testSettings()
	settings.BufferMinutes = 0

	// Граничащее бронирование 13:00-14:00 не конфликтует с 12:00-13:00
	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: date("2025-10-13"), StartTime: ts("13:00"), EndTime: ts("14:00"), Source: "booking", SourceID: 5},
	}}
	uc := newBookingUseCase(bookings, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: settings}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_OutsideWeeklyAvailability(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	uc := newBookingUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	req := validRequest()
	req.StartTime = ts("17:00")
	req.EndTime = ts("18:00")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_BlockedOverrideRejects(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	schedule := &fakeScheduleRepo{
		rules:    mondayRules(),
		override: &domain.DateOverride{Date: date("2025-10-13"), IsAvailable: false},
	}
	uc := newBookingUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, schedule,
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrOutsideAvailability)
}

func TestExecute_MinNoticeViolated(t *testing.T) {
	// "Сейчас" 11:00 понедельника, запрошено 12:00 при notice 2h
	now := time.Date(2025, 10, 13, 11, 0, 0, 0, time.UTC)

	uc := newBookingUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTooSoonToBook)
}

func TestExecute_DateInPast(t *testing.T) {
	now := time.Date(2025, 10, 20, 8, 0, 0, 0, time.UTC)

	uc := newBookingUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateBeyondAdvanceLimit(t *testing.T) {
	now := time.Date(2025, 10, 12, 8, 0, 0, 0, time.UTC)

	uc := newBookingUseCase(&fakeBookingRepo{}, &fakeSessionRepo{}, &fakeScheduleRepo{rules: mondayRules()},
		&fakeSettingsRepo{settings: testSettings()}, &passthroughTxManager{}, now)

	req := validRequest()
	req.Date = date("2025-12-22")

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"zero practitioner", func(req *Request) { req.PractitionerID = 0 }},
		{"zero client", func(req *Request) { req.ClientID = 0 }},
		{"start after end", func(req *Request) { req.StartTime = ts("14:00") }},
		{"bad start time", func(req *Request) { req.StartTime = ts("25:00") }},
		{"empty name", func(req *Request) { req.ClientName = "" }},
		{"bad email", func(req *Request) { req.ClientEmail = "not-an-email" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}
