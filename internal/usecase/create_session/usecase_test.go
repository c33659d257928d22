package create_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisbook/scheduling-service/internal/domain"
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

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeSessionRepo struct {
	blocking []*domain.BlockingInterval
	created  []*domain.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	saved := *session
	saved.ID = int64(len(r.created) + 1)
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	r.created = append(r.created, &saved)
	return &saved, nil
}

func (r *fakeSessionRepo) ListBlockingByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockingInterval, error) {
	return r.blocking, nil
}

type fakeBookingRepo struct {
	blocking []*domain.BlockingInterval
}

func (r *fakeBookingRepo) ListBlockingByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockingInterval, error) {
	return r.blocking, nil
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

var sessionNow = time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
var sessionDate = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		PractitionerID: 1,
		ClientID:       42,
		Date:           sessionDate,
		StartTime:      ts("10:00"),
		EndTime:        ts("11:00"),
		Title:          "Консультация",
		ClientEmail:    "client@example.com",
	}
}

func bufferSettings(minutes int) *domain.BookingSettings {
	s := domain.DefaultBookingSettings(1)
	s.BufferMinutes = minutes
	return s
}

func newSessionUseCase(sessions *fakeSessionRepo, bookings *fakeBookingRepo,
	settings *fakeSettingsRepo, tx *passthroughTxManager) *UseCase {
	uc := NewUseCase(sessions, bookings, settings, tx, stubLogger{})
	uc.timeProvider = fixedTime{now: sessionNow}
	return uc
}

func TestExecute_CreatesScheduledSession(t *testing.T) {
	sessions := &fakeSessionRepo{}
	tx := &passthroughTxManager{}

	uc := newSessionUseCase(sessions, &fakeBookingRepo{}, &fakeSettingsRepo{}, tx)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Сессия занимает слот сразу, приглашение ждет ответа клиента
	assert.Equal(t, string(domain.SessionStatusScheduled), resp.Status)
	assert.Equal(t, string(domain.RSVPPending), resp.RSVPStatus)
	assert.Equal(t, "Консультация", resp.Title)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_OutsideWeeklyScheduleAllowed(t *testing.T) {
	// Расписание доступности на сессии специалиста не распространяется:
	// правил нет вовсе, сессия все равно создается
	uc := newSessionUseCase(&fakeSessionRepo{}, &fakeBookingRepo{}, &fakeSettingsRepo{}, &passthroughTxManager{})

	req := validRequest()
	req.StartTime = ts("22:00")
	req.EndTime = ts("23:00")

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, ts("22:00"), resp.StartTime)
}

func TestExecute_ConflictWithBooking(t *testing.T) {
	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: sessionDate, StartTime: ts("10:30"), EndTime: ts("11:30"), Source: "booking", SourceID: 7},
	}}

	uc := newSessionUseCase(&fakeSessionRepo{}, bookings, &fakeSettingsRepo{}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_ConflictWithSession(t *testing.T) {
	sessions := &fakeSessionRepo{blocking: []*domain.BlockingInterval{
		{Date: sessionDate, StartTime: ts("09:30"), EndTime: ts("10:30"), Source: "session", SourceID: 3},
	}}

	uc := newSessionUseCase(sessions, &fakeBookingRepo{}, &fakeSettingsRepo{}, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Empty(t, sessions.created)
}

func TestExecute_BufferExpandsConflictZone(t *testing.T) {
	// Бронирование 11:10-12:00 с буфером 15 минут накрывает 10:55
	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: sessionDate, StartTime: ts("11:10"), EndTime: ts("12:00"), Source: "booking", SourceID: 7},
	}}
	settings := &fakeSettingsRepo{settings: bufferSettings(15)}

	uc := newSessionUseCase(&fakeSessionRepo{}, bookings, settings, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_TouchingIntervalAllowedWithoutBuffer(t *testing.T) {
	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: sessionDate, StartTime: ts("11:00"), EndTime: ts("12:00"), Source: "booking", SourceID: 7},
	}}
	settings := &fakeSettingsRepo{settings: bufferSettings(0)}

	uc := newSessionUseCase(&fakeSessionRepo{}, bookings, settings, &passthroughTxManager{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newSessionUseCase(&fakeSessionRepo{}, &fakeBookingRepo{}, &fakeSettingsRepo{}, &passthroughTxManager{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_TodayAllowed(t *testing.T) {
	uc := newSessionUseCase(&fakeSessionRepo{}, &fakeBookingRepo{}, &fakeSettingsRepo{}, &passthroughTxManager{})

	req := validRequest()
	req.Date = time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero practitionerID", func(r *Request) { r.PractitionerID = 0 }},
		{"zero clientID", func(r *Request) { r.ClientID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"invalid startTime", func(r *Request) { r.StartTime = ts("25:00") }},
		{"start after end", func(r *Request) { r.StartTime, r.EndTime = ts("11:00"), ts("10:00") }},
		{"empty title", func(r *Request) { r.Title = "" }},
		{"invalid email", func(r *Request) { r.ClientEmail = "not-an-email" }},
	}

	uc := newSessionUseCase(&fakeSessionRepo{}, &fakeBookingRepo{}, &fakeSettingsRepo{}, &passthroughTxManager{})

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
