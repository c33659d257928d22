package resolve_reschedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisbook/scheduling-service/internal/domain"
	sessionRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/session"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

type stubLogger struct{}

func (stubLogger) Info(format string, v ...interface{})  {}
func (stubLogger) Warn(format string, v ...interface{})  {}
func (stubLogger) Error(format string, v ...interface{}) {}

type passthroughTxManager struct {
	calls int
}

func (m *passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type appliedReschedule struct {
	date  time.Time
	start types.TimeString
	end   types.TimeString
}

type fakeSessionRepo struct {
	session  *domain.Session
	blocking []*domain.BlockingInterval

	applied     []appliedReschedule
	rsvpUpdates []domain.RSVPStatus
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	if r.session == nil || r.session.ID != id {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return r.session, nil
}

func (r *fakeSessionRepo) ListBlockingByDateRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BlockingInterval, error) {
	return r.blocking, nil
}

func (r *fakeSessionRepo) ApplyReschedule(_ context.Context, _ int64, date time.Time, start, end types.TimeString) error {
	r.applied = append(r.applied, appliedReschedule{date: date, start: start, end: end})
	return nil
}

func (r *fakeSessionRepo) UpdateRSVP(_ context.Context, _ int64, status domain.RSVPStatus,
	_ *time.Time, _, _ *types.TimeString, _ *string) error {
	r.rsvpUpdates = append(r.rsvpUpdates, status)
	return nil
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

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

var proposedDate = time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)

// sessionWithProposal сессия id=10 специалиста 1 с предложением 14:00-15:00
func sessionWithProposal() *domain.Session {
	return &domain.Session{
		ID:                10,
		PractitionerID:    1,
		ClientID:          42,
		SessionDate:       time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:         ts("10:00"),
		EndTime:           ts("11:00"),
		Status:            domain.SessionStatusScheduled,
		RSVPStatus:        domain.RSVPRescheduleRequested,
		ProposedDate:      &proposedDate,
		ProposedStartTime: tsPtr("14:00"),
		ProposedEndTime:   tsPtr("15:00"),
	}
}

func zeroBufferSettings() *domain.BookingSettings {
	s := domain.DefaultBookingSettings(1)
	s.BufferMinutes = 0
	return s
}

func TestExecute_AcceptAppliesProposedTime(t *testing.T) {
	repo := &fakeSessionRepo{session: sessionWithProposal()}
	tx := &passthroughTxManager{}

	uc := NewUseCase(repo, &fakeBookingRepo{}, &fakeSettingsRepo{settings: zeroBufferSettings()}, tx, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: true})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RSVPAccepted), resp.RSVPStatus)
	assert.Equal(t, proposedDate, resp.Date)
	assert.Equal(t, ts("14:00"), resp.StartTime)
	assert.Equal(t, ts("15:00"), resp.EndTime)

	require.Len(t, repo.applied, 1)
	assert.Equal(t, proposedDate, repo.applied[0].date)
	assert.Equal(t, 1, tx.calls)
}

func TestExecute_DeclineKeepsOriginalTime(t *testing.T) {
	repo := &fakeSessionRepo{session: sessionWithProposal()}

	uc := NewUseCase(repo, &fakeBookingRepo{}, &fakeSettingsRepo{}, &passthroughTxManager{}, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: false})
	require.NoError(t, err)

	// Время прежнее, приглашение снова ждет ответа клиента
	assert.Equal(t, string(domain.RSVPPending), resp.RSVPStatus)
	assert.Equal(t, ts("10:00"), resp.StartTime)
	assert.Empty(t, repo.applied)
	require.Len(t, repo.rsvpUpdates, 1)
	assert.Equal(t, domain.RSVPPending, repo.rsvpUpdates[0])
}

func TestExecute_AcceptConflictingSlotRejected(t *testing.T) {
	repo := &fakeSessionRepo{session: sessionWithProposal()}
	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: proposedDate, StartTime: ts("14:30"), EndTime: ts("15:30"), Source: "booking", SourceID: 7},
	}}

	uc := NewUseCase(repo, bookings, &fakeSettingsRepo{settings: zeroBufferSettings()}, &passthroughTxManager{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: true})
	require.ErrorIs(t, err, ErrSlotNoLongerAvailable)
	assert.Empty(t, repo.applied)
}

func TestExecute_AcceptIgnoresOwnSessionInterval(t *testing.T) {
	// Перенос на время, пересекающееся со старым временем самой сессии
	session := sessionWithProposal()
	session.ProposedDate = &session.SessionDate
	session.ProposedStartTime = tsPtr("10:30")
	session.ProposedEndTime = tsPtr("11:30")

	repo := &fakeSessionRepo{
		session: session,
		blocking: []*domain.BlockingInterval{
			{Date: session.SessionDate, StartTime: ts("10:00"), EndTime: ts("11:00"), Source: "session", SourceID: 10},
		},
	}

	uc := NewUseCase(repo, &fakeBookingRepo{}, &fakeSettingsRepo{settings: zeroBufferSettings()}, &passthroughTxManager{}, stubLogger{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: true})
	require.NoError(t, err)
	assert.Equal(t, ts("10:30"), resp.StartTime)
}

func TestExecute_BufferExpandsConflictZone(t *testing.T) {
	// Бронирование 15:10-16:00 с буфером 15 минут накрывает 14:55,
	// предложение 14:00-15:00 конфликтует
	session := sessionWithProposal()
	settings := zeroBufferSettings()
	settings.BufferMinutes = 15

	bookings := &fakeBookingRepo{blocking: []*domain.BlockingInterval{
		{Date: proposedDate, StartTime: ts("15:10"), EndTime: ts("16:00"), Source: "booking", SourceID: 7},
	}}

	uc := NewUseCase(&fakeSessionRepo{session: session}, bookings,
		&fakeSettingsRepo{settings: settings}, &passthroughTxManager{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: true})
	require.ErrorIs(t, err, ErrSlotNoLongerAvailable)
}

func TestExecute_NoProposal(t *testing.T) {
	session := sessionWithProposal()
	session.RSVPStatus = domain.RSVPPending
	session.ProposedDate = nil
	session.ProposedStartTime = nil
	session.ProposedEndTime = nil

	uc := NewUseCase(&fakeSessionRepo{session: session}, &fakeBookingRepo{},
		&fakeSettingsRepo{}, &passthroughTxManager{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: true})
	require.ErrorIs(t, err, ErrNoProposal)
}

func TestExecute_ForeignSessionHiddenAsNotFound(t *testing.T) {
	uc := NewUseCase(&fakeSessionRepo{session: sessionWithProposal()}, &fakeBookingRepo{},
		&fakeSettingsRepo{}, &passthroughTxManager{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 999, Accept: true})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := NewUseCase(&fakeSessionRepo{}, &fakeBookingRepo{},
		&fakeSettingsRepo{}, &passthroughTxManager{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 10, PractitionerID: 1, Accept: true})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeSessionRepo{}, &fakeBookingRepo{},
		&fakeSettingsRepo{}, &passthroughTxManager{}, stubLogger{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 0, PractitionerID: 1})
	require.ErrorIs(t, err, ErrInvalidInput)
}
