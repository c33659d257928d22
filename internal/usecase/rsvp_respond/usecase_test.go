package rsvp_respond

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisbook/scheduling-service/internal/domain"
	sessionRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/session"
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

type rsvpUpdate struct {
	status        domain.RSVPStatus
	proposedDate  *time.Time
	proposedStart *types.TimeString
	proposedEnd   *types.TimeString
	message       *string
}

type fakeSessionRepo struct {
	session *domain.Session
	updates []rsvpUpdate
}

func (r *fakeSessionRepo) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	if r.session == nil || r.session.ID != id {
		return nil, sessionRepo.ErrSessionNotFound
	}
	return r.session, nil
}

func (r *fakeSessionRepo) UpdateRSVP(_ context.Context, _ int64, status domain.RSVPStatus,
	proposedDate *time.Time, proposedStart, proposedEnd *types.TimeString, message *string) error {
	r.updates = append(r.updates, rsvpUpdate{
		status:        status,
		proposedDate:  proposedDate,
		proposedStart: proposedStart,
		proposedEnd:   proposedEnd,
		message:       message,
	})
	return nil
}

func tsPtr(s string) *types.TimeString {
	ts := types.TimeString(s)
	return &ts
}

var rsvpNow = time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

func scheduledSession() *domain.Session {
	return &domain.Session{
		ID:          10,
		ClientID:    42,
		SessionDate: time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC),
		StartTime:   types.TimeString("10:00"),
		EndTime:     types.TimeString("11:00"),
		Status:      domain.SessionStatusScheduled,
		RSVPStatus:  domain.RSVPPending,
	}
}

func newRSVPUseCase(repo *fakeSessionRepo) *UseCase {
	uc := NewUseCase(repo, stubLogger{})
	uc.timeProvider = fixedTime{now: rsvpNow}
	return uc
}

func TestExecute_Accept(t *testing.T) {
	repo := &fakeSessionRepo{session: scheduledSession()}
	uc := newRSVPUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: 10, ClientID: 42, Action: ActionAccept,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RSVPAccepted), resp.RSVPStatus)
	require.Len(t, repo.updates, 1)
	assert.Equal(t, domain.RSVPAccepted, repo.updates[0].status)
	assert.Nil(t, repo.updates[0].proposedDate)
}

func TestExecute_Decline(t *testing.T) {
	repo := &fakeSessionRepo{session: scheduledSession()}
	uc := newRSVPUseCase(repo)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: 10, ClientID: 42, Action: ActionDecline,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RSVPDeclined), resp.RSVPStatus)
}

func TestExecute_ProposeStoresCandidate(t *testing.T) {
	repo := &fakeSessionRepo{session: scheduledSession()}
	uc := newRSVPUseCase(repo)

	proposedDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	message := "Удобнее в среду"

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID:         10,
		ClientID:          42,
		Action:            ActionPropose,
		ProposedDate:      &proposedDate,
		ProposedStartTime: tsPtr("14:00"),
		ProposedEndTime:   tsPtr("15:00"),
		Message:           &message,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.RSVPRescheduleRequested), resp.RSVPStatus)
	require.Len(t, repo.updates, 1)
	update := repo.updates[0]
	assert.Equal(t, domain.RSVPRescheduleRequested, update.status)
	require.NotNil(t, update.proposedDate)
	assert.Equal(t, proposedDate, *update.proposedDate)
	assert.Equal(t, types.TimeString("14:00"), *update.proposedStart)
	require.NotNil(t, update.message)
	assert.Equal(t, "Удобнее в среду", *update.message)
}

func TestExecute_AcceptClearsStaleProposal(t *testing.T) {
	// Принятие после предложения затирает кандидата времени
	session := scheduledSession()
	session.RSVPStatus = domain.RSVPRescheduleRequested
	proposedDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	session.ProposedDate = &proposedDate
	session.ProposedStartTime = tsPtr("14:00")
	session.ProposedEndTime = tsPtr("15:00")

	repo := &fakeSessionRepo{session: session}
	uc := newRSVPUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 10, ClientID: 42, Action: ActionAccept,
	})
	require.NoError(t, err)

	require.Len(t, repo.updates, 1)
	assert.Nil(t, repo.updates[0].proposedDate)
	assert.Nil(t, repo.updates[0].proposedStart)
	assert.Nil(t, repo.updates[0].proposedEnd)
}

func TestExecute_ForeignSessionHiddenAsNotFound(t *testing.T) {
	repo := &fakeSessionRepo{session: scheduledSession()}
	uc := newRSVPUseCase(repo)

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 10, ClientID: 999, Action: ActionAccept,
	})
	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Empty(t, repo.updates)
}

func TestExecute_SessionNotFound(t *testing.T) {
	uc := newRSVPUseCase(&fakeSessionRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 10, ClientID: 42, Action: ActionAccept,
	})
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_CancelledSessionRejected(t *testing.T) {
	session := scheduledSession()
	session.Status = domain.SessionStatusCancelled

	uc := newRSVPUseCase(&fakeSessionRepo{session: session})

	_, err := uc.Execute(context.Background(), &Request{
		SessionID: 10, ClientID: 42, Action: ActionAccept,
	})
	require.ErrorIs(t, err, ErrSessionNotScheduled)
}

func TestValidateRequest(t *testing.T) {
	futureDate := time.Date(2025, 10, 22, 0, 0, 0, 0, time.UTC)
	pastDate := time.Date(2025, 10, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "unknown action",
			req:  &Request{SessionID: 10, ClientID: 42, Action: "maybe"},
		},
		{
			name: "propose without candidate",
			req:  &Request{SessionID: 10, ClientID: 42, Action: ActionPropose},
		},
		{
			name: "propose with past date",
			req: &Request{
				SessionID: 10, ClientID: 42, Action: ActionPropose,
				ProposedDate:      &pastDate,
				ProposedStartTime: tsPtr("14:00"),
				ProposedEndTime:   tsPtr("15:00"),
			},
		},
		{
			name: "propose start after end",
			req: &Request{
				SessionID: 10, ClientID: 42, Action: ActionPropose,
				ProposedDate:      &futureDate,
				ProposedStartTime: tsPtr("15:00"),
				ProposedEndTime:   tsPtr("14:00"),
			},
		},
		{
			name: "zero sessionID",
			req:  &Request{ClientID: 42, Action: ActionAccept},
		},
	}

	repo := &fakeSessionRepo{session: scheduledSession()}
	uc := newRSVPUseCase(repo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
