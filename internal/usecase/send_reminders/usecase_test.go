package send_reminders

import (
	"context"
	"errors"
	"fmt"
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

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

type fakeSessionRepo struct {
	sessions   []*domain.Session
	stamps     map[string]bool // "id/kind" -> stamped
	stampErr   error
	stampCalls int
	gotFrom    time.Time
	gotTo      time.Time
}

func (r *fakeSessionRepo) ListUpcomingScheduled(_ context.Context, from, to time.Time) ([]*domain.Session, error) {
	r.gotFrom = from
	r.gotTo = to
	return r.sessions, nil
}

func (r *fakeSessionRepo) StampReminder(_ context.Context, id int64, kind domain.ReminderKind, _ time.Time) error {
	r.stampCalls++
	if r.stampErr != nil {
		return r.stampErr
	}
	if r.stamps == nil {
		r.stamps = make(map[string]bool)
	}
	key := fmt.Sprintf("%d/%s", id, kind)
	if r.stamps[key] {
		return sessionRepo.ErrReminderAlreadyStamped
	}
	r.stamps[key] = true
	return nil
}

type fakeSettingsRepo struct {
	settings *domain.BookingSettings
}

func (r fakeSettingsRepo) GetByPractitioner(_ context.Context, _ int64) (*domain.BookingSettings, error) {
	if r.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return r.settings, nil
}

type sentMail struct {
	to      string
	subject string
}

type fakeNotifier struct {
	sent []sentMail
	err  error
}

func (n *fakeNotifier) Send(_ context.Context, to, subject, _ string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentMail{to: to, subject: subject})
	return nil
}

type countingMetrics struct {
	success int
	failure int
}

func (m *countingMetrics) IncReminderProcessed(_ string, success bool) {
	if success {
		m.success++
	} else {
		m.failure++
	}
}

func testReminderSettings() Settings {
	return Settings{
		RSVPFirstHours:          24,
		RSVPSecondHours:         48,
		SessionToleranceMinutes: 30,
		RSVPFirstEnabled:        true,
		RSVPSecondEnabled:       true,
		Session24hEnabled:       true,
		Session1hEnabled:        true,
	}
}

// now в UTC; сессии в таймзоне по умолчанию (UTC), так что смещений нет
var batchNow = time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)

func scheduledSession(id int64, startsInHours float64, createdHoursAgo float64) *domain.Session {
	start := batchNow.Add(time.Duration(startsInHours * float64(time.Hour)))
	startTS := types.NewTimeString(start)
	endTS, _ := startTS.AddMinutes(60)

	return &domain.Session{
		ID:             id,
		PractitionerID: 1,
		ClientID:       42,
		SessionDate:    time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:      startTS,
		EndTime:        endTS,
		Status:         domain.SessionStatusScheduled,
		RSVPStatus:     domain.RSVPPending,
		Title:          "Консультация",
		ClientEmail:    "client@example.com",
		CreatedAt:      batchNow.Add(-time.Duration(createdHoursAgo * float64(time.Hour))),
	}
}

func newRemindersUseCase(repo *fakeSessionRepo, notifier *fakeNotifier, settings Settings, metrics *countingMetrics) *UseCase {
	uc := NewUseCase(repo, fakeSettingsRepo{}, notifier, settings, metrics, stubLogger{})
	uc.timeProvider = fixedTime{now: batchNow}
	return uc
}

func TestExecute_RSVPFirstDueAfterThreshold(t *testing.T) {
	// Создана 25 часов назад, начало через 30 часов: rsvp_first пора,
	// rsvp_second (порог 48h) еще нет, session_24h вне окна допуска
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		scheduledSession(1, 30, 25),
	}}
	notifier := &fakeNotifier{}
	metrics := &countingMetrics{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), metrics)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent[domain.ReminderRSVPFirst])
	assert.Zero(t, resp.Sent[domain.ReminderRSVPSecond])
	assert.Zero(t, resp.Sent[domain.ReminderSession24h])
	assert.Empty(t, resp.Errors)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "client@example.com", notifier.sent[0].to)
	assert.Equal(t, 1, metrics.success)
}

func TestExecute_StampedReminderNotResent(t *testing.T) {
	session := scheduledSession(1, 30, 25)
	sentAt := batchNow.Add(-time.Hour)
	session.RSVPReminder1SentAt = &sentAt

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Empty(t, resp.Sent)
	assert.Empty(t, notifier.sent)
	assert.Zero(t, repo.stampCalls)
}

func TestExecute_RSVPNotSentAfterAnswer(t *testing.T) {
	session := scheduledSession(1, 30, 25)
	session.RSVPStatus = domain.RSVPAccepted

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Sent)
	assert.Empty(t, notifier.sent)
}

func TestExecute_RSVPSuppressedCloseToStart(t *testing.T) {
	// До начала 10 часов - меньше минимального запаса для RSVP
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		scheduledSession(1, 10, 72),
	}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Zero(t, resp.Sent[domain.ReminderRSVPFirst])
	assert.Zero(t, resp.Sent[domain.ReminderRSVPSecond])
}

func TestExecute_Session24hWithinTolerance(t *testing.T) {
	// 23.7 часа до начала: внутри окна 24h +/- 30 минут
	session := scheduledSession(1, 23.7, 1)
	session.RSVPStatus = domain.RSVPAccepted

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent[domain.ReminderSession24h])
	assert.Zero(t, resp.Sent[domain.ReminderSession1h])
}

func TestExecute_Session24hOutsideTolerance(t *testing.T) {
	// 25.5 часа до начала: вне окна допуска
	session := scheduledSession(1, 25.5, 1)
	session.RSVPStatus = domain.RSVPAccepted

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Sent)
}

func TestExecute_DisabledKindSkipped(t *testing.T) {
	settings := testReminderSettings()
	settings.Session24hEnabled = false

	session := scheduledSession(1, 24, 1)
	session.RSVPStatus = domain.RSVPAccepted

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, settings, &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Empty(t, resp.Sent)
	assert.Empty(t, notifier.sent)
}

func TestExecute_DispatchFailureDoesNotStopBatch(t *testing.T) {
	// Первая отправка падает, вторая сессия все равно обрабатывается
	repo := &fakeSessionRepo{sessions: []*domain.Session{
		scheduledSession(1, 30, 25),
		scheduledSession(2, 30, 25),
	}}
	notifier := &fakeNotifier{err: errors.New("smtp unavailable")}
	metrics := &countingMetrics{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), metrics)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Empty(t, resp.Sent)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, int64(1), resp.Errors[0].SessionID)
	assert.Equal(t, domain.ReminderRSVPFirst, resp.Errors[0].Kind)
	assert.Equal(t, 2, metrics.failure)

	// Отметка не ставится при сбое отправки: элемент остается due
	assert.Zero(t, repo.stampCalls)
}

func TestExecute_ConcurrentStampTreatedAsDuplicate(t *testing.T) {
	repo := &fakeSessionRepo{
		sessions: []*domain.Session{scheduledSession(1, 30, 25)},
		stampErr: sessionRepo.ErrReminderAlreadyStamped,
	}
	notifier := &fakeNotifier{}
	metrics := &countingMetrics{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), metrics)

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	// Дубликат параллельного батча: не успех и не ошибка элемента
	assert.Empty(t, resp.Sent)
	assert.Empty(t, resp.Errors)
	assert.Zero(t, metrics.success)
	assert.Zero(t, metrics.failure)
}

func TestExecute_ScanIncludesTodaysSessions(t *testing.T) {
	// session_date хранится без времени, поэтому выборка идет от начала суток:
	// сессия сегодняшнего дня попадает в батч и после полуночи.
	// Точное "пора или нет" решает isDue
	session := scheduledSession(1, 1.2, 48)
	session.RSVPStatus = domain.RSVPAccepted

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := newRemindersUseCase(repo, notifier, testReminderSettings(), &countingMetrics{})

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC), repo.gotFrom)
	assert.Equal(t, batchNow.AddDate(0, 0, scanHorizonDays), repo.gotTo)
	assert.Equal(t, 1, resp.Sent[domain.ReminderSession1h])
	require.Len(t, notifier.sent, 1)
}

func TestExecute_PractitionerTimezoneShiftsDueWindow(t *testing.T) {
	// Начало "05:00" в America/New_York (EDT, UTC-4) - это 09:00 UTC,
	// ровно 24 часа от now. В UTC-интерпретации до начала было бы 20 часов
	// и напоминание не ушло бы
	session := scheduledSession(1, 20, 1)
	session.RSVPStatus = domain.RSVPAccepted

	nySettings := domain.DefaultBookingSettings(1)
	nySettings.Timezone = "America/New_York"

	repo := &fakeSessionRepo{sessions: []*domain.Session{session}}
	notifier := &fakeNotifier{}

	uc := NewUseCase(repo, fakeSettingsRepo{settings: nySettings}, notifier,
		testReminderSettings(), &countingMetrics{}, stubLogger{})
	uc.timeProvider = fixedTime{now: batchNow}

	resp, err := uc.Execute(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Sent[domain.ReminderSession24h])
	assert.Zero(t, resp.Sent[domain.ReminderSession1h])
}

func TestIsDue_Table(t *testing.T) {
	settings := testReminderSettings()

	tests := []struct {
		name          string
		kind          domain.ReminderKind
		startsInHours float64
		createdAgo    float64
		rsvp          domain.RSVPStatus
		expected      bool
	}{
		{"rsvp first at threshold", domain.ReminderRSVPFirst, 48, 24, domain.RSVPPending, true},
		{"rsvp first before threshold", domain.ReminderRSVPFirst, 48, 23, domain.RSVPPending, false},
		{"rsvp second needs 48h", domain.ReminderRSVPSecond, 72, 48, domain.RSVPPending, true},
		{"rsvp suppressed near start", domain.ReminderRSVPFirst, 11, 48, domain.RSVPPending, false},
		{"rsvp answered", domain.ReminderRSVPFirst, 48, 48, domain.RSVPDeclined, false},
		{"24h lower edge", domain.ReminderSession24h, 23.5, 1, domain.RSVPAccepted, true},
		{"24h upper edge", domain.ReminderSession24h, 24.5, 1, domain.RSVPAccepted, true},
		{"24h outside", domain.ReminderSession24h, 25, 1, domain.RSVPAccepted, false},
		{"1h in window", domain.ReminderSession1h, 1.2, 1, domain.RSVPAccepted, true},
		{"1h passed", domain.ReminderSession1h, 0.2, 1, domain.RSVPAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := scheduledSession(1, tt.startsInHours, tt.createdAgo)
			session.RSVPStatus = tt.rsvp
			startsAt := batchNow.Add(time.Duration(tt.startsInHours * float64(time.Hour)))

			assert.Equal(t, tt.expected, isDue(tt.kind, session, settings, batchNow, startsAt))
		})
	}
}
