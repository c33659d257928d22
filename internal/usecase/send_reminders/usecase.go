package send_reminders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	sessionRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/session"
	settingsRepo "github.com/praxisbook/scheduling-service/internal/infra/storage/settings"
)

// scanHorizonDays как далеко вперед сканируются сессии.
// RSVP-напоминания вычисляются от даты создания, поэтому горизонт должен
// покрывать максимальную дальность бронирования
const scanHorizonDays = 60

// UseCase батч отправки напоминаний. Запускается внешним триггером (cron).
// Каждый элемент обрабатывается независимо: ошибка отправки записывается
// в результат и не прерывает остальные. Отметка ставится ПОСЛЕ отправки:
// при падении между ними возможна редкая повторная доставка - осознанный
// компромисс в пользу простоты вместо транзакционного outbox
type UseCase struct {
	sessionRepo  SessionRepository
	settingsRepo SettingsRepository
	notifier     NotifierClient
	settings     Settings
	metrics      MetricsCollector
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	sessionRepo SessionRepository,
	settingsRepo SettingsRepository,
	notifier NotifierClient,
	settings Settings,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		sessionRepo:  sessionRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		settings:     settings,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет один проход батча напоминаний
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()

	uc.logger.Info("SendReminders: starting batch at %s", now.Format(time.RFC3339))

	// session_date в хранилище — дата без времени, поэтому нижняя граница — начало
	// текущих суток, иначе сегодняшние сессии выпадают из выборки после полуночи.
	// Точную фильтрацию по времени делает isDue.
	scanFrom := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	sessions, err := uc.sessionRepo.ListUpcomingScheduled(ctx, scanFrom, now.AddDate(0, 0, scanHorizonDays))
	if err != nil {
		uc.logger.Error("SendReminders: failed to list upcoming sessions: %v", err)
		return nil, fmt.Errorf("%w: failed to list upcoming sessions: %v", ErrInternal, err)
	}

	result := &Response{Sent: make(map[domain.ReminderKind]int)}
	locations := make(map[int64]*time.Location)

	for _, session := range sessions {
		// Батч прерываем между элементами: каждый элемент атомарен сам по себе
		if err := ctx.Err(); err != nil {
			uc.logger.Warn("SendReminders: batch interrupted: %v", err)
			return result, nil
		}

		loc, err := uc.practitionerLocation(ctx, session.PractitionerID, locations)
		if err != nil {
			uc.logger.Error("SendReminders: session id=%d: %v", session.ID, err)
			result.Errors = append(result.Errors, ItemError{
				SessionID: session.ID,
				Message:   err.Error(),
			})
			continue
		}

		startsAt, err := session.StartsAt(loc)
		if err != nil {
			uc.logger.Error("SendReminders: session id=%d has invalid start time: %v", session.ID, err)
			result.Errors = append(result.Errors, ItemError{
				SessionID: session.ID,
				Message:   fmt.Sprintf("invalid start time: %v", err),
			})
			continue
		}

		nowLocal := now.In(loc)

		for _, kind := range domain.AllReminderKinds {
			if !isDue(kind, session, uc.settings, nowLocal, startsAt) {
				continue
			}
			uc.processReminder(ctx, session, kind, now, result)
		}
	}

	uc.logger.Info("SendReminders: batch finished, sent=%v, errors=%d", result.Sent, len(result.Errors))

	return result, nil
}

// processReminder отправляет одно напоминание и ставит отметку.
// Ошибка отправки оставляет элемент "due" для следующего запуска
func (uc *UseCase) processReminder(
	ctx context.Context,
	session *domain.Session,
	kind domain.ReminderKind,
	now time.Time,
	result *Response,
) {
	subject := buildSubject(kind, session)
	body := buildBody(kind, session)

	if err := uc.notifier.Send(ctx, session.ClientEmail, subject, body); err != nil {
		uc.logger.Warn("SendReminders: dispatch failed for session id=%d kind=%s: %v",
			session.ID, kind, err)
		uc.metrics.IncReminderProcessed(string(kind), false)
		result.Errors = append(result.Errors, ItemError{
			SessionID: session.ID,
			Kind:      kind,
			Message:   fmt.Sprintf("dispatch failed: %v", err),
		})
		return
	}

	if err := uc.sessionRepo.StampReminder(ctx, session.ID, kind, now); err != nil {
		if errors.Is(err, sessionRepo.ErrReminderAlreadyStamped) {
			// Параллельный батч успел первым; письмо продублировано, отметка стоит
			uc.logger.Warn("SendReminders: reminder already stamped for session id=%d kind=%s",
				session.ID, kind)
			return
		}
		uc.logger.Error("SendReminders: failed to stamp reminder for session id=%d kind=%s: %v",
			session.ID, kind, err)
		uc.metrics.IncReminderProcessed(string(kind), false)
		result.Errors = append(result.Errors, ItemError{
			SessionID: session.ID,
			Kind:      kind,
			Message:   fmt.Sprintf("failed to stamp reminder: %v", err),
		})
		return
	}

	uc.metrics.IncReminderProcessed(string(kind), true)
	result.Sent[kind]++
}

// practitionerLocation возвращает таймзону специалиста с кэшированием на батч
func (uc *UseCase) practitionerLocation(
	ctx context.Context,
	practitionerID int64,
	cache map[int64]*time.Location,
) (*time.Location, error) {
	if loc, ok := cache[practitionerID]; ok {
		return loc, nil
	}

	settings, err := uc.settingsRepo.GetByPractitioner(ctx, practitionerID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, fmt.Errorf("failed to get settings: %v", err)
		}
		settings = domain.DefaultBookingSettings(practitionerID)
	}

	loc, err := settings.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %v", settings.Timezone, err)
	}

	cache[practitionerID] = loc
	return loc, nil
}
