package create_booking

import (
	"fmt"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

const dayEndMinutes = 24 * 60

// fitsAvailability проверяет, что [startMin, endMin) целиком попадает в одно
// из окон доступности дня. Исключение на дату вытесняет еженедельные правила
func fitsAvailability(
	date time.Time,
	startMin, endMin int,
	override *domain.DateOverride,
	rules []*domain.WeeklyRule,
) (bool, error) {
	if override != nil {
		if !override.IsAvailable {
			return false, nil
		}
		if override.StartTime == nil || override.EndTime == nil {
			return false, fmt.Errorf("override for %s is available but has no times",
				date.Format(domain.DateFormat))
		}
		return intervalContains(*override.StartTime, *override.EndTime, startMin, endMin)
	}

	weekday := int(date.Weekday())
	for _, rule := range rules {
		if !rule.Active || rule.DayOfWeek != weekday {
			continue
		}
		ok, err := intervalContains(rule.StartTime, rule.EndTime, startMin, endMin)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}

	return false, nil
}

func intervalContains(start, end types.TimeString, startMin, endMin int) (bool, error) {
	windowStart, err := start.Minutes()
	if err != nil {
		return false, err
	}
	windowEnd, err := end.Minutes()
	if err != nil {
		return false, err
	}
	return startMin >= windowStart && endMin <= windowEnd, nil
}

// hasConflict проверяет пересечение запрошенного времени с занятыми интервалами,
// расширенными буфером с обеих сторон (расширение обрезается границами дня).
// Граничащие интервалы пересечением не считаются
func hasConflict(
	date time.Time,
	startMin, endMin int,
	blocking []*domain.BlockingInterval,
	bufferMinutes int,
) (bool, error) {
	for _, interval := range blocking {
		if !sameDate(interval.Date, date) {
			continue
		}

		busyStart, err := interval.StartTime.Minutes()
		if err != nil {
			return false, err
		}
		busyEnd, err := interval.EndTime.Minutes()
		if err != nil {
			return false, err
		}

		busyStart -= bufferMinutes
		busyEnd += bufferMinutes
		if busyStart < 0 {
			busyStart = 0
		}
		if busyEnd > dayEndMinutes {
			busyEnd = dayEndMinutes
		}

		if startMin < busyEnd && endMin > busyStart {
			return true, nil
		}
	}

	return false, nil
}

func sameDate(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
