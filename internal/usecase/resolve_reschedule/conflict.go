package resolve_reschedule

import (
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// hasConflict проверяет пересечение нового времени с занятыми интервалами,
// расширенными буфером. Сама переносимая сессия из проверки исключается
func hasConflict(
	date time.Time,
	start, end types.TimeString,
	blocking []*domain.BlockingInterval,
	sessionID int64,
	bufferMinutes int,
) (bool, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return false, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return false, err
	}

	for _, interval := range blocking {
		if interval.Source == "session" && interval.SourceID == sessionID {
			continue
		}
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
