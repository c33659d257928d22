package get_available_slots

import (
	"fmt"
	"sort"
	"time"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

// window интервал внутри одного дня в минутах от полуночи [start, end)
type window struct {
	start int
	end   int
}

const dayEndMinutes = 24 * 60

// dayWindows возвращает сырые окна доступности на дату.
// Исключение на дату (override) полностью вытесняет еженедельные правила:
// либо день закрыт, либо действует только его интервал
func dayWindows(date time.Time, override *domain.DateOverride, rules []*domain.WeeklyRule) ([]window, error) {
	if override != nil {
		if !override.IsAvailable {
			return nil, nil
		}
		if override.StartTime == nil || override.EndTime == nil {
			return nil, fmt.Errorf("override for %s is available but has no times", date.Format(domain.DateFormat))
		}
		w, err := windowFromTimes(*override.StartTime, *override.EndTime)
		if err != nil {
			return nil, err
		}
		return []window{w}, nil
	}

	weekday := int(date.Weekday())
	var windows []window
	for _, rule := range rules {
		if !rule.Active || rule.DayOfWeek != weekday {
			continue
		}
		w, err := windowFromTimes(rule.StartTime, rule.EndTime)
		if err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })
	return windows, nil
}

func windowFromTimes(start, end types.TimeString) (window, error) {
	startMin, err := start.Minutes()
	if err != nil {
		return window{}, err
	}
	endMin, err := end.Minutes()
	if err != nil {
		return window{}, err
	}
	return window{start: startMin, end: endMin}, nil
}

// occupiedForDay собирает занятые окна дня: блокирующие бронирования и сессии
// плюс интервалы внешних календарей, каждое расширено буфером с обеих сторон.
// Расширение за полночь обрезается границей дня
func occupiedForDay(
	date time.Time,
	loc *time.Location,
	blocking []*domain.BlockingInterval,
	busy []*domain.BusyInterval,
	bufferMinutes int,
) ([]window, error) {
	var occupied []window

	for _, interval := range blocking {
		if !sameDate(interval.Date, date) {
			continue
		}
		w, err := windowFromTimes(interval.StartTime, interval.EndTime)
		if err != nil {
			return nil, err
		}
		occupied = append(occupied, expandAndClip(w, bufferMinutes))
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	for _, interval := range busy {
		w, ok := busyWindow(interval, dayStart, dayEnd)
		if !ok {
			continue
		}
		occupied = append(occupied, expandAndClip(w, bufferMinutes))
	}

	return mergeWindows(occupied), nil
}

// busyWindow проецирует UTC-интервал внешнего календаря на локальный день.
// Части за пределами дня обрезаются; непересекающиеся интервалы отбрасываются
func busyWindow(interval *domain.BusyInterval, dayStart, dayEnd time.Time) (window, bool) {
	start := interval.StartAt
	end := interval.EndAt

	if !start.Before(dayEnd) || !end.After(dayStart) {
		return window{}, false
	}

	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(dayEnd) {
		end = dayEnd
	}

	startMin := int(start.Sub(dayStart).Minutes())
	endMin := int(end.Sub(dayStart).Minutes())
	// Неровные секунды округляем в сторону расширения занятости
	if end.Sub(dayStart)%time.Minute != 0 {
		endMin++
	}

	if startMin >= endMin {
		return window{}, false
	}
	return window{start: startMin, end: endMin}, true
}

func expandAndClip(w window, bufferMinutes int) window {
	w.start -= bufferMinutes
	w.end += bufferMinutes
	if w.start < 0 {
		w.start = 0
	}
	if w.end > dayEndMinutes {
		w.end = dayEndMinutes
	}
	return w
}

// mergeWindows сортирует и склеивает пересекающиеся или граничащие окна
func mergeWindows(windows []window) []window {
	if len(windows) <= 1 {
		return windows
	}

	sort.Slice(windows, func(i, j int) bool { return windows[i].start < windows[j].start })

	merged := []window{windows[0]}
	for _, w := range windows[1:] {
		last := &merged[len(merged)-1]
		if w.start <= last.end {
			if w.end > last.end {
				last.end = w.end
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

// subtractWindows вычитает занятые окна из окон доступности.
// Оба списка должны быть отсортированы; occupied - склеен
func subtractWindows(available, occupied []window) []window {
	var free []window

	for _, a := range available {
		cursor := a.start
		for _, o := range occupied {
			if o.end <= cursor || o.start >= a.end {
				continue
			}
			if o.start > cursor {
				free = append(free, window{start: cursor, end: o.start})
			}
			if o.end > cursor {
				cursor = o.end
			}
		}
		if cursor < a.end {
			free = append(free, window{start: cursor, end: a.end})
		}
	}

	return free
}

// discretize нарезает свободное окно на слоты фиксированной длительности,
// начиная от начала окна с шагом в длительность слота.
// Слот попадает в выдачу, только если целиком помещается в окно
// и начинается не раньше minStart (now + min_booking_notice)
func discretize(
	date time.Time,
	loc *time.Location,
	w window,
	durationMinutes int,
	minStart time.Time,
) ([]Slot, error) {
	var slots []Slot

	for start := w.start; start+durationMinutes <= w.end; start += durationMinutes {
		slotStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc).
			Add(time.Duration(start) * time.Minute)
		if slotStart.Before(minStart) {
			continue
		}

		startTS, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			return nil, err
		}
		endTS, err := types.NewTimeStringFromMinutes(start + durationMinutes)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{
			Date:            date,
			StartTime:       startTS,
			EndTime:         endTS,
			DurationMinutes: durationMinutes,
		})
	}

	return slots, nil
}

func sameDate(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

func dateOnly(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
