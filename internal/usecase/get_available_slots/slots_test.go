package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praxisbook/scheduling-service/internal/domain"
	"github.com/praxisbook/scheduling-service/pkg/types"
)

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsPtr(s string) *types.TimeString {
	v := types.TimeString(s)
	return &v
}

func date(s string) time.Time {
	d, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestDayWindows_WeeklyRules(t *testing.T) {
	// 2025-10-13 - понедельник
	monday := date("2025-10-13")

	rules := []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("14:00"), EndTime: ts("18:00"), Active: true},
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("12:00"), Active: true},
		{DayOfWeek: 2, StartTime: ts("10:00"), EndTime: ts("16:00"), Active: true},
		{DayOfWeek: 1, StartTime: ts("19:00"), EndTime: ts("21:00"), Active: false},
	}

	windows, err := dayWindows(monday, nil, rules)
	require.NoError(t, err)

	// Только активные правила понедельника, отсортированы по началу
	require.Len(t, windows, 2)
	assert.Equal(t, window{start: 9 * 60, end: 12 * 60}, windows[0])
	assert.Equal(t, window{start: 14 * 60, end: 18 * 60}, windows[1])
}

func TestDayWindows_OverrideBlocksDay(t *testing.T) {
	monday := date("2025-10-13")

	rules := []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("17:00"), Active: true},
	}
	override := &domain.DateOverride{
		Date:        monday,
		IsAvailable: false,
	}

	windows, err := dayWindows(monday, override, rules)
	require.NoError(t, err)
	assert.Empty(t, windows)
}

func TestDayWindows_OverrideReplacesRules(t *testing.T) {
	monday := date("2025-10-13")

	rules := []*domain.WeeklyRule{
		{DayOfWeek: 1, StartTime: ts("09:00"), EndTime: ts("17:00"), Active: true},
	}
	override := &domain.DateOverride{
		Date:        monday,
		IsAvailable: true,
		StartTime:   tsPtr("12:00"),
		EndTime:     tsPtr("15:00"),
	}

	windows, err := dayWindows(monday, override, rules)
	require.NoError(t, err)

	// Правила дня вытеснены интервалом исключения
	require.Len(t, windows, 1)
	assert.Equal(t, window{start: 12 * 60, end: 15 * 60}, windows[0])
}

func TestDayWindows_AvailableOverrideWithoutTimes(t *testing.T) {
	monday := date("2025-10-13")

	override := &domain.DateOverride{
		Date:        monday,
		IsAvailable: true,
	}

	_, err := dayWindows(monday, override, nil)
	assert.Error(t, err)
}

func TestMergeWindows(t *testing.T) {
	tests := []struct {
		name     string
		input    []window
		expected []window
	}{
		{
			name:     "empty",
			input:    nil,
			expected: nil,
		},
		{
			name:     "disjoint stay separate",
			input:    []window{{start: 600, end: 660}, {start: 720, end: 780}},
			expected: []window{{start: 600, end: 660}, {start: 720, end: 780}},
		},
		{
			name:     "overlapping merge",
			input:    []window{{start: 600, end: 700}, {start: 660, end: 760}},
			expected: []window{{start: 600, end: 760}},
		},
		{
			name:     "touching merge",
			input:    []window{{start: 600, end: 660}, {start: 660, end: 720}},
			expected: []window{{start: 600, end: 720}},
		},
		{
			name:     "unsorted input",
			input:    []window{{start: 720, end: 780}, {start: 540, end: 600}},
			expected: []window{{start: 540, end: 600}, {start: 720, end: 780}},
		},
		{
			name:     "contained window absorbed",
			input:    []window{{start: 540, end: 900}, {start: 600, end: 660}},
			expected: []window{{start: 540, end: 900}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mergeWindows(tt.input))
		})
	}
}

func TestSubtractWindows(t *testing.T) {
	available := []window{{start: 9 * 60, end: 17 * 60}}

	// Бронирование 10:00-11:00, расширенное буфером 15 минут
	occupied := []window{{start: 9*60 + 45, end: 11*60 + 15}}

	free := subtractWindows(available, occupied)

	require.Len(t, free, 2)
	assert.Equal(t, window{start: 9 * 60, end: 9*60 + 45}, free[0])
	assert.Equal(t, window{start: 11*60 + 15, end: 17 * 60}, free[1])
}

func TestSubtractWindows_OccupiedCoversWindow(t *testing.T) {
	available := []window{{start: 10 * 60, end: 11 * 60}}
	occupied := []window{{start: 9 * 60, end: 12 * 60}}

	assert.Empty(t, subtractWindows(available, occupied))
}

func TestSubtractWindows_MultipleAvailable(t *testing.T) {
	available := []window{
		{start: 9 * 60, end: 12 * 60},
		{start: 14 * 60, end: 18 * 60},
	}
	occupied := []window{{start: 11 * 60, end: 15 * 60}}

	free := subtractWindows(available, occupied)

	require.Len(t, free, 2)
	assert.Equal(t, window{start: 9 * 60, end: 11 * 60}, free[0])
	assert.Equal(t, window{start: 15 * 60, end: 18 * 60}, free[1])
}

func TestExpandAndClip(t *testing.T) {
	// Расширение за границы суток обрезается
	assert.Equal(t, window{start: 0, end: 75}, expandAndClip(window{start: 10, end: 60}, 15))
	assert.Equal(t, window{start: 23*60 - 15, end: dayEndMinutes}, expandAndClip(window{start: 23 * 60, end: dayEndMinutes}, 15))
	assert.Equal(t, window{start: 585, end: 675}, expandAndClip(window{start: 600, end: 660}, 15))
}

func TestDiscretize_SlotMustFitEntirely(t *testing.T) {
	monday := date("2025-10-13")
	minStart := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	// Окно 09:00-09:45: 45-минутный слот помещается, 60-минутный - нет
	w := window{start: 9 * 60, end: 9*60 + 45}

	slots, err := discretize(monday, time.UTC, w, 45, minStart)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, ts("09:00"), slots[0].StartTime)
	assert.Equal(t, ts("09:45"), slots[0].EndTime)

	slots, err = discretize(monday, time.UTC, w, 60, minStart)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestDiscretize_MinStartFiltersSlots(t *testing.T) {
	monday := date("2025-10-13")
	w := window{start: 9 * 60, end: 12 * 60}

	// minStart 10:30 отсекает слоты 09:00 и 10:00
	minStart := time.Date(2025, 10, 13, 10, 30, 0, 0, time.UTC)

	slots, err := discretize(monday, time.UTC, w, 60, minStart)
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, ts("11:00"), slots[0].StartTime)
}

func TestBusyWindow_ProjectsUTCOntoLocalDay(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	dayStart := time.Date(2025, 10, 13, 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// 07:00-08:00 UTC = 10:00-11:00 по Москве
	interval := &domain.BusyInterval{
		StartAt: time.Date(2025, 10, 13, 7, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 13, 8, 0, 0, 0, time.UTC),
	}

	w, ok := busyWindow(interval, dayStart, dayEnd)
	require.True(t, ok)
	assert.Equal(t, window{start: 10 * 60, end: 11 * 60}, w)
}

func TestBusyWindow_ClipsToDayBoundaries(t *testing.T) {
	dayStart := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	interval := &domain.BusyInterval{
		StartAt: time.Date(2025, 10, 12, 22, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 13, 1, 30, 0, 0, time.UTC),
	}

	w, ok := busyWindow(interval, dayStart, dayEnd)
	require.True(t, ok)
	assert.Equal(t, window{start: 0, end: 90}, w)
}

func TestBusyWindow_OutsideDayDiscarded(t *testing.T) {
	dayStart := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	interval := &domain.BusyInterval{
		StartAt: time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 14, 10, 0, 0, 0, time.UTC),
	}

	_, ok := busyWindow(interval, dayStart, dayEnd)
	assert.False(t, ok)
}

func TestBusyWindow_PartialMinutesRoundUp(t *testing.T) {
	dayStart := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// Конец с неполной минутой расширяет занятость до 10:01
	interval := &domain.BusyInterval{
		StartAt: time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 10, 13, 10, 0, 30, 0, time.UTC),
	}

	w, ok := busyWindow(interval, dayStart, dayEnd)
	require.True(t, ok)
	assert.Equal(t, window{start: 9 * 60, end: 10*60 + 1}, w)
}
