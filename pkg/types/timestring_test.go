package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		value string
		valid bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", true}, // верхняя граница интервала
		{"24:01", false},
		{"25:00", false},
		{"09:60", false},
		{"9:30", false},
		{"09-30", false},
		{"0930", false},
		{"", false},
		{"10:00:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := TimeString(tt.value).Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestMinutes(t *testing.T) {
	minutes, err := TimeString("09:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 570, minutes)

	minutes, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Zero(t, minutes)

	minutes, err = TimeString("24:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 1440, minutes)

	_, err = TimeString("24:30").Minutes()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestNewTimeStringFromMinutes(t *testing.T) {
	ts, err := NewTimeStringFromMinutes(570)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), ts)

	ts, err = NewTimeStringFromMinutes(1440)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = NewTimeStringFromMinutes(1441)
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = NewTimeStringFromMinutes(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 10, 13, 9, 30, 45, 0, time.UTC))
	assert.Equal(t, TimeString("09:30"), ts)
}

func TestAddMinutes(t *testing.T) {
	ts, err := TimeString("09:30").AddMinutes(45)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), ts)

	ts, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), ts)

	_, err = TimeString("23:30").AddMinutes(60)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestIsBeforeIsAfter(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("10:00")))
	assert.False(t, TimeString("10:00").IsBefore(TimeString("10:00")))
	assert.True(t, TimeString("10:00").IsAfter(TimeString("09:00")))
	assert.False(t, TimeString("10:00").IsAfter(TimeString("10:00")))
}

func TestScan(t *testing.T) {
	var ts TimeString

	// Postgres отдает TIME как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:00:00"))
	assert.Equal(t, TimeString("10:00"), ts)

	require.NoError(t, ts.Scan([]byte("09:30:15")))
	assert.Equal(t, TimeString("09:30"), ts)

	require.NoError(t, ts.Scan(time.Date(2025, 10, 13, 14, 45, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:45"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
	assert.Error(t, ts.Scan("garbage"))
}

func TestValue(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	_, err = TimeString("25:00").Value()
	assert.Error(t, err)
}
