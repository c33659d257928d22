package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const (
	timeFormat = "15:04"

	// minutesPerDay количество минут в сутках
	// Значение "24:00" допустимо как верхняя граница интервала (конец дня)
	minutesPerDay = 24 * 60
)

var (
	// ErrInvalidFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// TimeString время в формате "HH:MM" без даты и таймзоны
// Используется для хранения времени начала/конца слотов и рабочих часов
type TimeString string

// NewTimeString создает TimeString из time.Time (отбрасывает дату и секунды)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeFormat))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут с начала суток
// Значение minutesPerDay (1440) форматируется как "24:00" - конец дня
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes > minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrOutOfRange, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// String возвращает строковое представление времени
func (t TimeString) String() string {
	return string(t)
}

// IsZero проверяет, что значение не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет корректность формата HH:MM
// "24:00" допустимо как верхняя граница интервала
func (t TimeString) Validate() error {
	if len(t) != 5 || t[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}

	minutes, err := t.Minutes()
	if err != nil {
		return err
	}
	if minutes < 0 || minutes > minutesPerDay {
		return fmt.Errorf("%w: %q", ErrOutOfRange, string(t))
	}

	return nil
}

// Minutes возвращает количество минут с начала суток
func (t TimeString) Minutes() (int, error) {
	var hh, mm int
	if _, err := fmt.Sscanf(string(t), "%02d:%02d", &hh, &mm); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	if mm < 0 || mm > 59 || hh < 0 || hh > 24 || (hh == 24 && mm != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return hh*60 + mm, nil
}

// AddMinutes возвращает время, смещенное на minutes минут вперед
// Возвращает ошибку, если результат выходит за пределы суток
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(current + minutes)
}

// IsBefore проверяет, что t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a < b
}

// IsAfter проверяет, что t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	if errA != nil || errB != nil {
		return false
	}
	return a > b
}

// Value реализует driver.Valuer для сохранения в БД
func (t TimeString) Value() (driver.Value, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}

// Scan реализует sql.Scanner для чтения из БД
// Postgres возвращает колонки TIME как строки вида "10:00:00"
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		*t = TimeString(truncateSeconds(v))
	case []byte:
		*t = TimeString(truncateSeconds(string(v)))
	case time.Time:
		*t = NewTimeString(v)
	case nil:
		*t = ""
		return nil
	default:
		return fmt.Errorf("%w: unsupported source type %T", ErrInvalidFormat, src)
	}
	return t.Validate()
}

// truncateSeconds обрезает секунды из представления "HH:MM:SS"
func truncateSeconds(s string) string {
	if len(s) > 5 {
		return s[:5]
	}
	return s
}
