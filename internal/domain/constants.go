package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes   = 60
	DefaultBufferMinutes         = 0
	DefaultMinBookingNoticeHours = 24
	DefaultMaxBookingDaysAhead   = 30
	DefaultTimezone              = "UTC"
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinBufferMinutes            = 0
	MaxBufferMinutes            = 120
	MinNoticeHours              = 0
	MaxNoticeHours              = 168 // 1 week
	MinBookingDaysAhead         = 0
	MaxBookingDaysAheadLimit    = 365 // 1 year
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxProposalMessageLength    = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingBookingStatuses статусы бронирований, занимающих слот
// Неподтвержденный pending включен намеренно (см. комментарий к StatusPending)
var BlockingBookingStatuses = []BookingStatus{
	StatusPending,
	StatusPendingVerified,
	StatusConfirmed,
}

// InactiveBookingStatuses статусы отмененных бронирований
var InactiveBookingStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByPractitioner,
}

// BlockingSessionStatuses статусы сессий, занимающих слот
var BlockingSessionStatuses = []SessionStatus{
	SessionStatusScheduled,
}
