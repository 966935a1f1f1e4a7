package domain

// Default configuration values
const (
	DefaultSlotDurationMinutes = 30
	DefaultCapacityPerSlot     = 1
	DefaultAdvanceBookingDays  = 14
)

// Business validation constants
const (
	MinCapacityPerSlot          = 1
	MaxCapacityPerSlot          = 100
	MinAdvanceBookingDays       = 1
	MaxAdvanceBookingDays       = 365
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500

	// VerificationCodeLength длина одноразового кода подтверждения
	VerificationCodeLength = 4
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// AllowedSlotDurations допустимые длительности слота в минутах
var AllowedSlotDurations = []int{10, 15, 20, 30, 45, 60}

// IsAllowedSlotDuration проверяет, что длительность слота из допустимого набора
func IsAllowedSlotDuration(minutes int) bool {
	for _, d := range AllowedSlotDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

// OccupyingStatuses список статусов, занимающих место в слоте
// Используется при подсчете занятости слотов
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusOngoing,
}

// TerminalStatuses список конечных статусов, не занимающих место в слоте
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCancelled,
	StatusNoShow,
}
