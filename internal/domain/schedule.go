package domain

import (
	"errors"
	"time"

	"github.com/m04kA/LSB-BookingService/pkg/types"
)

var (
	// ErrDateInPast возвращается, когда запрошенная дата уже прошла
	ErrDateInPast = errors.New("domain: date is in the past")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно advance_booking_days
	ErrDateTooFarInFuture = errors.New("domain: date is beyond the advance booking window")
)

// MerchantScheduleConfig represents the working-hours configuration of a merchant.
// The booking core reads it as a snapshot; it is edited only via the schedule service.
type MerchantScheduleConfig struct {
	ID                  int64
	MerchantID          int64
	OpeningTime         types.TimeString
	ClosingTime         types.TimeString
	WorkingDays         []time.Weekday
	SlotDurationMinutes int
	CapacityPerSlot     int
	AdvanceBookingDays  int
	Holidays            []time.Time // dates (no time component) excluded from the schedule
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsWorkingDay returns true if the merchant operates on the given weekday
func (c *MerchantScheduleConfig) IsWorkingDay(day time.Weekday) bool {
	for _, d := range c.WorkingDays {
		if d == day {
			return true
		}
	}
	return false
}

// IsHoliday returns true if the given date is in the merchant's holiday list
func (c *MerchantScheduleConfig) IsHoliday(date time.Time) bool {
	for _, h := range c.Holidays {
		if isSameDay(h, date) {
			return true
		}
	}
	return false
}

// ComputeSlots derives the ordered sequence of bookable slot start times for a date.
//
// Pure and deterministic: the current time is an explicit argument, there is no
// I/O and no hidden state, so availability and admission always agree on what
// "a slot" means without persisting a slot catalog.
//
// Returns ErrDateInPast / ErrDateTooFarInFuture when the date is outside the
// bookable window, and an empty sequence for holidays and non-working weekdays.
// A final partial slot whose end would overrun the closing time is dropped.
func ComputeSlots(cfg *MerchantScheduleConfig, date time.Time, now time.Time) ([]types.TimeString, error) {
	if isDateInPast(date, now) {
		return nil, ErrDateInPast
	}

	maxDate := dateOnly(now).AddDate(0, 0, cfg.AdvanceBookingDays)
	if dateOnly(date).After(maxDate) {
		return nil, ErrDateTooFarInFuture
	}

	if !cfg.IsWorkingDay(date.Weekday()) || cfg.IsHoliday(date) {
		return []types.TimeString{}, nil
	}

	slots := make([]types.TimeString, 0)
	current := cfg.OpeningTime

	for current.IsBefore(cfg.ClosingTime) {
		slotEnd, err := current.AddMinutes(cfg.SlotDurationMinutes)
		if err != nil {
			// Конец слота пересекает полночь - слот не помещается в рабочий день
			break
		}
		if slotEnd.IsAfter(cfg.ClosingTime) {
			break
		}

		slots = append(slots, current)
		current = slotEnd
	}

	return slots, nil
}

// ContainsSlot проверяет, что slot принадлежит расписанию на указанную дату
func ContainsSlot(cfg *MerchantScheduleConfig, date time.Time, slot types.TimeString, now time.Time) (bool, error) {
	slots, err := ComputeSlots(cfg, date, now)
	if err != nil {
		return false, err
	}
	for _, s := range slots {
		if s == slot {
			return true, nil
		}
	}
	return false, nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return dateOnly(date).Before(dateOnly(now))
}

// dateOnly нормализует значение до календарной даты, отбрасывая часовой пояс.
// Дата бронирования приходит в UTC, а now - в локальной зоне сервера,
// поэтому сравниваются календарные дни, а не моменты времени.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
