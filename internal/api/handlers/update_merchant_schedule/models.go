package update_merchant_schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	OpeningTime         string   `json:"openingTime"` // "09:00"
	ClosingTime         string   `json:"closingTime"` // "18:00"
	WorkingDays         []string `json:"workingDays"` // ["monday", ...]
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	CapacityPerSlot     int      `json:"capacityPerSlot"`
	AdvanceBookingDays  int      `json:"advanceBookingDays"`
	Holidays            []string `json:"holidays,omitempty"` // ["2026-12-31", ...]
}

// ToDomainSchedule конвертирует HTTP request в доменную модель
func (r *UpdateScheduleRequest) ToDomainSchedule(merchantID int64) (*domain.MerchantScheduleConfig, error) {
	openingTime, err := types.NewTimeStringFromString(r.OpeningTime)
	if err != nil {
		return nil, fmt.Errorf("invalid opening time: %w", err)
	}

	closingTime, err := types.NewTimeStringFromString(r.ClosingTime)
	if err != nil {
		return nil, fmt.Errorf("invalid closing time: %w", err)
	}

	workingDays := make([]time.Weekday, 0, len(r.WorkingDays))
	for _, name := range r.WorkingDays {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		workingDays = append(workingDays, day)
	}

	holidays := make([]time.Time, 0, len(r.Holidays))
	for _, s := range r.Holidays {
		holiday, err := time.Parse(domain.DateFormat, s)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %w", s, err)
		}
		holidays = append(holidays, holiday)
	}

	return &domain.MerchantScheduleConfig{
		MerchantID:          merchantID,
		OpeningTime:         openingTime,
		ClosingTime:         closingTime,
		WorkingDays:         workingDays,
		SlotDurationMinutes: r.SlotDurationMinutes,
		CapacityPerSlot:     r.CapacityPerSlot,
		AdvanceBookingDays:  r.AdvanceBookingDays,
		Holidays:            holidays,
	}, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "sunday":
		return time.Sunday, nil
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	default:
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
}
