package get_merchant_schedule

import (
	"strings"
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
)

// ScheduleResponse HTTP модель расписания мерчанта
type ScheduleResponse struct {
	MerchantID          int64    `json:"merchantId"`
	OpeningTime         string   `json:"openingTime"`
	ClosingTime         string   `json:"closingTime"`
	WorkingDays         []string `json:"workingDays"`
	SlotDurationMinutes int      `json:"slotDurationMinutes"`
	CapacityPerSlot     int      `json:"capacityPerSlot"`
	AdvanceBookingDays  int      `json:"advanceBookingDays"`
	Holidays            []string `json:"holidays"`
	UpdatedAt           string   `json:"updatedAt"`
}

// FromDomainSchedule конвертирует доменную модель в HTTP response
func FromDomainSchedule(cfg *domain.MerchantScheduleConfig) *ScheduleResponse {
	workingDays := make([]string, 0, len(cfg.WorkingDays))
	for _, day := range cfg.WorkingDays {
		workingDays = append(workingDays, strings.ToLower(day.String()))
	}

	holidays := make([]string, 0, len(cfg.Holidays))
	for _, holiday := range cfg.Holidays {
		holidays = append(holidays, holiday.Format(domain.DateFormat))
	}

	return &ScheduleResponse{
		MerchantID:          cfg.MerchantID,
		OpeningTime:         cfg.OpeningTime.String(),
		ClosingTime:         cfg.ClosingTime.String(),
		WorkingDays:         workingDays,
		SlotDurationMinutes: cfg.SlotDurationMinutes,
		CapacityPerSlot:     cfg.CapacityPerSlot,
		AdvanceBookingDays:  cfg.AdvanceBookingDays,
		Holidays:            holidays,
		UpdatedAt:           cfg.UpdatedAt.Format(time.RFC3339),
	}
}
