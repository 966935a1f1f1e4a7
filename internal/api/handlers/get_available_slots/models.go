package get_available_slots

import (
	"github.com/m04kA/LSB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/LSB-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель одного слота
type SlotResponse struct {
	StartTime         string `json:"startTime"`
	DurationMinutes   int    `json:"durationMinutes"`
	RemainingCapacity int    `json:"remainingCapacity"`
	TotalCapacity     int    `json:"totalCapacity"`
}

// AvailableSlotsResponse HTTP модель ответа со списком слотов
type AvailableSlotsResponse struct {
	MerchantID int64          `json:"merchantId"`
	Date       string         `json:"date"`
	Slots      []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:         s.StartTime.String(),
			DurationMinutes:   s.DurationMinutes,
			RemainingCapacity: s.RemainingCapacity,
			TotalCapacity:     s.TotalCapacity,
		})
	}

	return &AvailableSlotsResponse{
		MerchantID: resp.MerchantID,
		Date:       resp.Date.Format(domain.DateFormat),
		Slots:      slots,
	}
}
