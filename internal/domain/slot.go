package domain

import "github.com/m04kA/LSB-BookingService/pkg/types"

// AvailableSlot represents a time slot available for booking
type AvailableSlot struct {
	StartTime         types.TimeString
	DurationMinutes   int
	RemainingCapacity int
	TotalCapacity     int
}

// IsFull returns true if the slot has no remaining capacity
func (s *AvailableSlot) IsFull() bool {
	return s.RemainingCapacity <= 0
}

// IsFullyAvailable returns true if nothing occupies the slot yet
func (s *AvailableSlot) IsFullyAvailable() bool {
	return s.RemainingCapacity == s.TotalCapacity
}
