package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	scheduleStorage "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetByMerchantWithFilter(_ context.Context, _ domain.MerchantBookingsFilter) ([]*domain.Booking, error) {
	return r.bookings, nil
}

type fakeScheduleRepo struct {
	config *domain.MerchantScheduleConfig
	err    error
}

func (r *fakeScheduleRepo) GetByMerchantID(_ context.Context, _ int64) (*domain.MerchantScheduleConfig, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.config, nil
}

type fakeCatalog struct {
	err error
}

func (c *fakeCatalog) GetMerchant(_ context.Context, _ int64) (*catalogservice.Merchant, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &catalogservice.Merchant{ID: 1, Name: "Barbershop"}, nil
}

var (
	testNow  = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)  // Monday
	testDate = time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // Tuesday
)

func mustSlot(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testSchedule(t *testing.T) *domain.MerchantScheduleConfig {
	t.Helper()
	return &domain.MerchantScheduleConfig{
		MerchantID:  1,
		OpeningTime: mustSlot(t, "09:00"),
		ClosingTime: mustSlot(t, "18:00"),
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		SlotDurationMinutes: 30,
		CapacityPerSlot:     3,
		AdvanceBookingDays:  14,
	}
}

func occupyingBooking(t *testing.T, slot string, status domain.BookingStatus) *domain.Booking {
	t.Helper()
	return &domain.Booking{
		MerchantID:  1,
		BookingDate: testDate,
		TimeSlot:    mustSlot(t, slot),
		Status:      status,
	}
}

func newTestUseCase(t *testing.T, repo *fakeBookingRepo) *UseCase {
	t.Helper()
	uc := NewUseCase(repo, &fakeScheduleRepo{config: testSchedule(t)}, &fakeCatalog{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func TestExecute_EmptyDay(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{})

	resp, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: testDate})
	require.NoError(t, err)

	// 09:00-18:00 по 30 минут = 18 слотов, все с полной вместимостью
	require.Len(t, resp.Slots, 18)
	for _, s := range resp.Slots {
		assert.Equal(t, 3, s.RemainingCapacity)
		assert.Equal(t, 3, s.TotalCapacity)
		assert.Equal(t, 30, s.DurationMinutes)
	}
	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "17:30", resp.Slots[len(resp.Slots)-1].StartTime.String())
}

func TestExecute_OccupancyReducesCapacity(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		occupyingBooking(t, "10:00", domain.StatusPending),
		occupyingBooking(t, "10:00", domain.StatusConfirmed),
		occupyingBooking(t, "14:00", domain.StatusOngoing),
	}}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: testDate})
	require.NoError(t, err)

	byStart := make(map[string]domain.AvailableSlot)
	for _, s := range resp.Slots {
		byStart[s.StartTime.String()] = s
	}

	assert.Equal(t, 1, byStart["10:00"].RemainingCapacity)
	assert.Equal(t, 2, byStart["14:00"].RemainingCapacity)
	assert.Equal(t, 3, byStart["09:00"].RemainingCapacity)
}

func TestExecute_TerminalStatusesDoNotOccupy(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		occupyingBooking(t, "10:00", domain.StatusCancelled),
		occupyingBooking(t, "10:00", domain.StatusCompleted),
		occupyingBooking(t, "10:00", domain.StatusNoShow),
	}}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: testDate})
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, 3, s.RemainingCapacity, "slot %s", s.StartTime)
	}
}

func TestExecute_FullSlotStaysListed(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		occupyingBooking(t, "10:00", domain.StatusPending),
		occupyingBooking(t, "10:00", domain.StatusPending),
		occupyingBooking(t, "10:00", domain.StatusConfirmed),
	}}
	uc := newTestUseCase(t, repo)

	resp, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: testDate})
	require.NoError(t, err)

	// Заполненный слот остается в выдаче с нулевой остаточной вместимостью
	var full *domain.AvailableSlot
	for i := range resp.Slots {
		if resp.Slots[i].StartTime.String() == "10:00" {
			full = &resp.Slots[i]
		}
	}
	require.NotNil(t, full)
	assert.Equal(t, 0, full.RemainingCapacity)
	assert.True(t, full.IsFull())
}

func TestExecute_ClosedDay(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{})
	sunday := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	resp, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DateErrors(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		MerchantID: 1,
		Date:       time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = uc.Execute(context.Background(), &Request{
		MerchantID: 1,
		Date:       testNow.AddDate(0, 0, 30),
	})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_MerchantNotFound(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{})
	uc.catalog = &fakeCatalog{err: catalogservice.ErrMerchantNotFound}

	_, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	uc := newTestUseCase(t, &fakeBookingRepo{})
	uc.scheduleRepo = &fakeScheduleRepo{err: scheduleStorage.ErrConfigNotFound}

	_, err := uc.Execute(context.Background(), &Request{MerchantID: 1, Date: testDate})
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}
