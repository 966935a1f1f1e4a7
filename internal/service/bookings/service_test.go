package bookings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	byID   map[int64]*domain.Booking
	byUser []*domain.Booking
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (r *fakeBookingRepo) GetByUserID(_ context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.byUser {
		if b.UserID != userID {
			continue
		}
		if status != nil && b.Status != *status {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

func (r *fakeBookingRepo) GetByMerchantWithFilter(_ context.Context, filter domain.MerchantBookingsFilter) ([]*domain.Booking, error) {
	result := make([]*domain.Booking, 0)
	for _, b := range r.byUser {
		if b.MerchantID != filter.MerchantID {
			continue
		}
		if !filter.IncludeTerminal && b.IsTerminal() {
			continue
		}
		result = append(result, b)
	}
	return result, nil
}

type fakeCatalog struct {
	merchant *catalogservice.Merchant
}

func (c *fakeCatalog) GetMerchant(_ context.Context, _ int64) (*catalogservice.Merchant, error) {
	return c.merchant, nil
}

const (
	ownerID   = int64(100)
	managerID = int64(500)
)

func newTestService(repo *fakeBookingRepo) *Service {
	catalog := &fakeCatalog{
		merchant: &catalogservice.Merchant{ID: 1, Name: "Barbershop", ManagerIDs: []int64{managerID}},
	}
	return NewService(repo, catalog, nopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	repo := &fakeBookingRepo{byID: map[int64]*domain.Booking{
		1: {ID: 1, MerchantID: 1, UserID: ownerID, Status: domain.StatusPending},
	}}
	svc := newTestService(repo)

	// Владелец видит свое бронирование
	booking, err := svc.GetByID(context.Background(), 1, ownerID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), booking.ID)

	// Менеджер мерчанта тоже
	_, err = svc.GetByID(context.Background(), 1, managerID)
	assert.NoError(t, err)

	// Посторонний пользователь - нет
	_, err = svc.GetByID(context.Background(), 1, 999)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeBookingRepo{byID: map[int64]*domain.Booking{}})

	_, err := svc.GetByID(context.Background(), 42, ownerID)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &fakeBookingRepo{byUser: []*domain.Booking{
		{ID: 1, UserID: ownerID, Status: domain.StatusPending},
		{ID: 2, UserID: ownerID, Status: domain.StatusCompleted},
		{ID: 3, UserID: 999, Status: domain.StatusPending},
	}}
	svc := newTestService(repo)

	all, err := svc.GetUserBookings(context.Background(), ownerID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	status := "completed"
	completed, err := svc.GetUserBookings(context.Background(), ownerID, &status)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, int64(2), completed[0].ID)

	bad := "unknown"
	_, err = svc.GetUserBookings(context.Background(), ownerID, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetMerchantBookings_ManagerOnly(t *testing.T) {
	repo := &fakeBookingRepo{byUser: []*domain.Booking{
		{ID: 1, MerchantID: 1, UserID: ownerID, Status: domain.StatusPending},
		{ID: 2, MerchantID: 1, UserID: ownerID, Status: domain.StatusCancelled},
	}}
	svc := newTestService(repo)

	// Менеджер получает активные бронирования
	result, err := svc.GetMerchantBookings(context.Background(), &MerchantBookingsRequest{
		MerchantID: 1,
		ActorID:    managerID,
	})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, int64(1), result[0].ID)

	// С терминальными статусами
	result, err = svc.GetMerchantBookings(context.Background(), &MerchantBookingsRequest{
		MerchantID:      1,
		ActorID:         managerID,
		IncludeTerminal: true,
	})
	require.NoError(t, err)
	assert.Len(t, result, 2)

	// Не менеджер - доступ запрещен
	_, err = svc.GetMerchantBookings(context.Background(), &MerchantBookingsRequest{
		MerchantID: 1,
		ActorID:    999,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
