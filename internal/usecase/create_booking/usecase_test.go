package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	scheduleStorage "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// --- фейки ---

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

// fakeBookingRepo потокобезопасное in-memory хранилище бронирований
type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{nextID: 1}
}

func (r *fakeBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if booking.RequestID != nil {
		for _, b := range r.bookings {
			if b.RequestID != nil && *b.RequestID == *booking.RequestID {
				return nil, bookingRepo.ErrDuplicateBooking
			}
		}
	}

	created := *booking
	created.ID = r.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	r.nextID++
	r.bookings = append(r.bookings, &created)

	result := created
	return &result, nil
}

func (r *fakeBookingRepo) GetByRequestID(_ context.Context, requestID string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, b := range r.bookings {
		if b.RequestID != nil && *b.RequestID == requestID {
			result := *b
			return &result, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) CountOccupying(_ context.Context, merchantID int64, date time.Time, slot types.TimeString) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count := 0
	for _, b := range r.bookings {
		if b.MerchantID == merchantID && b.BookingDate.Equal(date) && b.TimeSlot == slot && b.IsOccupying() {
			count++
		}
	}
	return count, nil
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
	merchant    *catalogservice.Merchant
	merchantErr error
	service     *catalogservice.Service
	serviceErr  error
}

func (c *fakeCatalog) GetMerchant(_ context.Context, _ int64) (*catalogservice.Merchant, error) {
	if c.merchantErr != nil {
		return nil, c.merchantErr
	}
	return c.merchant, nil
}

func (c *fakeCatalog) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	if c.serviceErr != nil {
		return nil, c.serviceErr
	}
	return c.service, nil
}

// fakeTxManager сериализует транзакции мьютексом: проверка занятости
// и вставка выполняются атомарно, как в сериализуемой транзакции
type fakeTxManager struct {
	mu sync.Mutex
}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

// --- вспомогательные данные ---

var testNow = time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC) // Monday

func mustSlot(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testSchedule(t *testing.T, capacity int) *domain.MerchantScheduleConfig {
	t.Helper()
	return &domain.MerchantScheduleConfig{
		MerchantID:  1,
		OpeningTime: mustSlot(t, "09:00"),
		ClosingTime: mustSlot(t, "18:00"),
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		SlotDurationMinutes: 30,
		CapacityPerSlot:     capacity,
		AdvanceBookingDays:  14,
	}
}

func testCatalog() *fakeCatalog {
	price := 1500.0
	return &fakeCatalog{
		merchant: &catalogservice.Merchant{ID: 1, Name: "Barbershop"},
		service:  &catalogservice.Service{ID: 10, Name: "Haircut", Price: &price},
	}
}

func newTestUseCase(t *testing.T, repo *fakeBookingRepo, capacity int) *UseCase {
	t.Helper()
	uc := NewUseCase(repo, &fakeScheduleRepo{config: testSchedule(t, capacity)}, testCatalog(), &fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

func testRequest(t *testing.T) *Request {
	t.Helper()
	return &Request{
		UserID:     100,
		MerchantID: 1,
		ServiceID:  10,
		Date:       time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), // Tuesday
		TimeSlot:   mustSlot(t, "10:00"),
	}
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	booking, err := uc.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, booking.Status)
	assert.Equal(t, int64(100), booking.UserID)
	assert.Equal(t, int64(1), booking.MerchantID)
	assert.Equal(t, "Haircut", booking.Service.Name)
	assert.Equal(t, 1500.0, booking.Service.Price)
	assert.Equal(t, 30, booking.Service.DurationMinutes)
	assert.Nil(t, booking.VerificationCode)
}

func TestExecute_SlotFull(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 2)

	for i := 0; i < 2; i++ {
		req := testRequest(t)
		req.UserID = int64(100 + i)
		_, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
	}

	req := testRequest(t)
	req.UserID = 300
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestExecute_CancelledBookingFreesSpot(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 1)

	first, err := uc.Execute(context.Background(), testRequest(t))
	require.NoError(t, err)

	// Слот занят
	req := testRequest(t)
	req.UserID = 200
	_, err = uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotFull)

	// Отмена освобождает место: занятость выводится из статусов
	repo.mu.Lock()
	for _, b := range repo.bookings {
		if b.ID == first.ID {
			b.Status = domain.StatusCancelled
		}
	}
	repo.mu.Unlock()

	_, err = uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ConcurrentAdmission(t *testing.T) {
	const capacity = 3
	const attempts = 10

	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, capacity)

	base := testRequest(t)

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := *base
			req.UserID = int64(100 + i)
			_, errs[i] = uc.Execute(context.Background(), &req)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	rejected := 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case assert.ErrorIs(t, err, ErrSlotFull):
			rejected++
		}
	}

	// Ровно capacity бронирований проходит, остальные получают ErrSlotFull
	assert.Equal(t, capacity, succeeded)
	assert.Equal(t, attempts-capacity, rejected)

	occupancy, err := repo.CountOccupying(context.Background(),
		1, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), mustSlot(t, "10:00"))
	require.NoError(t, err)
	assert.Equal(t, capacity, occupancy)
}

func TestExecute_Idempotency(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	requestID := "req-abc-123"
	req := testRequest(t)
	req.RequestID = &requestID

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	// Повтор с тем же ключом возвращает то же бронирование, не создавая новое
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	occupancy, err := repo.CountOccupying(context.Background(), req.MerchantID, req.Date, req.TimeSlot)
	require.NoError(t, err)
	assert.Equal(t, 1, occupancy)
}

func TestExecute_InvalidTimeSlot(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	req := testRequest(t)
	req.TimeSlot = mustSlot(t, "10:15") // не начало слота при сетке 30 минут

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_MerchantClosed(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	req := testRequest(t)
	req.Date = time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC) // Sunday

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrMerchantClosed)
}

func TestExecute_DateInPast(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	req := testRequest(t)
	req.Date = time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DateTooFarInFuture(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	req := testRequest(t)
	req.Date = testNow.AddDate(0, 0, 30)

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_MerchantNotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)
	uc.catalog = &fakeCatalog{merchantErr: catalogservice.ErrMerchantNotFound}

	_, err := uc.Execute(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestExecute_ServiceNotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)
	catalog := testCatalog()
	catalog.serviceErr = catalogservice.ErrServiceNotFound
	uc.catalog = catalog

	_, err := uc.Execute(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ScheduleNotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)
	uc.scheduleRepo = &fakeScheduleRepo{err: scheduleStorage.ErrConfigNotFound}

	_, err := uc.Execute(context.Background(), testRequest(t))
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestExecute_Validation(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(t, repo, 3)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"zero merchant", func(r *Request) { r.MerchantID = 0 }},
		{"zero service", func(r *Request) { r.ServiceID = 0 }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"empty slot", func(r *Request) { r.TimeSlot = "" }},
		{"empty request id", func(r *Request) { empty := ""; r.RequestID = &empty }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testRequest(t)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
