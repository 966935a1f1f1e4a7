package verify_code

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
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

// fakeBookingRepo in-memory хранилище с семантикой атомарного списания кода
type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	result := *b
	return &result, nil
}

func (r *fakeBookingRepo) ConsumeCode(_ context.Context, id int64, code string, verifiedAt time.Time) error {
	b, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if b.Status != domain.StatusConfirmed {
		return bookingRepo.ErrStaleStatus
	}
	if b.VerificationCode == nil || *b.VerificationCode != code {
		return bookingRepo.ErrCodeMismatch
	}

	b.Status = domain.StatusOngoing
	b.VerificationCode = nil
	b.CodeIssuedAt = nil
	b.VerifiedAt = &verifiedAt
	b.UpdatedAt = verifiedAt
	return nil
}

type fakeCatalog struct {
	merchant *catalogservice.Merchant
	err      error
}

func (c *fakeCatalog) GetMerchant(_ context.Context, _ int64) (*catalogservice.Merchant, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.merchant, nil
}

// --- вспомогательные данные ---

const managerID = int64(500)

var testNow = time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)

func confirmedBooking(code string, issuedAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:               1,
		MerchantID:       1,
		UserID:           100,
		Status:           domain.StatusConfirmed,
		VerificationCode: &code,
		CodeIssuedAt:     &issuedAt,
	}
}

func newTestUseCase(repo *fakeBookingRepo, ttl time.Duration) *UseCase {
	catalog := &fakeCatalog{
		merchant: &catalogservice.Merchant{ID: 1, Name: "Barbershop", ManagerIDs: []int64{managerID}},
	}
	uc := NewUseCase(repo, catalog, ttl, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: testNow}
	return uc
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking("1234", testNow.Add(-time.Minute)))
	uc := newTestUseCase(repo, 0)

	booking, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: managerID})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusOngoing, booking.Status)
	assert.Nil(t, booking.VerificationCode, "code is consumed on use")
	assert.NotNil(t, booking.VerifiedAt)
}

func TestExecute_CodeIsSingleUse(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking("1234", testNow.Add(-time.Minute)))
	uc := newTestUseCase(repo, 0)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: managerID})
	require.NoError(t, err)

	// Повторная проверка того же кода: бронирование уже не confirmed
	_, err = uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: managerID})
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestExecute_CodeMismatch(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking("1234", testNow.Add(-time.Minute)))
	uc := newTestUseCase(repo, 0)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "9999", ActorID: managerID})
	assert.ErrorIs(t, err, ErrCodeInvalid)

	// Неудачная попытка не трогает бронирование
	booking, getErr := repo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
	assert.NotNil(t, booking.VerificationCode)
}

func TestExecute_NotConfirmed(t *testing.T) {
	for _, status := range []domain.BookingStatus{
		domain.StatusPending, domain.StatusOngoing,
		domain.StatusCompleted, domain.StatusCancelled, domain.StatusNoShow,
	} {
		t.Run(string(status), func(t *testing.T) {
			repo := newFakeBookingRepo(&domain.Booking{ID: 1, MerchantID: 1, UserID: 100, Status: status})
			uc := newTestUseCase(repo, 0)

			// Код привязан к confirmed: вне него любая проверка не совпадает
			_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: managerID})
			assert.ErrorIs(t, err, ErrCodeInvalid)
		})
	}
}

func TestExecute_ExpiredCode(t *testing.T) {
	issued := testNow.Add(-2 * time.Hour)
	repo := newFakeBookingRepo(confirmedBooking("1234", issued))
	uc := newTestUseCase(repo, time.Hour)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: managerID})
	assert.ErrorIs(t, err, ErrCodeExpired)

	// Просроченный код не списывается и статус не меняется
	booking, getErr := repo.GetByID(context.Background(), 1)
	require.NoError(t, getErr)
	assert.Equal(t, domain.StatusConfirmed, booking.Status)
}

func TestExecute_TTLDisabled(t *testing.T) {
	// TTL = 0: код живет, пока бронирование подтверждено
	issued := testNow.Add(-240 * time.Hour)
	repo := newFakeBookingRepo(confirmedBooking("1234", issued))
	uc := newTestUseCase(repo, 0)

	booking, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: managerID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOngoing, booking.Status)
}

func TestExecute_MismatchedCodeDoesNotReportExpiry(t *testing.T) {
	// Не совпавший код не раскрывает информацию о сроке действия
	issued := testNow.Add(-2 * time.Hour)
	repo := newFakeBookingRepo(confirmedBooking("1234", issued))
	uc := newTestUseCase(repo, time.Hour)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "9999", ActorID: managerID})
	assert.ErrorIs(t, err, ErrCodeInvalid)
}

func TestExecute_AccessDenied(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking("1234", testNow.Add(-time.Minute)))
	uc := newTestUseCase(repo, 0)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 1, Code: "1234", ActorID: 999})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_BookingNotFound(t *testing.T) {
	repo := newFakeBookingRepo()
	uc := newTestUseCase(repo, 0)

	_, err := uc.Execute(context.Background(), &Request{BookingID: 42, Code: "1234", ActorID: managerID})
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_Validation(t *testing.T) {
	repo := newFakeBookingRepo(confirmedBooking("1234", testNow))
	uc := newTestUseCase(repo, 0)

	tests := []struct {
		name string
		req  Request
	}{
		{"empty code", Request{BookingID: 1, Code: "", ActorID: managerID}},
		{"short code", Request{BookingID: 1, Code: "123", ActorID: managerID}},
		{"long code", Request{BookingID: 1, Code: "12345", ActorID: managerID}},
		{"non-numeric code", Request{BookingID: 1, Code: "12ab", ActorID: managerID}},
		{"zero booking", Request{BookingID: 0, Code: "1234", ActorID: managerID}},
		{"zero actor", Request{BookingID: 1, Code: "1234", ActorID: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
