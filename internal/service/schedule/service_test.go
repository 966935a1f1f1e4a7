package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	scheduleRepo "github.com/m04kA/LSB-BookingService/internal/infra/storage/schedule"
	"github.com/m04kA/LSB-BookingService/internal/integrations/catalogservice"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeScheduleRepo struct {
	stored *domain.MerchantScheduleConfig
	getErr error
}

func (r *fakeScheduleRepo) GetByMerchantID(_ context.Context, _ int64) (*domain.MerchantScheduleConfig, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	return r.stored, nil
}

func (r *fakeScheduleRepo) Upsert(_ context.Context, config *domain.MerchantScheduleConfig) (*domain.MerchantScheduleConfig, error) {
	saved := *config
	saved.ID = 1
	r.stored = &saved
	return &saved, nil
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

const managerID = int64(500)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func validConfig(t *testing.T) *domain.MerchantScheduleConfig {
	t.Helper()
	return &domain.MerchantScheduleConfig{
		MerchantID:          1,
		OpeningTime:         mustTime(t, "09:00"),
		ClosingTime:         mustTime(t, "18:00"),
		WorkingDays:         []time.Weekday{time.Monday, time.Tuesday},
		SlotDurationMinutes: 30,
		CapacityPerSlot:     3,
		AdvanceBookingDays:  14,
	}
}

func newTestService(repo *fakeScheduleRepo) *Service {
	catalog := &fakeCatalog{
		merchant: &catalogservice.Merchant{ID: 1, Name: "Barbershop", ManagerIDs: []int64{managerID}},
	}
	return NewService(repo, catalog, nopLogger{})
}

func TestGet(t *testing.T) {
	repo := &fakeScheduleRepo{stored: validConfig(t)}
	svc := newTestService(repo)

	cfg, err := svc.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cfg.MerchantID)
}

func TestGet_NotFound(t *testing.T) {
	repo := &fakeScheduleRepo{getErr: scheduleRepo.ErrConfigNotFound}
	svc := newTestService(repo)

	_, err := svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestUpdate_Success(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	updated, err := svc.Update(context.Background(), managerID, validConfig(t))
	require.NoError(t, err)
	assert.Equal(t, int64(1), updated.ID)
	assert.NotNil(t, repo.stored)
}

func TestUpdate_AccessDenied(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	_, err := svc.Update(context.Background(), 999, validConfig(t))
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Nil(t, repo.stored)
}

func TestUpdate_MerchantNotFound(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)
	svc.catalog = &fakeCatalog{err: catalogservice.ErrMerchantNotFound}

	_, err := svc.Update(context.Background(), managerID, validConfig(t))
	assert.ErrorIs(t, err, ErrMerchantNotFound)
}

func TestUpdate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.MerchantScheduleConfig)
	}{
		{"zero merchant", func(c *domain.MerchantScheduleConfig) { c.MerchantID = 0 }},
		{"opening after closing", func(c *domain.MerchantScheduleConfig) {
			c.OpeningTime = mustTime(t, "18:00")
			c.ClosingTime = mustTime(t, "09:00")
		}},
		{"opening equals closing", func(c *domain.MerchantScheduleConfig) {
			c.ClosingTime = c.OpeningTime
		}},
		{"no working days", func(c *domain.MerchantScheduleConfig) { c.WorkingDays = nil }},
		{"duplicate working days", func(c *domain.MerchantScheduleConfig) {
			c.WorkingDays = []time.Weekday{time.Monday, time.Monday}
		}},
		{"zero slot duration", func(c *domain.MerchantScheduleConfig) { c.SlotDurationMinutes = 0 }},
		{"slot duration not in grid", func(c *domain.MerchantScheduleConfig) { c.SlotDurationMinutes = 25 }},
		{"zero capacity", func(c *domain.MerchantScheduleConfig) { c.CapacityPerSlot = 0 }},
		{"capacity above limit", func(c *domain.MerchantScheduleConfig) { c.CapacityPerSlot = 101 }},
		{"zero advance window", func(c *domain.MerchantScheduleConfig) { c.AdvanceBookingDays = 0 }},
		{"advance window above limit", func(c *domain.MerchantScheduleConfig) { c.AdvanceBookingDays = 366 }},
	}

	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(cfg)
			_, err := svc.Update(context.Background(), managerID, cfg)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdate_AllowedSlotDurations(t *testing.T) {
	repo := &fakeScheduleRepo{}
	svc := newTestService(repo)

	for _, d := range domain.AllowedSlotDurations {
		cfg := validConfig(t)
		cfg.SlotDurationMinutes = d
		_, err := svc.Update(context.Background(), managerID, cfg)
		assert.NoError(t, err, "duration %d", d)
	}
}
