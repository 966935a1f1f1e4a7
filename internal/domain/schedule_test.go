package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/LSB-BookingService/pkg/types"
)

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func testScheduleConfig(t *testing.T) *MerchantScheduleConfig {
	t.Helper()
	return &MerchantScheduleConfig{
		MerchantID:  1,
		OpeningTime: mustTime(t, "09:00"),
		ClosingTime: mustTime(t, "18:00"),
		WorkingDays: []time.Weekday{
			time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday,
		},
		SlotDurationMinutes: 30,
		CapacityPerSlot:     3,
		AdvanceBookingDays:  14,
	}
}

func TestComputeSlots_FullWorkingDay(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)  // Monday
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC) // Tuesday

	slots, err := ComputeSlots(cfg, date, now)
	require.NoError(t, err)

	// 09:00-18:00 по 30 минут = 18 слотов, от 09:00 до 17:30
	require.Len(t, slots, 18)
	assert.Equal(t, "09:00", slots[0].String())
	assert.Equal(t, "09:30", slots[1].String())
	assert.Equal(t, "17:30", slots[len(slots)-1].String())

	// Строго возрастающая последовательность
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].IsBefore(slots[i]),
			"slot %s must come before %s", slots[i-1], slots[i])
	}
}

func TestComputeSlots_Deterministic(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	first, err := ComputeSlots(cfg, date, now)
	require.NoError(t, err)
	second, err := ComputeSlots(cfg, date, now)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestComputeSlots_PartialFinalSlotDropped(t *testing.T) {
	cfg := testScheduleConfig(t)
	cfg.ClosingTime = mustTime(t, "17:45")

	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(cfg, date, now)
	require.NoError(t, err)

	// Слот 17:30-18:00 выходит за закрытие 17:45 и не выдается
	require.NotEmpty(t, slots)
	assert.Equal(t, "17:00", slots[len(slots)-1].String())
}

func TestComputeSlots_NonWorkingDay(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(cfg, sunday, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_Holiday(t *testing.T) {
	cfg := testScheduleConfig(t)
	holiday := time.Date(2026, 9, 16, 0, 0, 0, 0, time.UTC) // Wednesday
	cfg.Holidays = []time.Time{holiday}

	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(cfg, holiday, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeSlots_DateInPast(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	yesterday := time.Date(2026, 9, 13, 0, 0, 0, 0, time.UTC)

	_, err := ComputeSlots(cfg, yesterday, now)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestComputeSlots_TodayIsBookable(t *testing.T) {
	cfg := testScheduleConfig(t)
	// Понедельник, середина дня: сегодняшняя дата еще доступна
	now := time.Date(2026, 9, 14, 12, 0, 0, 0, time.UTC)
	today := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(cfg, today, now)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestComputeSlots_DateTooFarInFuture(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	tooFar := now.AddDate(0, 0, cfg.AdvanceBookingDays+1)

	_, err := ComputeSlots(cfg, tooFar, now)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestComputeSlots_LastDayOfWindowIsBookable(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	lastDay := now.AddDate(0, 0, cfg.AdvanceBookingDays)

	_, err := ComputeSlots(cfg, lastDay, now)
	assert.NoError(t, err)
}

func TestComputeSlots_LateClosing(t *testing.T) {
	cfg := testScheduleConfig(t)
	cfg.OpeningTime = mustTime(t, "21:00")
	cfg.ClosingTime = mustTime(t, "23:30")
	cfg.SlotDurationMinutes = 60

	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(cfg, date, now)
	require.NoError(t, err)

	// Слот 23:00 закончился бы в полночь и отбрасывается как неполный
	require.Len(t, slots, 2)
	assert.Equal(t, "21:00", slots[0].String())
	assert.Equal(t, "22:00", slots[1].String())
}

func TestComputeSlots_TodayInWesternTimezone(t *testing.T) {
	cfg := testScheduleConfig(t)

	// Дата бронирования приходит в UTC, сервер живет в UTC-5:
	// полночь UTC сегодняшнего дня раньше локальной полуночи
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2026, 9, 15, 10, 0, 0, 0, loc)      // вторник по локальному времени
	today := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	slots, err := ComputeSlots(cfg, today, now)
	require.NoError(t, err)
	assert.NotEmpty(t, slots)
}

func TestComputeSlots_AdvanceWindowInEasternTimezone(t *testing.T) {
	cfg := testScheduleConfig(t)

	// Окно бронирования считается по календарным дням, а не по моментам
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, loc)

	lastDay := time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC)
	_, err := ComputeSlots(cfg, lastDay, now)
	assert.NoError(t, err)

	beyond := time.Date(2026, 9, 29, 0, 0, 0, 0, time.UTC)
	_, err = ComputeSlots(cfg, beyond, now)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestContainsSlot(t *testing.T) {
	cfg := testScheduleConfig(t)
	now := time.Date(2026, 9, 14, 8, 0, 0, 0, time.UTC)
	date := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)

	ok, err := ContainsSlot(cfg, date, mustTime(t, "10:00"), now)
	require.NoError(t, err)
	assert.True(t, ok)

	// 10:15 не является началом слота при сетке в 30 минут
	ok, err = ContainsSlot(cfg, date, mustTime(t, "10:15"), now)
	require.NoError(t, err)
	assert.False(t, ok)

	// До открытия
	ok, err = ContainsSlot(cfg, date, mustTime(t, "08:30"), now)
	require.NoError(t, err)
	assert.False(t, ok)
}
