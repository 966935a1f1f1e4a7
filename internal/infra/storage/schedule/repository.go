package schedule

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LSB-BookingService/pkg/psqlbuilder"
)

// DBExecutor интерфейс для выполнения запросов
type DBExecutor = dbmetrics.DBExecutor

// Repository репозиторий для работы с расписаниями мерчантов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписаний
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

var configColumns = []string{
	"id",
	"merchant_id",
	"opening_time",
	"closing_time",
	"working_days",
	"slot_duration_minutes",
	"capacity_per_slot",
	"advance_booking_days",
	"holidays",
	"created_at",
	"updated_at",
}

// GetByMerchantID получает расписание мерчанта
func (r *Repository) GetByMerchantID(ctx context.Context, merchantID int64) (*domain.MerchantScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("merchant_schedule_config").
		Where(squirrel.Eq{"merchant_id": merchantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMerchantID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	config, err := scanConfig(row)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMerchantID - scan config: %w", ErrScanRow, err)
	}

	return config, nil
}

// Upsert создает или обновляет расписание мерчанта
// Одна запись на мерчанта - конфликт по merchant_id перезаписывает поля
func (r *Repository) Upsert(ctx context.Context, config *domain.MerchantScheduleConfig) (*domain.MerchantScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("merchant_schedule_config").
		Columns(
			"merchant_id",
			"opening_time",
			"closing_time",
			"working_days",
			"slot_duration_minutes",
			"capacity_per_slot",
			"advance_booking_days",
			"holidays",
		).
		Values(
			config.MerchantID,
			config.OpeningTime,
			config.ClosingTime,
			pq.Array(weekdaysToStrings(config.WorkingDays)),
			config.SlotDurationMinutes,
			config.CapacityPerSlot,
			config.AdvanceBookingDays,
			pq.Array(datesToStrings(config.Holidays)),
		).
		Suffix(`ON CONFLICT (merchant_id) DO UPDATE SET
			opening_time = EXCLUDED.opening_time,
			closing_time = EXCLUDED.closing_time,
			working_days = EXCLUDED.working_days,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			capacity_per_slot = EXCLUDED.capacity_per_slot,
			advance_booking_days = EXCLUDED.advance_booking_days,
			holidays = EXCLUDED.holidays,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %w", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// scanConfig сканирует строку в расписание мерчанта
func scanConfig(row interface{ Scan(dest ...interface{}) error }) (*domain.MerchantScheduleConfig, error) {
	var config domain.MerchantScheduleConfig
	var workingDays, holidays []string
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.MerchantID,
		&config.OpeningTime,
		&config.ClosingTime,
		pq.Array(&workingDays),
		&config.SlotDurationMinutes,
		&config.CapacityPerSlot,
		&config.AdvanceBookingDays,
		pq.Array(&holidays),
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.WorkingDays, err = stringsToWeekdays(workingDays)
	if err != nil {
		return nil, err
	}
	config.Holidays, err = stringsToDates(holidays)
	if err != nil {
		return nil, err
	}
	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}

// weekdaysToStrings конвертирует дни недели в имена для хранения в text[]
func weekdaysToStrings(days []time.Weekday) []string {
	result := make([]string, len(days))
	for i, d := range days {
		result[i] = strings.ToLower(d.String())
	}
	return result
}

// stringsToWeekdays парсит имена дней недели
func stringsToWeekdays(names []string) ([]time.Weekday, error) {
	result := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		result = append(result, day)
	}
	return result, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), name) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", name)
}

// datesToStrings конвертирует даты в YYYY-MM-DD для хранения в text[]
func datesToStrings(dates []time.Time) []string {
	result := make([]string, len(dates))
	for i, d := range dates {
		result[i] = d.Format(domain.DateFormat)
	}
	return result
}

// stringsToDates парсит даты из YYYY-MM-DD
func stringsToDates(values []string) ([]time.Time, error) {
	result := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday date %q: %v", v, err)
		}
		result = append(result, d)
	}
	return result, nil
}
