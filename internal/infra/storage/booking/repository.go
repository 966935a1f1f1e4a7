package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/pkg/dbmetrics"
	"github.com/m04kA/LSB-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// pqUniqueViolation код ошибки PostgreSQL при нарушении уникальности
const pqUniqueViolation = "23505"

var bookingColumns = []string{
	"id",
	"request_id",
	"merchant_id",
	"user_id",
	"service_name",
	"service_price",
	"service_duration_minutes",
	"booking_date",
	"time_slot",
	"status",
	"verification_code",
	"code_issued_at",
	"cancelled_by",
	"cancellation_reason",
	"notes",
	"confirmed_at",
	"verified_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её.
//
// Создание с проверкой занятости слота должно выполняться внутри сериализуемой
// транзакции - это единственная защита от превышения вместимости слота
// при конкурентных запросах.
//
// Нарушение уникальности (повторный ключ идемпотентности) возвращается
// как ErrDuplicateBooking.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"request_id",
			"merchant_id",
			"user_id",
			"service_name",
			"service_price",
			"service_duration_minutes",
			"booking_date",
			"time_slot",
			"status",
			"notes",
		).
		Values(
			booking.RequestID,
			booking.MerchantID,
			booking.UserID,
			booking.Service.Name,
			booking.Service.Price,
			booking.Service.DurationMinutes,
			booking.BookingDate,
			booking.TimeSlot,
			booking.Status,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, fmt.Errorf("%w: %w", ErrDuplicateBooking, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку - чтение перед CAS-переходом
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByRequestID получает бронирование по ключу идемпотентности
// Используется для повторной выдачи результата при ретрае CreateBooking
func (r *Repository) GetByRequestID(ctx context.Context, requestID string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"request_id": requestID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequestID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	booking, err := scanBooking(row)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByRequestID - scan booking: %w", ErrScanRow, err)
	}

	return booking, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, time_slot DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByMerchantWithFilter получает бронирования мерчанта с гибкой фильтрацией
// Поддерживает фильтрацию по периоду, конкретному слоту и статусу.
// По умолчанию возвращает только бронирования, занимающие слот
// (pending, confirmed, ongoing); IncludeTerminal включает остальные.
//
// Внутри транзакции выборка на конкретную дату выполняется с FOR UPDATE -
// это точка блокировки при атомарной проверке занятости слота.
func (r *Repository) GetByMerchantWithFilter(ctx context.Context, filter domain.MerchantBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"merchant_id": filter.MerchantID})

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}
	if filter.TimeSlot != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"time_slot": *filter.TimeSlot})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeTerminal {
		occupying := make([]string, len(domain.OccupyingStatuses))
		for i, s := range domain.OccupyingStatuses {
			occupying[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": occupying})
	}

	singleDate := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)

	if singleDate {
		selectBuilder = selectBuilder.OrderBy("time_slot ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, time_slot DESC")
	}

	if dbmetrics.IsInTransaction(ctx) && singleDate {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMerchantWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByMerchantWithFilter - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountOccupying считает занятость слота: количество бронирований
// в статусах pending/confirmed/ongoing на ключ (merchant, date, slot).
// Занятость всегда выводится из таблицы бронирований - отдельный счетчик не ведется
func (r *Repository) CountOccupying(ctx context.Context, merchantID int64, date time.Time, slot types.TimeString) (int, error) {
	bookings, err := r.GetByMerchantWithFilter(ctx, domain.MerchantBookingsFilter{
		MerchantID: merchantID,
		StartDate:  &date,
		EndDate:    &date,
		TimeSlot:   &slot,
	})
	if err != nil {
		return 0, err
	}
	return len(bookings), nil
}

// UpdateStatusCAS атомарно переводит бронирование из expected в newStatus.
// Если текущий статус отличается от expected (другой обработчик успел раньше),
// возвращает ErrStaleStatus - вызывающая сторона должна перечитать бронирование.
// Дополнительные поля (код, временные метки, причина отмены) записываются
// тем же UPDATE, что и статус
func (r *Repository) UpdateStatusCAS(
	ctx context.Context,
	id int64,
	expected domain.BookingStatus,
	newStatus domain.BookingStatus,
	fields StatusFields,
) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", newStatus).
		Set("updated_at", fields.UpdatedAt).
		Where(squirrel.Eq{"id": id, "status": expected})

	if fields.SetCode != nil {
		updateBuilder = updateBuilder.
			Set("verification_code", *fields.SetCode).
			Set("code_issued_at", fields.CodeIssuedAt)
	}
	if fields.ClearCode {
		updateBuilder = updateBuilder.
			Set("verification_code", nil).
			Set("code_issued_at", nil)
	}
	if fields.ConfirmedAt != nil {
		updateBuilder = updateBuilder.Set("confirmed_at", *fields.ConfirmedAt)
	}
	if fields.CompletedAt != nil {
		updateBuilder = updateBuilder.Set("completed_at", *fields.CompletedAt)
	}
	if fields.CancelledAt != nil {
		updateBuilder = updateBuilder.Set("cancelled_at", *fields.CancelledAt)
	}
	if fields.CancelledBy != nil {
		updateBuilder = updateBuilder.Set("cancelled_by", *fields.CancelledBy)
	}
	if fields.CancellationReason != nil {
		updateBuilder = updateBuilder.Set("cancellation_reason", *fields.CancellationReason)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusCAS - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо бронирования нет, либо статус уже сменился - различаем перечитыванием
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			if errors.Is(getErr, ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return getErr
		}
		return ErrStaleStatus
	}

	return nil
}

// ConsumeCode атомарно списывает код подтверждения и переводит бронирование
// confirmed -> ongoing одним запросом. Успех возможен только если бронирование
// все еще подтверждено И код совпал - это гарантирует одноразовость кода.
//
// При 0 затронутых строк различаем причины: бронирование не найдено,
// статус уже не confirmed (ErrStaleStatus) или код не совпал (ErrCodeMismatch)
func (r *Repository) ConsumeCode(ctx context.Context, id int64, code string, verifiedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusOngoing).
		Set("verification_code", nil).
		Set("code_issued_at", nil).
		Set("verified_at", verifiedAt).
		Set("updated_at", verifiedAt).
		Where(squirrel.Eq{
			"id":                id,
			"status":            domain.StatusConfirmed,
			"verification_code": code,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ConsumeCode - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConsumeCode - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConsumeCode - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		booking, getErr := r.GetByID(ctx, id)
		if getErr != nil {
			if errors.Is(getErr, ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return getErr
		}
		if booking.Status != domain.StatusConfirmed {
			return ErrStaleStatus
		}
		return ErrCodeMismatch
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanBooking сканирует одну строку в бронирование
func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	var cancelledBy sql.NullString

	err := row.Scan(
		&booking.ID,
		&booking.RequestID,
		&booking.MerchantID,
		&booking.UserID,
		&booking.Service.Name,
		&booking.Service.Price,
		&booking.Service.DurationMinutes,
		&booking.BookingDate,
		&booking.TimeSlot,
		&booking.Status,
		&booking.VerificationCode,
		&booking.CodeIssuedAt,
		&cancelledBy,
		&booking.CancellationReason,
		&booking.Notes,
		&booking.ConfirmedAt,
		&booking.VerifiedAt,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledBy.Valid {
		actor := domain.CancelActor(cancelledBy.String)
		booking.CancelledBy = &actor
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %w", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}
