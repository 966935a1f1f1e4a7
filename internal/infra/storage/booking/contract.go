package booking

import (
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
	"github.com/m04kA/LSB-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// StatusFields дополнительные поля, записываемые вместе со сменой статуса.
// Все временные метки передаются явно - репозиторий не обращается к часам
type StatusFields struct {
	UpdatedAt time.Time

	// SetCode записывает новый код подтверждения (выдача при подтверждении)
	SetCode      *string
	CodeIssuedAt *time.Time

	// ClearCode обнуляет код подтверждения (любой выход из confirmed)
	ClearCode bool

	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CancelledBy        *domain.CancelActor
	CancellationReason *string
}
