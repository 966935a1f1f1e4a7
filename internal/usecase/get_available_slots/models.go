package get_available_slots

import (
	"time"

	"github.com/m04kA/LSB-BookingService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	MerchantID int64     // ID мерчанта
	Date       time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	MerchantID int64                  // ID мерчанта
	Date       time.Time              // Дата, на которую запрашивались слоты
	Slots      []domain.AvailableSlot // Список слотов с остаточной вместимостью
}
