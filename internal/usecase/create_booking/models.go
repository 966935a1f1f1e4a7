package create_booking

import (
	"time"

	"github.com/m04kA/LSB-BookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID     int64            // ID пользователя
	MerchantID int64            // ID мерчанта
	ServiceID  int64            // ID услуги из каталога мерчанта
	Date       time.Time        // Дата бронирования (без времени)
	TimeSlot   types.TimeString // Время начала слота (например, "10:00")
	Notes      *string          // Дополнительные заметки (опционально)
	RequestID  *string          // Ключ идемпотентности (опционально)
}
