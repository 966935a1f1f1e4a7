package catalogservice

// Merchant данные мерчанта из каталога
type Merchant struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	ManagerIDs []int64 `json:"managerIds"`
}

// IsManagedBy проверяет, что пользователь управляет мерчантом
func (m *Merchant) IsManagedBy(userID int64) bool {
	for _, id := range m.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Service данные услуги из каталога
// Снимок этих полей копируется в бронирование при создании
type Service struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	DurationMinutes int      `json:"durationMinutes"`
}
