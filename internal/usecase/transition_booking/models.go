package transition_booking

// Event событие перехода жизненного цикла бронирования
type Event string

const (
	// EventConfirm мерчант подтверждает бронирование (pending -> confirmed),
	// при этом выдается одноразовый код подтверждения
	EventConfirm Event = "confirm"

	// EventCancel пользователь или мерчант отменяет бронирование
	// (pending/confirmed -> cancelled)
	EventCancel Event = "cancel"

	// EventNoShow мерчант отмечает неявку (confirmed -> no_show)
	EventNoShow Event = "no_show"

	// EventComplete мерчант завершает обслуживание (ongoing -> completed)
	EventComplete Event = "complete"
)

// ActorRole роль вызывающей стороны, утверждается внешним слоем авторизации
type ActorRole string

const (
	RoleUser     ActorRole = "user"
	RoleMerchant ActorRole = "merchant"
)

// Request модель запроса на переход статуса
type Request struct {
	BookingID int64
	Event     Event
	ActorRole ActorRole
	ActorID   int64   // ID пользователя или менеджера мерчанта
	Reason    *string // Причина отмены (только для EventCancel)
}
