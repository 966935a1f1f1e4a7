package verify_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSB-BookingService/internal/api/handlers"
	"github.com/m04kA/LSB-BookingService/internal/api/middleware"
	verifyCode "github.com/m04kA/LSB-BookingService/internal/usecase/verify_code"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "бронирование не найдено"
	msgForbidden          = "доступ запрещен"
	msgCodeInvalid        = "код подтверждения не совпал или недействителен"
	msgCodeExpired        = "срок действия кода подтверждения истек"
)

// VerifyBookingRequest HTTP request model
type VerifyBookingRequest struct {
	Code string `json:"code"`
}

type Handler struct {
	useCase VerifyCodeUseCase
	logger  Logger
}

func NewHandler(useCase VerifyCodeUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/verify
//
// Менеджер мерчанта вводит код, названный пользователем. Совпадение кода
// начинает обслуживание: бронирование переходит в статус ongoing, код списывается
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/verify - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/verify - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req VerifyBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), &verifyCode.Request{
		BookingID: bookingID,
		Code:      req.Code,
		ActorID:   actorID,
	})
	if err != nil {
		switch {
		case errors.Is(err, verifyCode.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/verify - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, verifyCode.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/verify - Access denied: booking_id=%d, actor_id=%d",
				bookingID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, verifyCode.ErrCodeInvalid):
			h.logger.Warn("POST /bookings/{id}/verify - Code invalid: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCodeInvalid)

		case errors.Is(err, verifyCode.ErrCodeExpired):
			h.logger.Warn("POST /bookings/{id}/verify - Code expired: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCodeExpired)

		case errors.Is(err, verifyCode.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/verify - Invalid input: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCodeInvalid)

		default:
			h.logger.Error("POST /bookings/{id}/verify - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/verify - Service started: booking_id=%d, actor_id=%d",
		bookingID, actorID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromDomainBooking(booking))
}
