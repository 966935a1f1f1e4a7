package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/LSB-BookingService/internal/api/handlers"
	"github.com/m04kA/LSB-BookingService/internal/api/middleware"
	createBooking "github.com/m04kA/LSB-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты (YYYY-MM-DD) или времени (HH:MM)"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgSlotFull           = "выбранный временной слот заполнен"
	msgMerchantNotFound   = "мерчант не найден"
	msgServiceNotFound    = "услуга не найдена"
	msgScheduleNotFound   = "расписание мерчанта не настроено"
	msgMerchantClosed     = "мерчант не работает в выбранную дату"
	msgInvalidBookingDate = "некорректная дата бронирования"
	msgDateTooFar         = "дата бронирования слишком далеко в будущем"
	msgInvalidTimeSlot    = "некорректный временной слот"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Ключ идемпотентности: повтор запроса с тем же ключом вернет то же бронирование
	var requestID *string
	if key := r.Header.Get("Idempotency-Key"); key != "" {
		requestID = &key
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, requestID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	booking, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotFull):
			h.logger.Warn("POST /bookings - Slot full: user_id=%d, merchant_id=%d, slot=%s",
				userID, req.MerchantID, req.TimeSlot)
			handlers.RespondConflict(w, msgSlotFull)

		case errors.Is(err, createBooking.ErrMerchantNotFound):
			h.logger.Warn("POST /bookings - Merchant not found: merchant_id=%d", req.MerchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: merchant_id=%d, service_id=%d",
				req.MerchantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrScheduleNotFound):
			h.logger.Warn("POST /bookings - Schedule not configured: merchant_id=%d", req.MerchantID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, createBooking.ErrMerchantClosed):
			h.logger.Warn("POST /bookings - Merchant closed: merchant_id=%d, date=%s",
				req.MerchantID, req.BookingDate)
			handlers.RespondBadRequest(w, msgMerchantClosed)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: user_id=%d, date=%s", userID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Invalid time slot: merchant_id=%d, slot=%s",
				req.MerchantID, req.TimeSlot)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, merchant_id=%d, error=%v",
				userID, req.MerchantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, merchant_id=%d",
		booking.ID, userID, req.MerchantID)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromDomainBooking(booking))
}
