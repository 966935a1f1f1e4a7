package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSB-BookingService/internal/api/handlers"
	"github.com/m04kA/LSB-BookingService/internal/domain"
	getAvailableSlots "github.com/m04kA/LSB-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidMerchantID = "некорректный ID мерчанта"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMerchantNotFound  = "мерчант не найден"
	msgScheduleNotFound  = "расписание мерчанта не настроено"
	msgDateInPast        = "дата в прошлом"
	msgDateTooFar        = "дата слишком далеко в будущем"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/merchants/{merchantId}/available-slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/available-slots - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /merchants/{id}/available-slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		MerchantID: merchantID,
		Date:       date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrMerchantNotFound):
			h.logger.Warn("GET /merchants/{id}/available-slots - Merchant not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, getAvailableSlots.ErrScheduleNotFound):
			h.logger.Warn("GET /merchants/{id}/available-slots - Schedule not configured: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgScheduleNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /merchants/{id}/available-slots - Date in past: merchant_id=%d", merchantID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /merchants/{id}/available-slots - Date too far: merchant_id=%d", merchantID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		default:
			h.logger.Error("GET /merchants/{id}/available-slots - Failed: merchant_id=%d, error=%v",
				merchantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /merchants/{id}/available-slots - Slots retrieved: merchant_id=%d, count=%d",
		merchantID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
