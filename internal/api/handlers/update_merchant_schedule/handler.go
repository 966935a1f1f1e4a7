package update_merchant_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/LSB-BookingService/internal/api/handlers"
	getMerchantSchedule "github.com/m04kA/LSB-BookingService/internal/api/handlers/get_merchant_schedule"
	"github.com/m04kA/LSB-BookingService/internal/api/middleware"
	"github.com/m04kA/LSB-BookingService/internal/service/schedule"
)

const (
	msgInvalidMerchantID  = "некорректный ID мерчанта"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgMerchantNotFound   = "мерчант не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные расписания"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/merchants/{merchantId}/schedule
//
// Изменение вместимости действует только на будущие расчеты доступности:
// уже созданные бронирования не пересматриваются
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	merchantID, err := strconv.ParseInt(vars["merchantId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /merchants/{id}/schedule - Invalid merchant ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMerchantID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /merchants/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /merchants/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	cfg, err := req.ToDomainSchedule(merchantID)
	if err != nil {
		h.logger.Warn("PUT /merchants/{id}/schedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidData)
		return
	}

	result, err := h.service.Update(r.Context(), actorID, cfg)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrMerchantNotFound):
			h.logger.Warn("PUT /merchants/{id}/schedule - Merchant not found: merchant_id=%d", merchantID)
			handlers.RespondNotFound(w, msgMerchantNotFound)

		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /merchants/{id}/schedule - Access denied: merchant_id=%d, actor_id=%d",
				merchantID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /merchants/{id}/schedule - Invalid data: merchant_id=%d, error=%v",
				merchantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /merchants/{id}/schedule - Failed: merchant_id=%d, error=%v", merchantID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /merchants/{id}/schedule - Schedule updated: merchant_id=%d, actor_id=%d",
		merchantID, actorID)
	handlers.RespondJSON(w, http.StatusOK, getMerchantSchedule.FromDomainSchedule(result))
}
